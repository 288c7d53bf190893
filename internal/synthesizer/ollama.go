package synthesizer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	ollama "github.com/ollama/ollama/api"
)

type ollamaBackend struct {
	client *ollama.Client
	params params
}

func newOllama(cfg config.OllamaConfig, p params) (*ollamaBackend, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}
	return &ollamaBackend{client: ollama.NewClient(base, http.DefaultClient), params: p}, nil
}

func (o *ollamaBackend) name() string { return config.ProviderOllama }

func (o *ollamaBackend) complete(ctx context.Context, prompt string) (string, error) {
	var response strings.Builder
	err := o.client.Generate(ctx, &ollama.GenerateRequest{
		Model:  o.params.model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": o.params.temperature,
			"num_predict": o.params.maxTokens,
		},
	}, func(res ollama.GenerateResponse) error {
		response.WriteString(res.Response)
		return nil
	})
	if err != nil {
		return "", err
	}
	return response.String(), nil
}
