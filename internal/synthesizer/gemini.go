package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"google.golang.org/genai"
)

type gemini struct {
	client *genai.Client
	params params
}

func newGemini(ctx context.Context, cfg config.GeminiConfig, p params) (*gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &gemini{client: client, params: p}, nil
}

func (g *gemini) name() string { return config.ProviderGemini }

func (g *gemini) complete(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.params.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.params.temperature),
		MaxOutputTokens: int32(g.params.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return candidateText(result), nil
}

// candidateText joins the text parts of the first candidate.
func candidateText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
