package synthesizer

import (
	"context"
	"math"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAI struct {
	client *openai.Client
	params params
}

func newOpenAI(cfg config.OpenAIConfig, p params) *openAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAI{client: openai.NewClientWithConfig(clientCfg), params: p}
}

func (o *openAI) name() string { return config.ProviderOpenAI }

func (o *openAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.params.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.params.maxTokens,
		Temperature: chatTemperature(o.params.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// chatTemperature maps 0 to the smallest positive float32; go-openai omits a
// zero temperature and the API would then apply its own default of 1.
func chatTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
