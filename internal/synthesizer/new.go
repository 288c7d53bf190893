package synthesizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

type implSynthesizer struct {
	backend     completer
	model       string
	maxTokens   int
	temperature float32
	logger      logger.Logger
}

// New creates the Synthesizer for cfg.Provider. Provider clients are built
// here so nothing is configured globally.
func New(ctx context.Context, cfg config.SynthesizerConfig, log logger.Logger) (Synthesizer, error) {
	s := &implSynthesizer{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: config.DefaultTemperature,
		logger:      log,
	}
	if s.maxTokens == 0 {
		s.maxTokens = config.DefaultMaxTokens
	}
	if cfg.Temperature != nil {
		s.temperature = *cfg.Temperature
	}

	var err error
	switch cfg.Provider {
	case config.ProviderGemini:
		s.backend, err = newGemini(ctx, cfg.Gemini, s.params())
	case config.ProviderOpenAI:
		s.backend = newOpenAI(cfg.OpenAI, s.params())
	case config.ProviderOllama:
		s.backend, err = newOllama(cfg.Ollama, s.params())
	default:
		return nil, fmt.Errorf("unknown synthesizer provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	return s, nil
}

type params struct {
	model       string
	maxTokens   int
	temperature float32
}

func (s *implSynthesizer) params() params {
	return params{model: s.model, maxTokens: s.maxTokens, temperature: s.temperature}
}
