package synthesizer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Synthesize sends the transcript to the configured backend once and returns
// the trimmed completion.
func (s *implSynthesizer) Synthesize(ctx context.Context, transcript string) (string, error) {
	prompt := buildPrompt(transcript)

	s.logger.Info(ctx, "Generating blog with %s/%s (transcript %d chars, prompt %d chars)",
		s.backend.name(), s.model, len(transcript), len(prompt))

	start := time.Now()
	out, err := s.backend.complete(ctx, prompt)
	if err != nil {
		s.logger.Error(ctx, "Error generating blog using %s: %v", s.backend.name(), err)
		return "", fmt.Errorf("%s generate: %w", s.backend.name(), err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.logger.Error(ctx, "%s returned an empty completion", s.backend.name())
		return "", ErrEmptyOutput
	}

	s.logger.Info(ctx, "Blog generated in %s (%d chars)", time.Since(start).Round(time.Millisecond), len(out))
	return out, nil
}
