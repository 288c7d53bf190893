package synthesizer

import (
	"context"
	"errors"
)

var ErrEmptyOutput = errors.New("synthesizer: empty completion")

// Synthesizer rewrites a transcript into a blog article.
type Synthesizer interface {
	Synthesize(ctx context.Context, transcript string) (string, error)
}

// completer is one text-generation backend. It receives the full prompt and
// returns the raw completion.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
	name() string
}
