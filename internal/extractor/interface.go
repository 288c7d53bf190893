package extractor

import (
	"context"
	"errors"
)

var (
	ErrInvalidLink = errors.New("extractor: invalid link")
	ErrNoTitle     = errors.New("extractor: no title")
	ErrNoAudio     = errors.New("extractor: no audio file produced")
)

// Extractor resolves video links through yt-dlp.
type Extractor interface {
	// Title returns the video's display title without downloading anything.
	Title(ctx context.Context, link string) (string, error)
	// Audio downloads the best audio stream, transcodes it and returns the
	// local file path. The caller owns the file and must remove it.
	Audio(ctx context.Context, link string) (string, error)
	// Sweep removes audio files left behind by an earlier process.
	Sweep(ctx context.Context) (int, error)
}
