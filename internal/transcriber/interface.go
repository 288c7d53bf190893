package transcriber

import (
	"context"
	"errors"
)

var ErrEmptyTranscript = errors.New("transcriber: empty transcript")

// Transcriber turns a local audio file into plain text. Every call is a
// single attempt; long audio is sent as-is.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
