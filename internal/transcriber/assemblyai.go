package transcriber

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

type assemblyAI struct {
	transcribe func(ctx context.Context, r io.Reader) (aai.Transcript, error)
	logger     logger.Logger
}

func newAssemblyAI(cfg config.AssemblyAIConfig, log logger.Logger) *assemblyAI {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	client := aai.NewClientWithOptions(opts...)

	return &assemblyAI{
		transcribe: func(ctx context.Context, r io.Reader) (aai.Transcript, error) {
			return client.Transcripts.TranscribeFromReader(ctx, r, nil)
		},
		logger: log,
	}
}

// Transcribe uploads the file and waits for AssemblyAI to finish.
func (a *assemblyAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	start := time.Now()
	a.logger.Info(ctx, "Starting AssemblyAI transcription: %s", audioPath)

	transcript, err := a.transcribe(ctx, f)
	if err != nil {
		a.logger.Error(ctx, "Error during transcription: %v", err)
		return "", fmt.Errorf("assemblyai transcribe: %w", err)
	}

	text, err := transcriptText(transcript)
	if err != nil {
		a.logger.Error(ctx, "AssemblyAI returned no usable transcript: %v", err)
		return "", err
	}

	a.logger.Info(ctx, "Transcription completed in %s (%d chars)", time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}

func transcriptText(t aai.Transcript) (string, error) {
	if t.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("assemblyai transcript failed: %s", aai.ToString(t.Error))
	}
	text := strings.TrimSpace(aai.ToString(t.Text))
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
