package transcriber

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

type whisper struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func newWhisper(cfg config.WhisperConfig, log logger.Logger) *whisper {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &whisper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: log,
	}
}

// Transcribe sends the file to the Whisper transcription endpoint.
func (w *whisper) Transcribe(ctx context.Context, audioPath string) (string, error) {
	w.logger.Info(ctx, "Starting Whisper transcription (%s): %s", w.model, audioPath)

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
	})
	if err != nil {
		w.logger.Error(ctx, "Error during transcription: %v", err)
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyTranscript
	}

	w.logger.Info(ctx, "Transcription completed (%d chars)", len(text))
	return text, nil
}
