package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// Audio downloads the best audio stream and lets yt-dlp's ffmpeg
// postprocessor transcode it to the configured codec and bitrate.
// The file is named by a fresh UUID.
func (e *implExtractor) Audio(ctx context.Context, link string) (string, error) {
	if err := validateLink(link); err != nil {
		return "", err
	}

	id := e.newID()
	audioPath := filepath.Join(e.audioDir, id+"."+e.cfg.AudioFormat)

	e.logger.Info(ctx, "Downloading audio: %s -> %s", link, audioPath)

	args := []string{
		"-f", e.cfg.Format,
		"--extract-audio",
		"--audio-format", e.cfg.AudioFormat,
		"--audio-quality", e.cfg.AudioQuality,
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-o", id + ".%(ext)s",
		"--", link,
	}

	if _, err := e.executor.ExecuteInDir(ctx, e.audioDir, e.cfg.BinaryPath, args...); err != nil {
		e.removePartial(ctx, id)
		e.logger.Error(ctx, "Error downloading audio for %s: %v", link, err)
		return "", fmt.Errorf("yt-dlp audio: %w", err)
	}

	if _, err := os.Stat(audioPath); err != nil {
		e.removePartial(ctx, id)
		e.logger.Error(ctx, "Audio file not found at: %s", audioPath)
		return "", fmt.Errorf("%w: %s", ErrNoAudio, audioPath)
	}

	e.logger.Info(ctx, "Audio downloaded successfully: %s", audioPath)
	return audioPath, nil
}

// removePartial deletes whatever yt-dlp left behind for id (.part, .webm, ...).
func (e *implExtractor) removePartial(ctx context.Context, id string) {
	matches, err := filepath.Glob(filepath.Join(e.audioDir, id+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			e.logger.Warn(ctx, "Failed to remove partial download %s: %v", m, err)
		}
	}
}

func (e *implExtractor) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(e.audioDir)
	if err != nil {
		return 0, fmt.Errorf("read audio dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(e.audioDir, entry.Name())
		if err := os.Remove(path); err != nil {
			e.logger.Warn(ctx, "Failed to sweep %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		e.logger.Info(ctx, "Swept %d leftover audio files from %s", removed, e.audioDir)
	}
	return removed, nil
}
