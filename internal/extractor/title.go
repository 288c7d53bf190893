package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Title asks yt-dlp for the video's metadata only.
func (e *implExtractor) Title(ctx context.Context, link string) (string, error) {
	if err := validateLink(link); err != nil {
		return "", err
	}

	args := []string{
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--print", "title",
		"--", link,
	}

	out, err := e.executor.Execute(ctx, e.cfg.BinaryPath, args...)
	if err != nil {
		e.logger.Error(ctx, "Error fetching video title for %s: %v", link, err)
		return "", fmt.Errorf("yt-dlp title: %w", err)
	}

	title := firstLine(out)
	if title == "" {
		e.logger.Warn(ctx, "yt-dlp returned no title for %s", link)
		return "", ErrNoTitle
	}

	e.logger.Debug(ctx, "Resolved title %q for %s", title, link)
	return title, nil
}

// validateLink only accepts absolute http(s) URLs so nothing reaches yt-dlp
// that it could read as a local path or an option.
func validateLink(link string) error {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLink, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidLink)
	}
	return nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
