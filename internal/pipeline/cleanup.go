package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// cleanupTempFile removes a temporary file, logging instead of failing.
func (p *implPipeline) cleanupTempFile(ctx context.Context, filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
		return
	}
	p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
}
