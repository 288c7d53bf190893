package extractor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/pkg/executor"
)

type implExtractor struct {
	cfg      config.YtDlpConfig
	audioDir string
	executor executor.Executor
	logger   logger.Logger
	newID    func() string
}

// New creates an Extractor writing audio under <mediaRoot>/audio.
func New(cfg config.YtDlpConfig, mediaRoot string, exec executor.Executor, log logger.Logger) (Extractor, error) {
	audioDir := filepath.Join(mediaRoot, "audio")
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}

	return &implExtractor{
		cfg:      cfg,
		audioDir: audioDir,
		executor: exec,
		logger:   log,
		newID:    newID,
	}, nil
}
