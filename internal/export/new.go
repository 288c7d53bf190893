package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

type implExporter struct {
	scratchDir string
	logger     logger.Logger
}

// New creates an Exporter that builds documents under <mediaRoot>/export.
func New(mediaRoot string, log logger.Logger) (Exporter, error) {
	dir := filepath.Join(mediaRoot, "export")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &implExporter{scratchDir: dir, logger: log}, nil
}

func (e *implExporter) scratchPath() string {
	return filepath.Join(e.scratchDir, uuid.NewString()+".docx")
}
