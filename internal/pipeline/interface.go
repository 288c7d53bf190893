package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

// Pipeline turns a video link into a persisted article owned by the caller.
type Pipeline interface {
	Generate(ctx context.Context, ownerID int64, link string) (*models.Article, error)
}

// Recorder receives per-stage timings and run outcomes.
type Recorder interface {
	ObserveStage(stage string, d time.Duration, err error)
	RecordGeneration(outcome string)
	PipelineStarted()
	PipelineFinished()
}
