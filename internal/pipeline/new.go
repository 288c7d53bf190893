package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/extractor"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/store"
	"github.com/nguyentantai21042004/blogflow/internal/synthesizer"
	"github.com/nguyentantai21042004/blogflow/internal/transcriber"
)

// Deps are the collaborators a pipeline run calls in order.
type Deps struct {
	Extractor   extractor.Extractor
	Transcriber transcriber.Transcriber
	Synthesizer synthesizer.Synthesizer
	Articles    store.ArticleStore
	// Recorder is optional.
	Recorder Recorder
}

type implPipeline struct {
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	synthesizer synthesizer.Synthesizer
	articles    store.ArticleStore
	recorder    Recorder
	slots       *runSlots
	logger      logger.Logger
	now         func() time.Time
}

// New creates a Pipeline. maxConcurrent > 0 bounds how many runs execute at
// once; further callers wait for a slot.
func New(deps Deps, maxConcurrent int, log logger.Logger) Pipeline {
	p := &implPipeline{
		extractor:   deps.Extractor,
		transcriber: deps.Transcriber,
		synthesizer: deps.Synthesizer,
		articles:    deps.Articles,
		recorder:    deps.Recorder,
		logger:      log,
		now:         time.Now,
		slots:       newRunSlots(maxConcurrent),
	}
	if p.recorder == nil {
		p.recorder = nopRecorder{}
	}
	return p
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Duration, error) {}
func (nopRecorder) RecordGeneration(string) {}
func (nopRecorder) PipelineStarted() {}
func (nopRecorder) PipelineFinished() {}
