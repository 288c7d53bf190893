package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

// Generate runs title, audio, transcription and synthesis strictly in order
// and persists the article only when every stage succeeded. The downloaded
// audio is removed on every path.
func (p *implPipeline) Generate(ctx context.Context, ownerID int64, link string) (*models.Article, error) {
	link = strings.TrimSpace(link)

	if err := p.slots.take(ctx); err != nil {
		return nil, fmt.Errorf("wait for pipeline slot: %w", err)
	}
	defer p.slots.give()

	p.recorder.PipelineStarted()
	defer p.recorder.PipelineFinished()

	startTime := time.Now()
	p.logger.Info(ctx, "Starting blog generation for user %d: %s", ownerID, link)

	article, err := p.run(ctx, ownerID, link)
	if err != nil {
		outcome := "error"
		var ue *UpstreamError
		if errors.As(err, &ue) {
			outcome = string(ue.Stage)
		}
		p.recorder.RecordGeneration(outcome)
		p.logger.Error(ctx, "Blog generation failed after %s: %v", time.Since(startTime).Round(time.Millisecond), err)
		return nil, err
	}

	p.recorder.RecordGeneration("success")
	p.logger.Info(ctx, "Blog generation completed: article %d %q in %s",
		article.ID, article.SourceVideoTitle, time.Since(startTime).Round(time.Millisecond))
	return article, nil
}

func (p *implPipeline) run(ctx context.Context, ownerID int64, link string) (*models.Article, error) {
	// Step 1: Title
	var title string
	if err := p.stage(StageTitle, func() (err error) {
		title, err = p.extractor.Title(ctx, link)
		return err
	}); err != nil {
		return nil, err
	}

	// Step 2: Audio
	var audioPath string
	err := p.stage(StageAudio, func() (err error) {
		audioPath, err = p.extractor.Audio(ctx, link)
		return err
	})
	defer p.cleanupTempFile(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	// Step 3: Transcribe
	var transcript string
	if err := p.stage(StageTranscribe, func() (err error) {
		transcript, err = p.transcriber.Transcribe(ctx, audioPath)
		return err
	}); err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Transcript length: %d chars", len(transcript))

	// Step 4: Synthesize
	var content string
	if err := p.stage(StageSynthesize, func() (err error) {
		content, err = p.synthesizer.Synthesize(ctx, transcript)
		return err
	}); err != nil {
		return nil, err
	}

	// Step 5: Persist
	article := &models.Article{
		OwnerID:          ownerID,
		SourceVideoTitle: title,
		SourceVideoLink:  link,
		GeneratedContent: content,
		CreatedAt:        p.now().UTC(),
	}
	if err := p.stage(StagePersist, func() error {
		return p.articles.CreateArticle(ctx, article)
	}); err != nil {
		return nil, err
	}

	return article, nil
}

// stage times fn and tags its error with the stage name.
func (p *implPipeline) stage(stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	p.recorder.ObserveStage(string(stage), time.Since(start), err)
	if err != nil {
		return &UpstreamError{Stage: stage, Err: err}
	}
	return nil
}
