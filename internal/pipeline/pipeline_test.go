package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	dir      string
	title    string
	titleErr error
	audioErr error
	// writeOnErr leaves a file behind even when audioErr is set.
	writeOnErr bool
	audioPath  string
	block      chan struct{}
}

func (f *fakeExtractor) Title(ctx context.Context, link string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	return f.title, f.titleErr
}

func (f *fakeExtractor) Audio(ctx context.Context, link string) (string, error) {
	f.audioPath = filepath.Join(f.dir, "audio.mp3")
	if f.audioErr == nil || f.writeOnErr {
		if err := os.WriteFile(f.audioPath, []byte("ID3"), 0644); err != nil {
			return "", err
		}
	}
	if f.audioErr != nil {
		if f.writeOnErr {
			return f.audioPath, f.audioErr
		}
		return "", f.audioErr
	}
	return f.audioPath, nil
}

func (f *fakeExtractor) Sweep(ctx context.Context) (int, error) { return 0, nil }

type fakeTranscriber struct {
	text string
	err  error
	path string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.path = audioPath
	return f.text, f.err
}

type fakeSynthesizer struct {
	out        string
	err        error
	transcript string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, transcript string) (string, error) {
	f.transcript = transcript
	return f.out, f.err
}

type fakeArticles struct {
	mu      sync.Mutex
	created []*models.Article
	err     error
}

func (f *fakeArticles) CreateArticle(ctx context.Context, a *models.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, a)
	return nil
}

func (f *fakeArticles) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeArticles) ListArticlesByOwner(ctx context.Context, ownerID int64) ([]*models.Article, error) {
	return nil, errors.New("not implemented")
}

type fakeRecorder struct {
	mu       sync.Mutex
	stages   []string
	outcomes []string
}

func (r *fakeRecorder) ObserveStage(stage string, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *fakeRecorder) RecordGeneration(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *fakeRecorder) PipelineStarted() {}
func (r *fakeRecorder) PipelineFinished() {}

type fixture struct {
	extractor   *fakeExtractor
	transcriber *fakeTranscriber
	synthesizer *fakeSynthesizer
	articles    *fakeArticles
	recorder    *fakeRecorder
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		extractor:   &fakeExtractor{dir: t.TempDir(), title: "Go Concurrency"},
		transcriber: &fakeTranscriber{text: "today we talk about channels"},
		synthesizer: &fakeSynthesizer{out: "# Channels\n\nA post."},
		articles:    &fakeArticles{},
		recorder:    &fakeRecorder{},
	}
}

func (f *fixture) pipeline(maxConcurrent int) Pipeline {
	return New(Deps{
		Extractor:   f.extractor,
		Transcriber: f.transcriber,
		Synthesizer: f.synthesizer,
		Articles:    f.articles,
		Recorder:    f.recorder,
	}, maxConcurrent, logger.NewNop())
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	p := f.pipeline(0)

	article, err := p.Generate(context.Background(), 42, "  https://youtu.be/abc ")
	require.NoError(t, err)

	assert.Equal(t, int64(42), article.OwnerID)
	assert.Equal(t, "Go Concurrency", article.SourceVideoTitle)
	assert.Equal(t, "https://youtu.be/abc", article.SourceVideoLink)
	assert.Equal(t, "# Channels\n\nA post.", article.GeneratedContent)
	assert.False(t, article.CreatedAt.IsZero())

	assert.Equal(t, f.extractor.audioPath, f.transcriber.path)
	assert.Equal(t, "today we talk about channels", f.synthesizer.transcript)
	require.Len(t, f.articles.created, 1)
	assert.Same(t, article, f.articles.created[0])

	assert.NoFileExists(t, f.extractor.audioPath)
	assert.Equal(t, []string{"title", "audio", "transcribe", "synthesize", "persist"}, f.recorder.stages)
	assert.Equal(t, []string{"success"}, f.recorder.outcomes)
}

func TestGenerateNotIdempotent(t *testing.T) {
	f := newFixture(t)
	p := f.pipeline(0)

	for i := 0; i < 2; i++ {
		_, err := p.Generate(context.Background(), 1, "https://youtu.be/abc")
		require.NoError(t, err)
	}
	assert.Len(t, f.articles.created, 2)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *fixture)
		wantStage Stage
	}{
		{
			name:      "title",
			mutate:    func(f *fixture) { f.extractor.titleErr = errors.New("private video") },
			wantStage: StageTitle,
		},
		{
			name:      "audio",
			mutate:    func(f *fixture) { f.extractor.audioErr = errors.New("ffmpeg missing") },
			wantStage: StageAudio,
		},
		{
			name: "audio with leftover file",
			mutate: func(f *fixture) {
				f.extractor.audioErr = errors.New("interrupted")
				f.extractor.writeOnErr = true
			},
			wantStage: StageAudio,
		},
		{
			name:      "transcribe",
			mutate:    func(f *fixture) { f.transcriber.err = errors.New("provider timeout") },
			wantStage: StageTranscribe,
		},
		{
			name:      "synthesize",
			mutate:    func(f *fixture) { f.synthesizer.err = errors.New("quota") },
			wantStage: StageSynthesize,
		},
		{
			name:      "persist",
			mutate:    func(f *fixture) { f.articles.err = errors.New("disk full") },
			wantStage: StagePersist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)

			article, err := f.pipeline(0).Generate(context.Background(), 1, "https://youtu.be/abc")
			require.Error(t, err)
			assert.Nil(t, article)

			var ue *UpstreamError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.wantStage, ue.Stage)

			assert.Empty(t, f.articles.created, "nothing persisted on failure")
			if f.extractor.audioPath != "" {
				assert.NoFileExists(t, f.extractor.audioPath)
			}
			assert.Equal(t, []string{string(tt.wantStage)}, f.recorder.outcomes)
		})
	}
}

func TestGenerateStopsAfterFailure(t *testing.T) {
	f := newFixture(t)
	f.extractor.titleErr = errors.New("bad link")

	_, err := f.pipeline(0).Generate(context.Background(), 1, "https://youtu.be/abc")
	require.Error(t, err)

	assert.Empty(t, f.extractor.audioPath, "audio not fetched")
	assert.Empty(t, f.transcriber.path)
	assert.Empty(t, f.synthesizer.transcript)
}

func TestGenerateConcurrencyLimit(t *testing.T) {
	f := newFixture(t)
	f.extractor.block = make(chan struct{})
	p := f.pipeline(1)

	var running atomic.Int32
	first := make(chan error, 1)
	go func() {
		running.Add(1)
		_, err := p.Generate(context.Background(), 1, "https://youtu.be/one")
		first <- err
	}()

	// Wait until the first run holds the only slot.
	require.Eventually(t, func() bool { return running.Load() == 1 && len(p.(*implPipeline).slots.ch) == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Generate(ctx, 1, "https://youtu.be/two")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(f.extractor.block)
	require.NoError(t, <-first)
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("boom")
	err := &UpstreamError{Stage: StageTranscribe, Err: cause}
	assert.Equal(t, "transcribe: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
