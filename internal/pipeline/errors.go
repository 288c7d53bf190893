package pipeline

import "fmt"

// Stage names a step of the generation pipeline.
type Stage string

const (
	StageTitle      Stage = "title"
	StageAudio      Stage = "audio"
	StageTranscribe Stage = "transcribe"
	StageSynthesize Stage = "synthesize"
	StagePersist    Stage = "persist"
)

// UpstreamError reports which stage aborted a run.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
