package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	m := New()
	m.RecordGeneration("success")
	m.RecordGeneration("success")
	m.RecordGeneration("transcribe")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("transcribe")))
}

func TestInFlight(t *testing.T) {
	m := New()
	m.PipelineStarted()
	m.PipelineStarted()
	m.PipelineFinished()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveStage("title", 150*time.Millisecond, nil)
	m.ObserveStage("audio", time.Second, errors.New("boom"))
	m.RecordRequest("/generate", "POST", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `blogflow_stage_duration_seconds_count{stage="title",status="ok"} 1`)
	assert.Contains(t, string(body), `blogflow_stage_duration_seconds_count{stage="audio",status="error"} 1`)
	assert.Contains(t, string(body), `blogflow_http_requests_total{code="200",method="POST",route="/generate"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
