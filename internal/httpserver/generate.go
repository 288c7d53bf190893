package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/pipeline"
)

// generate runs the pipeline for the posted link. Upstream error details are
// logged and never returned to the client.
func (s *implServer) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.renderError(w, r, ErrMethodNotAllowed)
		return
	}

	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		s.renderError(w, r, ErrInvalidJSON(err))
		return
	}

	link := strings.TrimSpace(req.Link)
	if link == "" {
		s.renderError(w, r, ErrMissingLink)
		return
	}

	user := userFromContext(r.Context())
	article, err := s.pipeline.Generate(r.Context(), user.ID, link)
	if err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "Generate for user %d failed: %v", user.ID, err)
		s.renderError(w, r, generateError(err))
		return
	}

	if err := render.Render(w, r, &GenerateResponse{
		ID:      article.ID,
		Title:   article.SourceVideoTitle,
		Content: article.GeneratedContent,
	}); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "render generate response: %v", err)
	}
}

// decodeGenerateRequest accepts a body holding exactly one JSON value.
func decodeGenerateRequest(body io.Reader) (GenerateRequest, error) {
	var req GenerateRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return req, err
	}
	return req, nil
}

func generateError(err error) *ErrResponse {
	var ue *pipeline.UpstreamError
	if !errors.As(err, &ue) {
		return ErrGenerate(err)
	}
	switch ue.Stage {
	case pipeline.StageTitle:
		return ErrTitle(err)
	case pipeline.StageAudio, pipeline.StageTranscribe:
		return ErrTranscribe(err)
	case pipeline.StagePersist:
		return ErrSave(err)
	default:
		return ErrGenerate(err)
	}
}
