package httpserver

import (
	"net/http"

	"github.com/go-chi/render"
)

// GenerateRequest is the JSON body of POST /generate.
type GenerateRequest struct {
	Link string `json:"link"`
}

// GenerateResponse is returned after an article was persisted.
type GenerateResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (g *GenerateResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// ErrResponse is the JSON error body. Only ErrorText reaches the client.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	ErrorText string `json:"error"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

var (
	ErrUnauthorized     = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, ErrorText: "Authentication required"}
	ErrMethodNotAllowed = &ErrResponse{HTTPStatusCode: http.StatusMethodNotAllowed, ErrorText: "Invalid request method"}
	ErrMissingLink      = &ErrResponse{HTTPStatusCode: http.StatusBadRequest, ErrorText: "Missing video link"}
)

func ErrInvalidJSON(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, ErrorText: "Invalid JSON data"}
}

func ErrTitle(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, ErrorText: "Unable to fetch video title. Please check the link."}
}

func ErrTranscribe(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, ErrorText: "Failed to transcribe video"}
}

func ErrGenerate(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, ErrorText: "Failed to generate blog"}
}

func ErrSave(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, ErrorText: "Failed to save blog"}
}
