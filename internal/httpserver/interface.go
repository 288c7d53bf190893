package httpserver

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// Server holds the HTTP surface of blogflow.
type Server interface {
	// Router returns the fully mounted router.
	Router() chi.Router
	// ReloadTemplates re-parses the page templates. Its signature matches
	// watcher.EventHandler.
	ReloadTemplates(ctx context.Context, changed string) error
}

// RequestRecorder counts handled requests by route pattern.
type RequestRecorder interface {
	RecordRequest(route, method string, code int)
}
