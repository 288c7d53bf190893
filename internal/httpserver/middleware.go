package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

// requestLogger puts a request-scoped logger on the context and logs one line
// per request once it completes.
func (s *implServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ctx := logger.WithContext(r.Context(), l)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		if s.recorder != nil {
			s.recorder.RecordRequest(route, r.Method, status)
		}

		l.Info(ctx, "%s %s -> %d (%d bytes) in %s from %s",
			r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start).Round(time.Microsecond), r.RemoteAddr)
	})
}
