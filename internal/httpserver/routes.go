package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func (s *implServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.loadSession)

	r.Get("/healthz", s.healthz)

	r.Get("/login", s.loginPage)
	r.Post("/login", s.login)
	r.Get("/signup", s.signupPage)
	r.Post("/signup", s.signup)
	r.Get("/logout", s.logout)
	r.Post("/logout", s.logout)

	// Method is checked by the handler so anonymous callers always get 401.
	r.With(render.SetContentType(render.ContentTypeJSON), s.requireAPISession).HandleFunc("/generate", s.generate)

	r.Group(func(r chi.Router) {
		r.Use(s.requirePageSession)

		r.Get("/", s.index)
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", s.listBlogs)
			r.Route("/{articleID}", func(r chi.Router) {
				r.Use(s.articleCtx)
				r.Get("/", s.blogDetails)
				r.Get("/docx", s.blogDocx)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
