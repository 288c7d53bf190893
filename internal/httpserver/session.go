package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/models"
)

type ctxKey int8

const (
	ctxKeyUser ctxKey = iota
	ctxKeyArticle
)

func userFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxKeyUser).(*models.User)
	return u
}

// loadSession attaches the session user, if any, to the request context. A
// cookie that no longer resolves is cleared.
func (s *implServer) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(s.opts.CookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := s.auth.ResolveSession(r.Context(), c.Value)
		if err != nil {
			logger.FromContext(r.Context(), s.logger).Debug(r.Context(), "Dropping session cookie: %v", err)
			s.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser, u)))
	})
}

// requirePageSession sends anonymous visitors to the login page.
func (s *implServer) requirePageSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPISession answers anonymous JSON callers with 401.
func (s *implServer) requireAPISession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFromContext(r.Context()) == nil {
			s.renderError(w, r, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *implServer) startSession(w http.ResponseWriter, u *models.User) error {
	token, expires, err := s.auth.IssueSession(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *implServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *implServer) renderError(w http.ResponseWriter, r *http.Request, e *ErrResponse) {
	if err := render.Render(w, r, e); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "render error response: %v", err)
	}
}
