package httpserver

import (
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/blogflow/internal/auth"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
)

var signupMessages = map[error]string{
	auth.ErrMissingFields:    "Username and password are required",
	auth.ErrPasswordMismatch: "Passwords do not match",
	auth.ErrDuplicateAccount: "Username already exists",
}

func (s *implServer) loginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageLogin, pageData{})
}

func (s *implServer) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, pageLogin, pageData{Error: "Invalid form submission"})
		return
	}
	username := r.PostForm.Get("username")

	user, err := s.auth.Login(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logger.FromContext(r.Context(), s.logger).Error(r.Context(), "login %q: %v", username, err)
		}
		s.renderPage(w, r, http.StatusOK, pageLogin, pageData{
			Error: "Invalid credentials",
			Form:  map[string]string{"username": username},
		})
		return
	}

	if err := s.startSession(w, user); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "issue session for %d: %v", user.ID, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *implServer) signupPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageSignup, pageData{})
}

func (s *implServer) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, pageSignup, pageData{Error: "Invalid form submission"})
		return
	}
	in := auth.SignupInput{
		Username:       r.PostForm.Get("username"),
		Email:          r.PostForm.Get("email"),
		Password:       r.PostForm.Get("password"),
		RepeatPassword: r.PostForm.Get("repeatPassword"),
	}
	form := map[string]string{"username": in.Username, "email": in.Email}

	user, err := s.auth.Signup(r.Context(), in)
	if err != nil {
		for target, msg := range signupMessages {
			if errors.Is(err, target) {
				s.renderPage(w, r, http.StatusOK, pageSignup, pageData{Error: msg, Form: form})
				return
			}
		}
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "signup %q: %v", in.Username, err)
		s.renderPage(w, r, http.StatusOK, pageSignup, pageData{Error: "Error creating account", Form: form})
		return
	}

	if err := s.startSession(w, user); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "issue session for %d: %v", user.ID, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// logout revokes the session token server-side before clearing the cookie, so a
// copied cookie stops working too.
func (s *implServer) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(s.opts.CookieName); err == nil && c.Value != "" {
		if err := s.auth.RevokeSession(r.Context(), c.Value); err != nil && !errors.Is(err, auth.ErrInvalidSession) {
			logger.FromContext(r.Context(), s.logger).Warn(r.Context(), "Failed to revoke session: %v", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
