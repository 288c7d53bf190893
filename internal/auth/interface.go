package auth

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordMismatch   = errors.New("auth: passwords do not match")
	ErrDuplicateAccount   = errors.New("auth: username already exists")
	ErrMissingFields      = errors.New("auth: username and password are required")
	ErrInvalidSession     = errors.New("auth: invalid session")
)

// SignupInput mirrors the signup form.
type SignupInput struct {
	Username       string
	Email          string
	Password       string
	RepeatPassword string
}

// Service authenticates users and issues session tokens.
type Service interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	IssueSession(u *models.User) (token string, expires time.Time, err error)
	ResolveSession(ctx context.Context, token string) (*models.User, error)
	RevokeSession(ctx context.Context, token string) error
}
