package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/blogflow/internal/models"
	"github.com/nguyentantai21042004/blogflow/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func (s *implService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if in.Password != in.RepeatPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "New account created: %s (id=%d)", u.Username, u.ID)
	return u, nil
}

func (s *implService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug(ctx, "Failed login for %s", u.Username)
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// dummyHash is compared against for unknown usernames so Login costs the same
// whether or not the account exists. It uses the service's own bcrypt cost.
func (s *implService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("blogflow-dummy-password"), s.cost)
	})
	return s.dummy
}
