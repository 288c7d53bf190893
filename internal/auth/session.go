package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/blogflow/internal/models"
	"github.com/nguyentantai21042004/blogflow/internal/store"
)

const issuer = "blogflow"

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for u valid for the configured TTL.
func (s *implService) IssueSession(u *models.User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := sessionClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expires, nil
}

func (s *implService) parseSession(token string) (sessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return claims, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.ID == "" {
		return claims, fmt.Errorf("%w: missing token id", ErrInvalidSession)
	}
	return claims, nil
}

// ResolveSession validates token and loads the user it was issued to.
// Tokens revoked by logout are rejected even before they expire.
func (s *implService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseSession(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.users.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}

	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrInvalidSession, id)
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return u, nil
}

// RevokeSession invalidates token until it would have expired anyway.
func (s *implService) RevokeSession(ctx context.Context, token string) error {
	claims, err := s.parseSession(token)
	if err != nil {
		return err
	}
	if err := s.users.RevokeSession(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.logger.Info(ctx, "Revoked session %s for user %s", claims.ID, claims.Subject)
	return nil
}
