package store

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

var (
	ErrNotFound          = errors.New("store: not found")
	ErrDuplicateUsername = errors.New("store: username already exists")
)

// ArticleStore persists generated articles. There is no update or delete.
type ArticleStore interface {
	CreateArticle(ctx context.Context, a *models.Article) error
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	ListArticlesByOwner(ctx context.Context, ownerID int64) ([]*models.Article, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionStore remembers session ids revoked before their expiry.
type SessionStore interface {
	RevokeSession(ctx context.Context, id string, expires time.Time) error
	IsSessionRevoked(ctx context.Context, id string) (bool, error)
}

// AccountStore is what authentication needs.
type AccountStore interface {
	UserStore
	SessionStore
}

// Store is the sqlite-backed implementation of every store.
type Store interface {
	ArticleStore
	AccountStore
	Close() error
}
