package auth

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type implService struct {
	users  store.AccountStore
	secret []byte
	ttl    time.Duration
	cost   int
	logger logger.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummy     []byte
}

// Options configures New. Cost defaults to bcrypt.DefaultCost.
type Options struct {
	Secret string
	TTL    time.Duration
	Cost   int
}

// New creates a Service backed by users.
func New(users store.AccountStore, opts Options, log logger.Logger) Service {
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &implService{
		users:  users,
		secret: []byte(opts.Secret),
		ttl:    opts.TTL,
		cost:   cost,
		logger: log,
		now:    time.Now,
	}
}
