package auth

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) (*implService, store.Store) {
	t.Helper()
	st, err := store.New(context.Background(), filepath.Join(t.TempDir(), "auth.sqlite3"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := New(st, Options{Secret: testSecret, TTL: time.Hour, Cost: bcrypt.MinCost}, logger.NewNop())
	return svc.(*implService), st
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name    string
		in      SignupInput
		wantErr error
	}{
		{
			name: "valid",
			in:   SignupInput{Username: "alice", Email: "a@example.com", Password: "pw", RepeatPassword: "pw"},
		},
		{
			name:    "password mismatch",
			in:      SignupInput{Username: "bob", Password: "pw", RepeatPassword: "other"},
			wantErr: ErrPasswordMismatch,
		},
		{
			name:    "blank username",
			in:      SignupInput{Username: "  ", Password: "pw", RepeatPassword: "pw"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "blank password",
			in:      SignupInput{Username: "carol"},
			wantErr: ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t)
			u, err := svc.Signup(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				_, lookupErr := st.GetUserByUsername(context.Background(), tt.in.Username)
				assert.ErrorIs(t, lookupErr, store.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, u.ID)
			assert.NotEqual(t, tt.in.Password, u.PasswordHash)
		})
	}
}

func TestSignupDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "alice", Password: "pw2", RepeatPassword: "pw2"})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// the original account is untouched
	u, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, first.ID, u.ID)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "secret", RepeatPassword: "secret"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)

	token, expires, err := svc.IssueSession(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	got, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestResolveSessionRejects(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ResolveSession(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := svc.IssueSession(u)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := New(nil, Options{Secret: "another-secret-value-entirely", TTL: time.Hour}, logger.NewNop())
		token, _, err := other.IssueSession(u)
		require.NoError(t, err)

		_, err = svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("unknown user", func(t *testing.T) {
		claims := sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   "4242",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				ID:        "unknown-user",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("missing token id", func(t *testing.T) {
		claims := sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				Subject:   strconv.FormatInt(u.ID, 10),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestRevokeSession(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "pw", RepeatPassword: "pw"})
	require.NoError(t, err)

	revoked, _, err := svc.IssueSession(u)
	require.NoError(t, err)
	kept, _, err := svc.IssueSession(u)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeSession(ctx, revoked))

	_, err = svc.ResolveSession(ctx, revoked)
	assert.ErrorIs(t, err, ErrInvalidSession)

	got, err := svc.ResolveSession(ctx, kept)
	require.NoError(t, err, "other sessions of the same user stay valid")
	assert.Equal(t, u.ID, got.ID)

	claims, err := svc.parseSession(revoked)
	require.NoError(t, err)
	isRevoked, err := st.IsSessionRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	assert.ErrorIs(t, svc.RevokeSession(ctx, "not-a-token"), ErrInvalidSession)
}

func TestDummyHashCost(t *testing.T) {
	svc, _ := newTestService(t)

	cost, err := bcrypt.Cost(svc.dummyHash())
	require.NoError(t, err)
	assert.Equal(t, svc.cost, cost)

	def := New(nil, Options{Secret: testSecret, TTL: time.Hour}, logger.NewNop()).(*implService)
	assert.Equal(t, bcrypt.DefaultCost, def.cost)
}
