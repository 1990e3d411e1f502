package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/readnext/readnext/internal/shared/config"
	"github.com/readnext/readnext/internal/shared/token"
)

// fakeRepo implements repoer backed by a map keyed on username.
type fakeRepo struct {
	users     map[string]*User
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) Create(_ context.Context, username, email, passwordHash string) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, ErrConflict
		}
	}
	u := &User{ID: uuid.New(), Username: username, Email: email, PasswordHash: passwordHash}
	f.users[username] = u
	return u, nil
}

func (f *fakeRepo) FindByIdentifier(_ context.Context, identifier string) (*User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func newTestService(repo repoer) Servicer {
	issuer := token.NewIssuer(&config.Config{
		SecretKey: "test-secret-key-at-least-32-bytes!!",
		TokenTTL:  30 * time.Minute,
	})
	return NewService(repo, issuer)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), RegisterIn{
		Username: "alice", Email: "a@x.com", Password: "pw123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "pw123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("wrong")))
}

func TestRegisterConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterIn{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterIn{Username: "alice", Email: "other@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, RegisterIn{Username: "bob", Email: "a@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterIn{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by username", identifier: "alice", password: "pw123"},
		{name: "by email", identifier: "a@x.com", password: "pw123"},
		{name: "wrong password", identifier: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown identifier", identifier: "carol", password: "pw123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := svc.Login(ctx, LoginIn{Identifier: tt.identifier, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tok)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tok)
		})
	}
}
