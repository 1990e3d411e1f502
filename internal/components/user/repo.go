package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrConflict means the username or email is already taken.
	ErrConflict = errors.New("username or email already exists")
	ErrNotFound = errors.New("user not found")
)

type (
	repoer interface {
		Create(ctx context.Context, username, email, passwordHash string) (*User, error)
		FindByIdentifier(ctx context.Context, identifier string) (*User, error)
		FindByUsername(ctx context.Context, username string) (*User, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

func (r *repo) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	u := new(User)

	stmt := `
	INSERT INTO users (
		username, email, password_hash
	)
	VALUES (
		$1, $2, $3
	)
	RETURNING id, username, email, password_hash`

	err := r.pool.QueryRow(
		ctx,
		stmt,
		username,
		email,
		passwordHash,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}
	return u, nil
}

// FindByIdentifier looks up a user whose username or email equals the
// identifier. The match is exact and case-sensitive; no normalization is
// applied on either side.
func (r *repo) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	stmt := `
	SELECT id, username, email, password_hash
	FROM users
	WHERE username = $1 OR email = $1`

	return r.scanOne(ctx, stmt, identifier)
}

func (r *repo) FindByUsername(ctx context.Context, username string) (*User, error) {
	stmt := `
	SELECT id, username, email, password_hash
	FROM users
	WHERE username = $1`

	return r.scanOne(ctx, stmt, username)
}

func (r *repo) scanOne(ctx context.Context, stmt string, arg string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, stmt, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
