package favorite

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	repoer interface {
		Add(ctx context.Context, userID uuid.UUID, bookID string) error
		Remove(ctx context.Context, userID uuid.UUID, bookID string) (bool, error)
		IsFavorite(ctx context.Context, userID uuid.UUID, bookID string) (bool, error)
		List(ctx context.Context, userID uuid.UUID) ([]string, error)
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) repoer {
	return &repo{pool: pool}
}

// Add inserts the (user, book) pair. Re-adding an existing favorite is a
// no-op; the primary key enforces uniqueness.
func (r *repo) Add(ctx context.Context, userID uuid.UUID, bookID string) error {
	stmt := `
	INSERT INTO favorites (user_id, book_id)
	VALUES ($1, $2)
	ON CONFLICT (user_id, book_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, stmt, userID, bookID)
	return err
}

// Remove deletes the pair and reports whether a row actually went away.
func (r *repo) Remove(ctx context.Context, userID uuid.UUID, bookID string) (bool, error) {
	stmt := `DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`

	result, err := r.pool.Exec(ctx, stmt, userID, bookID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *repo) IsFavorite(ctx context.Context, userID uuid.UUID, bookID string) (bool, error) {
	stmt := `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, stmt, userID, bookID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns the user's book ids in insertion order.
func (r *repo) List(ctx context.Context, userID uuid.UUID) ([]string, error) {
	stmt := `
	SELECT book_id
	FROM favorites
	WHERE user_id = $1
	ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookIDs []string
	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, err
		}
		bookIDs = append(bookIDs, bookID)
	}
	return bookIDs, rows.Err()
}
