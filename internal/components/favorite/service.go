package favorite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/readnext/readnext/internal/components/user"
	"github.com/readnext/readnext/internal/shared/config"
	"github.com/readnext/readnext/internal/shared/vector"
)

var ErrNotFound = errors.New("favorite not found")

type (
	// bookResolver is the slice of the vector collaborator needed here.
	bookResolver interface {
		GetByID(ctx context.Context, id string) (*vector.Book, error)
	}

	servicer interface {
		Add(ctx context.Context, username, bookID string) error
		Remove(ctx context.Context, username, bookID string) error
		IsFavorite(ctx context.Context, username, bookID string) (bool, error)
		List(ctx context.Context, username string) ([]vector.Book, error)
	}

	service struct {
		repo        repoer
		users       user.Servicer
		books       bookResolver
		bookTimeout time.Duration
	}
)

func NewService(repo repoer, users user.Servicer, books *vector.Client, cfg *config.Config) servicer {
	return &service{
		repo:        repo,
		users:       users,
		books:       books,
		bookTimeout: cfg.ExternalTimeout,
	}
}

func (s *service) userID(ctx context.Context, username string) (uuid.UUID, error) {
	u, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

func (s *service) Add(ctx context.Context, username, bookID string) error {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, bookID)
}

// Remove reports ErrNotFound when there was nothing to delete.
func (s *service) Remove(ctx context.Context, username, bookID string) error {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Remove(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *service) IsFavorite(ctx context.Context, username, bookID string) (bool, error) {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return false, err
	}
	return s.repo.IsFavorite(ctx, userID, bookID)
}

// List resolves the stored book ids against the vector store, preserving
// insertion order. Ids with no matching record are dropped silently; a book
// gone from the corpus simply vanishes from the list.
func (s *service) List(ctx context.Context, username string) ([]vector.Book, error) {
	userID, err := s.userID(ctx, username)
	if err != nil {
		return nil, err
	}

	bookIDs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	books := make([]vector.Book, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		book, err := s.lookup(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			continue
		}
		books = append(books, *book)
	}
	return books, nil
}

func (s *service) lookup(ctx context.Context, bookID string) (*vector.Book, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.bookTimeout)
	defer cancel()
	return s.books.GetByID(lookupCtx, bookID)
}
