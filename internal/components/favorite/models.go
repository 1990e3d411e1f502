package favorite

import (
	"time"

	"github.com/google/uuid"

	"github.com/readnext/readnext/internal/shared/vector"
)

type (
	Favorite struct {
		UserID    uuid.UUID `json:"user_id"`
		BookID    string    `json:"book_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	AddFavoriteIn struct {
		BookID string `json:"book_id"`
	}

	AddFavoriteOut struct {
		BookID string `json:"book_id"`
	}

	StatusOut struct {
		BookID   string `json:"book_id"`
		Favorite bool   `json:"favorite"`
	}

	// ListOut carries the favorites resolved to display records. Ids that
	// no longer exist in the vector store are absent.
	ListOut struct {
		Results []vector.Book `json:"results"`
	}
)
