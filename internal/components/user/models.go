package user

import "github.com/google/uuid"

type (
	User struct {
		ID           uuid.UUID `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"` // Never serialize password hash
	}

	RegisterIn struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterOut struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
		Email    string    `json:"email"`
	}

	// LoginIn accepts either the username or the email in Identifier.
	LoginIn struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}

	LoginOut struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}

	LoginInfoOut struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
		Email    string    `json:"email"`
	}
)
