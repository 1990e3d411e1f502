package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnext/readnext/internal/shared/config"
)

func newTestIssuer(ttl time.Duration) *Issuer {
	return NewIssuer(&config.Config{
		SecretKey: "test-secret-key-at-least-32-bytes!!",
		TokenTTL:  ttl,
	})
}

func TestIssueValidateRoundtrip(t *testing.T) {
	issuer := newTestIssuer(30 * time.Minute)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, err := issuer.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestValidateExpired(t *testing.T) {
	issuer := newTestIssuer(-time.Minute)

	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := newTestIssuer(30 * time.Minute)
	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	other := NewIssuer(&config.Config{
		SecretKey: "another-secret-entirely-0123456789",
		TokenTTL:  30 * time.Minute,
	})

	_, err = other.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	issuer := newTestIssuer(30 * time.Minute)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestValidateMissingSubject(t *testing.T) {
	issuer := newTestIssuer(30 * time.Minute)

	tok, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
