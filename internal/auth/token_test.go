package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", 30*time.Minute)

	raw, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	subject, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("test-secret", 30*time.Minute)

	raw, err := tokens.IssueWithTTL("alice@example.com", -1*time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	issuer := NewTokens("secret-a", 30*time.Minute)
	verifier := NewTokens("secret-b", 30*time.Minute)

	raw, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Garbage(t *testing.T) {
	tokens := NewTokens("test-secret", 30*time.Minute)

	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := tokens.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestTokens_EmptySecret(t *testing.T) {
	tokens := NewTokens("", 30*time.Minute)
	_, err := tokens.Issue("alice@example.com")
	assert.Error(t, err)
}
