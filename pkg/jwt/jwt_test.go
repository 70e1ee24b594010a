package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", "test-issuer")

	token, err := m.Generate("user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.UserID)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager("test-secret", "test-issuer")

	token, err := m.Generate("user@example.com", 0)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", "test-issuer")
	verifier := NewManager("secret-b", "test-issuer")

	token, err := issuer.Generate("user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	m := NewManager("test-secret", "test-issuer")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
