package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/kartik0209/music-backend/pkg/errors"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager(&Config{Secret: "secret", Issuer: "test", TokenExpiry: time.Minute})

	token, err := m.GenerateToken("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager(&Config{Secret: "secret", TokenExpiry: -time.Minute})

	token, err := m.GenerateToken("u1", "alice")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, apierrors.ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	m := NewManager(&Config{Secret: "secret"})
	other := NewManager(&Config{Secret: "different"})

	token, err := m.GenerateToken("u1", "alice")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	m := NewManager(&Config{Secret: "secret"})
	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}
