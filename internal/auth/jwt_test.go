package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperhub-backend/internal/config"
	"paperhub-backend/internal/models"
)

func testManager(secret, expiry string) *JWTManager {
	return NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: secret, Expiry: expiry},
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager("test-secret", "1h")

	user := &models.User{
		ID:    uuid.New(),
		Email: "editor@example.com",
		Role:  "editor",
	}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "editor", claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	m := testManager("test-secret", "1h")

	_, err := m.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	signer := testManager("secret-a", "1h")
	verifier := testManager("secret-b", "1h")

	token, err := signer.GenerateToken(&models.User{ID: uuid.New(), Email: "a@b.c", Role: "author"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	m := testManager("test-secret", "-1h")

	token, err := m.GenerateToken(&models.User{ID: uuid.New(), Email: "a@b.c", Role: "author"})
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
