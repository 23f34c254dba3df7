package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framelight/studio-api/internal/auth"
	"github.com/framelight/studio-api/internal/config"
	"github.com/framelight/studio-api/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		Email:       "producer@framelight.example",
		DisplayName: "Test Producer",
		Role:        domain.RoleProducer,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-signing",
		TokenTTL:  3600,
	})

	user := testUser()
	token, expiresAt, err := manager.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userCtx, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, user.Email, userCtx.Email)
	assert.Equal(t, user.DisplayName, userCtx.DisplayName)
	assert.Equal(t, domain.RoleProducer, userCtx.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-signing",
		TokenTTL:  -60,
	})

	token, _, err := manager.Issue(testUser())
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "secret-one",
		TokenTTL:  3600,
	})
	validator := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "secret-two",
		TokenTTL:  3600,
	})

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-signing",
		TokenTTL:  3600,
	})

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Validate(bad)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, "input %q", bad)
	}
}
