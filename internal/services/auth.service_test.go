package services

import (
	"testing"

	"mealvote/config"
	"mealvote/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	service, err := NewAuthService(config.Config{JWTSecret: "test-secret"})
	require.NoError(t, err)
	return service
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.Config{})
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	service := newTestAuthService(t)

	hash, err := service.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, service.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, service.CheckPassword(hash, "wrong password"))
}

func TestTokenRoundTrip(t *testing.T) {
	service := newTestAuthService(t)

	user := &models.User{Role: models.RoleStaff}
	user.ID = uuid.Must(uuid.NewV7())

	token, err := service.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	service := newTestAuthService(t)

	other, err := NewAuthService(config.Config{JWTSecret: "another-secret"})
	require.NoError(t, err)

	user := &models.User{Role: models.RoleVoter}
	user.ID = uuid.Must(uuid.NewV7())

	token, err := other.IssueToken(user)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	service := newTestAuthService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
