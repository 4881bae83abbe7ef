package services

import (
	"testing"

	"lavapro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register("Admin", "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.NotEqual(t, "admin123", user.PasswordHash)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotContains(t, stored.PasswordHash, "admin123")
	assert.True(t, stored.CheckPassword("admin123"))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newTestDB(t))

	_, err := svc.Register("", "a@b.com", "x")
	assert.True(t, IsValidation(err))

	_, err = svc.Register("Admin", "not-an-email", "x")
	assert.True(t, IsValidation(err))

	_, err = svc.Register("Admin", "a@b.com", "secret")
	require.NoError(t, err)
	_, err = svc.Register("Other", "a@b.com", "secret")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(newTestDB(t))

	_, err := svc.Register("Admin", "a@b.com", "secret")
	require.NoError(t, err)

	user, err := svc.Authenticate("A@B.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)

	_, err = svc.Authenticate("a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("missing@b.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
