package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ana := env.user(t, "ana@school.edu", models.RoleStudent)

	user, err := env.auth.Authenticate(env.ctx, "ana@school.edu", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, ana.ID, user.ID)

	// Unknown email and wrong password look the same to the caller
	user, err = env.auth.Authenticate(env.ctx, "nobody@school.edu", "secret123")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = env.auth.Authenticate(env.ctx, "ana@school.edu", "wrong")
	assert.NoError(t, err)
	assert.Nil(t, user)

	// Exact match only
	user, err = env.auth.Authenticate(env.ctx, "ANA@school.edu", "secret123")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthenticate_LongPasswordRejectedBeforeLookup(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "ana@school.edu", models.RoleStudent)
	long := strings.Repeat("p", 73)

	_, errKnown := env.auth.Authenticate(env.ctx, "ana@school.edu", long)
	_, errUnknown := env.auth.Authenticate(env.ctx, "nobody@school.edu", long)
	assertAppError(t, errKnown, apperrors.ErrValidationFailed, "Password must be at most 72 bytes")
	assert.Equal(t, errKnown.Error(), errUnknown.Error())
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ana := env.user(t, "ana@school.edu", models.RoleStudent)

	resp, err := env.auth.Login(env.ctx, &dto.LoginRequest{Email: "ana@school.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, ana.ID, resp.User.ID)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)

	_, err = env.auth.Login(env.ctx, &dto.LoginRequest{Email: "ana@school.edu", Password: "nope"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	profile, err := env.auth.GetProfile(env.ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.Email, profile.Email)

	_, err = env.auth.GetProfile(env.ctx, 999)
	assertAppError(t, err, apperrors.ErrResourceNotFound, "User not found")
}
