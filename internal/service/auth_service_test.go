package service

import (
	"context"
	"testing"
	"time"

	"fitforge/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), testJWTSecret, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "ana@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, loggedIn)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "fitforge", claims.Issuer)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), testJWTSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Another Ana", "ana@example.com", "otherpassword")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_Failures(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), testJWTSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrongpassword")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	// Unknown email maps to the same error; callers cannot probe for accounts.
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}
