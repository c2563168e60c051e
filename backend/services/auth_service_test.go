package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email:       "ada@example.com",
		Username:    "ada",
		Password:    "secret123",
		DisplayName: "Ada L.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 0, user.TotalPoints)
	assert.Equal(t, 0, user.CurrentStreak)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

	loggedIn, err := svc.Login("ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotNil(t, loggedIn.LastLogin)
}

func TestRegisterDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(RegisterInput{Email: "ada@example.com", Username: "ada", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "ada@example.com", Username: "ada2", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(RegisterInput{Email: "other@example.com", Username: "ada", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLoginRejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(RegisterInput{Email: "ada@example.com", Username: "ada", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// OAuth-only accounts have no password and must not pass password login
	_, err = svc.OAuthLogin(&Identity{ID: "g1", Email: "oauth@example.com", Name: "O Auth", Provider: "google"})
	require.NoError(t, err)
	_, err = svc.Login("oauth@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOAuthLoginCreatesUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.OAuthLogin(&Identity{
		ID:       "12345",
		Email:    "grace.hopper@example.com",
		Name:     "Grace Hopper",
		Picture:  "https://example.com/grace.png",
		Provider: "google",
	})
	require.NoError(t, err)

	assert.Equal(t, "grace-hopper", user.Username)
	assert.Equal(t, "google", user.OAuthProvider)
	assert.Equal(t, "12345", user.OAuthID)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, 0, user.TotalPoints)
}

func TestOAuthUsernameCollisionGetsSuffix(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(RegisterInput{Email: "first@example.com", Username: "grace", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.OAuthLogin(&Identity{ID: "1", Email: "grace@example.com", Provider: "github", Username: "grace"})
	require.NoError(t, err)
	assert.Equal(t, "grace1", user.Username)

	user2, err := svc.OAuthLogin(&Identity{ID: "2", Email: "grace@other.com", Provider: "github", Username: "grace"})
	require.NoError(t, err)
	assert.Equal(t, "grace2", user2.Username)
}

func TestOAuthLoginExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	created, err := svc.Register(RegisterInput{Email: "ada@example.com", Username: "ada", Password: "secret123"})
	require.NoError(t, err)
	require.Empty(t, created.Avatar)

	user, err := svc.OAuthLogin(&Identity{ID: "g1", Email: "ada@example.com", Picture: "https://example.com/a.png", Provider: "google"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, user.ID, "no second account for a known email")
	assert.Equal(t, "https://example.com/a.png", user.Avatar, "avatar backfilled when empty")
	assert.NotNil(t, user.LastLogin)

	// A later login must not overwrite an existing avatar
	user, err = svc.OAuthLogin(&Identity{ID: "g1", Email: "ada@example.com", Picture: "https://example.com/new.png", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", user.Avatar)
}

func TestOAuthLoginRejectsEmptyEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.OAuthLogin(&Identity{ID: "1", Provider: "github"})
	assert.ErrorIs(t, err, ErrOAuthExchangeFailed)
}
