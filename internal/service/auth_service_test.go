package service

import (
	"testing"

	"github.com/evigdia/evigdia-backend/internal/common"
	"github.com/evigdia/evigdia-backend/internal/domain"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	manager := jwt.NewManager("test-secret", 1, 24)
	return db, NewAuthService(repository.NewUserRepository(db), manager)
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := setupAuthService(t)

	user, err := svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	loggedIn, pair, err := svc.Login(&LoginRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterDuplicate(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Register(&RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	_, err = svc.Register(&RegisterRequest{Username: "bob", Email: "other@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	_, err = svc.Register(&RegisterRequest{Username: "bob2", Email: "bob@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestLoginBadCredentials(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Register(&RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginRequest{Username: "carol", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, _, err = svc.Login(&LoginRequest{Username: "nobody", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginSuspendedAccount(t *testing.T) {
	db, svc := setupAuthService(t)

	user, err := svc.Register(&RegisterRequest{Username: "dan", Email: "dan@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("status", "suspended").Error)

	_, _, err = svc.Login(&LoginRequest{Username: "dan", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRefresh(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Register(&RegisterRequest{Username: "erin", Email: "erin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	_, pair, err := svc.Login(&LoginRequest{Username: "erin", Password: "s3cret-pass"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
