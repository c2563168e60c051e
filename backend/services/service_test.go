package services

import (
	"testing"

	"pylearn/backend/models"
	"pylearn/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database. MaxOpenConns is pinned to 1
// so every query sees the same in-memory SQLite instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Username: username}
	require.NoError(t, db.Create(user).Error)
	return user
}
