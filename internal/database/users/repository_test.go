package users

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/plotpoint/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_CreateUser(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.CreateUser("alice", "hash", false)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.JoinedAt.IsZero())
}

func TestRepository_CreateUser_Duplicate(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateUser("alice", "hash", false)
	require.NoError(t, err)

	_, err = repo.CreateUser("alice", "other", true)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.CreateUser("alice", "hash", true)
	require.NoError(t, err)

	user, err := repo.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsAdmin)

	_, err = repo.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_GetUserByUsername(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.CreateUser("alice", "hash", false)
	require.NoError(t, err)

	user, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)

	_, err = repo.GetUserByUsername("Alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_UsernameExists(t *testing.T) {
	repo := setupTestDB(t)

	exists, err := repo.UsernameExists("bob")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.CreateUser("bob", "hash", false)
	require.NoError(t, err)

	exists, err = repo.UsernameExists("bob")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_CountAdmins(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateUser("reader", "hash", false)
	require.NoError(t, err)
	_, err = repo.CreateUser("root", "hash", true)
	require.NoError(t, err)

	count, err := repo.CountAdmins()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
