package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "plotpoint.db")
	db, err := NewDatabase(dbPath, false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, _ := setupTestDB(t)

	for _, table := range []string{"users", "books", "tags", "book_tags", "shelves", "shelf_books", "reviews"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Shelf{}, "idx_shelves_user_name"))
}

func TestNewDatabase_CreatesMissingDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "demo", "nested", "demo.db")

	db, err := NewDatabase(dbPath, false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.FileExists(t, dbPath)
}

func TestNewDatabase_SeedsDefaultTags(t *testing.T) {
	db, _ := setupTestDB(t)

	var genres, moods int64
	require.NoError(t, db.DB.Model(&entities.Tag{}).Where("tag_type = ?", entities.TagTypeGenre).Count(&genres).Error)
	require.NoError(t, db.DB.Model(&entities.Tag{}).Where("tag_type = ?", entities.TagTypeMood).Count(&moods).Error)

	assert.Equal(t, int64(10), genres)
	assert.Equal(t, int64(8), moods)
}

func TestNewDatabase_SeedOnlyOnce(t *testing.T) {
	db, dbPath := setupTestDB(t)

	require.NoError(t, db.DB.Where("tag_name = ?", "Horror").Delete(&entities.Tag{}).Error)
	require.NoError(t, db.Close())

	reopened, err := NewDatabase(dbPath, false)
	require.NoError(t, err)
	defer reopened.Close()

	var count int64
	require.NoError(t, reopened.DB.Model(&entities.Tag{}).Where("tag_name = ?", "Horror").Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, reopened.DB.Model(&entities.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultTags)-1), count)
}

func TestModels_CoverEveryTable(t *testing.T) {
	assert.Len(t, Models(), 8)
}
