package tags

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dbPath := filepath.Join(t.TempDir(), "tags.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Tag{}, &entities.BookTag{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db), db
}

func createBook(t *testing.T, db *gorm.DB, title string) uint {
	book := &entities.Book{Title: title, Author: "Author"}
	require.NoError(t, db.Create(book).Error)
	return book.ID
}

func TestRepository_CreateTag(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.CreateTag("Solarpunk", entities.TagTypeGenre))

	tag, err := repo.GetTag("Solarpunk")
	require.NoError(t, err)
	assert.Equal(t, entities.TagTypeGenre, tag.Type)

	// Same name and type is accepted again
	assert.NoError(t, repo.CreateTag("Solarpunk", entities.TagTypeGenre))
}

func TestRepository_CreateTag_Rejects(t *testing.T) {
	repo, _ := setupTestDB(t)

	assert.ErrorIs(t, repo.CreateTag("Cozy", entities.TagType("vibe")), ErrInvalidTagType)
	assert.ErrorIs(t, repo.CreateTag("", entities.TagTypeMood), ErrEmptyTagName)

	require.NoError(t, repo.CreateTag("Cozy", entities.TagTypeMood))
	assert.ErrorIs(t, repo.CreateTag("Cozy", entities.TagTypeGenre), ErrTagTypeClash)
}

func TestRepository_GetTagsByType(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.CreateTag("Mystery", entities.TagTypeGenre))
	require.NoError(t, repo.CreateTag("Fantasy", entities.TagTypeGenre))
	require.NoError(t, repo.CreateTag("Dark", entities.TagTypeMood))

	genres, err := repo.GetTagsByType(entities.TagTypeGenre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Mystery"}, genres)

	moods, err := repo.GetTagsByType(entities.TagTypeMood)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dark"}, moods)
}

func TestRepository_ReplaceTags(t *testing.T) {
	repo, db := setupTestDB(t)
	bookID := createBook(t, db, "Dune")

	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Sci-Fi", "Fantasy"}))
	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeMood, []string{"Tense"}))

	genres, err := repo.GetGenres(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Sci-Fi"}, genres)

	// Replacing genres keeps moods
	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Sci-Fi"}))

	genres, err = repo.GetGenres(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi"}, genres)

	moods, err := repo.GetMoods(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tense"}, moods)
}

func TestRepository_ReplaceTags_Empty(t *testing.T) {
	repo, db := setupTestDB(t)
	bookID := createBook(t, db, "Dune")

	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Sci-Fi"}))
	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, nil))

	genres, err := repo.GetGenres(bookID)
	require.NoError(t, err)
	assert.Empty(t, genres)

	// The tag itself stays in the vocabulary
	all, err := repo.GetTagsByType(entities.TagTypeGenre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi"}, all)
}

func TestRepository_ReplaceTags_DuplicateRollsBack(t *testing.T) {
	repo, db := setupTestDB(t)
	bookID := createBook(t, db, "Dune")

	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Sci-Fi"}))

	err := repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Fantasy", "Fantasy"})
	assert.Error(t, err)

	genres, err := repo.GetGenres(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi"}, genres)
}

func TestEnsureTags_RejectsTypeClash(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, EnsureTags(db, []string{"Dark"}, entities.TagTypeMood))
	require.NoError(t, EnsureTags(db, []string{"Dark"}, entities.TagTypeMood))

	err := EnsureTags(db, []string{"Horror", "Dark"}, entities.TagTypeGenre)
	assert.ErrorIs(t, err, ErrTagTypeClash)

	tag, err := repo.GetTag("Dark")
	require.NoError(t, err)
	assert.Equal(t, entities.TagTypeMood, tag.Type)

	_, err = repo.GetTag("Horror")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ReplaceTags_TypeClashRollsBack(t *testing.T) {
	repo, db := setupTestDB(t)
	bookID := createBook(t, db, "Dune")

	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Sci-Fi"}))
	require.NoError(t, repo.ReplaceTags(bookID, entities.TagTypeMood, []string{"Dark"}))

	err := repo.ReplaceTags(bookID, entities.TagTypeGenre, []string{"Dark"})
	assert.ErrorIs(t, err, ErrTagTypeClash)

	genres, err := repo.GetGenres(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi"}, genres)

	moods, err := repo.GetMoods(bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dark"}, moods)
}
