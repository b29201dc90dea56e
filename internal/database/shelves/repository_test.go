package shelves

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/plotpoint/internal/entities"
)

var defaultShelves = []string{"Read", "Reading", "Want to Read"}

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dbPath := filepath.Join(t.TempDir(), "shelves.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.Tag{},
		&entities.BookTag{},
		&entities.Shelf{},
		&entities.ShelfBook{},
		&entities.Review{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db), db
}

func createUser(t *testing.T, repo *Repository, db *gorm.DB, name string) uint {
	user := &entities.User{Username: name, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, repo.CreateShelves(user.ID, defaultShelves))
	return user.ID
}

func createBook(t *testing.T, db *gorm.DB, title string, pages int, tags ...entities.Tag) uint {
	book := &entities.Book{Title: title, Author: "Author", PageCount: pages}
	require.NoError(t, db.Create(book).Error)
	for _, tag := range tags {
		require.NoError(t, db.Where(tag).FirstOrCreate(&tag).Error)
		require.NoError(t, db.Create(&entities.BookTag{BookID: book.ID, TagName: tag.Name}).Error)
	}
	return book.ID
}

// shelveAt places a book on a shelf with a fixed date, bypassing the clock.
func shelveAt(t *testing.T, repo *Repository, db *gorm.DB, userID, bookID uint, shelf string, at time.Time) {
	require.NoError(t, repo.AddBookToShelf(userID, bookID, shelf))
	require.NoError(t, db.Model(&entities.ShelfBook{}).
		Where("book_id = ? AND shelf_id IN (SELECT id FROM shelves WHERE user_id = ?)", bookID, userID).
		Update("date_added", at).Error)
}

func TestRepository_CreateShelves(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")

	// Re-provisioning is harmless
	require.NoError(t, repo.CreateShelves(userID, []string{"Read", "Abandoned"}))

	names, err := repo.GetUserShelves(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Read", "Reading", "Want to Read", "Abandoned"}, names)
}

func TestRepository_AddBookToShelf_Moves(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")
	bookID := createBook(t, db, "Dune", 412)

	_, found, err := repo.FindShelfForBook(userID, bookID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.AddBookToShelf(userID, bookID, "Want to Read"))
	require.NoError(t, repo.AddBookToShelf(userID, bookID, "Reading"))

	shelf, found, err := repo.FindShelfForBook(userID, bookID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Reading", shelf)

	var memberships int64
	require.NoError(t, db.Model(&entities.ShelfBook{}).Where("book_id = ?", bookID).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)

	wantToRead, err := repo.GetBooksInShelf(userID, "Want to Read")
	require.NoError(t, err)
	assert.Empty(t, wantToRead)
}

func TestRepository_AddBookToShelf_OtherUsersUntouched(t *testing.T) {
	repo, db := setupTestDB(t)
	alice := createUser(t, repo, db, "alice")
	bob := createUser(t, repo, db, "bob")
	bookID := createBook(t, db, "Dune", 412)

	require.NoError(t, repo.AddBookToShelf(alice, bookID, "Read"))
	require.NoError(t, repo.AddBookToShelf(bob, bookID, "Reading"))

	shelf, _, err := repo.FindShelfForBook(alice, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Read", shelf)
}

func TestRepository_AddBookToShelf_UnknownShelf(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")
	bookID := createBook(t, db, "Dune", 412)

	require.NoError(t, repo.AddBookToShelf(userID, bookID, "Read"))

	err := repo.AddBookToShelf(userID, bookID, "Favourites")
	assert.ErrorIs(t, err, ErrShelfNotFound)

	// The failed move leaves the book where it was
	shelf, found, err := repo.FindShelfForBook(userID, bookID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Read", shelf)
}

func TestRepository_GetShelfEntry(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")
	bookID := createBook(t, db, "Dune", 412)

	require.NoError(t, repo.AddBookToShelf(userID, bookID, "Read"))

	entry, err := repo.GetShelfEntry(userID, bookID, "Read")
	require.NoError(t, err)
	assert.False(t, entry.DateAdded.IsZero())
	assert.Nil(t, entry.Rating)
	assert.Equal(t, " - ", entry.RatingLabel())

	require.NoError(t, db.Create(&entities.Review{UserID: userID, BookID: bookID, Rating: 4, Date: time.Now()}).Error)

	entry, err = repo.GetShelfEntry(userID, bookID, "Read")
	require.NoError(t, err)
	require.NotNil(t, entry.Rating)
	assert.Equal(t, "4", entry.RatingLabel())

	_, err = repo.GetShelfEntry(userID, bookID, "Reading")
	assert.ErrorIs(t, err, ErrNotOnShelf)
}

func TestRepository_RemoveBookFromShelf(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")
	bookID := createBook(t, db, "Dune", 412)

	require.NoError(t, repo.AddBookToShelf(userID, bookID, "Reading"))

	removed, err := repo.RemoveBookFromShelf(userID, bookID, "Read")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.RemoveBookFromShelf(userID, bookID, "Reading")
	require.NoError(t, err)
	assert.True(t, removed)

	books, err := repo.GetBooksInShelf(userID, "Reading")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_GetBooksInShelf_Order(t *testing.T) {
	repo, db := setupTestDB(t)
	userID := createUser(t, repo, db, "alice")
	first := createBook(t, db, "First", 100)
	second := createBook(t, db, "Second", 100)

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	shelveAt(t, repo, db, userID, second, "Read", base)
	shelveAt(t, repo, db, userID, first, "Read", base.Add(time.Hour))

	books, err := repo.GetBooksInShelf(userID, "Read")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Second", books[0].Title)
	assert.Equal(t, "First", books[1].Title)
}
