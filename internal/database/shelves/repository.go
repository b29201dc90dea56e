// Package shelves provides database operations for a user's reading shelves
// and the reading reports computed from the Read shelf.
//
// A book sits on at most one of a user's shelves at a time. AddBookToShelf
// moves it there in one transaction.
//
// # Usage
//
//	repo := shelves.NewRepository(db)
//	err := repo.AddBookToShelf(userID, bookID, "Reading")
package shelves

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/plotpoint/internal/entities"
)

var (
	ErrShelfNotFound = errors.New("shelf not found")
	ErrNotOnShelf    = errors.New("book is not on this shelf")
)

// Repository handles all shelf database operations.
type Repository struct {
	db  *gorm.DB
	loc *time.Location // calendar used by the monthly reports
}

// NewRepository creates a new shelves repository. Monthly reports follow the
// local time zone.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, loc: time.Local}
}

// WithTx returns a repository bound to tx, for use inside a transaction
// started elsewhere.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx, loc: r.loc}
}

// CreateShelves provisions the named shelves for a user. Names the user
// already has are skipped.
func (r *Repository) CreateShelves(userID uint, names []string) error {
	for _, name := range names {
		shelf := entities.Shelf{UserID: userID, Name: name}
		if err := r.db.Where(shelf).FirstOrCreate(&shelf).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetUserShelves returns the user's shelf names in creation order.
func (r *Repository) GetUserShelves(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&entities.Shelf{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("name", &names).Error
	return names, err
}

// FindShelfForBook returns the name of the user's shelf holding the book.
// The boolean is false when the book is on none of them.
func (r *Repository) FindShelfForBook(userID, bookID uint) (string, bool, error) {
	var names []string
	err := r.db.Table("shelves").
		Joins("JOIN shelf_books ON shelf_books.shelf_id = shelves.id").
		Where("shelves.user_id = ? AND shelf_books.book_id = ?", userID, bookID).
		Limit(1).
		Pluck("shelves.name", &names).Error
	if err != nil || len(names) == 0 {
		return "", false, err
	}
	return names[0], true, nil
}

// AddBookToShelf puts a book on the named shelf, taking it off whichever other
// shelf of the same user held it.
func (r *Repository) AddBookToShelf(userID, bookID uint, shelfName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		shelf, err := findShelf(tx, userID, shelfName)
		if err != nil {
			return err
		}

		if err := tx.Exec(
			"DELETE FROM shelf_books WHERE book_id = ? AND shelf_id IN (SELECT id FROM shelves WHERE user_id = ?)",
			bookID, userID,
		).Error; err != nil {
			return err
		}

		return tx.Create(&entities.ShelfBook{
			ShelfID:   shelf.ID,
			BookID:    bookID,
			DateAdded: time.Now(),
		}).Error
	})
}

// GetBooksInShelf lists the books on one of the user's shelves in the order
// they were added.
func (r *Repository) GetBooksInShelf(userID uint, shelfName string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN shelf_books ON shelf_books.book_id = books.id").
		Joins("JOIN shelves ON shelves.id = shelf_books.shelf_id").
		Where("shelves.user_id = ? AND shelves.name = ?", userID, shelfName).
		Order("shelf_books.date_added ASC, books.id ASC").
		Find(&books).Error
	return books, err
}

// GetShelfEntry returns when the book was shelved and the user's own rating
// of it, if any.
func (r *Repository) GetShelfEntry(userID, bookID uint, shelfName string) (*entities.ShelfEntry, error) {
	var entries []entities.ShelfEntry
	err := r.db.Raw(`
		SELECT shelf_books.date_added AS date_added, reviews.rating AS rating
		FROM shelf_books
		JOIN shelves ON shelves.id = shelf_books.shelf_id
		LEFT JOIN reviews ON reviews.book_id = shelf_books.book_id AND reviews.user_id = shelves.user_id
		WHERE shelves.user_id = ? AND shelves.name = ? AND shelf_books.book_id = ?
	`, userID, shelfName, bookID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotOnShelf
	}
	return &entries[0], nil
}

// RemoveBookFromShelf takes a book off the named shelf and reports whether it
// was there.
func (r *Repository) RemoveBookFromShelf(userID, bookID uint, shelfName string) (bool, error) {
	result := r.db.Exec(
		"DELETE FROM shelf_books WHERE book_id = ? AND shelf_id IN (SELECT id FROM shelves WHERE user_id = ? AND name = ?)",
		bookID, userID, shelfName,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func findShelf(tx *gorm.DB, userID uint, name string) (*entities.Shelf, error) {
	var shelf entities.Shelf
	err := tx.Where("user_id = ? AND name = ?", userID, name).First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShelfNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shelf, nil
}
