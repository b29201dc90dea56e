// Package books provides database operations for the book catalog: search,
// recommendations and admin edits. Tag rows and associations live in the
// sibling tags package; InsertBook uses its helpers inside one transaction.
//
// This package implements the BookStore interface defined in
// internal/catalog/service.go.
//
// # Interface Implementation
//
//	var _ catalog.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	found, err := repo.SearchByTitle("dune")
package books

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/entities"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidField = errors.New("invalid book field")
	ErrInvalidValue = errors.New("invalid value for book field")
)

// Field selects the single scalar column UpdateField may change.
type Field int

const (
	FieldTitle Field = iota + 1
	FieldAuthor
	FieldPublicationDate
	FieldPageCount
	FieldSynopsis
)

// fieldColumns is the complete set of columns reachable through UpdateField.
var fieldColumns = map[Field]string{
	FieldTitle:           "title",
	FieldAuthor:          "author",
	FieldPublicationDate: "publication_date",
	FieldPageCount:       "page_count",
	FieldSynopsis:        "synopsis",
}

func (f Field) String() string {
	if column, ok := fieldColumns[f]; ok {
		return column
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Repository handles all book and tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchByTitle returns books whose title contains query, ignoring case.
func (r *Repository) SearchByTitle(query string) ([]entities.Book, error) {
	return r.searchBy("title", query)
}

// SearchByAuthor returns books whose author contains query, ignoring case.
func (r *Repository) SearchByAuthor(query string) ([]entities.Book, error) {
	return r.searchBy("author", query)
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *Repository) searchBy(column, query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + likeEscaper.Replace(query) + "%"
	err := r.db.Where("LOWER("+column+`) LIKE LOWER(?) ESCAPE '\'`, searchPattern).
		Order("id ASC").
		Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetRecommendedBooksByTag returns the books carrying a tag, best rated
// first. Equal ratings are ordered by ascending ID.
func (r *Repository) GetRecommendedBooksByTag(tagName string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN book_tags ON book_tags.book_id = books.id").
		Where("book_tags.tag_name = ?", tagName).
		Order("books.average_rating DESC, books.id ASC").
		Find(&books).Error
	return books, err
}

// GetReviewedBooks returns the books a user has reviewed, newest review first.
func (r *Repository) GetReviewedBooks(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN reviews ON reviews.book_id = books.id").
		Where("reviews.user_id = ?", userID).
		Order("reviews.date DESC, books.id ASC").
		Find(&books).Error
	return books, err
}

// CountReviews returns how many reviews a book has.
func (r *Repository) CountReviews(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

// UpdateField sets one scalar column of a book. The column is chosen from a
// fixed set by field, never from caller-supplied text.
func (r *Repository) UpdateField(bookID uint, field Field, value string) error {
	column, ok := fieldColumns[field]
	if !ok {
		return ErrInvalidField
	}

	var newValue any = value
	if field == FieldPageCount {
		pages, err := strconv.Atoi(value)
		if err != nil || pages <= 0 {
			return fmt.Errorf("%w: page count must be a positive integer", ErrInvalidValue)
		}
		newValue = pages
	}

	result := r.db.Model(&entities.Book{}).Where("id = ?", bookID).Update(column, newValue)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book with its tags, shelf memberships and reviews.
// It reports whether a book was deleted.
func (r *Repository) DeleteBook(id uint) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&entities.BookTag{}, &entities.ShelfBook{}, &entities.Review{}} {
			if err := tx.Where("book_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// InsertBook creates a book with its genre and mood tags in one transaction.
// Nothing is written unless every step succeeds; book.ID is set on success.
func (r *Repository) InsertBook(book *entities.Book, genres, moods []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		book.ID = 0
		book.AverageRating = 0
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}
		if book.ID == 0 {
			return errors.New("failed to retrieve the generated book ID")
		}

		if err := tags.EnsureTags(tx, genres, entities.TagTypeGenre); err != nil {
			return err
		}
		if err := tags.EnsureTags(tx, moods, entities.TagTypeMood); err != nil {
			return err
		}

		all := make([]string, 0, len(genres)+len(moods))
		all = append(all, genres...)
		all = append(all, moods...)
		return tags.LinkTags(tx, book.ID, all)
	})
}
