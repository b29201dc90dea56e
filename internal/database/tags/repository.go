// Package tags provides database operations for genre and mood tags and
// their association with books.
//
// This package implements the TagStore interface defined in
// internal/catalog/service.go.
//
// # Interface Implementation
//
//	var _ catalog.TagStore = (*Repository)(nil)
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	genres, err := repo.GetGenres(bookID)
package tags

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/plotpoint/internal/entities"
)

var (
	ErrInvalidTagType = errors.New("invalid tag type")
	ErrEmptyTagName   = errors.New("tag name cannot be empty")
	ErrTagTypeClash   = errors.New("tag already exists with a different type")
)

// Repository handles all tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetTagsForBook returns the names of the tags of one type attached to a book,
// sorted by name.
func (r *Repository) GetTagsForBook(bookID uint, tagType entities.TagType) ([]string, error) {
	var names []string
	err := r.db.Table("tags").
		Joins("JOIN book_tags ON book_tags.tag_name = tags.tag_name").
		Where("book_tags.book_id = ? AND tags.tag_type = ?", bookID, tagType).
		Order("tags.tag_name ASC").
		Pluck("tags.tag_name", &names).Error
	return names, err
}

// GetGenres returns the genre tags of a book.
func (r *Repository) GetGenres(bookID uint) ([]string, error) {
	return r.GetTagsForBook(bookID, entities.TagTypeGenre)
}

// GetMoods returns the mood tags of a book.
func (r *Repository) GetMoods(bookID uint) ([]string, error) {
	return r.GetTagsForBook(bookID, entities.TagTypeMood)
}

// GetTagsByType lists every known tag of a type, sorted by name.
func (r *Repository) GetTagsByType(tagType entities.TagType) ([]string, error) {
	var names []string
	err := r.db.Model(&entities.Tag{}).
		Where("tag_type = ?", tagType).
		Order("tag_name ASC").
		Pluck("tag_name", &names).Error
	return names, err
}

// GetTag retrieves a tag by name. It returns gorm.ErrRecordNotFound when the
// tag does not exist.
func (r *Repository) GetTag(name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.Where("tag_name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag adds a tag to the vocabulary. Creating a tag that already exists
// with the same type is a no-op.
func (r *Repository) CreateTag(name string, tagType entities.TagType) error {
	if !tagType.Valid() {
		return ErrInvalidTagType
	}
	if name == "" {
		return ErrEmptyTagName
	}

	existing, err := r.GetTag(name)
	if err == nil {
		if existing.Type != tagType {
			return ErrTagTypeClash
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return EnsureTags(r.db, []string{name}, tagType)
}

// ReplaceTags swaps all tags of one type on a book for names. Tags of the
// other type are left untouched. Unknown names are added to the vocabulary.
func (r *Repository) ReplaceTags(bookID uint, tagType entities.TagType, names []string) error {
	if !tagType.Valid() {
		return ErrInvalidTagType
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM book_tags WHERE book_id = ? AND tag_name IN (SELECT tag_name FROM tags WHERE tag_type = ?)",
			bookID, tagType,
		).Error; err != nil {
			return err
		}
		if err := EnsureTags(tx, names, tagType); err != nil {
			return err
		}
		return LinkTags(tx, bookID, names)
	})
}

// EnsureTags inserts any of names missing from the tags table with the given
// type. A name already stored with the other type fails with ErrTagTypeClash.
func EnsureTags(tx *gorm.DB, names []string, tagType entities.TagType) error {
	if len(names) == 0 {
		return nil
	}
	if !tagType.Valid() {
		return ErrInvalidTagType
	}

	rows := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			return ErrEmptyTagName
		}
		rows = append(rows, entities.Tag{Name: name, Type: tagType})
	}

	var existing []entities.Tag
	if err := tx.Where("tag_name IN ?", names).Find(&existing).Error; err != nil {
		return err
	}
	for _, tag := range existing {
		if tag.Type != tagType {
			return fmt.Errorf("%w: %q is a %s", ErrTagTypeClash, tag.Name, tag.Type)
		}
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// LinkTags attaches names to a book. A name listed twice violates the
// book_tags primary key and fails the surrounding transaction.
func LinkTags(tx *gorm.DB, bookID uint, names []string) error {
	if len(names) == 0 {
		return nil
	}

	links := make([]entities.BookTag, 0, len(names))
	for _, name := range names {
		links = append(links, entities.BookTag{BookID: bookID, TagName: name})
	}
	return tx.Create(&links).Error
}
