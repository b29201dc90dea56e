// Package reviews provides database operations for user ratings and reviews.
//
// Every write also refreshes books.average_rating for the affected book inside
// the same transaction.
//
// # Usage
//
//	repo := reviews.NewRepository(db)
//	err := repo.UpsertReview(userID, bookID, 5, "Loved it")
package reviews

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/plotpoint/internal/entities"
)

var (
	ErrInvalidRating  = fmt.Errorf("rating must be between %d and %d", entities.MinRating, entities.MaxRating)
	ErrReviewNotFound = errors.New("review not found")
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// HasUserReviewedBook reports whether the user already reviewed the book.
func (r *Repository) HasUserReviewedBook(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// UpsertReview stores the user's review of a book. An existing review has its
// rating and text replaced; its date is kept.
func (r *Repository) UpsertReview(userID, bookID uint, rating int, text string) error {
	if rating < entities.MinRating || rating > entities.MaxRating {
		return ErrInvalidRating
	}

	review := entities.Review{
		UserID:     userID,
		BookID:     bookID,
		Rating:     rating,
		ReviewText: text,
		Date:       time.Now(),
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review_text"}),
		}).Create(&review).Error
		if err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}
		return refreshAverage(tx, bookID)
	})
}

// GetReviewsForBook returns every review of a book with its author's name,
// newest first.
func (r *Repository) GetReviewsForBook(bookID uint) ([]entities.ReviewView, error) {
	var views []entities.ReviewView
	err := r.db.Table("reviews").
		Select("users.username, reviews.rating, reviews.review_text, reviews.date").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.date DESC, users.username ASC").
		Scan(&views).Error
	return views, err
}

// CountForUser returns how many reviews the user has written.
func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// AverageRatingForUser returns the mean of the user's ratings, or 0 when the
// user has not rated anything.
func (r *Repository) AverageRatingForUser(userID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&entities.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}

// GetReviewDetails loads the user's review of a book.
func (r *Repository) GetReviewDetails(bookID, userID uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.Where("book_id = ? AND user_id = ?", bookID, userID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes the user's review of a book and reports whether one
// existed.
func (r *Repository) DeleteReview(bookID, userID uint) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("book_id = ? AND user_id = ?", bookID, userID).Delete(&entities.Review{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		if !deleted {
			return nil
		}
		return refreshAverage(tx, bookID)
	})
	return deleted, err
}

// refreshAverage recomputes the denormalized average rating of one book.
func refreshAverage(tx *gorm.DB, bookID uint) error {
	return tx.Exec(
		"UPDATE books SET average_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE book_id = ?) WHERE id = ?",
		bookID, bookID,
	).Error
}
