package entities

import (
	"fmt"
	"time"
)

// ReadShelfName is the shelf all reading statistics are computed from.
const ReadShelfName = "Read"

const (
	MinRating = 1
	MaxRating = 5
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

type Shelf struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_shelves_user_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_shelves_user_name;size:100;not null" json:"name"`
}

type ShelfBook struct {
	ShelfID   uint      `gorm:"primaryKey;autoIncrement:false" json:"shelf_id"`
	BookID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
	DateAdded time.Time `gorm:"not null" json:"date_added"`
}

type Review struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BookID     uint      `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	ReviewText string    `gorm:"type:text" json:"review_text"`
	Date       time.Time `gorm:"not null" json:"date"`
}

// ReviewView is a review joined with its author's name, for display.
type ReviewView struct {
	Username   string
	Rating     int
	ReviewText string
	Date       time.Time
}

// ShelfEntry describes a book's membership on one of a user's shelves.
type ShelfEntry struct {
	DateAdded time.Time
	Rating    *int // The user's own rating, nil when the book is unreviewed
}

// RatingLabel renders the user's rating or a placeholder.
func (e ShelfEntry) RatingLabel() string {
	if e.Rating == nil {
		return " - "
	}
	return fmt.Sprintf("%d", *e.Rating)
}

type TagStat struct {
	Name    string
	Count   int
	Percent float64
}

type MonthlyCount struct {
	Month string // YYYY-MM
	Count int
}

type MonthlyPages struct {
	Month string
	Pages int
}

type MonthlyRating struct {
	Month         string
	AverageRating float64
}

func (User) TableName() string {
	return "users"
}

func (Shelf) TableName() string {
	return "shelves"
}

func (ShelfBook) TableName() string {
	return "shelf_books"
}

func (Review) TableName() string {
	return "reviews"
}
