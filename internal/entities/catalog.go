package entities

import (
	"time"
)

type TagType string

const (
	TagTypeGenre TagType = "genre"
	TagTypeMood  TagType = "mood"
)

// Valid reports whether t is one of the known tag types.
func (t TagType) Valid() bool {
	return t == TagTypeGenre || t == TagTypeMood
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512;not null" json:"title"`
	Author          string    `gorm:"index;size:256;not null" json:"author"`
	PublicationDate string    `gorm:"size:10" json:"publication_date"` // YYYY-MM-DD
	PageCount       int       `json:"page_count"`
	Synopsis        string    `gorm:"type:text" json:"synopsis"`
	AverageRating   float64   `gorm:"not null;default:0" json:"average_rating"` // Maintained from reviews
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Tags are identified by name; the same name cannot be both a genre and a mood.
type Tag struct {
	Name string  `gorm:"column:tag_name;primaryKey;size:100" json:"name"`
	Type TagType `gorm:"column:tag_type;index;size:10;not null" json:"type"`
}

type BookTag struct {
	BookID  uint   `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	TagName string `gorm:"column:tag_name;primaryKey;size:100" json:"tag_name"`
}

// BookDetails is a book together with the attributes derived from other
// tables. It is assembled by the catalog service and never queries anything.
type BookDetails struct {
	Book
	Genres      []string `json:"genres"`
	Moods       []string `json:"moods"`
	ReviewCount int64    `json:"review_count"`
}

func (Book) TableName() string {
	return "books"
}

func (Tag) TableName() string {
	return "tags"
}

func (BookTag) TableName() string {
	return "book_tags"
}
