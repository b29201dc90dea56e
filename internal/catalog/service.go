// Package catalog assembles complete book records and guards every catalog
// write with input validation. Repositories stay single-purpose; this
// service is the only place a book's tags and review count are joined to it.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// BookStore is the book persistence the service needs.
type BookStore interface {
	SearchByTitle(query string) ([]entities.Book, error)
	SearchByAuthor(query string) ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetRecommendedBooksByTag(tagName string) ([]entities.Book, error)
	GetReviewedBooks(userID uint) ([]entities.Book, error)
	CountReviews(bookID uint) (int64, error)
	UpdateField(bookID uint, field books.Field, value string) error
	DeleteBook(id uint) (bool, error)
	InsertBook(book *entities.Book, genres, moods []string) error
}

// TagStore is the tag persistence the service needs.
type TagStore interface {
	GetTagsForBook(bookID uint, tagType entities.TagType) ([]string, error)
	GetTagsByType(tagType entities.TagType) ([]string, error)
	CreateTag(name string, tagType entities.TagType) error
	ReplaceTags(bookID uint, tagType entities.TagType, names []string) error
}

// ReviewReader lists the reviews of a book.
type ReviewReader interface {
	GetReviewsForBook(bookID uint) ([]entities.ReviewView, error)
}

// SearchField selects what Search matches against.
type SearchField int

const (
	SearchByTitle SearchField = iota + 1
	SearchByAuthor
)

// NewBook is the input for AddBook and for catalog imports.
type NewBook struct {
	Title           string   `json:"title" validate:"required,max=512"`
	Author          string   `json:"author" validate:"required,max=256"`
	PublicationDate string   `json:"publication_date" validate:"required,datetime=2006-01-02"`
	PageCount       int      `json:"page_count" validate:"gt=0"`
	Synopsis        string   `json:"synopsis"`
	Genres          []string `json:"genres" validate:"dive,max=100"`
	Moods           []string `json:"moods" validate:"dive,max=100"`
}

// fieldRules holds the validate tag applied to each editable book field.
var fieldRules = map[books.Field]string{
	books.FieldTitle:           "required,max=512",
	books.FieldAuthor:          "required,max=256",
	books.FieldPublicationDate: "required,datetime=2006-01-02",
	books.FieldPageCount:       "required,numeric",
	books.FieldSynopsis:        "max=10000",
}

type Service struct {
	books    BookStore
	tags     TagStore
	reviews  ReviewReader
	validate *Validator
}

func NewService(bookStore BookStore, tagStore TagStore, reviews ReviewReader) *Service {
	return &Service{
		books:    bookStore,
		tags:     tagStore,
		reviews:  reviews,
		validate: NewValidator(),
	}
}

// Describe joins a loaded book with its genres, moods and review count.
func (s *Service) Describe(book entities.Book) (*entities.BookDetails, error) {
	genres, err := s.tags.GetTagsForBook(book.ID, entities.TagTypeGenre)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	moods, err := s.tags.GetTagsForBook(book.ID, entities.TagTypeMood)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	count, err := s.books.CountReviews(book.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	return &entities.BookDetails{
		Book:        book,
		Genres:      genres,
		Moods:       moods,
		ReviewCount: count,
	}, nil
}

// Details loads a book by ID and describes it.
func (s *Service) Details(bookID uint) (*entities.BookDetails, error) {
	book, err := s.books.GetBookByID(bookID)
	if err != nil {
		return nil, err
	}
	return s.Describe(*book)
}

func (s *Service) Search(field SearchField, query string) ([]entities.Book, error) {
	switch field {
	case SearchByTitle:
		return s.books.SearchByTitle(query)
	case SearchByAuthor:
		return s.books.SearchByAuthor(query)
	default:
		return nil, fmt.Errorf("unknown search field %d", field)
	}
}

// Recommend ranks the books carrying a tag by average rating.
func (s *Service) Recommend(tagName string) ([]entities.Book, error) {
	return s.books.GetRecommendedBooksByTag(tagName)
}

func (s *Service) ReviewedBooks(userID uint) ([]entities.Book, error) {
	return s.books.GetReviewedBooks(userID)
}

func (s *Service) TagsByType(tagType entities.TagType) ([]string, error) {
	return s.tags.GetTagsByType(tagType)
}

// CreateTag adds a tag to the vocabulary after normalizing its name.
func (s *Service) CreateTag(name string, tagType entities.TagType) (string, error) {
	normalized := NormalizeTags([]string{name})
	if len(normalized) == 0 {
		return "", &ValidationError{Fields: map[string]string{"name": "is required"}}
	}
	if err := s.validate.Var("name", normalized[0], "max=100"); err != nil {
		return "", err
	}
	if err := s.tags.CreateTag(normalized[0], tagType); err != nil {
		return "", err
	}
	return normalized[0], nil
}

// checkNewBook normalizes the tag lists of nb in place and validates it.
// A tag may be a genre or a mood, never both.
func (s *Service) checkNewBook(nb *NewBook) error {
	nb.Genres = NormalizeTags(nb.Genres)
	nb.Moods = NormalizeTags(nb.Moods)
	if err := s.validate.Struct(nb); err != nil {
		return err
	}
	if name := sharedTag(nb.Genres, nb.Moods); name != "" {
		return &ValidationError{Fields: map[string]string{"moods": fmt.Sprintf("must not repeat genre %q", name)}}
	}
	return nil
}

// AddBook validates and stores a new book with its tags.
func (s *Service) AddBook(nb NewBook) (*entities.Book, error) {
	if err := s.checkNewBook(&nb); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:           nb.Title,
		Author:          nb.Author,
		PublicationDate: nb.PublicationDate,
		PageCount:       nb.PageCount,
		Synopsis:        nb.Synopsis,
	}
	if err := s.books.InsertBook(book, nb.Genres, nb.Moods); err != nil {
		return nil, err
	}
	return book, nil
}

// ValidateField checks a value for one editable field without storing it.
func (s *Service) ValidateField(field books.Field, value string) error {
	rule, ok := fieldRules[field]
	if !ok {
		return books.ErrInvalidField
	}
	if err := s.validate.Var(field.String(), value, rule); err != nil {
		return err
	}
	if field == books.FieldPageCount {
		pages, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Fields: map[string]string{field.String(): "must be a whole number"}}
		}
		return s.validate.Var(field.String(), pages, "gt=0")
	}
	return nil
}

// UpdateField validates and stores a new value for one book field.
func (s *Service) UpdateField(bookID uint, field books.Field, value string) error {
	if err := s.ValidateField(field, value); err != nil {
		return err
	}
	return s.books.UpdateField(bookID, field, value)
}

// ReplaceTags swaps every tag of one type on a book.
func (s *Service) ReplaceTags(bookID uint, tagType entities.TagType, names []string) error {
	return s.tags.ReplaceTags(bookID, tagType, NormalizeTags(names))
}

func (s *Service) DeleteBook(id uint) (bool, error) {
	return s.books.DeleteBook(id)
}

func (s *Service) Reviews(bookID uint) ([]entities.ReviewView, error) {
	return s.reviews.GetReviewsForBook(bookID)
}

// ReviewBlocks renders every review of a book as a display box.
func (s *Service) ReviewBlocks(bookID uint) ([][]string, error) {
	views, err := s.reviews.GetReviewsForBook(bookID)
	if err != nil {
		return nil, err
	}
	blocks := make([][]string, 0, len(views))
	for _, v := range views {
		blocks = append(blocks, terminal.ReviewBlock(v))
	}
	return blocks, nil
}
