package menus

import "github.com/mrlokans/plotpoint/internal/entities"

// ShelfStore is everything the screens do with shelves, including the
// reading statistics computed from the Read shelf.
type ShelfStore interface {
	GetUserShelves(userID uint) ([]string, error)
	FindShelfForBook(userID, bookID uint) (string, bool, error)
	AddBookToShelf(userID, bookID uint, shelfName string) error
	GetBooksInShelf(userID uint, shelfName string) ([]entities.Book, error)
	GetShelfEntry(userID, bookID uint, shelfName string) (*entities.ShelfEntry, error)
	RemoveBookFromShelf(userID, bookID uint, shelfName string) (bool, error)

	// Stats
	MostReadTags(userID uint, tagType entities.TagType) ([]entities.TagStat, error)
	BooksReadPerMonth(userID uint) ([]entities.MonthlyCount, error)
	PagesReadPerMonth(userID uint) ([]entities.MonthlyPages, error)
	AverageRatingPerMonth(userID uint) ([]entities.MonthlyRating, error)
	ReadShelfBookCount(userID uint) (int64, error)
}

// ReviewStore is everything the screens do with a user's own reviews.
// Reading the reviews of a book goes through the catalog service.
type ReviewStore interface {
	HasUserReviewedBook(userID, bookID uint) (bool, error)
	UpsertReview(userID, bookID uint, rating int, text string) error
	CountForUser(userID uint) (int64, error)
	AverageRatingForUser(userID uint) (float64, error)
	GetReviewDetails(bookID, userID uint) (*entities.Review, error)
	DeleteReview(bookID, userID uint) (bool, error)
}
