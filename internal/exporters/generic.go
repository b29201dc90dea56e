package exporters

import "github.com/mrlokans/plotpoint/internal/entities"

// ShelfReader lists a shelf and the per-book membership details.
type ShelfReader interface {
	GetBooksInShelf(userID uint, shelfName string) ([]entities.Book, error)
	GetShelfEntry(userID, bookID uint, shelfName string) (*entities.ShelfEntry, error)
}

// BookDescriber completes a book with its tags and review count.
type BookDescriber interface {
	Describe(book entities.Book) (*entities.BookDetails, error)
}

// ShelfExporter writes one user's shelf somewhere and reports what it wrote.
type ShelfExporter interface {
	Export(userID uint, username, shelfName string) (ExportResult, error)
}

type ExportResult struct {
	Path           string `json:"path"`
	BooksProcessed int    `json:"books_processed"`
	BooksFailed    int    `json:"books_failed"`
}

// ShelfItem is one exported book.
type ShelfItem struct {
	Details entities.BookDetails
	Entry   entities.ShelfEntry
}
