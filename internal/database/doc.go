// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, default tag seeding
//	├── books/           # Catalog search, recommendations, admin edits
//	├── tags/            # Genre and mood tags and their book associations
//	├── reviews/         # Ratings and reviews, average rating upkeep
//	├── shelves/         # Reading shelves and Read-shelf reports
//	└── users/           # User accounts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./plotpoint.db", false)
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	shelvesRepo := shelves.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(123)
//	err = shelvesRepo.AddBookToShelf(userID, book.ID, "Reading")
//
// # Interface Implementations
//
// Each sub-package implements specific interfaces:
//
//   - books.Repository: implements catalog.BookStore
//   - tags.Repository: implements catalog.TagStore
//   - reviews.Repository: implements catalog.ReviewStore and menus.ReviewStore
//   - shelves.Repository: implements menus.ShelfStore and exporters.ShelfReader
//   - users.Repository: used by auth.Service
//
// # Transactions
//
// Multi-statement writes run inside db.Transaction so that a failure leaves
// nothing behind: book insertion, tag replacement, book deletion, shelf moves,
// review writes with their average rating refresh, and registration. Helpers
// that must join a caller's transaction take the *gorm.DB explicitly
// (tags.EnsureTags) or offer WithTx (users, shelves).
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
