// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: book persistence for the catalog service (internal/catalog/service.go)
//   - TagStore: tag vocabulary and book tags (internal/catalog/service.go)
//   - ReviewReader: the reviews of one book (internal/catalog/service.go)
//   - ShelfStore: shelves and reading statistics (internal/menus/stores.go)
//   - ReviewStore: a user's own reviews (internal/menus/stores.go)
//
// ## Export Interfaces
//
//   - ShelfReader: shelf contents and membership details (internal/exporters/generic.go)
//   - BookDescriber: book plus tags and review count (internal/exporters/generic.go)
//   - ShelfExporter: writes a shelf somewhere (internal/exporters/generic.go)
//
// ## Terminal Interfaces
//
//   - LineReader: prompt-and-read input, liner or buffered (internal/terminal/reader.go)
//
// # Adding a New Export Format
//
//  1. Implement ShelfExporter in internal/exporters/
//
//     type CSVExporter struct {
//         shelves ShelfReader
//         catalog BookDescriber
//     }
//
//     func (e *CSVExporter) Export(userID uint, username, shelfName string) (ExportResult, error)
//
//  2. Pass it as menus.Deps.Exporter in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register its entities in database.Models so they are migrated
//
//  4. Add compile-time check in checks.go:
//
//     var _ menus.SomeStore = (*domain.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
