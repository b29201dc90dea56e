package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/exporters"
	"github.com/mrlokans/plotpoint/internal/menus"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Catalog service stores
var _ catalog.BookStore = (*books.Repository)(nil)
var _ catalog.TagStore = (*tags.Repository)(nil)
var _ catalog.ReviewReader = (*reviews.Repository)(nil)

// Menu stores
var _ menus.ShelfStore = (*shelves.Repository)(nil)
var _ menus.ReviewStore = (*reviews.Repository)(nil)

// =============================================================================
// Export
// =============================================================================

var _ exporters.ShelfReader = (*shelves.Repository)(nil)
var _ exporters.BookDescriber = (*catalog.Service)(nil)
var _ exporters.ShelfExporter = (*exporters.MarkdownExporter)(nil)

// =============================================================================
// Terminal Input
// =============================================================================

var _ terminal.LineReader = (*terminal.LinerReader)(nil)
var _ terminal.LineReader = (*terminal.BufferedReader)(nil)
