package exporters

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/plotpoint/internal/entities"
)

type fakeShelves struct {
	books   []entities.Book
	entries map[uint]entities.ShelfEntry
	err     error
}

func (f *fakeShelves) GetBooksInShelf(userID uint, shelfName string) ([]entities.Book, error) {
	return f.books, f.err
}

func (f *fakeShelves) GetShelfEntry(userID, bookID uint, shelfName string) (*entities.ShelfEntry, error) {
	entry, ok := f.entries[bookID]
	if !ok {
		return nil, errors.New("not on shelf")
	}
	return &entry, nil
}

type fakeCatalog struct {
	failFor uint
}

func (f *fakeCatalog) Describe(book entities.Book) (*entities.BookDetails, error) {
	if book.ID == f.failFor {
		return nil, errors.New("boom")
	}
	return &entities.BookDetails{Book: book, Genres: []string{"Sci-Fi"}, ReviewCount: 1}, nil
}

var fixedTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestExporter(t *testing.T, shelves ShelfReader, catalog BookDescriber) *MarkdownExporter {
	exporter := NewMarkdownExporter(filepath.Join(t.TempDir(), "exports"), shelves, catalog)
	exporter.now = func() time.Time { return fixedTime }
	return exporter
}

func TestMarkdownExporter_Export(t *testing.T) {
	rating := 4
	shelves := &fakeShelves{
		books: []entities.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", PublicationDate: "1965-08-01", PageCount: 412, Synopsis: "Spice."},
			{ID: 2, Title: "Emma", Author: "Jane Austen", PublicationDate: "1815-12-23", PageCount: 474},
		},
		entries: map[uint]entities.ShelfEntry{
			1: {DateAdded: fixedTime, Rating: &rating},
			2: {DateAdded: fixedTime},
		},
	}
	exporter := newTestExporter(t, shelves, &fakeCatalog{})

	result, err := exporter.Export(1, "alice", "Want to Read")
	require.NoError(t, err)
	assert.Equal(t, 2, result.BooksProcessed)
	assert.Zero(t, result.BooksFailed)
	assert.Equal(t, "alice - Want to Read.md", filepath.Base(result.Path))

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	text := string(content)

	assert.True(t, strings.HasPrefix(text, "---\ncontent_type: reading_shelf\n"))
	assert.Contains(t, text, `shelf: "Want to Read"`)
	assert.Contains(t, text, "exported_at: 2024-06-01")
	assert.Contains(t, text, "books: 2")
	assert.Contains(t, text, "## Dune")
	assert.Contains(t, text, "- **My rating:** 4")
	assert.Contains(t, text, "- **My rating:** -")
	assert.Contains(t, text, "> Spice.")
}

func TestMarkdownExporter_Export_SkipsFailures(t *testing.T) {
	shelves := &fakeShelves{
		books: []entities.Book{{ID: 1, Title: "Good"}, {ID: 2, Title: "Bad"}, {ID: 3, Title: "Orphan"}},
		entries: map[uint]entities.ShelfEntry{
			1: {DateAdded: fixedTime},
			2: {DateAdded: fixedTime},
		},
	}
	exporter := newTestExporter(t, shelves, &fakeCatalog{failFor: 2})

	result, err := exporter.Export(1, "alice", "Read")
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksProcessed)
	assert.Equal(t, 2, result.BooksFailed)

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Good")
	assert.NotContains(t, string(content), "## Bad")
}

func TestMarkdownExporter_Export_ShelfError(t *testing.T) {
	exporter := newTestExporter(t, &fakeShelves{err: errors.New("db down")}, &fakeCatalog{})

	_, err := exporter.Export(1, "alice", "Read")
	assert.Error(t, err)

	_, statErr := os.Stat(exporter.ExportDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMarkdownExporter_Export_Overwrites(t *testing.T) {
	shelves := &fakeShelves{}
	exporter := newTestExporter(t, shelves, &fakeCatalog{})

	_, err := exporter.Export(1, "alice", "Read")
	require.NoError(t, err)

	shelves.books = []entities.Book{{ID: 1, Title: "Dune"}}
	shelves.entries = map[uint]entities.ShelfEntry{1: {DateAdded: fixedTime}}

	result, err := exporter.Export(1, "alice", "Read")
	require.NoError(t, err)

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Dune")
	assert.NotContains(t, string(content), "empty")
}

func TestGenerateShelfMarkdown_Empty(t *testing.T) {
	text := GenerateShelfMarkdown("bob", "Reading", nil, fixedTime)
	assert.Contains(t, text, "# Reading")
	assert.Contains(t, text, "_This shelf is empty._")
	assert.Contains(t, text, "books: 0")
}
