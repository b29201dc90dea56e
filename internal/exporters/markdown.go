package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/mrlokans/plotpoint/internal/utils"
)

// MarkdownExporter writes a shelf as a single markdown file with YAML front
// matter. The file is replaced atomically, so a reader never sees half of it.
type MarkdownExporter struct {
	ExportDir string
	shelves   ShelfReader
	catalog   BookDescriber
	now       func() time.Time
}

func NewMarkdownExporter(exportDir string, shelves ShelfReader, catalog BookDescriber) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir: exportDir,
		shelves:   shelves,
		catalog:   catalog,
		now:       time.Now,
	}
}

func (exporter *MarkdownExporter) ensureDir() error {
	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

// Export writes <username> - <shelf>.md into ExportDir. Books that cannot be
// described are logged and counted as failed; the rest are still written.
func (exporter *MarkdownExporter) Export(userID uint, username, shelfName string) (ExportResult, error) {
	result := ExportResult{}

	books, err := exporter.shelves.GetBooksInShelf(userID, shelfName)
	if err != nil {
		return result, fmt.Errorf("failed to load shelf %q: %w", shelfName, err)
	}

	items := make([]ShelfItem, 0, len(books))
	for _, book := range books {
		details, err := exporter.catalog.Describe(book)
		if err != nil {
			log.Printf("Failed to describe book '%s' for export: %v", book.Title, err)
			result.BooksFailed++
			continue
		}
		entry, err := exporter.shelves.GetShelfEntry(userID, book.ID, shelfName)
		if err != nil {
			log.Printf("Failed to load shelf entry for '%s': %v", book.Title, err)
			result.BooksFailed++
			continue
		}
		items = append(items, ShelfItem{Details: *details, Entry: *entry})
		result.BooksProcessed++
	}

	if err := exporter.ensureDir(); err != nil {
		return result, err
	}

	outputPath := filepath.Join(exporter.ExportDir, utils.MarkdownFilename(username, shelfName))
	content := GenerateShelfMarkdown(username, shelfName, items, exporter.now())
	if err := atomic.WriteFile(outputPath, strings.NewReader(content)); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	result.Path = outputPath

	log.Printf("Exported shelf '%s' of %s to %s: %d books, %d failed",
		shelfName, username, outputPath, result.BooksProcessed, result.BooksFailed)

	return result, nil
}

// GenerateShelfMarkdown renders a shelf document.
func GenerateShelfMarkdown(username, shelfName string, items []ShelfItem, exportedAt time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: reading_shelf\n")
	fmt.Fprintf(&builder, "shelf: %s\n", utils.QuoteYAML(shelfName))
	fmt.Fprintf(&builder, "owner: %s\n", utils.QuoteYAML(username))
	fmt.Fprintf(&builder, "exported_at: %s\n", exportedAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "books: %d\n", len(items))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", shelfName)

	if len(items) == 0 {
		fmt.Fprintf(&builder, "_This shelf is empty._\n")
		return builder.String()
	}

	for _, item := range items {
		d := item.Details
		fmt.Fprintf(&builder, "## %s\n\n", d.Title)
		fmt.Fprintf(&builder, "- **Author:** %s\n", d.Author)
		fmt.Fprintf(&builder, "- **Published:** %s\n", d.PublicationDate)
		fmt.Fprintf(&builder, "- **Pages:** %d\n", d.PageCount)
		if len(d.Genres) > 0 {
			fmt.Fprintf(&builder, "- **Genres:** %s\n", strings.Join(d.Genres, ", "))
		}
		if len(d.Moods) > 0 {
			fmt.Fprintf(&builder, "- **Moods:** %s\n", strings.Join(d.Moods, ", "))
		}
		fmt.Fprintf(&builder, "- **Added:** %s\n", item.Entry.DateAdded.Format("2006-01-02"))
		fmt.Fprintf(&builder, "- **My rating:** %s\n", strings.TrimSpace(item.Entry.RatingLabel()))
		fmt.Fprintf(&builder, "- **Average rating:** %.2f (%d reviews)\n\n", d.AverageRating, d.ReviewCount)
		if d.Synopsis != "" {
			fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(d.Synopsis, "\n", "\n> "))
		}
	}

	return builder.String()
}
