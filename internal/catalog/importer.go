package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// CatalogFile is the bulk import format. It is JSON that may carry comments
// and trailing commas:
//
//	{
//	  // extra vocabulary, in addition to the tags books name
//	  "genres": ["Cyberpunk"],
//	  "moods": ["Bleak"],
//	  "books": [
//	    {"title": "Neuromancer", "author": "William Gibson", ...},
//	  ],
//	}
type CatalogFile struct {
	Genres []string  `json:"genres"`
	Moods  []string  `json:"moods"`
	Books  []NewBook `json:"books"`
}

type ImportResult struct {
	TagsCreated   int
	BooksImported int
	BooksSkipped  int // Already in the catalog with the same title and author
	Errors        []string
}

// ParseCatalogFile decodes a catalog file. Unknown keys are rejected so a
// misspelt field does not silently drop data.
func ParseCatalogFile(data []byte) (*CatalogFile, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	var file CatalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding catalog file: %w", err)
	}
	return &file, nil
}

// Import adds the tags and books of file. Each book is inserted on its own,
// so one bad entry does not stop the rest. With dryRun nothing is written
// and books are only validated.
func (s *Service) Import(file *CatalogFile, dryRun bool) ImportResult {
	var result ImportResult

	for _, group := range []struct {
		tagType entities.TagType
		names   []string
	}{
		{entities.TagTypeGenre, file.Genres},
		{entities.TagTypeMood, file.Moods},
	} {
		for _, name := range NormalizeTags(group.names) {
			if dryRun {
				continue
			}
			if _, err := s.CreateTag(name, group.tagType); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s %q: %v", group.tagType, name, err))
				continue
			}
			result.TagsCreated++
		}
	}

	for i, nb := range file.Books {
		label := fmt.Sprintf("book %d %q", i+1, nb.Title)

		exists, err := s.exists(nb.Title, nb.Author)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		if exists {
			result.BooksSkipped++
			continue
		}

		if dryRun {
			err = s.checkNewBook(&nb)
		} else {
			_, err = s.AddBook(nb)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		result.BooksImported++
	}

	return result
}

// exists reports whether a book with this exact title and author, ignoring
// case, is already catalogued.
func (s *Service) exists(title, author string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}
	candidates, err := s.books.SearchByTitle(title)
	if err != nil {
		return false, err
	}
	for _, book := range candidates {
		if strings.EqualFold(book.Title, title) && strings.EqualFold(book.Author, strings.TrimSpace(author)) {
			return true, nil
		}
	}
	return false, nil
}
