package menus

import (
	"context"

	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// bookOpener shows one book. Users and admins get different book screens.
type bookOpener func(ctx context.Context, bookID uint) error

func (m *Menus) searchMenu(ctx context.Context, open bookOpener) error {
	for {
		choice, err := m.choose(terminal.Menu("Search For a Book", []string{"Search by Title", "Search by Author"}, "Exit"), 2)
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}

		field, label := catalog.SearchByTitle, "Enter book title: "
		if choice == 2 {
			field, label = catalog.SearchByAuthor, "Enter author name: "
		}
		query, err := m.console.Prompt(label)
		if err != nil {
			return err
		}

		results, err := m.catalog.Search(field, query)
		if err != nil {
			m.report("search books", err)
			continue
		}
		if err := m.bookList(ctx, "Search Results", results, open); err != nil {
			return err
		}
	}
}

// bookList lets the user open books from results until they exit.
func (m *Menus) bookList(ctx context.Context, title string, results []entities.Book, open bookOpener) error {
	if len(results) == 0 {
		m.console.Print(terminal.Title("No books found"))
		return m.console.Pause()
	}

	for {
		book, err := m.chooseBook(title, results)
		if err != nil || book == nil {
			return err
		}
		if err := open(ctx, book.ID); err != nil {
			return err
		}
	}
}

// chooseBook lists books with their average ratings and returns the chosen
// one, or nil when the user exits.
func (m *Menus) chooseBook(title string, results []entities.Book) (*entities.Book, error) {
	lines := []string{terminal.Top(), terminal.Center(title), terminal.Separator()}
	for i, book := range results {
		lines = append(lines,
			terminal.Rowf("[%d] %s by %s", i+1, book.Title, book.Author),
			terminal.Rowf("    Average rating: %.2f", book.AverageRating),
			terminal.Separator(),
		)
	}
	lines = append(lines, terminal.Row("[0] Exit"), terminal.Bottom())
	m.console.Print(lines)

	choice, err := m.console.Choice("\nSelect a book to view details: ", 0, len(results))
	if err != nil || choice == 0 {
		return nil, err
	}
	return &results[choice-1], nil
}

// findBook searches by title and lets the user pick one result. It returns
// nil when nothing matched or the user exits.
func (m *Menus) findBook() (*entities.Book, error) {
	query, err := m.console.Prompt("Enter book title: ")
	if err != nil {
		return nil, err
	}

	results, err := m.catalog.Search(catalog.SearchByTitle, query)
	if err != nil {
		m.report("search books", err)
		return nil, nil
	}
	if len(results) == 0 {
		m.console.Print(terminal.Title("No books found"))
		return nil, m.console.Pause()
	}
	return m.chooseBook("Search Results", results)
}
