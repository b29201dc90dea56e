package menus

import (
	"context"
	"errors"

	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// loadCard renders the current state of a book. It returns nil, after
// telling the user, when the book cannot be shown.
func (m *Menus) loadCard(bookID uint) []string {
	details, err := m.catalog.Details(bookID)
	if errors.Is(err, books.ErrBookNotFound) {
		m.console.Println("Book not found.")
		return nil
	}
	if err != nil {
		m.report("load the book", err)
		return nil
	}
	return terminal.BookCard(*details)
}

func (m *Menus) bookMenu(ctx context.Context, bookID uint) error {
	session, err := m.session(ctx)
	if err != nil {
		m.console.Println("Error: No user logged in.")
		return nil
	}

	options := []string{"Add to Shelf", "Rate and Review", "View Reviews"}
	for {
		card := m.loadCard(bookID)
		if card == nil {
			return nil
		}
		m.console.Println()
		choice, err := m.choose(terminal.Extend(card, terminal.Options(options, "Exit")...), len(options))
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.addToShelf(session.UserID, bookID)
		case 2:
			err = m.rateAndReview(session.UserID, bookID)
		case 3:
			err = m.viewReviews(bookID)
		case 0:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menus) addToShelf(userID, bookID uint) error {
	names, err := m.shelves.GetUserShelves(userID)
	if err != nil {
		m.report("load your shelves", err)
		return nil
	}

	lines := []string{terminal.Top(), terminal.Center("Your Shelves"), terminal.Separator(), terminal.Row("Choose a shelf to add book to:")}
	if len(names) == 0 {
		lines = append(lines, terminal.Row("No shelves available."))
	}
	lines = append(lines, terminal.Options(names, "Exit")...)
	m.console.Print(lines)

	choice, err := m.console.Choice("\nSelect a shelf: ", 0, len(names))
	if err != nil || choice == 0 {
		return err
	}
	shelfName := names[choice-1]

	previous, found, err := m.shelves.FindShelfForBook(userID, bookID)
	if err != nil {
		m.report("check your shelves", err)
		return nil
	}

	err = m.shelves.AddBookToShelf(userID, bookID, shelfName)
	switch {
	case errors.Is(err, shelves.ErrShelfNotFound):
		m.console.Println("Shelf not found.")
		return nil
	case err != nil:
		m.report("add the book to your shelf", err)
		return nil
	}

	if found && previous != shelfName {
		m.console.Printf("Book moved from your %s shelf to your %s shelf!\n", previous, shelfName)
	} else {
		m.console.Printf("Book added to your %s shelf!\n", shelfName)
	}
	return m.console.Pause()
}

func (m *Menus) rateAndReview(userID, bookID uint) error {
	reviewed, err := m.reviews.HasUserReviewedBook(userID, bookID)
	if err != nil {
		m.report("check your reviews", err)
		return nil
	}

	if reviewed {
		lines := []string{
			terminal.Top(),
			terminal.Center("Rate and Review"),
			terminal.Separator(),
			terminal.Row("You have already reviewed this book."),
		}
		choice, err := m.choose(append(lines, terminal.Options([]string{"Update rating and review"}, "Cancel")...), 1)
		if err != nil || choice == 0 {
			return err
		}
	} else {
		m.console.Print(terminal.Title("Rate and Review"))
	}

	rating, err := m.console.Choice("\nRate this book out of 5: ", entities.MinRating, entities.MaxRating)
	if err != nil {
		return err
	}
	text, err := m.console.Prompt("Write your review: ")
	if err != nil {
		return err
	}

	if err := m.reviews.UpsertReview(userID, bookID, rating, text); err != nil {
		m.report("save your review", err)
		return nil
	}
	m.console.Println("\nThank you for rating and reviewing the book!")
	return nil
}

func (m *Menus) viewReviews(bookID uint) error {
	m.console.Print(terminal.Title("Reviews"))

	blocks, err := m.catalog.ReviewBlocks(bookID)
	if err != nil {
		m.report("load reviews", err)
		blocks = nil
	}
	if len(blocks) == 0 {
		m.console.Print([]string{terminal.Top(), terminal.Row("No reviews available for this book."), terminal.Bottom()})
	}
	for _, block := range blocks {
		m.console.Print(block)
	}
	return m.console.Pause()
}
