package menus

import (
	"context"
	"log"
	"time"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

const dateLayout = "2006-01-02"

func (m *Menus) profileMenu(ctx context.Context) error {
	session, err := m.session(ctx)
	if err != nil {
		m.console.Println("No user is logged in.")
		return nil
	}

	options := []string{"View your shelves", "View your stats", "View all rated books", "Export a shelf"}
	for {
		header, ok := m.profileHeader(session)
		if !ok {
			return nil
		}
		choice, err := m.choose(append(header, terminal.Options(options, "Exit")...), len(options))
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.shelvesMenu(session)
		case 2:
			err = m.statsMenu(session.UserID)
		case 3:
			err = m.ratedBooksMenu(ctx, session)
		case 4:
			err = m.exportShelf(session)
		case 0:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// profileHeader renders the account summary. Counters that fail to load are
// logged and shown as zero.
func (m *Menus) profileHeader(session *auth.Session) ([]string, bool) {
	user, err := m.auth.GetUser(session)
	if err != nil {
		m.report("load your profile", err)
		return nil, false
	}

	reviewCount, err := m.reviews.CountForUser(user.ID)
	if err != nil {
		log.Printf("Failed to count reviews for user %d: %v", user.ID, err)
	}
	averageRating, err := m.reviews.AverageRatingForUser(user.ID)
	if err != nil {
		log.Printf("Failed to average ratings for user %d: %v", user.ID, err)
	}
	readCount, err := m.shelves.ReadShelfBookCount(user.ID)
	if err != nil {
		log.Printf("Failed to count read books for user %d: %v", user.ID, err)
	}

	return []string{
		terminal.Top(),
		terminal.Center("Your Profile"),
		terminal.Separator(),
		terminal.Row("Name: " + user.Username),
		terminal.Row("Joined in: " + user.JoinedAt.Format(dateLayout)),
		terminal.Rowf("Number of ratings and reviews: %d", reviewCount),
		terminal.Rowf("Average rating: %.2f", averageRating),
		terminal.Rowf("Number of books read: %d", readCount),
		terminal.Separator(),
	}, true
}

func (m *Menus) shelvesMenu(session *auth.Session) error {
	for {
		names, err := m.shelves.GetUserShelves(session.UserID)
		if err != nil {
			m.report("load your shelves", err)
			return nil
		}

		choice, err := m.choose(terminal.Menu("Your Shelves", names, "Exit"), len(names))
		if err != nil || choice == 0 {
			return err
		}
		if err := m.shelfMenu(session.UserID, names[choice-1]); err != nil {
			return err
		}
	}
}

func (m *Menus) shelfMenu(userID uint, shelfName string) error {
	title := shelfName + " Shelf"
	for {
		shelfBooks, err := m.shelves.GetBooksInShelf(userID, shelfName)
		if err != nil {
			m.report("load the shelf", err)
			return nil
		}
		if len(shelfBooks) == 0 {
			m.console.Print([]string{terminal.Top(), terminal.Center(title), terminal.Separator(), terminal.Row("No books in this shelf."), terminal.Bottom()})
			return m.console.Pause()
		}

		entries := make([]entities.ShelfEntry, len(shelfBooks))
		lines := []string{terminal.Top(), terminal.Center(title), terminal.Separator()}
		for i, book := range shelfBooks {
			if entry, err := m.shelves.GetShelfEntry(userID, book.ID, shelfName); err != nil {
				log.Printf("Failed to load shelf entry for book %d: %v", book.ID, err)
			} else {
				entries[i] = *entry
			}
			lines = append(lines,
				terminal.Rowf("[%d] Title: %s", i+1, book.Title),
				terminal.Row("    Author: "+book.Author),
				terminal.Rowf("    User Rating: %s/%d", entries[i].RatingLabel(), entities.MaxRating),
				terminal.Row("    Date Added: "+formatDate(entries[i].DateAdded)),
				terminal.Separator(),
			)
		}
		options := []string{"Select a book to view details", "Remove a book from this shelf"}
		choice, err := m.choose(append(lines, terminal.Options(options, "Exit")...), len(options))
		if err != nil || choice == 0 {
			return err
		}

		pick, err := m.console.Choice("Enter the book number (0 to cancel): ", 0, len(shelfBooks))
		if err != nil {
			return err
		}
		if pick == 0 {
			continue
		}
		book := shelfBooks[pick-1]

		switch choice {
		case 1:
			if err := m.showShelfBook(book.ID, shelfName, entries[pick-1]); err != nil {
				return err
			}
		case 2:
			removed, err := m.shelves.RemoveBookFromShelf(userID, book.ID, shelfName)
			if err != nil {
				m.report("remove the book from the shelf", err)
				continue
			}
			if removed {
				m.console.Println("\nBook successfully removed from shelf.")
			}
		}
	}
}

func (m *Menus) showShelfBook(bookID uint, shelfName string, entry entities.ShelfEntry) error {
	card := m.loadCard(bookID)
	if card == nil {
		return nil
	}
	m.console.Print(terminal.Extend(card,
		terminal.Row("Shelf: "+shelfName),
		terminal.Row("Date Added: "+formatDate(entry.DateAdded)),
		terminal.Rowf("Your Rating: %s/%d", entry.RatingLabel(), entities.MaxRating),
		terminal.Bottom(),
	))
	return m.console.Pause()
}

func (m *Menus) ratedBooksMenu(ctx context.Context, session *auth.Session) error {
	for {
		rated, err := m.catalog.ReviewedBooks(session.UserID)
		if err != nil {
			m.report("load your rated books", err)
			return nil
		}
		if len(rated) == 0 {
			m.console.Print([]string{terminal.Top(), terminal.Center("Your Rated Books"), terminal.Separator(), terminal.Row("No reviewed books."), terminal.Bottom()})
			return m.console.Pause()
		}

		reviews := make([]entities.Review, len(rated))
		lines := []string{terminal.Top(), terminal.Center("Your Rated Books"), terminal.Separator()}
		for i, book := range rated {
			if review, err := m.reviews.GetReviewDetails(book.ID, session.UserID); err != nil {
				log.Printf("Failed to load review of book %d: %v", book.ID, err)
			} else {
				reviews[i] = *review
			}
			lines = append(lines,
				terminal.Rowf("[%d] Title: %s", i+1, book.Title),
				terminal.Row("    Author: "+book.Author),
				terminal.Rowf("    User Rating: %d/%d", reviews[i].Rating, entities.MaxRating),
				terminal.Row("    Review Date: "+formatDate(reviews[i].Date)),
				terminal.Row("    Review: "+reviews[i].ReviewText),
				terminal.Separator(),
			)
		}
		options := []string{"Select a book to view details", "Remove rating and review"}
		choice, err := m.choose(append(lines, terminal.Options(options, "Exit")...), len(options))
		if err != nil || choice == 0 {
			return err
		}

		pick, err := m.console.Choice("Enter the book number (0 to cancel): ", 0, len(rated))
		if err != nil {
			return err
		}
		if pick == 0 {
			continue
		}
		book := rated[pick-1]

		switch choice {
		case 1:
			if err := m.bookMenu(ctx, book.ID); err != nil {
				return err
			}
		case 2:
			ok, err := m.console.Confirm("Remove your rating and review of " + book.Title + "?")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			deleted, err := m.reviews.DeleteReview(book.ID, session.UserID)
			if err != nil {
				m.report("remove your review", err)
				continue
			}
			if deleted {
				m.console.Println("\nRating and review removed.")
			}
		}
	}
}

func (m *Menus) exportShelf(session *auth.Session) error {
	names, err := m.shelves.GetUserShelves(session.UserID)
	if err != nil {
		m.report("load your shelves", err)
		return nil
	}

	choice, err := m.choose(terminal.Menu("Export a Shelf", names, "Exit"), len(names))
	if err != nil || choice == 0 {
		return err
	}

	result, err := m.exporter.Export(session.UserID, session.Username, names[choice-1])
	actor := audit.Actor{UserID: session.UserID, Username: session.Username}
	if err != nil {
		m.audit.LogExport(actor, names[choice-1], "", err)
		m.report("export the shelf", err)
		return nil
	}
	m.audit.LogExport(actor, names[choice-1], result.Path, nil)
	m.console.Printf("\nExported %d books to %s\n", result.BooksProcessed, result.Path)
	if result.BooksFailed > 0 {
		m.console.Printf("%d books could not be exported.\n", result.BooksFailed)
	}
	return m.console.Pause()
}

// formatDate shows a placeholder for dates that failed to load.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}
