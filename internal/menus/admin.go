package menus

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

// editableFields lists the scalar fields in edit menu order.
var editableFields = []struct {
	field books.Field
	label string
}{
	{books.FieldTitle, "Title"},
	{books.FieldAuthor, "Author"},
	{books.FieldPublicationDate, "Publication Date"},
	{books.FieldPageCount, "Page Count"},
	{books.FieldSynopsis, "Synopsis"},
}

func (m *Menus) adminMenu(ctx context.Context) error {
	session, err := m.session(ctx)
	if err != nil || !session.IsAdmin {
		m.console.Println("Error: Admin access required.")
		return nil
	}

	options := []string{"Add a book", "Delete a book", "Edit a book", "Search for a book", "Add a tag", "Recent activity"}
	for {
		choice, err := m.choose(terminal.Menu("Admin Menu", options, "Log out"), len(options))
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.addBook(ctx)
		case 2:
			err = m.deleteBook(ctx)
		case 3:
			err = m.editBook(ctx)
		case 4:
			err = m.searchMenu(ctx, m.adminBookMenu)
		case 5:
			err = m.addTag(ctx)
		case 6:
			err = m.recentActivity()
		case 0:
			m.audit.LogAuth(m.actor(ctx), "logout", nil)
			session.Logout()
			m.console.Println("Logged out.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// promptField re-prompts until value passes the field's validation rule.
func (m *Menus) promptField(field books.Field, label string) (string, error) {
	return m.console.PromptValid(label, func(value string) error {
		return m.catalog.ValidateField(field, value)
	})
}

func (m *Menus) addBook(ctx context.Context) error {
	m.console.Print(terminal.Title("Add a Book"))

	var nb catalog.NewBook
	var err error
	if nb.Title, err = m.promptField(books.FieldTitle, "Enter title: "); err != nil {
		return err
	}
	if nb.Author, err = m.promptField(books.FieldAuthor, "Enter author: "); err != nil {
		return err
	}
	if nb.PublicationDate, err = m.promptField(books.FieldPublicationDate, "Enter publication date (YYYY-MM-DD): "); err != nil {
		return err
	}
	pages, err := m.promptField(books.FieldPageCount, "Enter page count: ")
	if err != nil {
		return err
	}
	// already validated as a positive integer
	nb.PageCount, _ = strconv.Atoi(pages)
	if nb.Synopsis, err = m.promptField(books.FieldSynopsis, "Enter synopsis: "); err != nil {
		return err
	}
	if nb.Genres, err = m.selectTags(entities.TagTypeGenre); err != nil {
		return err
	}
	if nb.Moods, err = m.selectTags(entities.TagTypeMood); err != nil {
		return err
	}

	book, err := m.catalog.AddBook(nb)
	switch {
	case errors.Is(err, catalog.ErrValidation):
		m.console.Printf("Book not added: %v.\n", err)
	case err != nil:
		m.report("add the book", err)
	default:
		m.console.Printf("\nBook '%s' added successfully!\n", book.Title)
		m.audit.LogCatalog(m.actor(ctx), "book_add", "book", book.ID, fmt.Sprintf("Added '%s' by %s", book.Title, book.Author), nil)
	}
	return nil
}

// selectTags lets the admin pick any number of tags of one type.
func (m *Menus) selectTags(tagType entities.TagType) ([]string, error) {
	names, err := m.catalog.TagsByType(tagType)
	if err != nil {
		m.report("load tags", err)
		return nil, nil
	}
	if len(names) == 0 {
		m.console.Printf("No %ss found in the system.\n", tagType)
		return nil, nil
	}

	lines := []string{terminal.Top(), terminal.Center("Available " + catalog.TagTypeLabel(tagType) + "s"), terminal.Separator()}
	for i, name := range names {
		lines = append(lines, terminal.Rowf("[%d] %s", i+1, name))
	}
	m.console.Print(append(lines, terminal.Bottom()))

	indexes, err := m.console.SelectMany(fmt.Sprintf("\nEnter the numbers of the %ss you want to select (comma-separated): ", tagType), len(names))
	if err != nil {
		return nil, err
	}
	selected := make([]string, len(indexes))
	for i, idx := range indexes {
		selected[i] = names[idx]
	}
	return selected, nil
}

func (m *Menus) deleteBook(ctx context.Context) error {
	m.console.Print(terminal.Title("Delete a Book"))

	book, err := m.findBook()
	if err != nil || book == nil {
		return err
	}

	ok, err := m.console.Confirm(fmt.Sprintf("Delete '%s' by %s?", book.Title, book.Author))
	if err != nil || !ok {
		return err
	}

	deleted, err := m.catalog.DeleteBook(book.ID)
	switch {
	case err != nil:
		m.report("delete the book", err)
	case deleted:
		m.console.Println("Book deleted successfully.")
		m.audit.LogCatalog(m.actor(ctx), "book_delete", "book", book.ID, fmt.Sprintf("Deleted '%s' by %s", book.Title, book.Author), nil)
	default:
		m.console.Println("Book not found.")
	}
	return nil
}

func (m *Menus) editBook(ctx context.Context) error {
	m.console.Print(terminal.Title("Search for a book to edit"))

	book, err := m.findBook()
	if err != nil || book == nil {
		return err
	}
	return m.editBookDetails(ctx, book.ID)
}

func (m *Menus) editBookDetails(ctx context.Context, bookID uint) error {
	options := make([]string, 0, len(editableFields)+2)
	for _, f := range editableFields {
		options = append(options, f.label)
	}
	options = append(options, "Genres", "Moods")

	for {
		card := m.loadCard(bookID)
		if card == nil {
			return nil
		}
		more := append([]string{terminal.Row("What detail would you like to edit?")}, terminal.Options(options, "Exit")...)
		choice, err := m.choose(terminal.Extend(card, more...), len(options))
		if err != nil {
			return err
		}

		switch {
		case choice == 0:
			m.console.Println("Exiting edit book details...")
			return nil
		case choice <= len(editableFields):
			f := editableFields[choice-1]
			value, err := m.promptField(f.field, "Enter new "+f.label+": ")
			if err != nil {
				return err
			}
			err = m.catalog.UpdateField(bookID, f.field, value)
			m.reportEdit(ctx, bookID, f.label, err)
		default:
			tagType := entities.TagTypeGenre
			if choice == len(options) {
				tagType = entities.TagTypeMood
			}
			names, err := m.selectTags(tagType)
			if err != nil {
				return err
			}
			err = m.catalog.ReplaceTags(bookID, tagType, names)
			m.reportEdit(ctx, bookID, catalog.TagTypeLabel(tagType)+"s", err)
		}
	}
}

func (m *Menus) reportEdit(ctx context.Context, bookID uint, label string, err error) {
	switch {
	case errors.Is(err, books.ErrBookNotFound):
		m.console.Println("Book not found.")
	case errors.Is(err, catalog.ErrValidation):
		m.console.Printf("%s not updated: %v.\n", label, err)
	case err != nil:
		m.report("update the book", err)
	default:
		m.console.Printf("%s updated successfully.\n", label)
		m.audit.LogCatalog(m.actor(ctx), "book_edit", "book", bookID, "Updated "+label, nil)
	}
}

func (m *Menus) adminBookMenu(_ context.Context, bookID uint) error {
	for {
		card := m.loadCard(bookID)
		if card == nil {
			return nil
		}
		choice, err := m.choose(terminal.Extend(card, terminal.Options([]string{"View Reviews"}, "Exit")...), 1)
		if err != nil || choice == 0 {
			return err
		}
		if err := m.viewReviews(bookID); err != nil {
			return err
		}
	}
}

func (m *Menus) addTag(ctx context.Context) error {
	choice, err := m.choose(terminal.Menu("Add a Tag", []string{"Genre", "Mood"}, "Exit"), 2)
	if err != nil || choice == 0 {
		return err
	}
	tagType := entities.TagTypeGenre
	if choice == 2 {
		tagType = entities.TagTypeMood
	}

	name, err := m.console.Prompt("Enter " + string(tagType) + " name: ")
	if err != nil {
		return err
	}

	created, err := m.catalog.CreateTag(name, tagType)
	switch {
	case errors.Is(err, catalog.ErrValidation):
		m.console.Printf("Tag not added: %v.\n", err)
	case errors.Is(err, tags.ErrTagTypeClash):
		m.console.Printf("'%s' already exists with a different tag type.\n", name)
	case err != nil:
		m.report("add the tag", err)
	default:
		m.console.Printf("%s '%s' is available.\n", catalog.TagTypeLabel(tagType), created)
		m.audit.LogCatalog(m.actor(ctx), "tag_create", "tag", 0, fmt.Sprintf("%s '%s'", catalog.TagTypeLabel(tagType), created), nil)
	}
	return nil
}
