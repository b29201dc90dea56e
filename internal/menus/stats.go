package menus

import (
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

const noReadBooks = "No books on your Read shelf yet."

func (m *Menus) statsMenu(userID uint) error {
	options := []string{
		"Most read genres",
		"Most read moods",
		"Books read per month",
		"Pages read per month",
		"Average rating per month",
	}
	for {
		choice, err := m.choose(terminal.Menu("Your Stats", options, "Exit"), len(options))
		if err != nil || choice == 0 {
			return err
		}

		var lines []string
		switch choice {
		case 1:
			lines = m.mostReadReport(userID, entities.TagTypeGenre)
		case 2:
			lines = m.mostReadReport(userID, entities.TagTypeMood)
		case 3:
			lines = m.booksPerMonthReport(userID)
		case 4:
			lines = m.pagesPerMonthReport(userID)
		case 5:
			lines = m.ratingPerMonthReport(userID)
		}
		m.console.Print(lines)
		if err := m.console.Pause(); err != nil {
			return err
		}
	}
}

func reportBox(title string, rows []string) []string {
	lines := []string{terminal.Top(), terminal.Center(title), terminal.Separator()}
	if len(rows) == 0 {
		rows = []string{terminal.Row(noReadBooks)}
	}
	lines = append(lines, rows...)
	return append(lines, terminal.Bottom())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (m *Menus) mostReadReport(userID uint, tagType entities.TagType) []string {
	stats, err := m.shelves.MostReadTags(userID, tagType)
	if err != nil {
		m.report("load your stats", err)
	}

	rows := make([]string, 0, len(stats))
	for i, stat := range stats {
		rows = append(rows, terminal.Rowf("[%d] %-18s %3d %-5s %5.1f%%",
			i+1, stat.Name, stat.Count, plural(stat.Count, "read", "reads"), stat.Percent))
	}
	return reportBox("Most Read "+catalog.TagTypeLabel(tagType)+"s", rows)
}

func (m *Menus) booksPerMonthReport(userID uint) []string {
	months, err := m.shelves.BooksReadPerMonth(userID)
	if err != nil {
		m.report("load your stats", err)
	}

	rows := make([]string, 0, len(months))
	for _, month := range months {
		rows = append(rows, terminal.Rowf("%-10s - %3d %s", month.Month, month.Count, plural(month.Count, "book", "books")))
	}
	return reportBox("Books read per month", rows)
}

func (m *Menus) pagesPerMonthReport(userID uint) []string {
	months, err := m.shelves.PagesReadPerMonth(userID)
	if err != nil {
		m.report("load your stats", err)
	}

	rows := make([]string, 0, len(months))
	for _, month := range months {
		rows = append(rows, terminal.Rowf("%-10s - %5d pages", month.Month, month.Pages))
	}
	return reportBox("Pages read per month", rows)
}

func (m *Menus) ratingPerMonthReport(userID uint) []string {
	months, err := m.shelves.AverageRatingPerMonth(userID)
	if err != nil {
		m.report("load your stats", err)
	}

	rows := make([]string, 0, len(months))
	for _, month := range months {
		rows = append(rows, terminal.Rowf("%-10s - %4.2f rating", month.Month, month.AverageRating))
	}
	return reportBox("Average rating per month", rows)
}
