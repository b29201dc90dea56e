package menus

import (
	"context"

	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

func (m *Menus) recommendationsMenu(ctx context.Context) error {
	for {
		choice, err := m.choose(terminal.Menu("Get Recommendations", []string{"Genre-based", "Mood-based"}, "Exit"), 2)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.recommendByType(ctx, entities.TagTypeGenre)
		case 2:
			err = m.recommendByType(ctx, entities.TagTypeMood)
		case 0:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menus) recommendByType(ctx context.Context, tagType entities.TagType) error {
	names, err := m.catalog.TagsByType(tagType)
	if err != nil {
		m.report("load tags", err)
		return nil
	}
	if len(names) == 0 {
		m.console.Println("No tags available for recommendations.")
		return nil
	}

	choice, err := m.choose(terminal.Menu("Choose a "+catalog.TagTypeLabel(tagType), names, "Exit"), len(names))
	if err != nil || choice == 0 {
		return err
	}
	tagName := names[choice-1]

	results, err := m.catalog.Recommend(tagName)
	if err != nil {
		m.report("load recommendations", err)
		return nil
	}
	return m.bookList(ctx, "Top rated: "+tagName, results, m.bookMenu)
}
