package menus

import (
	"context"

	"github.com/mrlokans/plotpoint/internal/terminal"
)

func (m *Menus) userMenu(ctx context.Context) error {
	session, err := m.session(ctx)
	if err != nil {
		m.console.Println("Error: No user logged in.")
		return nil
	}

	options := []string{"Search for a book", "Get Recommendations", "View your profile"}
	for {
		choice, err := m.choose(terminal.Menu("Welcome to PlotPoint!", options, "Log out"), len(options))
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.searchMenu(ctx, m.bookMenu)
		case 2:
			err = m.recommendationsMenu(ctx)
		case 3:
			err = m.profileMenu(ctx)
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
