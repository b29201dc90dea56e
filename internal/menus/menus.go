// Package menus is the interactive screen tree of the terminal application.
//
// Every screen is a loop that renders a box, reads a choice and dispatches.
// Screens return only input errors: terminal.ErrInputClosed unwinds every
// loop up to Run, which treats it as a normal exit. Storage failures are
// logged and shown as an empty result so the session keeps going.
package menus

import (
	"context"
	"errors"
	"log"

	"github.com/mrlokans/plotpoint/internal/audit"
	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/exporters"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

const choicePrompt = "\nEnter your choice: "

var errNoSession = errors.New("no user logged in")

type Deps struct {
	Console  *terminal.Console
	Auth     *auth.Service
	Catalog  *catalog.Service
	Shelves  ShelfStore
	Reviews  ReviewStore
	Exporter exporters.ShelfExporter
	Audit    *audit.Service // Optional; nil records nothing
}

type Menus struct {
	console  *terminal.Console
	auth     *auth.Service
	catalog  *catalog.Service
	shelves  ShelfStore
	reviews  ReviewStore
	exporter exporters.ShelfExporter
	audit    *audit.Service
}

func New(deps Deps) *Menus {
	return &Menus{
		console:  deps.Console,
		auth:     deps.Auth,
		catalog:  deps.Catalog,
		shelves:  deps.Shelves,
		reviews:  deps.Reviews,
		exporter: deps.Exporter,
		audit:    deps.Audit,
	}
}

// Run shows the main menu until the user exits or input ends.
func (m *Menus) Run(ctx context.Context) error {
	err := m.mainMenu(ctx)
	if terminal.IsClosed(err) {
		m.console.Println()
		return nil
	}
	return err
}

// session returns the logged in user of ctx.
func (m *Menus) session(ctx context.Context) (*auth.Session, error) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, errNoSession
	}
	return session, nil
}

// actor names the logged in user of ctx for the activity log.
func (m *Menus) actor(ctx context.Context) audit.Actor {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return audit.Actor{}
	}
	return audit.Actor{UserID: session.UserID, Username: session.Username}
}

// choose renders lines and reads a choice in [0, max].
func (m *Menus) choose(lines []string, max int) (int, error) {
	m.console.Print(lines)
	return m.console.Choice(choicePrompt, 0, max)
}

// report logs a storage failure and tells the user in one line.
func (m *Menus) report(action string, err error) {
	log.Printf("Failed to %s: %v", action, err)
	m.console.Printf("Could not %s. Please try again.\n", action)
}
