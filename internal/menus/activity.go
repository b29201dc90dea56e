package menus

import (
	"github.com/mrlokans/plotpoint/internal/entities"
	"github.com/mrlokans/plotpoint/internal/terminal"
)

const activityLimit = 20

// activityFilters are the event types offered after "All", in menu order.
var activityFilters = []struct {
	eventType entities.AuditEventType
	label     string
}{
	{entities.AuditEventAuth, "Logins and accounts"},
	{entities.AuditEventCatalog, "Catalog changes"},
	{entities.AuditEventImport, "Imports"},
	{entities.AuditEventExport, "Exports"},
}

// recentActivity lets the admin pick an event type and lists the latest
// matching events, newest first.
func (m *Menus) recentActivity() error {
	options := []string{"All"}
	for _, f := range activityFilters {
		options = append(options, f.label)
	}

	for {
		choice, err := m.choose(terminal.Menu("Recent Activity", options, "Exit"), len(options))
		if err != nil || choice == 0 {
			return err
		}

		var events []entities.AuditEvent
		title := "Recent Activity"
		if choice == 1 {
			events, err = m.audit.Recent(activityLimit)
		} else {
			f := activityFilters[choice-2]
			title = f.label
			events, err = m.audit.RecentByType(f.eventType, activityLimit)
		}
		if err != nil {
			m.report("load recent activity", err)
			continue
		}
		if err := m.showActivity(title, events); err != nil {
			return err
		}
	}
}

func (m *Menus) showActivity(title string, events []entities.AuditEvent) error {
	if len(events) == 0 {
		m.console.Print(terminal.Title("No recent activity"))
		return m.console.Pause()
	}

	lines := []string{terminal.Top(), terminal.Center(title), terminal.Separator()}
	for _, e := range events {
		lines = append(lines, terminal.Rowf("%s %s %s", e.CreatedAt.Format("2006-01-02 15:04"), actorName(e), e.Action))
		if e.Description != "" {
			lines = append(lines, terminal.Row("    "+e.Description))
		}
		if e.Status == entities.AuditStatusFailed {
			lines = append(lines, terminal.Row("    failed: "+e.ErrorMsg))
		}
	}
	m.console.Print(append(lines, terminal.Bottom()))
	return m.console.Pause()
}

func actorName(e entities.AuditEvent) string {
	if e.Username == "" {
		return "(cli)"
	}
	return e.Username
}
