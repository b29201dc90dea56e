// Package audit records who changed what: logins, sign-ups, catalog edits,
// imports and exports. Recording never fails the action being recorded;
// storage errors are only logged.
package audit

import (
	"encoding/json"
	"log"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/plotpoint/internal/database/audit"
	"github.com/mrlokans/plotpoint/internal/entities"
)

const (
	maxErrorLen       = 500
	maxDescriptionLen = 500
)

// Actor identifies who performed an action. The zero Actor stands for the
// command line.
type Actor struct {
	UserID   uint
	Username string
}

// Service provides high-level audit logging functionality. A nil *Service
// records nothing.
type Service struct {
	repo *audit.Repository
	now  func() time.Time
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}
	return s.repo.LogEvent(event)
}

func (s *Service) record(event *entities.AuditEvent, err error) {
	if s == nil {
		return
	}
	event.Status = entities.AuditStatusSuccess
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}
	if logErr := s.Log(event); logErr != nil {
		log.Printf("Failed to log audit event %s: %v", event.Action, logErr)
	}
}

// LogAuth records a login, failed login, sign-up or logout.
func (s *Service) LogAuth(actor Actor, action string, err error) {
	s.record(&entities.AuditEvent{
		UserID:    actor.UserID,
		Username:  actor.Username,
		EventType: entities.AuditEventAuth,
		Action:    action,
	}, err)
}

// LogCatalog records a change to a book or tag.
func (s *Service) LogCatalog(actor Actor, action, entityType string, entityID uint, description string, err error) {
	event := &entities.AuditEvent{
		UserID:      actor.UserID,
		Username:    actor.Username,
		EventType:   entities.AuditEventCatalog,
		Action:      action,
		Description: truncate(description, maxDescriptionLen),
		EntityType:  entityType,
	}
	if entityID != 0 {
		event.EntityID = &entityID
	}
	s.record(event, err)
}

// LogImport records a catalog import with its counters.
func (s *Service) LogImport(actor Actor, source string, imported, skipped, failed int, err error) {
	event := &entities.AuditEvent{
		UserID:      actor.UserID,
		Username:    actor.Username,
		EventType:   entities.AuditEventImport,
		Action:      "catalog_import",
		Description: "Imported books from " + source,
		EntityType:  "book",
	}

	metadata := map[string]any{
		"books_imported": imported,
		"books_skipped":  skipped,
		"books_failed":   failed,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	s.record(event, err)
}

// LogExport records a shelf export.
func (s *Service) LogExport(actor Actor, shelfName, path string, err error) {
	s.record(&entities.AuditEvent{
		UserID:      actor.UserID,
		Username:    actor.Username,
		EventType:   entities.AuditEventExport,
		Action:      "shelf_export",
		Description: truncate("Exported "+shelfName+" to "+path, maxDescriptionLen),
		EntityType:  "shelf",
	}, err)
}

// Recent returns the latest events of every user.
func (s *Service) Recent(limit int) ([]entities.AuditEvent, error) {
	if s == nil {
		return nil, nil
	}
	events, _, err := s.repo.GetEvents(0, limit, 0)
	return events, err
}

// RecentByType returns the latest events of one type across all users.
func (s *Service) RecentByType(eventType entities.AuditEventType, limit int) ([]entities.AuditEvent, error) {
	if s == nil {
		return nil, nil
	}
	events, _, err := s.repo.GetEventsByType(eventType, 0, limit, 0)
	return events, err
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := s.now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens s to at most maxLen bytes, ending in "...", without
// splitting a UTF-8 sequence.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
