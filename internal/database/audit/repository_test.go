package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/plotpoint/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		UserID:      1,
		Username:    "admin",
		EventType:   entities.AuditEventCatalog,
		Action:      "book_add",
		Description: "Added book: Dune",
		Status:      entities.AuditStatusSuccess,
	}

	require.NoError(t, repo.LogEvent(event))
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	now := time.Now()
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			UserID:    1,
			EventType: entities.AuditEventCatalog,
			Action:    "book_edit",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: now.Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			UserID:    2,
			EventType: entities.AuditEventAuth,
			Action:    "login",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: now.Add(-time.Duration(20+i) * time.Hour),
		}))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(0, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("filter by user", func(t *testing.T) {
		events, total, err := repo.GetEvents(2, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, events, 5)
	})

	t.Run("pagination is newest first", func(t *testing.T) {
		first, total, err := repo.GetEvents(1, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, first, 10)
		assert.True(t, first[0].CreatedAt.After(first[9].CreatedAt))

		rest, _, err := repo.GetEvents(1, 10, 10)
		require.NoError(t, err)
		assert.Len(t, rest, 5)
	})

	t.Run("default limit", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, 0, -1)
		require.NoError(t, err)
		assert.Len(t, events, 20)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.GetEventsByType(entities.AuditEventAuth, 0, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, "login", e.Action)
		}
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	now := time.Now()
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "new", CreatedAt: now}))

	deleted, err := repo.DeleteOldEvents(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "new", events[0].Action)
}
