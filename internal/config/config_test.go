package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Database.LogSQL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultMinPasswordLength, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, DefaultShelves, cfg.Shelves.Defaults)
	assert.Empty(t, cfg.Terminal.HistoryFile)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)
	assert.Equal(t, 90*24*time.Hour, cfg.Audit.Retention())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("MIN_PASSWORD_LENGTH", "8")
	t.Setenv("DEFAULT_SHELVES", "Read, Abandoned ,,Reading")
	t.Setenv("TERMINAL_PLAIN", "true")
	t.Setenv("AUTH_LOCKOUT_DURATION", "90s")

	cfg := NewConfig()

	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
	assert.Equal(t, []string{"Read", "Abandoned", "Reading"}, cfg.Shelves.Defaults)
	assert.True(t, cfg.Terminal.Plain)
	assert.Equal(t, 90*time.Second, cfg.Auth.LockoutDuration)
}

func TestNewConfig_AuditRetentionDisabled(t *testing.T) {
	t.Setenv("AUDIT_RETENTION_DAYS", "0")

	cfg := NewConfig()

	assert.Zero(t, cfg.Audit.RetentionDays)
	assert.Zero(t, cfg.Audit.Retention())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
}
