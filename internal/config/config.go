package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Auth
		Shelves
		Terminal
		Export
		Audit
	}

	Database struct {
		Path   string
		LogSQL bool // Trace every statement to stderr
	}
	Auth struct {
		BcryptCost        int
		MinPasswordLength int
		MaxLoginAttempts  int           // Failed logins per username before lockout
		LockoutDuration   time.Duration // How long a username stays locked
	}
	Shelves struct {
		Defaults []string // Provisioned for every new account, in display order
	}
	Terminal struct {
		HistoryFile string // Empty disables line history
		Plain       bool   // Force the buffered reader even on a TTY
	}
	Export struct {
		Dir string
	}
	Audit struct {
		RetentionDays int // Activity older than this is pruned at startup; 0 keeps everything
	}
)

// Retention returns the audit retention as a duration, zero when disabled.
func (a Audit) Retention() time.Duration {
	if a.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(a.RetentionDays) * 24 * time.Hour
}

// splitList parses a comma-separated env value, dropping empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// NewConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func NewConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_sql", false)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("min_password_length", DefaultMinPasswordLength)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_lockout_duration", 5*time.Minute)

	v.SetDefault("default_shelves", strings.Join(DefaultShelves, ","))
	v.SetDefault("terminal_history_file", "")
	v.SetDefault("terminal_plain", false)
	v.SetDefault("export_dir", "./exports")
	v.SetDefault("audit_retention_days", 90)

	shelves := splitList(v.GetString("DEFAULT_SHELVES"))
	if len(shelves) == 0 {
		shelves = DefaultShelves
	}

	return &Config{
		Database: Database{
			Path:   v.GetString("DATABASE_PATH"),
			LogSQL: v.GetBool("LOG_SQL"),
		},
		Auth: Auth{
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MinPasswordLength: v.GetInt("MIN_PASSWORD_LENGTH"),
			MaxLoginAttempts:  v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Shelves: Shelves{
			Defaults: shelves,
		},
		Terminal: Terminal{
			HistoryFile: v.GetString("TERMINAL_HISTORY_FILE"),
			Plain:       v.GetBool("TERMINAL_PLAIN"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
