package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./plotpoint.db"

	// DefaultMinPasswordLength is the shortest password sign-up accepts
	DefaultMinPasswordLength = 3
)

// DefaultShelves is the shelf set every account starts with.
var DefaultShelves = []string{"Read", "Reading", "Want to Read"}
