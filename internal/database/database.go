package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/plotpoint/internal/entities"
)

var defaultTags = []entities.Tag{
	{Name: "Fantasy", Type: entities.TagTypeGenre},
	{Name: "Sci-Fi", Type: entities.TagTypeGenre},
	{Name: "Mystery", Type: entities.TagTypeGenre},
	{Name: "Thriller", Type: entities.TagTypeGenre},
	{Name: "Romance", Type: entities.TagTypeGenre},
	{Name: "Horror", Type: entities.TagTypeGenre},
	{Name: "Historical Fiction", Type: entities.TagTypeGenre},
	{Name: "Literary Fiction", Type: entities.TagTypeGenre},
	{Name: "Non-Fiction", Type: entities.TagTypeGenre},
	{Name: "Biography", Type: entities.TagTypeGenre},
	{Name: "Adventurous", Type: entities.TagTypeMood},
	{Name: "Dark", Type: entities.TagTypeMood},
	{Name: "Emotional", Type: entities.TagTypeMood},
	{Name: "Funny", Type: entities.TagTypeMood},
	{Name: "Hopeful", Type: entities.TagTypeMood},
	{Name: "Mysterious", Type: entities.TagTypeMood},
	{Name: "Reflective", Type: entities.TagTypeMood},
	{Name: "Tense", Type: entities.TagTypeMood},
}

// Models lists every table the application owns, in migration order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Book{},
		&entities.Tag{},
		&entities.BookTag{},
		&entities.Shelf{},
		&entities.ShelfBook{},
		&entities.Review{},
		&entities.AuditEvent{},
	}
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite file at dbPath, creating its directory when
// missing, migrates the schema and seeds the default tag set. With logSQL
// every statement is traced to stderr; otherwise only errors are reported.
func NewDatabase(dbPath string, logSQL bool) (*Database, error) {
	if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	level := logger.Error
	if logSQL {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedTags(); err != nil {
		return nil, fmt.Errorf("failed to seed tags: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedTags creates the default tags on an empty catalog only, so tags an
// admin removed are not brought back on the next start.
func (d *Database) seedTags() error {
	var count int64
	if err := d.DB.Model(&entities.Tag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tags := make([]entities.Tag, len(defaultTags))
	copy(tags, defaultTags)
	if err := d.DB.Create(&tags).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default tags", len(tags))
	return nil
}
