// Command generate_demo creates a demo database with public domain books, two
// accounts and some reading history.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"log"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/plotpoint/internal/auth"
	"github.com/mrlokans/plotpoint/internal/catalog"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/database"
	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/shelves"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// shelving puts a demo book on the reader's shelf, optionally with a review.
type shelving struct {
	title     string
	shelf     string
	monthsAgo int
	rating    int
	review    string
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, false)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	reviewRepo := reviews.NewRepository(db.DB)
	shelfRepo := shelves.NewRepository(db.DB)
	svc := catalog.NewService(books.NewRepository(db.DB), tags.NewRepository(db.DB), reviewRepo)

	ids := make(map[string]uint)
	for _, nb := range publicDomainBooks() {
		book, err := svc.AddBook(nb)
		if err != nil {
			log.Printf("Failed to save book %s: %v", nb.Title, err)
			continue
		}
		ids[book.Title] = book.ID
		log.Printf("Saved: %s by %s", book.Title, book.Author)
	}

	authService := auth.NewService(db.DB, config.Auth{
		BcryptCost:        bcrypt.DefaultCost,
		MinPasswordLength: config.DefaultMinPasswordLength,
	}, config.DefaultShelves)

	if _, err := authService.Register("admin", "admin", true); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	reader, err := authService.Register("reader", "reader", false)
	if err != nil {
		log.Fatalf("Failed to create reader: %v", err)
	}

	now := time.Now().UTC()
	for _, s := range readingHistory() {
		bookID, ok := ids[s.title]
		if !ok {
			continue
		}
		if err := shelfRepo.AddBookToShelf(reader.ID, bookID, s.shelf); err != nil {
			log.Printf("Failed to shelve %s: %v", s.title, err)
			continue
		}
		// Spread the history over past months so the monthly stats have data
		added := now.AddDate(0, -s.monthsAgo, 0)
		if err := db.DB.Model(&entities.ShelfBook{}).
			Where("book_id = ? AND shelf_id IN (SELECT id FROM shelves WHERE user_id = ?)", bookID, reader.ID).
			Update("date_added", added).Error; err != nil {
			log.Printf("Failed to backdate %s: %v", s.title, err)
		}
		if s.rating == 0 {
			continue
		}
		if err := reviewRepo.UpsertReview(reader.ID, bookID, s.rating, s.review); err != nil {
			log.Printf("Failed to review %s: %v", s.title, err)
		}
	}

	log.Println("Demo database generated successfully!")
	log.Println("Log in as reader/reader or admin/admin")
}

func publicDomainBooks() []catalog.NewBook {
	return []catalog.NewBook{
		{
			Title:           "Meditations",
			Author:          "Marcus Aurelius",
			PublicationDate: "0180-01-01",
			PageCount:       254,
			Synopsis:        "Private notes of a Roman emperor on duty, impermanence and the discipline of the mind.",
			Genres:          []string{"Non-Fiction"},
			Moods:           []string{"Reflective", "Hopeful"},
		},
		{
			Title:           "Pride and Prejudice",
			Author:          "Jane Austen",
			PublicationDate: "1813-01-28",
			PageCount:       432,
			Synopsis:        "Elizabeth Bennet and Mr Darcy misjudge each other across a season of balls, visits and letters.",
			Genres:          []string{"Romance", "Literary Fiction"},
			Moods:           []string{"Funny", "Emotional"},
		},
		{
			Title:           "Frankenstein",
			Author:          "Mary Shelley",
			PublicationDate: "1818-01-01",
			PageCount:       280,
			Synopsis:        "A young scientist builds a living creature and flees from what he has made.",
			Genres:          []string{"Horror", "Sci-Fi"},
			Moods:           []string{"Dark", "Emotional"},
		},
		{
			Title:           "Moby-Dick",
			Author:          "Herman Melville",
			PublicationDate: "1851-10-18",
			PageCount:       635,
			Synopsis:        "Captain Ahab drives the crew of the Pequod after the white whale that took his leg.",
			Genres:          []string{"Literary Fiction"},
			Moods:           []string{"Adventurous", "Dark"},
		},
		{
			Title:           "The Adventures of Sherlock Holmes",
			Author:          "Arthur Conan Doyle",
			PublicationDate: "1892-10-14",
			PageCount:       307,
			Synopsis:        "Twelve cases solved by the consulting detective of Baker Street.",
			Genres:          []string{"Mystery"},
			Moods:           []string{"Mysterious", "Adventurous"},
		},
		{
			Title:           "The Time Machine",
			Author:          "H. G. Wells",
			PublicationDate: "1895-05-07",
			PageCount:       118,
			Synopsis:        "A Victorian inventor travels to the year 802,701 and finds humanity split in two.",
			Genres:          []string{"Sci-Fi"},
			Moods:           []string{"Reflective", "Tense"},
		},
		{
			Title:           "Dracula",
			Author:          "Bram Stoker",
			PublicationDate: "1897-05-26",
			PageCount:       418,
			Synopsis:        "Letters and diaries track a Transylvanian count on his way to London.",
			Genres:          []string{"Horror"},
			Moods:           []string{"Dark", "Tense"},
		},
	}
}

func readingHistory() []shelving {
	return []shelving{
		{title: "Meditations", shelf: "Read", monthsAgo: 3, rating: 5, review: "Short chapters, long echoes."},
		{title: "Frankenstein", shelf: "Read", monthsAgo: 3, rating: 4, review: "The creature steals the book."},
		{title: "Dracula", shelf: "Read", monthsAgo: 2, rating: 3, review: "Slow middle, great ending."},
		{title: "The Time Machine", shelf: "Read", monthsAgo: 1, rating: 4, review: "Tiny book, huge ideas."},
		{title: "Moby-Dick", shelf: "Reading", monthsAgo: 0},
		{title: "Pride and Prejudice", shelf: "Want to Read", monthsAgo: 0},
	}
}
