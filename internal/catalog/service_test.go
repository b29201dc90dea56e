package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/plotpoint/internal/database/books"
	"github.com/mrlokans/plotpoint/internal/database/reviews"
	"github.com/mrlokans/plotpoint/internal/database/tags"
	"github.com/mrlokans/plotpoint/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.Tag{},
		&entities.BookTag{},
		&entities.Shelf{},
		&entities.ShelfBook{},
		&entities.Review{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	svc := NewService(books.NewRepository(db), tags.NewRepository(db), reviews.NewRepository(db))
	return svc, db
}

func dune() NewBook {
	return NewBook{
		Title:           "Dune",
		Author:          "Frank Herbert",
		PublicationDate: "1965-08-01",
		PageCount:       412,
		Synopsis:        "A desert planet and its spice.",
		Genres:          []string{"Sci-Fi"},
		Moods:           []string{"Tense", " Adventurous "},
	}
}

func TestService_AddBookAndDetails(t *testing.T) {
	svc, _ := setupTestService(t)

	book, err := svc.AddBook(dune())
	require.NoError(t, err)

	details, err := svc.Details(book.ID)
	require.NoError(t, err)

	want := &entities.BookDetails{
		Book: entities.Book{
			ID:              book.ID,
			Title:           "Dune",
			Author:          "Frank Herbert",
			PublicationDate: "1965-08-01",
			PageCount:       412,
			Synopsis:        "A desert planet and its spice.",
		},
		Genres: []string{"Sci-Fi"},
		Moods:  []string{"Adventurous", "Tense"},
	}
	opts := cmpopts.IgnoreFields(entities.Book{}, "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff(want, details, opts); diff != "" {
		t.Errorf("Details() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_AddBook_Validation(t *testing.T) {
	svc, _ := setupTestService(t)

	nb := dune()
	nb.Title = ""
	nb.PublicationDate = "08/01/1965"
	nb.PageCount = 0

	_, err := svc.AddBook(nb)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["title"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", verr.Fields["publication_date"])
	assert.Equal(t, "must be greater than 0", verr.Fields["page_count"])

	found, err := svc.Search(SearchByTitle, "")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestService_AddBook_DeduplicatesTags(t *testing.T) {
	svc, _ := setupTestService(t)

	nb := dune()
	nb.Genres = []string{"Sci-Fi", "sci-fi", "", "Classic"}
	book, err := svc.AddBook(nb)
	require.NoError(t, err)

	details, err := svc.Details(book.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Classic", "Sci-Fi"}, details.Genres)
}

func TestService_AddBook_TagInBothLists(t *testing.T) {
	svc, _ := setupTestService(t)

	nb := dune()
	nb.Genres = []string{"Sci-Fi", "Gothic"}
	nb.Moods = []string{"gothic"}

	_, err := svc.AddBook(nb)
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `must not repeat genre "Gothic"`, verr.Fields["moods"])
}

func TestService_AddBook_ExistingTagOfOtherType(t *testing.T) {
	svc, _ := setupTestService(t)
	_, err := svc.CreateTag("Dark", entities.TagTypeMood)
	require.NoError(t, err)

	nb := dune()
	nb.Genres = []string{"Dark", "Sci-Fi"}
	_, err = svc.AddBook(nb)
	assert.ErrorIs(t, err, tags.ErrTagTypeClash)

	found, err := svc.Search(SearchByTitle, "Dune")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestService_Search(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.AddBook(dune())
	require.NoError(t, err)

	byTitle, err := svc.Search(SearchByTitle, "dun")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)

	byAuthor, err := svc.Search(SearchByAuthor, "herbert")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	_, err = svc.Search(SearchField(0), "x")
	assert.Error(t, err)
}

func TestService_UpdateField(t *testing.T) {
	svc, _ := setupTestService(t)
	book, err := svc.AddBook(dune())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateField(book.ID, books.FieldPublicationDate, "1965-09-01"))
	require.NoError(t, svc.UpdateField(book.ID, books.FieldPageCount, "500"))

	assert.ErrorIs(t, svc.UpdateField(book.ID, books.FieldPublicationDate, "1965"), ErrValidation)
	assert.ErrorIs(t, svc.UpdateField(book.ID, books.FieldPageCount, "-3"), ErrValidation)
	assert.ErrorIs(t, svc.UpdateField(book.ID, books.FieldPageCount, "1.5"), ErrValidation)
	assert.ErrorIs(t, svc.UpdateField(book.ID, books.FieldTitle, ""), ErrValidation)
	assert.ErrorIs(t, svc.UpdateField(book.ID, books.Field(99), "x"), books.ErrInvalidField)

	details, err := svc.Details(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "1965-09-01", details.PublicationDate)
	assert.Equal(t, 500, details.PageCount)
}

func TestService_ReplaceTagsAndRecommend(t *testing.T) {
	svc, db := setupTestService(t)

	first, err := svc.AddBook(dune())
	require.NoError(t, err)
	secondInput := dune()
	secondInput.Title = "Dune Messiah"
	second, err := svc.AddBook(secondInput)
	require.NoError(t, err)

	require.NoError(t, db.Model(&entities.Book{}).Where("id = ?", second.ID).Update("average_rating", 4.0).Error)

	ranked, err := svc.Recommend("Sci-Fi")
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, second.ID, ranked[0].ID)

	require.NoError(t, svc.ReplaceTags(first.ID, entities.TagTypeGenre, []string{"Fantasy", "fantasy"}))

	ranked, err = svc.Recommend("Sci-Fi")
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	genres, err := svc.TagsByType(entities.TagTypeGenre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy", "Sci-Fi"}, genres)
}

func TestService_CreateTag(t *testing.T) {
	svc, _ := setupTestService(t)

	name, err := svc.CreateTag("  Cozy ", entities.TagTypeMood)
	require.NoError(t, err)
	assert.Equal(t, "Cozy", name)

	moods, err := svc.TagsByType(entities.TagTypeMood)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cozy"}, moods)

	_, err = svc.CreateTag("   ", entities.TagTypeMood)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTag(strings.Repeat("x", 101), entities.TagTypeMood)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ReviewBlocks(t *testing.T) {
	svc, db := setupTestService(t)
	book, err := svc.AddBook(dune())
	require.NoError(t, err)

	user := &entities.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, reviews.NewRepository(db).UpsertReview(user.ID, book.ID, 5, "The spice must flow."))

	blocks, err := svc.ReviewBlocks(book.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Contains(t, strings.Join(blocks[0], "\n"), "Username: alice")

	details, err := svc.Details(book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), details.ReviewCount)
	assert.InDelta(t, 5.0, details.AverageRating, 0.001)
}

func TestService_DeleteBook(t *testing.T) {
	svc, _ := setupTestService(t)
	book, err := svc.AddBook(dune())
	require.NoError(t, err)

	deleted, err := svc.DeleteBook(book.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.Details(book.ID)
	assert.ErrorIs(t, err, books.ErrBookNotFound)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Noir", "NOIR", "", "Café", "Café"})
	if diff := cmp.Diff([]string{"Noir", "Café"}, got); diff != "" {
		t.Errorf("NormalizeTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestTagTypeLabel(t *testing.T) {
	assert.Equal(t, "Genre", TagTypeLabel(entities.TagTypeGenre))
	assert.Equal(t, "Mood", TagTypeLabel(entities.TagTypeMood))
}
