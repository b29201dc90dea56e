package shelves

import (
	"sort"
	"time"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// Reading reports. All of them look only at the user's Read shelf; months are
// formatted YYYY-MM in the repository's time zone and returned in ascending
// order.

// MostReadTags counts the tags of one type across the books on the Read
// shelf, most frequent first. Percent is relative to the sum of all counts.
func (r *Repository) MostReadTags(userID uint, tagType entities.TagType) ([]entities.TagStat, error) {
	var stats []entities.TagStat
	err := r.db.Raw(`
		SELECT tags.tag_name AS name, COUNT(*) AS count
		FROM shelf_books
		JOIN shelves ON shelves.id = shelf_books.shelf_id
		JOIN book_tags ON book_tags.book_id = shelf_books.book_id
		JOIN tags ON tags.tag_name = book_tags.tag_name
		WHERE shelves.user_id = ? AND shelves.name = ? AND tags.tag_type = ?
		GROUP BY tags.tag_name
		ORDER BY count DESC, name ASC
	`, userID, entities.ReadShelfName, tagType).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	total := 0
	for _, s := range stats {
		total += s.Count
	}
	for i := range stats {
		if total > 0 {
			stats[i].Percent = float64(stats[i].Count) / float64(total) * 100
		}
	}
	return stats, nil
}

// datedValue is one dated row feeding a monthly report.
type datedValue struct {
	At    time.Time
	Value float64
}

// byMonth groups rows by calendar month in r.loc. SQLite's strftime would
// bucket the stored offsets in UTC instead.
func (r *Repository) byMonth(rows []datedValue) (months []string, sums map[string]float64, counts map[string]int) {
	loc := r.loc
	if loc == nil {
		loc = time.Local
	}
	sums = make(map[string]float64)
	counts = make(map[string]int)
	for _, row := range rows {
		month := row.At.In(loc).Format("2006-01")
		if counts[month] == 0 {
			months = append(months, month)
		}
		sums[month] += row.Value
		counts[month]++
	}
	sort.Strings(months)
	return months, sums, counts
}

// readShelfRows loads the date each book was put on the Read shelf together
// with its page count.
func (r *Repository) readShelfRows(userID uint) ([]datedValue, error) {
	var rows []datedValue
	err := r.db.Raw(`
		SELECT shelf_books.date_added AS at, books.page_count AS value
		FROM shelf_books
		JOIN shelves ON shelves.id = shelf_books.shelf_id
		JOIN books ON books.id = shelf_books.book_id
		WHERE shelves.user_id = ? AND shelves.name = ?
	`, userID, entities.ReadShelfName).Scan(&rows).Error
	return rows, err
}

// BooksReadPerMonth counts books by the month they were put on the Read shelf.
func (r *Repository) BooksReadPerMonth(userID uint) ([]entities.MonthlyCount, error) {
	rows, err := r.readShelfRows(userID)
	if err != nil {
		return nil, err
	}
	months, _, counts := r.byMonth(rows)
	out := make([]entities.MonthlyCount, 0, len(months))
	for _, m := range months {
		out = append(out, entities.MonthlyCount{Month: m, Count: counts[m]})
	}
	return out, nil
}

// PagesReadPerMonth sums page counts by the month books were put on the Read
// shelf.
func (r *Repository) PagesReadPerMonth(userID uint) ([]entities.MonthlyPages, error) {
	rows, err := r.readShelfRows(userID)
	if err != nil {
		return nil, err
	}
	months, sums, _ := r.byMonth(rows)
	out := make([]entities.MonthlyPages, 0, len(months))
	for _, m := range months {
		out = append(out, entities.MonthlyPages{Month: m, Pages: int(sums[m])})
	}
	return out, nil
}

// AverageRatingPerMonth averages the user's ratings of books on the Read
// shelf, grouped by the month of the review.
func (r *Repository) AverageRatingPerMonth(userID uint) ([]entities.MonthlyRating, error) {
	var rows []datedValue
	err := r.db.Raw(`
		SELECT reviews.date AS at, reviews.rating AS value
		FROM reviews
		JOIN shelf_books ON shelf_books.book_id = reviews.book_id
		JOIN shelves ON shelves.id = shelf_books.shelf_id AND shelves.user_id = reviews.user_id
		WHERE reviews.user_id = ? AND shelves.name = ?
	`, userID, entities.ReadShelfName).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	months, sums, counts := r.byMonth(rows)
	out := make([]entities.MonthlyRating, 0, len(months))
	for _, m := range months {
		out = append(out, entities.MonthlyRating{Month: m, AverageRating: sums[m] / float64(counts[m])})
	}
	return out, nil
}

// ReadShelfBookCount returns how many books are on the user's Read shelf.
func (r *Repository) ReadShelfBookCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ShelfBook{}).
		Joins("JOIN shelves ON shelves.id = shelf_books.shelf_id").
		Where("shelves.user_id = ? AND shelves.name = ?", userID, entities.ReadShelfName).
		Count(&count).Error
	return count, err
}
