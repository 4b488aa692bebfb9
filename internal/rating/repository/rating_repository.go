package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sylee21c/wat2watch/internal/rating/models"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert writes the rating for a (userId, contentId) pair, updating the
// existing row in place when one exists. The lookup and the write run in one
// transaction so concurrent first-time submissions cannot both insert; the
// unique index on the pair backstops the invariant. Reports whether a new
// row was created.
func (r *RatingRepository) Upsert(userID, contentID string, score float64, comment, timestamp string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	var (
		id      int64
		created bool
	)
	err = tx.QueryRow(`
		SELECT id FROM ratings WHERE "userId" = $1 AND "contentId" = $2
	`, userID, contentID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO ratings ("userId", "contentId", rating, comment, "timestamp")
			VALUES ($1, $2, $3, $4, $5)
		`, userID, contentID, score, comment, timestamp); err != nil {
			return false, fmt.Errorf("insert rating: %w", err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("lookup rating: %w", err)
	default:
		if _, err := tx.Exec(`
			UPDATE ratings SET rating = $1, comment = $2, "timestamp" = $3 WHERE id = $4
		`, score, comment, timestamp, id); err != nil {
			return false, fmt.Errorf("update rating: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}
	return created, nil
}

// ListByUser returns all ratings submitted by a user, in no particular order.
func (r *RatingRepository) ListByUser(userID string) ([]models.Rating, error) {
	rows, err := r.db.Query(`
		SELECT id, "userId", "contentId", rating, comment, "timestamp"
		FROM ratings WHERE "userId" = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, *rating)
	}
	return ratings, rows.Err()
}

// Get returns the rating for a (userId, contentId) pair. sql.ErrNoRows
// passes through on a miss.
func (r *RatingRepository) Get(userID, contentID string) (*models.Rating, error) {
	row := r.db.QueryRow(`
		SELECT id, "userId", "contentId", rating, comment, "timestamp"
		FROM ratings WHERE "userId" = $1 AND "contentId" = $2
	`, userID, contentID)
	return scanRating(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRating(row rowScanner) (*models.Rating, error) {
	var (
		rating             models.Rating
		comment, timestamp sql.NullString
	)
	if err := row.Scan(
		&rating.ID, &rating.UserID, &rating.ContentID,
		&rating.Rating, &comment, &timestamp,
	); err != nil {
		return nil, err
	}
	rating.Comment = comment.String
	rating.Timestamp = timestamp.String
	return &rating, nil
}
