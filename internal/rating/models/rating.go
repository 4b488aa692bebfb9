package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Rating is a row in the shared ratings table. JSON field names match the
// store's column names, which is what clients of the original API expect.
type Rating struct {
	ID        int64   `json:"id"`
	UserID    string  `json:"userId"`
	ContentID string  `json:"contentId"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	Timestamp string  `json:"timestamp"`
}

// SubmitRatingRequest is the request body for submitting a rating. The id
// fields are accepted under both their camelCase and snake_case spellings,
// and the score may arrive as a bare number or a quoted numeric string.
type SubmitRatingRequest struct {
	UserID       string          `json:"userId"`
	UserIDSnake  string          `json:"user_id"`
	ContentID    string          `json:"contentId"`
	ContentSnake string          `json:"content_id"`
	Rating       json.RawMessage `json:"rating"`
	Comment      string          `json:"comment"`
}

// Normalize folds the snake_case aliases into the canonical fields. The
// camelCase spelling wins when both are present.
func (r *SubmitRatingRequest) Normalize() {
	if r.UserID == "" {
		r.UserID = r.UserIDSnake
	}
	if r.ContentID == "" {
		r.ContentID = r.ContentSnake
	}
}

// ErrNoScore is returned by Score when the rating field is absent or null.
var ErrNoScore = errors.New("rating is required")

// Score parses the rating field. Range is intentionally not validated.
func (r *SubmitRatingRequest) Score() (float64, error) {
	raw := bytes.TrimSpace(r.Rating)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrNoScore
	}
	raw = bytes.Trim(raw, `"`)
	score, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, errors.New("rating must be a number")
	}
	return score, nil
}
