package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sylee21c/wat2watch/internal/rating/models"
	"github.com/sylee21c/wat2watch/internal/rating/repository"
)

var (
	ErrMissingParams = errors.New("missing parameter(s)")
	ErrNotRated      = errors.New("not rated")
)

const ratingsCacheTTL = 5 * time.Minute

// RatingService handles business logic for ratings.
type RatingService struct {
	repo  *repository.RatingRepository
	redis *redis.Client
}

func NewRatingService(repo *repository.RatingRepository, rdb *redis.Client) *RatingService {
	return &RatingService{repo: repo, redis: rdb}
}

// Submit creates or overwrites the rating for a (userId, contentId) pair and
// reports whether a new row was created. The timestamp is set server-side.
func (s *RatingService) Submit(req models.SubmitRatingRequest) (bool, error) {
	req.Normalize()
	if req.UserID == "" || req.ContentID == "" {
		return false, ErrMissingParams
	}
	score, err := req.Score()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMissingParams, err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	created, err := s.repo.Upsert(req.UserID, req.ContentID, score, req.Comment, timestamp)
	if err != nil {
		return false, err
	}

	// Invalidate cache
	s.delCache("ratings:user:" + req.UserID)

	return created, nil
}

// ListByUser returns all ratings submitted by a user, empty when none exist.
func (s *RatingService) ListByUser(userID string) ([]models.Rating, error) {
	cacheKey := "ratings:user:" + userID
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var ratings []models.Rating
		if json.Unmarshal([]byte(cached), &ratings) == nil {
			return ratings, nil
		}
	}

	ratings, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}

	if data, err := json.Marshal(ratings); err == nil {
		s.setCache(cacheKey, string(data), ratingsCacheTTL)
	}

	return ratings, nil
}

// Get returns the rating for a (userId, contentId) pair.
func (s *RatingService) Get(userID, contentID string) (*models.Rating, error) {
	rating, err := s.repo.Get(userID, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotRated
		}
		return nil, err
	}
	return rating, nil
}

// Redis helpers

func (s *RatingService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *RatingService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *RatingService) delCache(key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(context.Background(), key)
}
