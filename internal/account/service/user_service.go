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
	"golang.org/x/crypto/bcrypt"

	"github.com/sylee21c/wat2watch/internal/account/models"
	"github.com/sylee21c/wat2watch/internal/account/repository"
)

var (
	ErrMissingCredentials = errors.New("missing id or password")
	ErrDuplicateID        = errors.New("id already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const profileCacheTTL = 10 * time.Minute

// UserService handles business logic for accounts.
type UserService struct {
	repo  *repository.UserRepository
	redis *redis.Client
}

func NewUserService(repo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{repo: repo, redis: rdb}
}

// Register creates a new account. The password is stored as a bcrypt hash.
func (s *UserService) Register(req models.RegisterRequest) error {
	req.Normalize()
	if req.ID == "" || req.Password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:             req.ID,
		Password:       string(hash),
		Name:           req.Name,
		SubscribedOtt:  req.SubscribedOtt,
		FavoriteGenres: req.FavoriteGenres,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// Login verifies credentials and returns the public profile. An unknown id
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(req models.LoginRequest) (*models.Profile, error) {
	user, err := s.repo.GetByID(req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user.Profile(), nil
}

// GetProfile returns the public profile for an id.
func (s *UserService) GetProfile(id string) (*models.Profile, error) {
	cacheKey := "user:profile:" + id
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var profile models.Profile
		if json.Unmarshal([]byte(cached), &profile) == nil {
			return &profile, nil
		}
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	profile := user.Profile()

	if data, err := json.Marshal(profile); err == nil {
		s.setCache(cacheKey, string(data), profileCacheTTL)
	}

	return profile, nil
}

// Redis helpers

func (s *UserService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *UserService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
