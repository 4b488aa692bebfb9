package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sylee21c/wat2watch/internal/account/models"
	"github.com/sylee21c/wat2watch/internal/database"
)

// ErrDuplicateID is returned when a user id is already taken.
var ErrDuplicateID = errors.New("id already exists")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row.
func (r *UserRepository) Create(user models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, password, name, subscribed_ott, favorite_genres)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Password, user.Name, user.SubscribedOtt, user.FavoriteGenres)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns a user by id. sql.ErrNoRows passes through on a miss.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var (
		user models.User
		name sql.NullString
	)
	err := r.db.QueryRow(`
		SELECT id, password, name, subscribed_ott, favorite_genres
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Password, &name, &user.SubscribedOtt, &user.FavoriteGenres)
	if err != nil {
		return nil, err
	}
	user.Name = name.String
	return &user, nil
}
