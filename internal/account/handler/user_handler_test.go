package handler_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v3"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sylee21c/wat2watch/internal/account/handler"
	"github.com/sylee21c/wat2watch/internal/account/repository"
	"github.com/sylee21c/wat2watch/internal/account/service"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo, nil)
	h := handler.NewUserHandler(svc)

	app := fiber.New()
	handler.RegisterRoutes(app, h)
	return app, mock
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRegister_Success(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg(), "Alice", `["netflix"]`, `["drama"]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	status, body := doJSON(t, app, "POST", "/register",
		`{"id":"alice","password":"secret","name":"Alice","subscribedOtt":["netflix"],"favorite_genres":["drama"]}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "User registered!", body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingPassword(t *testing.T) {
	app, mock := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/register", `{"id":"alice"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing id or password", body)
	// Nothing must be written on a rejected registration.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateID(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

	status, body := doJSON(t, app, "POST", "/register", `{"id":"alice","password":"secret"}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "ID already exists", body)
}

func TestRegister_StoreError(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("disk I/O error"))

	status, body := doJSON(t, app, "POST", "/register", `{"id":"alice","password":"secret"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "DB Error", body)
}

func userRow(t *testing.T, password, ott, genres string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.
		NewRows([]string{"id", "password", "name", "subscribed_ott", "favorite_genres"}).
		AddRow("alice", string(hash), "Alice", ott, genres)
}

func TestLogin_Success_RoundTripsProfile(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT id, password, name, subscribed_ott, favorite_genres FROM users").
		WithArgs("alice").
		WillReturnRows(userRow(t, "secret", `["netflix","tving"]`, `["drama","thriller"]`))

	status, body := doJSON(t, app, "POST", "/login", `{"id":"alice","password":"secret"}`)

	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, body, "password")

	var profile struct {
		ID             string   `json:"id"`
		Name           string   `json:"name"`
		SubscribedOtt  []string `json:"subscribedOtt"`
		FavoriteGenres []string `json:"favoriteGenres"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, "alice", profile.ID)
	assert.Equal(t, []string{"netflix", "tving"}, profile.SubscribedOtt)
	assert.Equal(t, []string{"drama", "thriller"}, profile.FavoriteGenres)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT id, password, name, subscribed_ott, favorite_genres FROM users").
		WithArgs("alice").
		WillReturnRows(userRow(t, "secret", `[]`, `[]`))

	status, body := doJSON(t, app, "POST", "/login", `{"id":"alice","password":"wrong"}`)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body)
}

func TestLogin_UnknownID_SameAsWrongPassword(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT id, password, name, subscribed_ott, favorite_genres FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	status, body := doJSON(t, app, "POST", "/login", `{"id":"ghost","password":"secret"}`)

	// An unknown id must not be distinguishable from a wrong password.
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body)
}

func TestGetUser_Success(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT id, password, name, subscribed_ott, favorite_genres FROM users").
		WithArgs("alice").
		WillReturnRows(userRow(t, "secret", `["netflix"]`, `[]`))

	status, body := doJSON(t, app, "GET", "/user/alice", "")

	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":"alice","name":"Alice","subscribedOtt":["netflix"],"favoriteGenres":[]}`, body)
}

func TestGetUser_NotFound(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT id, password, name, subscribed_ott, favorite_genres FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	status, body := doJSON(t, app, "GET", "/user/ghost", "")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found", body)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/health", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"account-service"}`, body)
}
