package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/sylee21c/wat2watch/internal/account/models"
	"github.com/sylee21c/wat2watch/internal/account/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers the account routes on the given Fiber app.
func RegisterRoutes(app *fiber.App, h *UserHandler) {
	app.Get("/health", h.Health)
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Get("/user/:userId", h.GetUser)
}

// Health returns service health status.
func (h *UserHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "account-service",
	})
}

// Register creates a new account.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
	}

	if err := h.svc.Register(req); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			slog.Warn("register rejected", "id", req.ID)
			return c.Status(fiber.StatusBadRequest).SendString("Missing id or password")
		case errors.Is(err, service.ErrDuplicateID):
			slog.Warn("register conflict", "id", req.ID)
			return c.Status(fiber.StatusConflict).SendString("ID already exists")
		default:
			slog.Error("failed to register user", "id", req.ID, "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
		}
	}

	slog.Info("user registered", "id", req.ID)
	return c.SendString("User registered!")
}

// Login verifies credentials and returns the public profile.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
	}

	profile, err := h.svc.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Warn("login rejected", "id", req.ID)
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid credentials")
		}
		slog.Error("failed to log in user", "id", req.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
	}

	return c.JSON(profile)
}

// GetUser returns the public profile for a user id.
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id := c.Params("userId")

	profile, err := h.svc.GetProfile(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("User not found")
		}
		slog.Error("failed to get user", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
	}

	return c.JSON(profile)
}
