package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/sylee21c/wat2watch/internal/rating/models"
	"github.com/sylee21c/wat2watch/internal/rating/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers the rating routes on the given Fiber app.
func RegisterRoutes(app *fiber.App, h *RatingHandler) {
	app.Get("/health", h.Health)
	app.Post("/ratings", h.Submit)
	app.Get("/user/:userId/ratings", h.ListByUser)
	app.Get("/ratings/:userId/:contentId", h.Get)
}

// Health returns service health status.
func (h *RatingHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "rating-service",
	})
}

// Submit creates or overwrites a rating. The response body tells the caller
// which of the two happened.
func (h *RatingHandler) Submit(c fiber.Ctx) error {
	var req models.SubmitRatingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
	}

	created, err := h.svc.Submit(req)
	if err != nil {
		if errors.Is(err, service.ErrMissingParams) {
			slog.Warn("rating rejected",
				"userId", req.UserID, "contentId", req.ContentID, "error", err)
			return c.Status(fiber.StatusBadRequest).SendString("Missing parameter(s)")
		}
		slog.Error("failed to submit rating",
			"userId", req.UserID, "contentId", req.ContentID, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
	}

	slog.Info("rating written",
		"userId", req.UserID, "contentId", req.ContentID,
		"comment", req.Comment, "created", created)
	if created {
		return c.SendString("Rating submitted!")
	}
	return c.SendString("Rating updated!")
}

// ListByUser returns all ratings submitted by a user.
func (h *RatingHandler) ListByUser(c fiber.Ctx) error {
	userID := c.Params("userId")

	ratings, err := h.svc.ListByUser(userID)
	if err != nil {
		slog.Error("failed to list ratings", "userId", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
	}

	return c.JSON(ratings)
}

// Get returns the rating a user gave a single piece of content.
func (h *RatingHandler) Get(c fiber.Ctx) error {
	userID := c.Params("userId")
	contentID := c.Params("contentId")

	rating, err := h.svc.Get(userID, contentID)
	if err != nil {
		if errors.Is(err, service.ErrNotRated) {
			return c.Status(fiber.StatusNotFound).SendString("Not rated")
		}
		slog.Error("failed to get rating",
			"userId", userID, "contentId", contentID, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("DB Error")
	}

	return c.JSON(rating)
}
