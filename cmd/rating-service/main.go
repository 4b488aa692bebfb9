package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/sylee21c/wat2watch/internal/config"
	"github.com/sylee21c/wat2watch/internal/database"
	"github.com/sylee21c/wat2watch/internal/rating/handler"
	"github.com/sylee21c/wat2watch/internal/rating/repository"
	"github.com/sylee21c/wat2watch/internal/rating/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Schema bootstrap belongs to the account service; this side assumes the
	// shared tables exist.
	db, err := database.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	repo := repository.NewRatingRepository(db)
	svc := service.NewRatingService(repo, rdb)
	h := handler.NewRatingHandler(svc)

	app := fiber.New(fiber.Config{
		AppName:      "Rating Service",
		ServerHeader: "Rating-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	handler.RegisterRoutes(app, h)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down rating service...")
		_ = app.Shutdown()
	}()

	addr := ":" + cfg.RatingPort
	slog.Info("starting rating service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
