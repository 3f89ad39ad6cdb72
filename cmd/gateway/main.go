package main

import (
	"fmt"
	"log"
	"time"

	"room-planner/internal/common/config"
	"room-planner/internal/common/logger"
	"room-planner/internal/common/middleware"
	"room-planner/internal/gateway/handlers"
	"room-planner/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "gateway")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	planner := proxy.New(cfg.PlannerURL, time.Duration(cfg.WriteTimeout)*time.Second, zlog)

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(zlog))
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(planner, zlog))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Room Planner API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Planner Service (Proxy)
	// ============================================================

	forward := planner.Strip("/api/v1")
	api.Get("/catalog", forward)
	api.Post("/sessions", forward)
	api.All("/sessions/*", forward)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("starting API gateway",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("planner_url", cfg.PlannerURL),
	)

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
