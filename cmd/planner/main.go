package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"room-planner/internal/common/config"
	"room-planner/internal/common/logger"
	"room-planner/internal/common/middleware"
	"room-planner/internal/planner/handlers"
	"room-planner/internal/planner/repository"
	"room-planner/internal/planner/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg := config.Load()
	cfg.Port = config.PortOr("3003")

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "planner")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := repository.OpenSQLite(cfg.CatalogDBPath)
	if err != nil {
		zlog.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		zlog.Fatal("init db", zap.Error(err))
	}

	sessions := service.NewSessionManager(zlog)
	plannerHandler := handlers.NewPlannerHandler(sessions, repo, zlog)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Room Planner",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(zlog))
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// ============================================================
	// Routes
	// ============================================================

	plannerHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("starting planner service",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("catalog_db", cfg.CatalogDBPath),
	)

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
