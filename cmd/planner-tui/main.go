package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"room-planner/internal/common/config"
	"room-planner/internal/common/logger"
	"room-planner/internal/planner/editor"
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/repository"
	"room-planner/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.uber.org/zap"
)

// ============================================================
// Keyboard Client
// ============================================================

func main() {
	width := flag.Float64("width", 12, "room width, ft")
	length := flag.Float64("length", 15, "room length, ft")
	height := flag.Float64("height", 8, "room height, ft")
	flag.Parse()

	cfg := config.Load()

	// stdout занят интерфейсом, поэтому лог только на уровне error и в консольном формате.
	zlog, err := logger.NewLogger("error", "console", "planner-tui")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	catalog := loadCatalog(cfg.CatalogDBPath, zlog)

	e := editor.New(editor.WithLogger(zlog))
	if _, err := e.CreateRoom(*width, *length, *height); err != nil {
		fmt.Fprintf(os.Stderr, "create room: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(e, catalog), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}

// loadCatalog читает каталог из базы; без базы работает на встроенном наборе.
func loadCatalog(path string, zlog *zap.Logger) []models.CatalogEntry {
	db, err := repository.OpenSQLite(path)
	if err != nil {
		zlog.Error("open catalog db", zap.Error(err))
		return repository.Seed
	}
	defer db.Close()

	repo := repository.New(db)
	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		zlog.Error("init catalog db", zap.Error(err))
		return repository.Seed
	}

	entries, err := repo.List(ctx)
	if err != nil || len(entries) == 0 {
		return repository.Seed
	}
	return entries
}
