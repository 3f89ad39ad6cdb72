package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"room-planner/internal/planner/models"
)

// ============================================================
// SQLite Catalog Repository
// ============================================================

var ErrNotFound = errors.New("catalog entry not found")

//go:embed migrations/001_init_catalog.sql
var initMigration string

// Seed содержит стандартный набор мебели. Масштабы заданы для комнаты 10x10 футов.
var Seed = []models.CatalogEntry{
	{ID: "sofa", Name: "Sofa", Category: "Living Room", RelativeScale: [3]float64{0.065, 0.052, 0.055}, ModelPath: "/assets/3d/sofa.glb"},
	{ID: "chair", Name: "Chair", Category: "Living Room", RelativeScale: [3]float64{0.04, 0.04, 0.04}, ModelPath: "/assets/3d/chair.glb"},
	{ID: "table", Name: "Coffee Table", Category: "Living Room", RelativeScale: [3]float64{1, 1, 1}, ModelPath: "/assets/3d/table.glb"},
	{ID: "lamp", Name: "Floor Lamp", Category: "Living Room", RelativeScale: [3]float64{0.05, 0.15, 0.05}, ModelPath: "/assets/3d/lamp.glb"},
	{ID: "bed", Name: "Bed", Category: "Bedroom", RelativeScale: [3]float64{0.03, 0.04, 0.03}, ModelPath: "/assets/3d/bed.glb"},
	{ID: "bedside-table", Name: "Bedside Table", Category: "Bedroom", RelativeScale: [3]float64{1, 1, 1}, ModelPath: "/assets/3d/table.glb"},
	{ID: "desk-lamp", Name: "Desk Lamp", Category: "Bedroom", RelativeScale: [3]float64{0.05, 0.15, 0.05}, ModelPath: "/assets/3d/lamp.glb"},
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграцию и досеивает отсутствующие позиции каталога.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initMigration); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return r.ensureSeed(ctx)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const selectEntry = `
        SELECT id, name, category, scale_x, scale_y, scale_z, y_offset, model_path
        FROM catalog
`

func (r *Repository) List(ctx context.Context) ([]models.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectEntry+`ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return scanEntries(rows)
}

func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectEntry+`WHERE category = ? ORDER BY sort_order, id`, category)
	if err != nil {
		return nil, fmt.Errorf("list catalog %q: %w", category, err)
	}
	return scanEntries(rows)
}

func (r *Repository) GetByID(ctx context.Context, id string) (models.CatalogEntry, error) {
	row := r.db.QueryRowContext(ctx, selectEntry+`WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CatalogEntry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return models.CatalogEntry{}, err
	}
	return e, nil
}

// ============================================================
// Scanning
// ============================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.CatalogEntry, error) {
	var e models.CatalogEntry
	err := s.Scan(&e.ID, &e.Name, &e.Category,
		&e.RelativeScale[0], &e.RelativeScale[1], &e.RelativeScale[2],
		&e.YOffset, &e.ModelPath)
	return e, err
}

func scanEntries(rows *sql.Rows) ([]models.CatalogEntry, error) {
	defer rows.Close()

	out := []models.CatalogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ============================================================
// Seeding
// ============================================================

func (r *Repository) ensureSeed(ctx context.Context) error {
	for i, e := range Seed {
		_, err := r.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO catalog (id, name, category, scale_x, scale_y, scale_z, y_offset, model_path, sort_order)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
			e.ID, e.Name, e.Category,
			e.RelativeScale[0], e.RelativeScale[1], e.RelativeScale[2],
			e.YOffset, e.ModelPath, i,
		)
		if err != nil {
			return fmt.Errorf("seed %s: %w", e.ID, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
