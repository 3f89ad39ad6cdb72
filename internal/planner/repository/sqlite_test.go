package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"room-planner/internal/planner/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "db", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestInit_Idempotent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(repository.Seed))
	assert.Equal(t, "sofa", all[0].ID, "seed order is kept")
}

func TestListByCategory(t *testing.T) {
	repo := newRepo(t)

	bedroom, err := repo.ListByCategory(context.Background(), "Bedroom")
	require.NoError(t, err)

	ids := make([]string, 0, len(bedroom))
	for _, e := range bedroom {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"bed", "bedside-table", "desk-lamp"}, ids)

	none, err := repo.ListByCategory(context.Background(), "Garage")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	sofa, err := repo.GetByID(ctx, "sofa")
	require.NoError(t, err)
	assert.Equal(t, "Living Room", sofa.Category)
	assert.Equal(t, [3]float64{0.065, 0.052, 0.055}, sofa.RelativeScale)
	assert.Equal(t, "/assets/3d/sofa.glb", sofa.ModelPath)

	lamp, err := repo.GetByID(ctx, "desk-lamp")
	require.NoError(t, err)
	assert.Equal(t, "/assets/3d/lamp.glb", lamp.ModelPath)

	_, err = repo.GetByID(ctx, "piano")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Ping(ctx))
}
