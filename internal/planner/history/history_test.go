package history_test

import (
	"testing"

	"room-planner/internal/planner/history"
	"room-planner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(action models.ActionKind, furnitureIDs ...string) history.Entry {
	e := history.Entry{Action: action, Doors: []models.Door{}}
	for _, id := range furnitureIDs {
		e.Furniture = append(e.Furniture, models.NewFurnitureItem(id, "chair", models.Vec3{}))
	}
	return e
}

func TestNew_Empty(t *testing.T) {
	h := history.New()
	assert.Equal(t, -1, h.Cursor())
	assert.Equal(t, history.Status{}, h.Status())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestRecord_AdvancesCursor(t *testing.T) {
	h := history.New()

	st := h.Record(entry(models.ActionAdd, "a"))
	assert.Equal(t, history.Status{CanUndo: true, CanRedo: false}, st)
	assert.Equal(t, 0, h.Cursor())

	h.Record(entry(models.ActionAdd, "a", "b"))
	assert.Equal(t, 1, h.Cursor())
	assert.Equal(t, 2, h.Len())
}

func TestUndo_ToInitialState(t *testing.T) {
	h := history.New()
	h.Record(entry(models.ActionAdd, "a"))
	h.Record(entry(models.ActionAdd, "a", "b"))

	e, ok := h.Undo()
	require.True(t, ok)
	require.Len(t, e.Furniture, 1)
	assert.Equal(t, history.Status{CanUndo: true, CanRedo: true}, h.Status())

	e, ok = h.Undo()
	require.True(t, ok)
	assert.Empty(t, e.Furniture)
	assert.NotNil(t, e.Furniture)
	assert.Equal(t, history.Status{CanUndo: false, CanRedo: true}, h.Status())

	_, ok = h.Undo()
	assert.False(t, ok, "undo at the start is a silent no-op")
	assert.Equal(t, -1, h.Cursor())
}

func TestRedo_RestoresForward(t *testing.T) {
	h := history.New()
	h.Record(entry(models.ActionAdd, "a"))
	h.Record(entry(models.ActionAdd, "a", "b"))
	h.Undo()
	h.Undo()

	e, ok := h.Redo()
	require.True(t, ok)
	assert.Len(t, e.Furniture, 1)

	e, ok = h.Redo()
	require.True(t, ok)
	assert.Len(t, e.Furniture, 2)
	assert.Equal(t, history.Status{CanUndo: true, CanRedo: false}, h.Status())

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestRecord_AfterUndoDiscardsRedoBranch(t *testing.T) {
	h := history.New()
	h.Record(entry(models.ActionAdd, "a"))
	h.Record(entry(models.ActionAdd, "a", "b"))
	h.Undo()

	st := h.Record(entry(models.ActionMove, "a"))
	assert.False(t, st.CanRedo)
	assert.Equal(t, 2, h.Len())

	_, ok := h.Redo()
	assert.False(t, ok, "undo; op; redo must be a no-op")
	assert.Equal(t, models.ActionMove, h.Entries()[1].Action)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	h := history.New()
	e := entry(models.ActionAdd, "a")
	h.Record(e)

	e.Furniture[0].Position.X = 99
	assert.Equal(t, 0.0, h.Entries()[0].Furniture[0].Position.X)

	h.Record(entry(models.ActionAdd, "a", "b"))
	got, _ := h.Undo()
	got.Furniture[0].Scale = 7
	assert.Equal(t, 1.0, h.Entries()[0].Furniture[0].Scale)
}
