package tui

import (
	"fmt"
	"strings"
	"testing"

	"room-planner/internal/planner/editor"
	"room-planner/internal/planner/repository"
	"room-planner/internal/planner/selection"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newModel(t *testing.T) Model {
	t.Helper()
	n := 0
	e := editor.New(
		editor.WithLogger(zap.NewNop()),
		editor.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	_, err := e.CreateRoom(12, 15, 8)
	require.NoError(t, err)
	return NewModel(e, repository.Seed)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestDropAndSelect(t *testing.T) {
	m := press(t, newModel(t), "1", "2", "tab")

	d := m.editor.Design()
	require.Len(t, d.Furniture, 2)
	assert.Equal(t, "sofa", d.Furniture[0].CatalogID)
	assert.Equal(t, "chair", d.Furniture[1].CatalogID)
	assert.Equal(t, selection.State{Kind: selection.FurnitureSelected, ID: "id-1"}, m.editor.Selection())

	m = press(t, m, "tab")
	assert.Equal(t, "id-2", m.editor.Selection().ID)

	m = press(t, m, "9")
	assert.Contains(t, m.status, "no catalog item")
}

func TestCycleIncludesDoors(t *testing.T) {
	m := press(t, newModel(t), "1", "n", "tab", "tab")
	assert.Equal(t, selection.State{Kind: selection.DoorSelected, ID: "id-2"}, m.editor.Selection())

	m = press(t, m, "tab")
	assert.Equal(t, selection.FurnitureSelected, m.editor.Selection().Kind)
}

func TestEditSelectedFurniture(t *testing.T) {
	m := press(t, newModel(t), "3", "tab", "right", "+", "]", "]")

	item := m.editor.Design().Furniture[0]
	assert.Greater(t, item.Position.X, 0.0)
	assert.Equal(t, 1.1, item.Scale)
	assert.InDelta(t, 30, item.Rotation.Y*180/3.141592653589793, 1e-9)
	assert.Equal(t, 5, m.editor.HistoryLen())

	m = press(t, m, "u")
	assert.Equal(t, "undo", m.status)
	m = press(t, m, "r", "r")
	assert.Equal(t, "nothing to redo", m.status)

	m = press(t, m, "x")
	assert.Empty(t, m.editor.Design().Furniture)
}

func TestScaleStaysInUIRange(t *testing.T) {
	m := newModel(t)
	m = press(t, m, "1", "tab")
	for i := 0; i < 20; i++ {
		m = press(t, m, "-")
	}
	assert.Equal(t, 0.5, m.editor.Design().Furniture[0].Scale)
	assert.Equal(t, "nothing to resize", m.status)
}

func TestDoorKeys(t *testing.T) {
	m := press(t, newModel(t), "n", "n", "tab")
	d := m.editor.Design()
	require.Len(t, d.Doors, 2)
	assert.Equal(t, "north", string(d.Doors[0].Wall))
	assert.Equal(t, "east", string(d.Doors[1].Wall))

	m = press(t, m, "+", "left")
	door := m.editor.Design().Doors[0]
	assert.Equal(t, 3.5, door.Width)
	assert.InDelta(t, 0.45, door.Position, 1e-12)

	m = press(t, m, "x")
	assert.Len(t, m.editor.Design().Doors, 1)
}

func TestView(t *testing.T) {
	m := press(t, newModel(t), "4", "n", "tab")
	out := m.View()

	assert.Contains(t, out, "Room 12 x 15 x 8 ft")
	assert.Contains(t, out, "can undo: yes")
	assert.Contains(t, out, "Floor Lamp")

	grid := m.grid(m.editor.Design())
	assert.Contains(t, grid, "L")
	assert.NotContains(t, grid, "l")
	assert.True(t, strings.HasPrefix(grid, "#"))
	assert.Contains(t, strings.SplitN(grid, "\n", 2)[0], "d")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}
