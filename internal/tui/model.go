package tui

import (
	"errors"
	"fmt"
	"math"

	"room-planner/internal/planner/editor"
	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/mapper"
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/selection"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scaleStep     = 0.1
	doorWidthStep = 0.5
	rotationStep  = 15.0
	defaultDoor   = 3.0
	defaultHeight = 7.0
)

// Model управляет редактором того же процесса с клавиатуры.
type Model struct {
	editor  *editor.Editor
	catalog []models.CatalogEntry
	index   mapper.CatalogIndex

	nextWall int
	status   string
	quitting bool
}

func NewModel(e *editor.Editor, catalog []models.CatalogEntry) Model {
	return Model{
		editor:  e,
		catalog: catalog,
		index:   mapper.IndexCatalog(catalog),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "down", "left", "right":
		res, err := m.editor.Nudge(editor.Direction(k))
		m.apply("move", res, err)
	case "tab":
		m.cycleSelection()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.drop(int(k[0] - '1'))
	case "n":
		m.addDoor()
	case "+", "=":
		m.resize(1)
	case "-":
		m.resize(-1)
	case "[":
		m.rotate(-rotationStep)
	case "]":
		m.rotate(rotationStep)
	case "x":
		m.deleteSelected()
	case "u":
		m.report("undo", m.editor.Undo())
	case "r":
		m.report("redo", m.editor.Redo())
	}
	return m, nil
}

// ============================================================
// Commands
// ============================================================

func (m *Model) drop(i int) {
	if i < 0 || i >= len(m.catalog) {
		m.status = fmt.Sprintf("no catalog item %d", i+1)
		return
	}
	res, err := m.editor.DropFurniture(m.catalog[i].ID, 0, 0)
	if err != nil {
		m.fail(err)
		return
	}
	m.report("added "+m.catalog[i].Name, res)
}

// addDoor врезает дверь по центру следующей стены по кругу.
func (m *Model) addDoor() {
	room := m.editor.Design().Room
	wall := models.Walls[m.nextWall%len(models.Walls)]
	m.nextWall++

	res, err := m.editor.AddDoor(wall, 0.5, defaultDoor, geometry.ClampDoorHeight(defaultHeight, room))
	if err != nil {
		m.fail(err)
		return
	}
	m.report("door on "+string(wall), res)
}

func (m *Model) resize(sign float64) {
	d := m.editor.Design()
	sel := m.editor.Selection()

	if id, ok := sel.Furniture(); ok {
		i, _ := d.FindFurniture(id)
		scale := clamp(round(d.Furniture[i].Scale+sign*scaleStep), geometry.MinScale, geometry.MaxScale)
		res, err := m.editor.ResizeSelectedFurniture(scale)
		m.apply("resize", res, err)
		return
	}
	if id, ok := sel.Door(); ok {
		i, _ := d.FindDoor(id)
		width := clamp(d.Doors[i].Width+sign*doorWidthStep, geometry.MinDoorWidth, geometry.MaxDoorWidth)
		res, err := m.editor.ResizeSelectedDoor(width, d.Doors[i].Height)
		m.apply("resize door", res, err)
	}
}

func (m *Model) rotate(delta float64) {
	id, ok := m.editor.Selection().Furniture()
	if !ok {
		return
	}
	d := m.editor.Design()
	i, _ := d.FindFurniture(id)
	res, err := m.editor.RotateSelectedFurniture(round(mapper.Degrees(d.Furniture[i].Rotation.Y) + delta))
	m.apply("rotate", res, err)
}

func (m *Model) deleteSelected() {
	sel := m.editor.Selection()
	if _, ok := sel.Furniture(); ok {
		res, err := m.editor.DeleteSelectedFurniture()
		m.apply("delete", res, err)
		return
	}
	if _, ok := sel.Door(); ok {
		res, err := m.editor.DeleteSelectedDoor()
		m.apply("delete door", res, err)
	}
}

// cycleSelection переходит к следующему объекту: сначала мебель, потом двери.
func (m *Model) cycleSelection() {
	type target struct {
		id   string
		door bool
	}

	d := m.editor.Design()
	var targets []target
	for _, item := range d.Furniture {
		targets = append(targets, target{id: item.ID})
	}
	for _, door := range d.Doors {
		targets = append(targets, target{id: door.ID, door: true})
	}
	if len(targets) == 0 {
		return
	}

	current := -1
	sel := m.editor.Selection()
	for i, t := range targets {
		if t.id == sel.ID && t.door == (sel.Kind == selection.DoorSelected) {
			current = i
			break
		}
	}

	next := targets[(current+1)%len(targets)]
	if current >= 0 && targets[current] == next {
		return
	}

	var err error
	if next.door {
		_, err = m.editor.SelectDoor(next.id)
	} else {
		_, err = m.editor.SelectFurniture(next.id)
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.status = "selected " + next.id
}

// ============================================================
// Status line
// ============================================================

func (m *Model) apply(what string, res editor.Result, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.report(what, res)
}

func (m *Model) report(what string, res editor.Result) {
	if !res.Changed {
		m.status = "nothing to " + what
		return
	}
	m.status = what
	for _, adj := range res.Adjusted {
		m.status += fmt.Sprintf("; door %s lowered to %.1f ft", adj.DoorID, adj.NewHeight)
	}
}

func (m *Model) fail(err error) {
	var rangeErr *geometry.RangeError
	switch {
	case errors.As(err, &rangeErr):
		m.status = "rejected: " + rangeErr.Error()
	default:
		m.status = "error: " + err.Error()
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
