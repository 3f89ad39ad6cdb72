package tui

import (
	"fmt"
	"math"
	"strings"

	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

const helpLine = "arrows move | tab select | 1-7 add | n door | +/- size | [ ] rotate | x delete | u undo | r redo | q quit"

// Символ терминала вдвое уже своей высоты.
const (
	colsPerFoot = 2
	rowsPerFoot = 1
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.editor.Design()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Room %g x %g x %g ft", d.Room.Width, d.Room.Length, d.Room.Height)))
	b.WriteString("\n")
	b.WriteString(m.grid(d))
	b.WriteString("\n")

	status := m.editor.Status()
	b.WriteString(statusStyle.Render(fmt.Sprintf("can undo: %s  can redo: %s  |  %s",
		yesNo(status.CanUndo), yesNo(status.CanRedo), m.status)))
	b.WriteString("\n")
	if sel := m.selectedLabel(d); sel != "" {
		b.WriteString(selectedStyle.Render(sel))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}

// grid рисует комнату сверху: '#' стены, 'D' двери, буквы обозначают мебель.
// Выделенный объект пишется заглавной буквой.
func (m Model) grid(d models.Design) string {
	if d.Room.IsZero() {
		return "(no room)"
	}

	cols := int(math.Round(d.Room.Width*colsPerFoot)) + 2
	rows := int(math.Round(d.Room.Length*rowsPerFoot)) + 2

	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, cols)
		for c := range cells[r] {
			switch {
			case r == 0 || r == rows-1 || c == 0 || c == cols-1:
				cells[r][c] = '#'
			default:
				cells[r][c] = ' '
			}
		}
	}

	for _, door := range d.Doors {
		r, c := doorCell(door, rows, cols)
		cells[r][c] = 'd'
		if door.Selected {
			cells[r][c] = 'D'
		}
	}

	for _, item := range d.Furniture {
		x := units.ToFeet(item.Position.X) + d.Room.Width/2
		z := units.ToFeet(item.Position.Z) + d.Room.Length/2
		c := clampInt(int(math.Round(x*colsPerFoot)), 1, cols-2)
		r := clampInt(int(math.Round(z*rowsPerFoot)), 1, rows-2)

		glyph := []rune(item.CatalogID)[0]
		if item.Selected {
			glyph = []rune(strings.ToUpper(string(glyph)))[0]
		}
		cells[r][c] = glyph
	}

	lines := make([]string, rows)
	for r := range cells {
		lines[r] = string(cells[r])
	}
	return strings.Join(lines, "\n")
}

func doorCell(door models.Door, rows, cols int) (int, int) {
	along := func(n int) int {
		return clampInt(int(math.Round(door.Position*float64(n-1))), 1, n-2)
	}
	switch door.Wall {
	case models.WallNorth:
		return 0, along(cols)
	case models.WallSouth:
		return rows - 1, along(cols)
	case models.WallWest:
		return along(rows), 0
	default:
		return along(rows), cols - 1
	}
}

func (m Model) selectedLabel(d models.Design) string {
	for _, item := range d.Furniture {
		if item.Selected {
			name := item.CatalogID
			if e, ok := m.index[item.CatalogID]; ok {
				name = e.Name
			}
			return fmt.Sprintf("%s  scale %.1f  rotation %.0f°", name, item.Scale, item.Rotation.Y*180/math.Pi)
		}
	}
	for _, door := range d.Doors {
		if door.Selected {
			return fmt.Sprintf("door on %s  at %.2f  %.1f x %.1f ft", door.Wall, door.Position, door.Width, door.Height)
		}
	}
	return ""
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
