package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"
)

// ============================================================
// Plan renderer
// ============================================================

const (
	// Масштаб плана.
	PixelsPerFoot = 20.0
	// Толщина стены на плане, футы.
	WallThickness = 0.5
	// Сторона условного следа мебели при масштабе 1, футы.
	FootprintFeet = 2.0
)

type point struct {
	X float64
	Y float64
}

type Renderer struct {
	ppf float64
}

func NewRenderer() *Renderer {
	return &Renderer{ppf: PixelsPerFoot}
}

// Render собирает SVG-план комнаты сверху: север наверху, восток справа.
func (r *Renderer) Render(d models.Design, catalog CatalogIndex) (string, error) {
	if d.Room.IsZero() {
		return "", fmt.Errorf("design has no room")
	}

	width := d.Room.Width * r.ppf
	height := d.Room.Length * r.ppf

	var elements []string
	elements = append(elements, r.renderRoom(d.Room))
	elements = append(elements, r.renderDoors(d)...)
	elements = append(elements, r.renderFurniture(d, catalog)...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderRoom(room models.Room) string {
	return fmt.Sprintf(`<rect id="room" x="0" y="0" width="%s" height="%s" fill="none" stroke="#000" stroke-width="%s" />`,
		formatFloat(room.Width*r.ppf), formatFloat(room.Length*r.ppf), formatFloat(WallThickness*r.ppf))
}

func (r *Renderer) renderDoors(d models.Design) []string {
	var out []string

	for _, door := range d.Doors {
		thickness := WallThickness * r.ppf
		span := door.Width * r.ppf

		var x, y, w, h float64
		switch door.Wall {
		case models.WallNorth, models.WallSouth:
			cx := door.Position * d.Room.Width * r.ppf
			cy := 0.0
			if door.Wall == models.WallSouth {
				cy = d.Room.Length * r.ppf
			}
			w, h = span, thickness
			x, y = cx-w/2, cy-h/2
		case models.WallWest, models.WallEast:
			cx := 0.0
			if door.Wall == models.WallEast {
				cx = d.Room.Width * r.ppf
			}
			cy := door.Position * d.Room.Length * r.ppf
			w, h = thickness, span
			x, y = cx-w/2, cy-h/2
		default:
			continue
		}

		stroke := "#d62728"
		if door.Selected {
			stroke = "#ff7f0e"
		}

		out = append(out, fmt.Sprintf(`<rect id="%s" class="door" x="%s" y="%s" width="%s" height="%s" fill="#fff" stroke="%s" />`,
			door.ID, formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h), stroke))
	}

	return out
}

func (r *Renderer) renderFurniture(d models.Design, catalog CatalogIndex) []string {
	var out []string

	for _, item := range d.Furniture {
		cx := (units.ToFeet(item.Position.X) + d.Room.Width/2) * r.ppf
		cy := (units.ToFeet(item.Position.Z) + d.Room.Length/2) * r.ppf
		side := FootprintFeet * item.Scale * r.ppf

		// Поворот сцены вокруг Y на плане сверху идёт против часовой стрелки.
		points := rectanglePoints(cx, cy, side, side, -Degrees(item.Rotation.Y))

		stroke := "#2ca02c"
		if item.Selected {
			stroke = "#ff7f0e"
		}

		title := item.CatalogID
		if entry, ok := catalog[item.CatalogID]; ok && entry.Name != "" {
			title = entry.Name
		}

		var path strings.Builder
		path.WriteString(`<path id="`)
		path.WriteString(item.ID)
		path.WriteString(`" class="furniture" d="M `)
		path.WriteString(formatPoint(points[0]))
		for _, p := range points[1:] {
			path.WriteString(" L ")
			path.WriteString(formatPoint(p))
		}
		path.WriteString(` Z" fill="none" stroke="`)
		path.WriteString(stroke)
		path.WriteString(`"><title>`)
		path.WriteString(escape(title))
		path.WriteString(`</title></path>`)

		out = append(out, path.String())
	}

	return out
}

// ============================================================
// Geometry helpers
// ============================================================

func rectanglePoints(cx, cy, width, height, rotationDeg float64) []point {
	halfW := width / 2
	halfH := height / 2

	points := []point{
		{X: cx - halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy - halfH},
		{X: cx + halfW, Y: cy + halfH},
		{X: cx - halfW, Y: cy + halfH},
	}

	if rotationDeg == 0 {
		return points
	}

	rad := rotationDeg * math.Pi / 180
	sin := math.Sin(rad)
	cos := math.Cos(rad)

	for i, p := range points {
		dx := p.X - cx
		dy := p.Y - cy
		points[i] = point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}

	return points
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(round(val), 'f', -1, 64)
}

// round срезает шум после перевода метров в футы.
func round(val float64) float64 {
	return math.Round(val*1e6) / 1e6
}

func formatPoint(p point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
