package mapper

import (
	"math"

	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"
)

// ============================================================
// Scene view
// ============================================================

// Всё, что отдаётся рендереру, уже в метрах. Design хранит футы и
// нормированные позиции дверей, перевод происходит только здесь.

type RoomView struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

type DoorView struct {
	ID        string      `json:"id"`
	Wall      models.Wall `json:"wall"`
	Position  models.Vec3 `json:"position"`
	RotationY float64     `json:"rotation_y"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Selected  bool        `json:"selected"`
}

type FurnitureView struct {
	ID              string      `json:"id"`
	CatalogID       string      `json:"catalog_id"`
	Name            string      `json:"name,omitempty"`
	ModelPath       string      `json:"model_path,omitempty"`
	Position        models.Vec3 `json:"position"`
	Rotation        models.Vec3 `json:"rotation"`
	RotationDegrees float64     `json:"rotation_degrees"`
	Scale           float64     `json:"scale"`
	RenderScale     [3]float64  `json:"render_scale"`
	Selected        bool        `json:"selected"`
}

type CameraView struct {
	Position models.Vec3 `json:"position"`
	Target   models.Vec3 `json:"target"`
}

type SceneView struct {
	Room      RoomView        `json:"room"`
	Furniture []FurnitureView `json:"furniture"`
	Doors     []DoorView      `json:"doors"`
	Camera    CameraView      `json:"camera"`
}

// CatalogIndex индексирует каталог по id.
type CatalogIndex map[string]models.CatalogEntry

func IndexCatalog(entries []models.CatalogEntry) CatalogIndex {
	idx := make(CatalogIndex, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}

// BuildScene переводит Design в метрический вид для 3D-рендерера.
func BuildScene(d models.Design, catalog CatalogIndex) SceneView {
	view := SceneView{
		Room: RoomView{
			Width:  units.ToScene(d.Room.Width),
			Length: units.ToScene(d.Room.Length),
			Height: units.ToScene(d.Room.Height),
		},
		Furniture: make([]FurnitureView, 0, len(d.Furniture)),
		Doors:     make([]DoorView, 0, len(d.Doors)),
		Camera:    Camera(d.Room),
	}

	for _, item := range d.Furniture {
		entry, ok := catalog[item.CatalogID]
		if !ok {
			entry = models.CatalogEntry{ID: item.CatalogID, RelativeScale: [3]float64{1, 1, 1}}
		}
		view.Furniture = append(view.Furniture, FurnitureView{
			ID:              item.ID,
			CatalogID:       item.CatalogID,
			Name:            entry.Name,
			ModelPath:       entry.ModelPath,
			Position:        item.Position,
			Rotation:        item.Rotation,
			RotationDegrees: Degrees(item.Rotation.Y),
			Scale:           item.Scale,
			RenderScale:     RenderScale(entry, d.Room, item.Scale),
			Selected:        item.Selected,
		})
	}

	for _, door := range d.Doors {
		pos, rot := PlaceDoor(door, d.Room)
		view.Doors = append(view.Doors, DoorView{
			ID:        door.ID,
			Wall:      door.Wall,
			Position:  pos,
			RotationY: rot,
			Width:     units.ToScene(door.Width),
			Height:    units.ToScene(door.Height),
			Selected:  door.Selected,
		})
	}

	return view
}

// PlaceDoor возвращает центр двери в метрах и её поворот вокруг Y.
// Двери стоят на полу, поэтому Y равен половине высоты.
func PlaceDoor(door models.Door, room models.Room) (models.Vec3, float64) {
	w := units.ToScene(room.Width)
	l := units.ToScene(room.Length)
	y := units.ToScene(door.Height) / 2

	switch door.Wall {
	case models.WallNorth:
		return models.Vec3{X: door.Position*w - w/2, Y: y, Z: -l / 2}, 0
	case models.WallSouth:
		return models.Vec3{X: door.Position*w - w/2, Y: y, Z: l / 2}, math.Pi
	case models.WallWest:
		return models.Vec3{X: -w / 2, Y: y, Z: door.Position*l - l/2}, -math.Pi / 2
	case models.WallEast:
		return models.Vec3{X: w / 2, Y: y, Z: door.Position*l - l/2}, math.Pi / 2
	}
	return models.Vec3{Y: y}, 0
}

// RenderScale масштабирует модель относительно комнаты 10x10 футов
// и умножает на пользовательский масштаб.
func RenderScale(entry models.CatalogEntry, room models.Room, userScale float64) [3]float64 {
	factor := (room.Width + room.Length) / 2 / 10 * units.FeetToMeters * userScale
	var out [3]float64
	for i, rel := range entry.RelativeScale {
		out[i] = rel * factor
	}
	return out
}

// Camera ставит камеру по диагонали над комнатой, взгляд в центр.
func Camera(room models.Room) CameraView {
	m := units.ToScene(math.Max(room.Width, room.Length))
	return CameraView{Position: models.Vec3{X: m, Y: 0.8 * m, Z: m}}
}

func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
