package models

import "fmt"

// ============================================================
// Geometry primitives
// ============================================================

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Wall обозначает стену комнаты, в которую можно врезать дверь.
type Wall string

const (
	WallNorth Wall = "north"
	WallSouth Wall = "south"
	WallEast  Wall = "east"
	WallWest  Wall = "west"
)

// Walls перечисляет стены в порядке обхода.
var Walls = []Wall{WallNorth, WallEast, WallSouth, WallWest}

func (w Wall) Valid() bool {
	switch w {
	case WallNorth, WallSouth, WallEast, WallWest:
		return true
	}
	return false
}

func ParseWall(s string) (Wall, error) {
	w := Wall(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown wall %q", s)
	}
	return w, nil
}

// ============================================================
// Room
// ============================================================

// Room хранит размеры комнаты в футах. Нулевое значение означает,
// что комната ещё не создана.
type Room struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

func NewRoom(width, length, height float64) Room {
	return Room{Width: width, Length: length, Height: height}
}

func (r Room) IsZero() bool {
	return r.Width == 0 && r.Length == 0 && r.Height == 0
}

// ============================================================
// Furniture
// ============================================================

// FurnitureItem описывает экземпляр мебели в комнате. ID уникален для экземпляра,
// CatalogID ссылается на запись каталога и может повторяться.
// Position и Rotation заданы в единицах сцены.
type FurnitureItem struct {
	ID        string  `json:"id"`
	CatalogID string  `json:"catalog_id"`
	Position  Vec3    `json:"position"`
	Rotation  Vec3    `json:"rotation"`
	Scale     float64 `json:"scale"`
	Selected  bool    `json:"selected"`
}

func NewFurnitureItem(id, catalogID string, position Vec3) FurnitureItem {
	return FurnitureItem{
		ID:        id,
		CatalogID: catalogID,
		Position:  position,
		Scale:     1,
	}
}

func (f FurnitureItem) WithPosition(p Vec3) FurnitureItem {
	f.Position = p
	return f
}

func (f FurnitureItem) WithScale(scale float64) FurnitureItem {
	f.Scale = scale
	return f
}

// WithRotationY задаёт поворот вокруг вертикальной оси, остальные оси обнуляются.
func (f FurnitureItem) WithRotationY(radians float64) FurnitureItem {
	f.Rotation = Vec3{Y: radians}
	return f
}

func (f FurnitureItem) WithSelected(selected bool) FurnitureItem {
	f.Selected = selected
	return f
}

// ============================================================
// Door
// ============================================================

// Door описывает проём в стене. Position нормирована вдоль стены,
// Width и Height в футах.
type Door struct {
	ID       string  `json:"id"`
	Wall     Wall    `json:"wall"`
	Position float64 `json:"position"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Selected bool    `json:"selected"`
}

func NewDoor(id string, wall Wall, position, width, height float64) Door {
	return Door{
		ID:       id,
		Wall:     wall,
		Position: position,
		Width:    width,
		Height:   height,
	}
}

func (d Door) WithPosition(p float64) Door {
	d.Position = p
	return d
}

func (d Door) WithSize(width, height float64) Door {
	d.Width = width
	d.Height = height
	return d
}

func (d Door) WithSelected(selected bool) Door {
	d.Selected = selected
	return d
}

// ============================================================
// Design
// ============================================================

// Design содержит редактируемое состояние: комнату, мебель и двери.
type Design struct {
	Room      Room            `json:"room"`
	Furniture []FurnitureItem `json:"furniture"`
	Doors     []Door          `json:"doors"`
}

// Clone возвращает глубокую копию; списки никогда не nil.
func (d Design) Clone() Design {
	return Design{
		Room:      d.Room,
		Furniture: CloneFurniture(d.Furniture),
		Doors:     CloneDoors(d.Doors),
	}
}

func (d Design) FindFurniture(id string) (int, bool) {
	for i, item := range d.Furniture {
		if item.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d Design) FindDoor(id string) (int, bool) {
	for i, door := range d.Doors {
		if door.ID == id {
			return i, true
		}
	}
	return -1, false
}

// SelectedCount считает выделенные сущности в обоих списках.
func (d Design) SelectedCount() int {
	n := 0
	for _, item := range d.Furniture {
		if item.Selected {
			n++
		}
	}
	for _, door := range d.Doors {
		if door.Selected {
			n++
		}
	}
	return n
}

func CloneFurniture(in []FurnitureItem) []FurnitureItem {
	out := make([]FurnitureItem, len(in))
	copy(out, in)
	return out
}

func CloneDoors(in []Door) []Door {
	out := make([]Door, len(in))
	copy(out, in)
	return out
}

// ============================================================
// History actions
// ============================================================

type ActionKind string

const (
	ActionAdd        ActionKind = "add"
	ActionRemove     ActionKind = "remove"
	ActionMove       ActionKind = "move"
	ActionResize     ActionKind = "resize"
	ActionRotate     ActionKind = "rotate"
	ActionAddDoor    ActionKind = "add-door"
	ActionRemoveDoor ActionKind = "remove-door"
	ActionMoveDoor   ActionKind = "move-door"
	ActionResizeDoor ActionKind = "resize-door"
)

// ============================================================
// Catalog
// ============================================================

// CatalogEntry описывает тип мебели, который можно перетащить в комнату.
// RelativeScale задан относительно комнаты 10x10 футов.
type CatalogEntry struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	RelativeScale [3]float64 `json:"relative_scale"`
	YOffset       float64    `json:"y_offset"`
	ModelPath     string     `json:"model_path"`
}
