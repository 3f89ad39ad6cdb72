package selection

import (
	"room-planner/internal/planner/models"
)

// ============================================================
// Selection State Machine
// ============================================================

type Kind int

const (
	Idle Kind = iota
	FurnitureSelected
	DoorSelected
)

func (k Kind) String() string {
	switch k {
	case FurnitureSelected:
		return "furniture"
	case DoorSelected:
		return "door"
	default:
		return "idle"
	}
}

// State хранит текущее выделение. ID заполнен только для Kind != Idle.
type State struct {
	Kind Kind   `json:"-"`
	ID   string `json:"id,omitempty"`
}

func (s State) Furniture() (string, bool) {
	return s.ID, s.Kind == FurnitureSelected
}

func (s State) Door() (string, bool) {
	return s.ID, s.Kind == DoorSelected
}

// Machine держит не более одного выделенного объекта: мебель или дверь.
type Machine struct {
	state State
}

func New() *Machine {
	return &Machine{}
}

func (m *Machine) State() State {
	return m.state
}

// SelectFurniture выделяет мебель; повторный выбор того же объекта снимает выделение.
func (m *Machine) SelectFurniture(id string) State {
	if m.state.Kind == FurnitureSelected && m.state.ID == id {
		m.state = State{}
		return m.state
	}
	m.state = State{Kind: FurnitureSelected, ID: id}
	return m.state
}

// SelectDoor работает так же для дверей.
func (m *Machine) SelectDoor(id string) State {
	if m.state.Kind == DoorSelected && m.state.ID == id {
		m.state = State{}
		return m.state
	}
	m.state = State{Kind: DoorSelected, ID: id}
	return m.state
}

func (m *Machine) Clear() {
	m.state = State{}
}

// Reconcile сбрасывает выделение в Idle, если объект исчез из design.
func (m *Machine) Reconcile(d models.Design) bool {
	switch m.state.Kind {
	case FurnitureSelected:
		if _, ok := d.FindFurniture(m.state.ID); ok {
			return false
		}
	case DoorSelected:
		if _, ok := d.FindDoor(m.state.ID); ok {
			return false
		}
	default:
		return false
	}
	m.state = State{}
	return true
}

// Restore выставляет состояние по флагам selected из design.
// Без выделенных объектов машина уходит в Idle.
func (m *Machine) Restore(d models.Design) State {
	m.state = State{}
	for _, f := range d.Furniture {
		if f.Selected {
			m.state = State{Kind: FurnitureSelected, ID: f.ID}
			return m.state
		}
	}
	for _, door := range d.Doors {
		if door.Selected {
			m.state = State{Kind: DoorSelected, ID: door.ID}
			return m.state
		}
	}
	return m.state
}

// Apply возвращает копию design с флагами selected по текущему состоянию.
// Сначала снимаются все флаги в обоих списках, затем ставится один.
func (m *Machine) Apply(d models.Design) models.Design {
	out := d.Clone()
	for i := range out.Furniture {
		out.Furniture[i].Selected = false
	}
	for i := range out.Doors {
		out.Doors[i].Selected = false
	}

	switch m.state.Kind {
	case FurnitureSelected:
		if i, ok := out.FindFurniture(m.state.ID); ok {
			out.Furniture[i].Selected = true
		}
	case DoorSelected:
		if i, ok := out.FindDoor(m.state.ID); ok {
			out.Doors[i].Selected = true
		}
	}
	return out
}
