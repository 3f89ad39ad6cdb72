package editor

import (
	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/models"
)

// ============================================================
// Gizmo drag
// ============================================================

// Pending хранит незафиксированную трансформация выделенной мебели во время
// перетаскивания гизмо. Промежуточные кадры в журнал не попадают.
type Pending struct {
	FurnitureID string      `json:"furniture_id"`
	Position    models.Vec3 `json:"position"`
	RotationY   float64     `json:"rotation_y"`
}

func (e *Editor) Pending() (Pending, bool) {
	if e.pending == nil {
		return Pending{}, false
	}
	return *e.pending, true
}

// DragSelectedFurniture запоминает текущий кадр перетаскивания.
// Позиция зажимается сразу, журнал не меняется.
func (e *Editor) DragSelectedFurniture(pos models.Vec3, rotationY float64) (Result, error) {
	if err := geometry.ValidateFinite("position", pos.X, pos.Y, pos.Z, rotationY); err != nil {
		return Result{}, err
	}
	idx, ok := e.selectedFurniture()
	if !ok {
		return e.result(false), nil
	}

	e.pending = &Pending{
		FurnitureID: e.design.Furniture[idx].ID,
		Position:    geometry.ClampFurniturePosition(pos, e.design.Room, geometry.WallMargin),
		RotationY:   rotationY,
	}
	return e.result(false), nil
}

// EndDrag фиксирует перетаскивание одной записью move. Перетаскивание
// без итогового смещения ничего не пишет.
func (e *Editor) EndDrag() Result {
	if !e.commitPending() {
		return e.result(false)
	}
	return e.result(true)
}

// CancelDrag отбрасывает незафиксированную трансформацию.
func (e *Editor) CancelDrag() Result {
	e.pending = nil
	return e.result(false)
}

// commitPending записывает незавершённое перетаскивание как move.
func (e *Editor) commitPending() bool {
	next, ok := e.applyPending()
	if !ok {
		return false
	}
	e.commit(models.ActionMove, next)
	return true
}

// foldPending вносит незавершённое перетаскивание в текущий Design без
// отдельной записи: оно войдёт в запись следующей команды.
func (e *Editor) foldPending() {
	if next, ok := e.applyPending(); ok {
		e.design = e.selection.Apply(next)
	}
}

// applyPending очищает pending и возвращает Design с применённой
// трансформацией, если она что-то меняет.
func (e *Editor) applyPending() (models.Design, bool) {
	p := e.pending
	e.pending = nil
	if p == nil {
		return models.Design{}, false
	}

	idx, ok := e.design.FindFurniture(p.FurnitureID)
	if !ok {
		return models.Design{}, false
	}

	item := e.design.Furniture[idx]
	if item.Position == p.Position && item.Rotation == (models.Vec3{Y: p.RotationY}) {
		return models.Design{}, false
	}

	next := e.design.Clone()
	next.Furniture[idx] = item.WithPosition(p.Position).WithRotationY(p.RotationY)
	return next, true
}
