package editor

import (
	"fmt"

	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/units"
)

// ============================================================
// Keyboard nudges
// ============================================================

type Direction string

const (
	NudgeUp    Direction = "up"
	NudgeDown  Direction = "down"
	NudgeLeft  Direction = "left"
	NudgeRight Direction = "right"
)

const (
	// Шаг сдвига мебели стрелками, футы.
	FurnitureNudgeFeet = 0.1
	// Шаг сдвига двери вдоль стены в нормированных единицах.
	DoorNudgeStep = 0.05
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case NudgeUp, NudgeDown, NudgeLeft, NudgeRight:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", geometry.ErrOutOfRange, s)
}

// Nudge сдвигает выделенный объект на фиксированный шаг через те же
// MoveSelectedFurniture / MoveSelectedDoor, что и перетаскивание.
// Мебель: вверх/вниз по Z, влево/вправо по X. Дверь: только влево/вправо.
func (e *Editor) Nudge(dir Direction) (Result, error) {
	if _, err := ParseDirection(string(dir)); err != nil {
		return Result{}, err
	}

	if idx, ok := e.selectedFurniture(); ok {
		pos := e.design.Furniture[idx].Position
		if p, ok := e.Pending(); ok && p.FurnitureID == e.design.Furniture[idx].ID {
			pos = p.Position
		}

		step := units.ToScene(FurnitureNudgeFeet)
		switch dir {
		case NudgeUp:
			pos.Z -= step
		case NudgeDown:
			pos.Z += step
		case NudgeLeft:
			pos.X -= step
		case NudgeRight:
			pos.X += step
		}
		return e.MoveSelectedFurniture(pos)
	}

	if idx, ok := e.selectedDoor(); ok {
		pos := e.design.Doors[idx].Position
		switch dir {
		case NudgeLeft:
			pos -= DoorNudgeStep
		case NudgeRight:
			pos += DoorNudgeStep
		default:
			return e.result(false), nil
		}
		return e.MoveSelectedDoor(pos)
	}

	return e.result(false), nil
}
