package geometry

import (
	"fmt"
	"math"

	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"
)

// ============================================================
// Bounds
// ============================================================

const (
	MaxRoomSide   = 50.0
	MinRoomHeight = 6.0
	MaxRoomHeight = 20.0

	// Минимальный зазор мебели до стены, футы.
	WallMargin = 0.5

	MinDoorPosition = 0.1
	MaxDoorPosition = 0.9

	// Обязательный зазор между дверью и потолком, футы.
	Clearance = 0.5
	// Ниже этой высоты правило зазора дверь не опускает.
	MinClearDoorHeight = 6.0

	MinDoorWidth  = 1.0
	MaxDoorWidth  = 6.0
	MinDoorHeight = 1.0

	// Рекомендуемый диапазон масштаба мебели; ядро его не навязывает.
	MinScale = 0.5
	MaxScale = 2.0
)

// Bounds задаёт допустимую область центра мебели на полу, в единицах сцены.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
}

// FurnitureBounds вычисляет [-dim/2+margin, dim/2-margin] по обеим осям.
// Если комната уже двух зазоров, область вырождается в центр.
func FurnitureBounds(room models.Room, marginFeet float64) Bounds {
	minX, maxX := axisRange(room.Width, marginFeet)
	minZ, maxZ := axisRange(room.Length, marginFeet)
	return Bounds{MinX: minX, MaxX: maxX, MinZ: minZ, MaxZ: maxZ}
}

func (b Bounds) Contains(p models.Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

func axisRange(dimFeet, marginFeet float64) (float64, float64) {
	half := units.ToScene(dimFeet) / 2
	margin := units.ToScene(marginFeet)
	lo, hi := -half+margin, half-margin
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// ============================================================
// Room
// ============================================================

// ValidateRoom проверяет width, length ∈ (0, 50] и height ∈ [6, 20].
func ValidateRoom(width, length, height float64) error {
	if !(width > 0 && width <= MaxRoomSide) {
		return &RangeError{Field: "room width", Value: width, Min: 0, Max: MaxRoomSide, MinExclusive: true}
	}
	if !(length > 0 && length <= MaxRoomSide) {
		return &RangeError{Field: "room length", Value: length, Min: 0, Max: MaxRoomSide, MinExclusive: true}
	}
	if !(height >= MinRoomHeight && height <= MaxRoomHeight) {
		return &RangeError{Field: "room height", Value: height, Min: MinRoomHeight, Max: MaxRoomHeight}
	}
	return nil
}

// ============================================================
// Furniture
// ============================================================

// ClampFurniturePosition зажимает X/Z внутрь комнаты с отступом от стен.
// Y не трогается: мебель стоит на полу.
func ClampFurniturePosition(pos models.Vec3, room models.Room, marginFeet float64) models.Vec3 {
	b := FurnitureBounds(room, marginFeet)
	return models.Vec3{
		X: clamp(pos.X, b.MinX, b.MaxX),
		Y: pos.Y,
		Z: clamp(pos.Z, b.MinZ, b.MaxZ),
	}
}

// ValidateScale требует положительный масштаб. Диапазон [MinScale, MaxScale]
// соблюдает UI.
func ValidateScale(scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return &RangeError{Field: "scale", Value: scale, Min: 0, Max: math.Inf(1), MinExclusive: true, MaxExclusive: true}
	}
	return nil
}

// ============================================================
// Doors
// ============================================================

func ClampDoorPosition(p float64) float64 {
	return clamp(p, MinDoorPosition, MaxDoorPosition)
}

// MaxDoorHeight считает правило зазора до потолка: max(6, height - 0.5).
func MaxDoorHeight(room models.Room) float64 {
	return math.Max(MinClearDoorHeight, room.Height-Clearance)
}

func ValidateDoorWidth(w float64) error {
	if !(w >= MinDoorWidth && w <= MaxDoorWidth) {
		return &RangeError{Field: "door width", Value: w, Min: MinDoorWidth, Max: MaxDoorWidth}
	}
	return nil
}

// ValidateDoorHeight требует h ∈ [1, room.Height): дверь строго ниже потолка.
func ValidateDoorHeight(h float64, room models.Room) error {
	if !(h >= MinDoorHeight && h < room.Height) {
		return &RangeError{Field: "door height", Value: h, Min: MinDoorHeight, Max: room.Height, MaxExclusive: true}
	}
	return nil
}

// ClampDoorHeight опускает дверь до потолка минус зазор.
func ClampDoorHeight(h float64, room models.Room) float64 {
	return math.Min(h, room.Height-Clearance)
}

// RepairHeight возвращает высоту, к которой приводится слишком высокая дверь после
// изменения комнаты. Нижняя граница 6 футов действует, только пока она
// строго ниже потолка; в более низкой комнате берётся height - 0.5.
func RepairHeight(room models.Room) float64 {
	h := MaxDoorHeight(room)
	if h >= room.Height {
		h = room.Height - Clearance
	}
	return h
}

// DoorAdjustment фиксирует одну автоматическую правку двери.
type DoorAdjustment struct {
	DoorID    string  `json:"door_id"`
	OldHeight float64 `json:"old_height"`
	NewHeight float64 `json:"new_height"`
}

// RepairDoors приводит двери с height >= room.Height к RepairHeight и
// возвращает новый список вместе с перечнем правок. Исходный срез не меняется.
func RepairDoors(doors []models.Door, room models.Room) ([]models.Door, []DoorAdjustment, error) {
	out := models.CloneDoors(doors)
	var adjusted []DoorAdjustment

	target := RepairHeight(room)
	for i, door := range out {
		if door.Height < room.Height {
			continue
		}
		if target < MinDoorHeight {
			return nil, nil, fmt.Errorf("%w: door %s cannot fit under a %s ft ceiling",
				ErrInconsistent, door.ID, formatFloat(room.Height))
		}
		adjusted = append(adjusted, DoorAdjustment{DoorID: door.ID, OldHeight: door.Height, NewHeight: target})
		out[i].Height = target
	}

	return out, adjusted, nil
}

// ============================================================
// Helpers
// ============================================================

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
