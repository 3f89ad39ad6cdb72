package geometry

import (
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"
)

const (
	// DropSpread сжимает точку броска до 80% комнаты.
	DropSpread = 0.8
	// FloorOffset приподнимает мебель над полом, чтобы не было z-fighting.
	FloorOffset = 0.01
)

// NDCFromPixels переводит координаты курсора внутри холста в [-1, 1], ось Y вверх.
func NDCFromPixels(px, py, width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x := (px/width)*2 - 1
	y := -(py/height)*2 + 1
	return x, y
}

// ProjectDrop переводит точку броска в NDC в позицию на полу комнаты
// и зажимает её внутрь стен.
func ProjectDrop(ndcX, ndcY float64, room models.Room) models.Vec3 {
	widthM := units.ToScene(room.Width)
	lengthM := units.ToScene(room.Length)

	pos := models.Vec3{
		X: ndcX * widthM / 2 * DropSpread,
		Y: FloorOffset,
		Z: ndcY * lengthM / 2 * DropSpread,
	}
	return ClampFurniturePosition(pos, room, WallMargin)
}
