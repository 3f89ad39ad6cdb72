package geometry_test

import (
	"errors"
	"math"
	"testing"

	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoom(t *testing.T) {
	cases := []struct {
		name    string
		w, l, h float64
		wantErr bool
		field   string
	}{
		{"typical", 12, 15, 8, false, ""},
		{"max sides", 50, 50, 20, false, ""},
		{"min height", 0.5, 0.5, 6, false, ""},
		{"zero width", 0, 15, 8, true, "room width"},
		{"wide", 50.01, 15, 8, true, "room width"},
		{"negative length", 12, -1, 8, true, "room length"},
		{"low ceiling", 12, 15, 5.99, true, "room height"},
		{"high ceiling", 12, 15, 20.5, true, "room height"},
		{"nan width", math.NaN(), 15, 8, true, "room width"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := geometry.ValidateRoom(tc.w, tc.l, tc.h)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, geometry.ErrOutOfRange)
			var rangeErr *geometry.RangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tc.field, rangeErr.Field)
		})
	}
}

func TestClampFurniturePosition(t *testing.T) {
	room := models.NewRoom(12, 15, 8)
	b := geometry.FurnitureBounds(room, geometry.WallMargin)

	assert.InDelta(t, -units.ToScene(6)+units.ToScene(0.5), b.MinX, 1e-12)
	assert.InDelta(t, units.ToScene(7.5)-units.ToScene(0.5), b.MaxZ, 1e-12)

	got := geometry.ClampFurniturePosition(models.Vec3{X: 100, Y: 0.42, Z: -100}, room, geometry.WallMargin)
	assert.Equal(t, b.MaxX, got.X)
	assert.Equal(t, 0.42, got.Y, "Y must stay untouched")
	assert.Equal(t, b.MinZ, got.Z)

	inside := models.Vec3{X: 0.3, Y: 0, Z: -0.2}
	assert.Equal(t, inside, geometry.ClampFurniturePosition(inside, room, geometry.WallMargin))
}

func TestClampFurniturePosition_TinyRoomCollapsesToCentre(t *testing.T) {
	room := models.NewRoom(0.5, 0.8, 8)
	got := geometry.ClampFurniturePosition(models.Vec3{X: 1, Z: -1}, room, geometry.WallMargin)
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 0.0, got.Z)
}

func TestClampDoorPosition(t *testing.T) {
	assert.Equal(t, 0.1, geometry.ClampDoorPosition(0))
	assert.Equal(t, 0.9, geometry.ClampDoorPosition(1.3))
	assert.Equal(t, 0.5, geometry.ClampDoorPosition(0.5))
}

func TestMaxDoorHeight(t *testing.T) {
	assert.Equal(t, 7.5, geometry.MaxDoorHeight(models.NewRoom(12, 15, 8)))
	assert.Equal(t, 6.0, geometry.MaxDoorHeight(models.NewRoom(12, 15, 6)))
	assert.Equal(t, 19.5, geometry.MaxDoorHeight(models.NewRoom(12, 15, 20)))
}

func TestValidateDoorWidth(t *testing.T) {
	require.NoError(t, geometry.ValidateDoorWidth(1))
	require.NoError(t, geometry.ValidateDoorWidth(6))
	require.ErrorIs(t, geometry.ValidateDoorWidth(0.9), geometry.ErrOutOfRange)
	require.ErrorIs(t, geometry.ValidateDoorWidth(6.1), geometry.ErrOutOfRange)
}

func TestValidateDoorHeight_StrictlyBelowCeiling(t *testing.T) {
	room := models.NewRoom(12, 15, 8)
	require.NoError(t, geometry.ValidateDoorHeight(1, room))
	require.NoError(t, geometry.ValidateDoorHeight(7.99, room))
	require.ErrorIs(t, geometry.ValidateDoorHeight(8, room), geometry.ErrOutOfRange)
	require.ErrorIs(t, geometry.ValidateDoorHeight(0.5, room), geometry.ErrOutOfRange)
}

func TestRepairDoors(t *testing.T) {
	doors := []models.Door{
		models.NewDoor("a", models.WallSouth, 0.5, 3, 7),
		models.NewDoor("b", models.WallNorth, 0.5, 3, 5),
	}

	t.Run("low room uses ceiling minus clearance", func(t *testing.T) {
		room := models.NewRoom(12, 15, 6)
		out, adjusted, err := geometry.RepairDoors(doors, room)
		require.NoError(t, err)
		require.Len(t, adjusted, 1)
		assert.Equal(t, "a", adjusted[0].DoorID)
		assert.Equal(t, 7.0, adjusted[0].OldHeight)
		assert.Equal(t, 5.5, out[0].Height)
		assert.Less(t, out[0].Height, room.Height)
		assert.Equal(t, 5.0, out[1].Height)
		assert.Equal(t, 7.0, doors[0].Height, "input must not be mutated")
	})

	t.Run("six foot floor applies while below ceiling", func(t *testing.T) {
		room := models.NewRoom(12, 15, 6.2)
		out, _, err := geometry.RepairDoors(doors, room)
		require.NoError(t, err)
		assert.Equal(t, 6.0, out[0].Height)
	})

	t.Run("nothing to repair", func(t *testing.T) {
		out, adjusted, err := geometry.RepairDoors(doors, models.NewRoom(12, 15, 10))
		require.NoError(t, err)
		assert.Empty(t, adjusted)
		assert.Equal(t, doors, out)
	})
}

func TestProjectDrop(t *testing.T) {
	room := models.NewRoom(12, 15, 8)
	b := geometry.FurnitureBounds(room, geometry.WallMargin)

	centre := geometry.ProjectDrop(0, 0, room)
	assert.Equal(t, models.Vec3{X: 0, Y: geometry.FloorOffset, Z: 0}, centre)

	corner := geometry.ProjectDrop(1, -1, room)
	assert.True(t, b.Contains(corner))
	assert.NotEqual(t, units.ToScene(6), corner.X, "never exactly on a wall")

	far := geometry.ProjectDrop(5, 5, room)
	assert.Equal(t, b.MaxX, far.X)
	assert.Equal(t, b.MaxZ, far.Z)
}

func TestNDCFromPixels(t *testing.T) {
	x, y := geometry.NDCFromPixels(400, 300, 800, 600)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = geometry.NDCFromPixels(0, 0, 800, 600)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 1.0, y)
}

func TestValidateScale(t *testing.T) {
	require.NoError(t, geometry.ValidateScale(0.1))
	require.NoError(t, geometry.ValidateScale(3))
	require.ErrorIs(t, geometry.ValidateScale(0), geometry.ErrOutOfRange)
	require.ErrorIs(t, geometry.ValidateScale(math.NaN()), geometry.ErrOutOfRange)
}
