package editor

import (
	"errors"
	"fmt"
	"math"

	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/history"
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/selection"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Editor Core
// ============================================================

var (
	// Команда требует созданной комнаты.
	ErrNoRoom = errors.New("room not created")
	// Объекта с таким id нет в проекте.
	ErrNotFound = errors.New("not found")
)

// Result возвращается каждой командой: новый Design, состояние undo/redo
// и двери, которые пришлось автоматически исправить.
type Result struct {
	Design   models.Design             `json:"design"`
	Status   history.Status            `json:"status"`
	Changed  bool                      `json:"changed"`
	Adjusted []geometry.DoorAdjustment `json:"adjusted,omitempty"`
}

type Option func(*Editor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator подменяет генератор id мебели и дверей.
func WithIDGenerator(gen func() string) Option {
	return func(e *Editor) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// Editor владеет Design, журналом и выделением одной сессии.
// Не потокобезопасен: команды выполняются по одной.
type Editor struct {
	design    models.Design
	history   *history.History
	selection *selection.Machine
	pending   *Pending

	newID  func() string
	logger *zap.Logger

	observers    map[int]func(history.Status)
	nextObserver int
}

func New(opts ...Option) *Editor {
	e := &Editor{
		design:    models.Design{}.Clone(),
		history:   history.New(),
		selection: selection.New(),
		newID:     uuid.NewString,
		logger:    zap.NewNop(),
		observers: make(map[int]func(history.Status)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ============================================================
// Read side
// ============================================================

func (e *Editor) Design() models.Design {
	return e.design.Clone()
}

func (e *Editor) Status() history.Status {
	return e.history.Status()
}

func (e *Editor) Selection() selection.State {
	return e.selection.State()
}

func (e *Editor) HistoryLen() int {
	return e.history.Len()
}

// Journal перечисляет действия журнала по порядку. Cursor указывает на
// последнее применённое действие, -1 если отменено всё.
type Journal struct {
	Actions []models.ActionKind `json:"actions"`
	Cursor  int                 `json:"cursor"`
}

func (e *Editor) Journal() Journal {
	entries := e.history.Entries()
	actions := make([]models.ActionKind, len(entries))
	for i, entry := range entries {
		actions[i] = entry.Action
	}
	return Journal{Actions: actions, Cursor: e.history.Cursor()}
}

// Subscribe регистрирует наблюдателя за undo/redo. Он вызывается синхронно
// после каждой записи в журнал, undo и redo.
func (e *Editor) Subscribe(fn func(history.Status)) func() {
	id := e.nextObserver
	e.nextObserver++
	e.observers[id] = fn
	return func() {
		delete(e.observers, id)
	}
}

// ============================================================
// Room
// ============================================================

// CreateRoom задаёт или заменяет комнату. В журнал не пишется.
// Двери выше нового потолка приводятся к допустимой высоте, правки
// возвращаются в Result.Adjusted.
func (e *Editor) CreateRoom(width, length, height float64) (Result, error) {
	if err := geometry.ValidateRoom(width, length, height); err != nil {
		return Result{}, err
	}

	room := models.NewRoom(width, length, height)
	doors, adjusted, err := geometry.RepairDoors(e.design.Doors, room)
	if err != nil {
		return Result{}, err
	}

	next := e.design.Clone()
	next.Room = room
	next.Doors = doors
	e.design = e.selection.Apply(next)

	if e.pending != nil {
		e.pending.Position = geometry.ClampFurniturePosition(e.pending.Position, room, geometry.WallMargin)
	}

	e.logAdjusted(adjusted)
	e.logger.Info("room created",
		zap.Float64("width", width),
		zap.Float64("length", length),
		zap.Float64("height", height),
	)

	res := e.result(true)
	res.Adjusted = adjusted
	return res, nil
}

// ============================================================
// Selection
// ============================================================

// SelectFurniture переключает выделение мебели. Незавершённое перетаскивание
// сначала фиксируется отдельной записью move.
func (e *Editor) SelectFurniture(id string) (Result, error) {
	if _, ok := e.design.FindFurniture(id); !ok {
		return Result{}, fmt.Errorf("furniture %s: %w", id, ErrNotFound)
	}

	e.commitPending()
	e.selection.SelectFurniture(id)
	e.design = e.selection.Apply(e.design)
	return e.result(true), nil
}

// SelectDoor переключает выделение двери, снимая выделение мебели.
func (e *Editor) SelectDoor(id string) (Result, error) {
	if _, ok := e.design.FindDoor(id); !ok {
		return Result{}, fmt.Errorf("door %s: %w", id, ErrNotFound)
	}

	e.commitPending()
	e.selection.SelectDoor(id)
	e.design = e.selection.Apply(e.design)
	return e.result(true), nil
}

// ============================================================
// Furniture
// ============================================================

// DropFurniture добавляет мебель из каталога в точку броска (NDC, [-1, 1]).
func (e *Editor) DropFurniture(catalogID string, ndcX, ndcY float64) (Result, error) {
	if e.design.Room.IsZero() {
		return Result{}, ErrNoRoom
	}
	if catalogID == "" {
		return Result{}, fmt.Errorf("catalog entry: %w", ErrNotFound)
	}
	if err := geometry.ValidateFinite("drop point", ndcX, ndcY); err != nil {
		return Result{}, err
	}

	e.foldPending()
	pos := geometry.ProjectDrop(ndcX, ndcY, e.design.Room)
	next := e.design.Clone()
	next.Furniture = append(next.Furniture, models.NewFurnitureItem(e.newID(), catalogID, pos))

	return e.commit(models.ActionAdd, next), nil
}

// MoveSelectedFurniture переносит выделенную мебель, зажимая позицию внутри стен.
func (e *Editor) MoveSelectedFurniture(pos models.Vec3) (Result, error) {
	if err := geometry.ValidateFinite("position", pos.X, pos.Y, pos.Z); err != nil {
		return Result{}, err
	}
	idx, ok := e.selectedFurniture()
	if !ok {
		return e.result(false), nil
	}

	before := e.design
	e.foldPending()
	clamped := geometry.ClampFurniturePosition(pos, e.design.Room, geometry.WallMargin)

	next := e.design.Clone()
	next.Furniture[idx] = next.Furniture[idx].WithPosition(clamped)
	return e.commitFurniture(models.ActionMove, before, next, idx), nil
}

// ResizeSelectedFurniture задаёт масштаб. Диапазон [0.5, 2] контролирует UI,
// ядро требует только положительное значение.
func (e *Editor) ResizeSelectedFurniture(scale float64) (Result, error) {
	if err := geometry.ValidateScale(scale); err != nil {
		return Result{}, err
	}
	idx, ok := e.selectedFurniture()
	if !ok {
		return e.result(false), nil
	}

	before := e.design
	e.foldPending()

	next := e.design.Clone()
	next.Furniture[idx] = next.Furniture[idx].WithScale(scale)
	return e.commitFurniture(models.ActionResize, before, next, idx), nil
}

// RotateSelectedFurniture поворачивает мебель вокруг вертикальной оси.
func (e *Editor) RotateSelectedFurniture(degrees float64) (Result, error) {
	if err := geometry.ValidateFinite("rotation", degrees); err != nil {
		return Result{}, err
	}
	idx, ok := e.selectedFurniture()
	if !ok {
		return e.result(false), nil
	}

	before := e.design
	e.foldPending()

	next := e.design.Clone()
	next.Furniture[idx] = next.Furniture[idx].WithRotationY(degrees * math.Pi / 180)
	return e.commitFurniture(models.ActionRotate, before, next, idx), nil
}

// DeleteSelectedFurniture удаляет выделенную мебель и сбрасывает выделение.
func (e *Editor) DeleteSelectedFurniture() (Result, error) {
	idx, ok := e.selectedFurniture()
	if !ok {
		return e.result(false), nil
	}

	e.pending = nil
	next := e.design.Clone()
	next.Furniture = append(next.Furniture[:idx], next.Furniture[idx+1:]...)
	e.selection.Clear()

	return e.commit(models.ActionRemove, next), nil
}

// ============================================================
// Doors
// ============================================================

// AddDoor врезает дверь в стену. Ширина и высота проверяются, высота
// опускается до потолка минус зазор, позиция зажимается в [0.1, 0.9].
func (e *Editor) AddDoor(wall models.Wall, position, width, height float64) (Result, error) {
	if e.design.Room.IsZero() {
		return Result{}, ErrNoRoom
	}
	if !wall.Valid() {
		return Result{}, fmt.Errorf("%w: unknown wall %q", geometry.ErrOutOfRange, wall)
	}
	if err := geometry.ValidateFinite("door position", position); err != nil {
		return Result{}, err
	}
	if err := geometry.ValidateDoorWidth(width); err != nil {
		return Result{}, err
	}
	if err := geometry.ValidateDoorHeight(height, e.design.Room); err != nil {
		return Result{}, err
	}

	e.foldPending()
	door := models.NewDoor(
		e.newID(),
		wall,
		geometry.ClampDoorPosition(position),
		width,
		geometry.ClampDoorHeight(height, e.design.Room),
	)
	next := e.design.Clone()
	next.Doors = append(next.Doors, door)

	return e.commit(models.ActionAddDoor, next), nil
}

// MoveSelectedDoor сдвигает выделенную дверь вдоль стены.
func (e *Editor) MoveSelectedDoor(position float64) (Result, error) {
	if err := geometry.ValidateFinite("door position", position); err != nil {
		return Result{}, err
	}
	idx, ok := e.selectedDoor()
	if !ok {
		return e.result(false), nil
	}

	clamped := geometry.ClampDoorPosition(position)
	if clamped == e.design.Doors[idx].Position {
		return e.result(false), nil
	}

	next := e.design.Clone()
	next.Doors[idx] = next.Doors[idx].WithPosition(clamped)
	return e.commit(models.ActionMoveDoor, next), nil
}

// ResizeSelectedDoor меняет размер выделенной двери по тем же правилам, что и AddDoor.
func (e *Editor) ResizeSelectedDoor(width, height float64) (Result, error) {
	idx, ok := e.selectedDoor()
	if !ok {
		return e.result(false), nil
	}
	if err := geometry.ValidateDoorWidth(width); err != nil {
		return Result{}, err
	}
	if err := geometry.ValidateDoorHeight(height, e.design.Room); err != nil {
		return Result{}, err
	}

	height = geometry.ClampDoorHeight(height, e.design.Room)
	door := e.design.Doors[idx]
	if door.Width == width && door.Height == height {
		return e.result(false), nil
	}

	next := e.design.Clone()
	next.Doors[idx] = door.WithSize(width, height)
	return e.commit(models.ActionResizeDoor, next), nil
}

// DeleteSelectedDoor удаляет выделенную дверь и сбрасывает выделение.
func (e *Editor) DeleteSelectedDoor() (Result, error) {
	idx, ok := e.selectedDoor()
	if !ok {
		return e.result(false), nil
	}

	next := e.design.Clone()
	next.Doors = append(next.Doors[:idx], next.Doors[idx+1:]...)
	e.selection.Clear()

	return e.commit(models.ActionRemoveDoor, next), nil
}

// ============================================================
// Undo / Redo
// ============================================================

// Undo откатывает последнее действие. На границе журнала ничего не делает.
func (e *Editor) Undo() Result {
	entry, ok := e.history.Undo()
	if !ok {
		return e.result(false)
	}
	return e.restore(entry)
}

// Redo повторяет отменённое действие. На границе журнала ничего не делает.
func (e *Editor) Redo() Result {
	entry, ok := e.history.Redo()
	if !ok {
		return e.result(false)
	}
	return e.restore(entry)
}

// restore применяет снимок к текущей комнате. Снимки не содержат комнату,
// поэтому двери повторно сверяются с её высотой. Выделение берётся из снимка.
func (e *Editor) restore(entry history.Entry) Result {
	e.pending = nil

	doors := entry.Doors
	var adjusted []geometry.DoorAdjustment
	if !e.design.Room.IsZero() {
		repaired, adj, err := geometry.RepairDoors(entry.Doors, e.design.Room)
		if err != nil {
			e.logger.Error("restore snapshot", zap.Error(err))
		} else {
			doors, adjusted = repaired, adj
		}
	}

	restored := models.Design{
		Room:      e.design.Room,
		Furniture: entry.Furniture,
		Doors:     doors,
	}
	e.selection.Restore(restored)
	e.design = e.selection.Apply(restored)
	e.logAdjusted(adjusted)

	status := e.history.Status()
	e.notify(status)

	res := e.result(true)
	res.Adjusted = adjusted
	return res
}

// ============================================================
// Internals
// ============================================================

// commit публикует новый Design и пишет ровно одну запись в журнал.
// Снимок берётся после Apply и хранит флаги selected.
func (e *Editor) commit(action models.ActionKind, next models.Design) Result {
	e.selection.Reconcile(next)
	e.design = e.selection.Apply(next)

	status := e.history.Record(snapshot(action, e.design))
	e.logger.Debug("command committed",
		zap.String("action", string(action)),
		zap.Int("history_len", e.history.Len()),
	)
	e.notify(status)
	return e.result(true)
}

// commitFurniture записывает правку мебели idx, если итог отличается от
// состояния до слияния с незавершённым перетаскиванием. Иначе перетаскивание
// просто отбрасывается.
func (e *Editor) commitFurniture(action models.ActionKind, before, next models.Design, idx int) Result {
	if next.Furniture[idx] == before.Furniture[idx] {
		e.design = before
		return e.result(false)
	}
	return e.commit(action, next)
}

func snapshot(action models.ActionKind, d models.Design) history.Entry {
	return history.Entry{
		Action:    action,
		Furniture: models.CloneFurniture(d.Furniture),
		Doors:     models.CloneDoors(d.Doors),
	}
}

func (e *Editor) result(changed bool) Result {
	return Result{
		Design:  e.design.Clone(),
		Status:  e.history.Status(),
		Changed: changed,
	}
}

func (e *Editor) notify(status history.Status) {
	for _, fn := range e.observers {
		fn(status)
	}
}

func (e *Editor) selectedFurniture() (int, bool) {
	id, ok := e.selection.State().Furniture()
	if !ok {
		return -1, false
	}
	return e.design.FindFurniture(id)
}

func (e *Editor) selectedDoor() (int, bool) {
	id, ok := e.selection.State().Door()
	if !ok {
		return -1, false
	}
	return e.design.FindDoor(id)
}

func (e *Editor) logAdjusted(adjusted []geometry.DoorAdjustment) {
	for _, adj := range adjusted {
		e.logger.Warn("door height adjusted to fit room",
			zap.String("door_id", adj.DoorID),
			zap.Float64("old_height", adj.OldHeight),
			zap.Float64("new_height", adj.NewHeight),
		)
	}
}
