package history

import (
	"room-planner/internal/planner/models"
)

// ============================================================
// History Engine
// ============================================================

// Entry хранит мебель и двери после действия Action.
// Комната в снимок не входит: её изменения не отменяются.
type Entry struct {
	Action    models.ActionKind      `json:"action"`
	Furniture []models.FurnitureItem `json:"furniture"`
	Doors     []models.Door          `json:"doors"`
}

func (e Entry) clone() Entry {
	return Entry{
		Action:    e.Action,
		Furniture: models.CloneFurniture(e.Furniture),
		Doors:     models.CloneDoors(e.Doors),
	}
}

// Status сообщает тулбару, доступны ли undo/redo.
type Status struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// History ведёт линейный журнал без ветвлений. cursor указывает на последний
// применённый снимок; -1 означает исходное пустое состояние.
type History struct {
	entries []Entry
	cursor  int
}

func New() *History {
	return &History{cursor: -1}
}

// Record отбрасывает ветку redo, добавляет снимок и переводит курсор на него.
func (h *History) Record(e Entry) Status {
	h.entries = append(h.entries[:h.cursor+1], e.clone())
	h.cursor = len(h.entries) - 1
	return h.Status()
}

// Undo возвращает снимок, который нужно применить. На границе журнала
// это тихий no-op: ok == false.
func (h *History) Undo() (Entry, bool) {
	if h.cursor < 0 {
		return Entry{}, false
	}

	h.cursor--
	if h.cursor < 0 {
		return Entry{Furniture: []models.FurnitureItem{}, Doors: []models.Door{}}, true
	}
	return h.entries[h.cursor].clone(), true
}

// Redo возвращает следующий снимок или ok == false, если его нет.
func (h *History) Redo() (Entry, bool) {
	if h.cursor >= len(h.entries)-1 {
		return Entry{}, false
	}

	h.cursor++
	return h.entries[h.cursor].clone(), true
}

func (h *History) Status() Status {
	return Status{
		CanUndo: h.cursor >= 0,
		CanRedo: h.cursor < len(h.entries)-1,
	}
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Cursor() int {
	return h.cursor
}

// Entries возвращает копию журнала.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.clone()
	}
	return out
}
