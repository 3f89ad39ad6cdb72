package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"room-planner/internal/planner/editor"
	"room-planner/internal/planner/geometry"
	"room-planner/internal/planner/history"
	"room-planner/internal/planner/mapper"
	"room-planner/internal/planner/models"
	"room-planner/internal/planner/repository"
	"room-planner/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Planner Handler
// ============================================================

var errBadRequest = errors.New("bad request")

// Catalog отдаёт каталог мебели.
type Catalog interface {
	List(ctx context.Context) ([]models.CatalogEntry, error)
	ListByCategory(ctx context.Context, category string) ([]models.CatalogEntry, error)
	GetByID(ctx context.Context, id string) (models.CatalogEntry, error)
	Ping(ctx context.Context) error
}

type PlannerHandler struct {
	sessions *service.SessionManager
	catalog  Catalog
	renderer *mapper.Renderer
	logger   *zap.Logger
}

func NewPlannerHandler(sessions *service.SessionManager, catalog Catalog, logger *zap.Logger) *PlannerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerHandler{
		sessions: sessions,
		catalog:  catalog,
		renderer: mapper.NewRenderer(),
		logger:   logger,
	}
}

// Register вешает все маршруты сервиса на router.
func (h *PlannerHandler) Register(router fiber.Router) {
	router.Get("/health/live", h.Live)
	router.Get("/health/ready", h.Ready)

	router.Get("/catalog", h.ListCatalog)

	router.Post("/sessions", h.CreateSession)
	router.Get("/sessions/:id", h.GetSession)
	router.Delete("/sessions/:id", h.CloseSession)
	router.Get("/sessions/:id/plan.svg", h.Plan)

	router.Post("/sessions/:id/room", h.CreateRoom)

	router.Post("/sessions/:id/furniture", h.DropFurniture)
	router.Post("/sessions/:id/furniture/:fid/select", h.SelectFurniture)
	router.Put("/sessions/:id/furniture/selected/position", h.MoveFurniture)
	router.Put("/sessions/:id/furniture/selected/scale", h.ResizeFurniture)
	router.Put("/sessions/:id/furniture/selected/rotation", h.RotateFurniture)
	router.Delete("/sessions/:id/furniture/selected", h.DeleteFurniture)
	router.Post("/sessions/:id/furniture/selected/drag", h.DragFurniture)
	router.Post("/sessions/:id/furniture/selected/drag/end", h.EndDrag)
	router.Post("/sessions/:id/furniture/selected/drag/cancel", h.CancelDrag)

	router.Post("/sessions/:id/doors", h.AddDoor)
	router.Post("/sessions/:id/doors/:did/select", h.SelectDoor)
	router.Put("/sessions/:id/doors/selected/position", h.MoveDoor)
	router.Put("/sessions/:id/doors/selected/size", h.ResizeDoor)
	router.Delete("/sessions/:id/doors/selected", h.DeleteDoor)

	router.Post("/sessions/:id/nudge", h.Nudge)
	router.Post("/sessions/:id/undo", h.Undo)
	router.Post("/sessions/:id/redo", h.Redo)
}

// ============================================================
// Payloads
// ============================================================

type roomRequest struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// dropRequest принимает точку броска в NDC (x, y) либо в пикселях холста
// (px, py при canvas_width и canvas_height > 0).
type dropRequest struct {
	CatalogID    string  `json:"catalog_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	PX           float64 `json:"px"`
	PY           float64 `json:"py"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

func (r dropRequest) ndc() (float64, float64) {
	if r.CanvasWidth > 0 && r.CanvasHeight > 0 {
		return geometry.NDCFromPixels(r.PX, r.PY, r.CanvasWidth, r.CanvasHeight)
	}
	return r.X, r.Y
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type scaleRequest struct {
	Scale float64 `json:"scale"`
}

type rotationRequest struct {
	Degrees float64 `json:"degrees"`
}

type dragRequest struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	RotationY float64 `json:"rotation_y"`
}

type doorRequest struct {
	Wall     string  `json:"wall"`
	Position float64 `json:"position"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

type doorPositionRequest struct {
	Position float64 `json:"position"`
}

type doorSizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type nudgeRequest struct {
	Direction string `json:"direction"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	Design    models.Design  `json:"design"`
	Status    history.Status `json:"status"`
}

type stateResponse struct {
	Design   models.Design             `json:"design"`
	Status   history.Status            `json:"status"`
	Changed  bool                      `json:"changed"`
	Adjusted []geometry.DoorAdjustment `json:"adjusted,omitempty"`
	Scene    mapper.SceneView          `json:"scene"`
	Pending  *editor.Pending           `json:"pending,omitempty"`
	Journal  *editor.Journal           `json:"journal,omitempty"`
}

// ============================================================
// Health & Catalog
// ============================================================

func (h *PlannerHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready проверяет доступность базы каталога.
func (h *PlannerHandler) Ready(c fiber.Ctx) error {
	if err := h.catalog.Ping(c.Context()); err != nil {
		h.logger.Error("[PLANNER] catalog not ready", zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (h *PlannerHandler) ListCatalog(c fiber.Ctx) error {
	var (
		entries []models.CatalogEntry
		err     error
	)
	if category := c.Query("category"); category != "" {
		entries, err = h.catalog.ListByCategory(c.Context(), category)
	} else {
		entries, err = h.catalog.List(c.Context())
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(entries)
}

// ============================================================
// Sessions
// ============================================================

func (h *PlannerHandler) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create()
	h.logger.Info("[PLANNER] session created", zap.String("session_id", s.ID))

	var resp sessionResponse
	_ = s.Do(func(e *editor.Editor) error {
		resp = sessionResponse{SessionID: s.ID, Design: e.Design(), Status: e.Status()}
		return nil
	})
	return c.Status(http.StatusCreated).JSON(resp)
}

// GetSession дополнительно отдаёт журнал действий сессии.
func (h *PlannerHandler) GetSession(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return editor.Result{Design: e.Design(), Status: e.Status()}, nil
	}, withJournal)
}

func (h *PlannerHandler) CloseSession(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.sessions.Close(id); err != nil {
		return h.fail(c, err)
	}
	h.logger.Info("[PLANNER] session closed", zap.String("session_id", id))
	return c.SendStatus(http.StatusNoContent)
}

// Plan отдаёт план комнаты сверху в SVG.
func (h *PlannerHandler) Plan(c fiber.Ctx) error {
	s, err := h.sessions.Resolve(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	index := h.catalogIndex(c.Context())
	var svg string
	err = s.Do(func(e *editor.Editor) error {
		d := e.Design()
		if d.Room.IsZero() {
			return editor.ErrNoRoom
		}
		out, err := h.renderer.Render(d, index)
		svg = out
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

// ============================================================
// Room
// ============================================================

func (h *PlannerHandler) CreateRoom(c fiber.Ctx) error {
	var req roomRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.CreateRoom(req.Width, req.Length, req.Height)
	})
}

// ============================================================
// Furniture
// ============================================================

// DropFurniture проверяет id по каталогу до обращения к редактору.
func (h *PlannerHandler) DropFurniture(c fiber.Ctx) error {
	var req dropRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.CatalogID == "" {
		return h.fail(c, fmt.Errorf("%w: catalog_id required", errBadRequest))
	}
	if _, err := h.catalog.GetByID(c.Context(), req.CatalogID); err != nil {
		return h.fail(c, err)
	}

	x, y := req.ndc()
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.DropFurniture(req.CatalogID, x, y)
	})
}

func (h *PlannerHandler) SelectFurniture(c fiber.Ctx) error {
	fid := c.Params("fid")
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.SelectFurniture(fid)
	})
}

func (h *PlannerHandler) MoveFurniture(c fiber.Ctx) error {
	var req positionRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.MoveSelectedFurniture(models.Vec3{X: req.X, Y: req.Y, Z: req.Z})
	})
}

func (h *PlannerHandler) ResizeFurniture(c fiber.Ctx) error {
	var req scaleRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.ResizeSelectedFurniture(req.Scale)
	})
}

func (h *PlannerHandler) RotateFurniture(c fiber.Ctx) error {
	var req rotationRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.RotateSelectedFurniture(req.Degrees)
	})
}

func (h *PlannerHandler) DeleteFurniture(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.DeleteSelectedFurniture()
	})
}

func (h *PlannerHandler) DragFurniture(c fiber.Ctx) error {
	var req dragRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.DragSelectedFurniture(models.Vec3{X: req.X, Y: req.Y, Z: req.Z}, req.RotationY)
	})
}

func (h *PlannerHandler) EndDrag(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.EndDrag(), nil
	})
}

func (h *PlannerHandler) CancelDrag(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.CancelDrag(), nil
	})
}

// ============================================================
// Doors
// ============================================================

func (h *PlannerHandler) AddDoor(c fiber.Ctx) error {
	var req doorRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	wall, err := models.ParseWall(req.Wall)
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.AddDoor(wall, req.Position, req.Width, req.Height)
	})
}

func (h *PlannerHandler) SelectDoor(c fiber.Ctx) error {
	did := c.Params("did")
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.SelectDoor(did)
	})
}

func (h *PlannerHandler) MoveDoor(c fiber.Ctx) error {
	var req doorPositionRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.MoveSelectedDoor(req.Position)
	})
}

func (h *PlannerHandler) ResizeDoor(c fiber.Ctx) error {
	var req doorSizeRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.ResizeSelectedDoor(req.Width, req.Height)
	})
}

func (h *PlannerHandler) DeleteDoor(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.DeleteSelectedDoor()
	})
}

// ============================================================
// Nudge & History
// ============================================================

func (h *PlannerHandler) Nudge(c fiber.Ctx) error {
	var req nudgeRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	dir, err := editor.ParseDirection(req.Direction)
	if err != nil {
		return h.fail(c, err)
	}
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.Nudge(dir)
	})
}

func (h *PlannerHandler) Undo(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.Undo(), nil
	})
}

func (h *PlannerHandler) Redo(c fiber.Ctx) error {
	return h.run(c, func(e *editor.Editor) (editor.Result, error) {
		return e.Redo(), nil
	})
}

// ============================================================
// Helpers
// ============================================================

// run выполняет команду под мьютексом сессии и отвечает новым состоянием.
func (h *PlannerHandler) run(c fiber.Ctx, cmd func(*editor.Editor) (editor.Result, error), opts ...func(*editor.Editor, *stateResponse)) error {
	s, err := h.sessions.Resolve(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	index := h.catalogIndex(c.Context())
	var resp stateResponse
	err = s.Do(func(e *editor.Editor) error {
		res, err := cmd(e)
		if err != nil {
			return err
		}
		resp = stateResponse{
			Design:   res.Design,
			Status:   res.Status,
			Changed:  res.Changed,
			Adjusted: res.Adjusted,
			Scene:    mapper.BuildScene(res.Design, index),
		}
		if p, ok := e.Pending(); ok {
			resp.Pending = &p
		}
		for _, opt := range opts {
			opt(e, &resp)
		}
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

func withJournal(e *editor.Editor, resp *stateResponse) {
	j := e.Journal()
	resp.Journal = &j
}

func (h *PlannerHandler) catalogIndex(ctx context.Context) mapper.CatalogIndex {
	entries, err := h.catalog.List(ctx)
	if err != nil {
		h.logger.Warn("[PLANNER] catalog unavailable, rendering without it", zap.Error(err))
		return mapper.CatalogIndex{}
	}
	return mapper.IndexCatalog(entries)
}

func decode(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}

// fail переводит ошибку ядра в HTTP-ответ.
func (h *PlannerHandler) fail(c fiber.Ctx, err error) error {
	var rangeErr *geometry.RangeError

	switch {
	case errors.As(err, &rangeErr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "field": rangeErr.Field})
	case errors.Is(err, geometry.ErrOutOfRange), errors.Is(err, errBadRequest):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, editor.ErrNoRoom), errors.Is(err, geometry.ErrInconsistent):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, editor.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.Error("[PLANNER] request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
