// Package handler orchestrates the entity pipeline for HTTP: bind →
// validate → stamp → persist → shape. One handler serves every registered
// collection; resources differ only by their registry definition.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/audit"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/registry"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/repository"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/validation"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/metrics"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/middleware"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EntityHandler serves one collection's REST surface.
type EntityHandler struct {
	def     *registry.Definition
	repo    *repository.Repository
	httpMet *metrics.HTTPMetrics
}

// NewEntityHandler builds the handler for one registered entity.
func NewEntityHandler(def *registry.Definition, repo *repository.Repository, m *metrics.HTTPMetrics) *EntityHandler {
	return &EntityHandler{def: def, repo: repo, httpMet: m}
}

func (h *EntityHandler) validator() *validation.Validator {
	return &validation.Validator{Table: h.def.Table, Rules: h.def.Rules, Lookups: h.repo}
}

// List handles GET /{area}/{collection}?page=N&per_page=M
func (h *EntityHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	result, err := h.repo.List(c.Request().Context(), h.def, page, perPage)
	if err != nil {
		log.Error("Failed to list records",
			zap.String("collection", h.def.Collection),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve records"})
	}

	items := make([]registry.Record, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, h.shape(rec))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        result.Page,
			"total_pages": result.TotalPages,
			"total":       result.Total,
		},
	})
}

// Get handles GET /{area}/{collection}/{id}
func (h *EntityHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)

	id, ok := h.parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
	}

	rec, err := h.repo.GetByID(c.Request().Context(), h.def, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
		}
		log.Error("Failed to get record",
			zap.String("collection", h.def.Collection),
			zap.Uint("id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve record"})
	}

	return c.JSON(http.StatusOK, echo.Map{"data": h.shape(rec)})
}

// Create handles POST /{area}/{collection}
func (h *EntityHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()

	payload := registry.Record{}
	if err := c.Bind(&payload); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	rec, err := h.validator().Validate(ctx, payload, validation.ModeCreate, nil, 0)
	if err != nil {
		return h.writeError(c, "create", err)
	}

	var reveal registry.Record
	if h.def.BeforeCreate != nil {
		reveal, err = h.def.BeforeCreate(ctx, rec, nil)
		if err != nil {
			return h.writeError(c, "create", err)
		}
	}

	audit.Stamp(rec, middleware.ActorFromEcho(c), audit.OpCreate)

	out, err := h.repo.Create(ctx, h.def, rec)
	if err != nil {
		return h.writeError(c, "create", err)
	}

	h.recordMutation("create", "success")
	log.Info("Record created",
		zap.String("collection", h.def.Collection),
		zap.Any("id", out["id"]))

	shaped := h.shape(out)
	for k, v := range reveal {
		shaped[k] = v
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": shaped})
}

// Update handles PUT /{area}/{collection}/{id}
func (h *EntityHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()

	id, ok := h.parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
	}

	base, err := h.repo.GetByID(ctx, h.def, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
		}
		log.Error("Failed to load record for update",
			zap.String("collection", h.def.Collection),
			zap.Uint("id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve record"})
	}

	payload := registry.Record{}
	if err := c.Bind(&payload); err != nil {
		log.Warn("Invalid request data", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	rec, err := h.validator().Validate(ctx, payload, validation.ModeUpdate, base, id)
	if err != nil {
		return h.writeError(c, "update", err)
	}

	if h.def.Hierarchical {
		if err := h.checkAncestorCycle(c, id, rec); err != nil {
			return h.writeError(c, "update", err)
		}
	}

	if h.def.BeforeUpdate != nil {
		if _, err := h.def.BeforeUpdate(ctx, rec, base); err != nil {
			return h.writeError(c, "update", err)
		}
	}

	audit.Stamp(rec, middleware.ActorFromEcho(c), audit.OpUpdate)

	out, err := h.repo.Update(ctx, h.def, id, rec)
	if err != nil {
		return h.writeError(c, "update", err)
	}

	h.recordMutation("update", "success")
	log.Info("Record updated",
		zap.String("collection", h.def.Collection),
		zap.Uint("id", id))

	return c.JSON(http.StatusOK, echo.Map{"data": h.shape(out)})
}

// Delete handles DELETE /{area}/{collection}/{id}
func (h *EntityHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, ok := h.parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
	}

	if err := h.repo.Delete(c.Request().Context(), h.def, id); err != nil {
		return h.writeError(c, "delete", err)
	}

	h.recordMutation("delete", "success")
	log.Info("Record deleted",
		zap.String("collection", h.def.Collection),
		zap.Uint("id", id))

	return c.NoContent(http.StatusNoContent)
}

// checkAncestorCycle rejects a parent_id that would loop the tree back to
// the record being updated. The walk is bounded to catch pre-existing loops.
func (h *EntityHandler) checkAncestorCycle(c echo.Context, id uint, rec registry.Record) error {
	raw, present := rec["parent_id"]
	if !present || raw == nil {
		return nil
	}

	parentID, ok := toUint(raw)
	if !ok {
		return nil
	}

	ctx := c.Request().Context()
	current := parentID
	for depth := 0; depth < 256; depth++ {
		if current == id {
			return apperr.NewValidationError(apperr.FieldErrors{
				"parent_id": {"would create a cycle"},
			})
		}
		ancestor, err := h.repo.GetByID(ctx, h.def, current)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil
			}
			return err
		}
		next, ok := toUint(ancestor["parent_id"])
		if !ok {
			return nil
		}
		current = next
	}
	return apperr.NewValidationError(apperr.FieldErrors{
		"parent_id": {"would create a cycle"},
	})
}

// writeError maps pipeline errors onto the HTTP error contract.
func (h *EntityHandler) writeError(c echo.Context, op string, err error) error {
	log := logger.FromEcho(c)

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		if h.httpMet != nil {
			h.httpMet.RecordValidationFailure(h.def.Collection)
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": ve.Fields})
	}

	var ce *apperr.ConstraintError
	if errors.As(err, &ce) {
		h.recordMutation(op, "conflict")
		log.Warn("Write rejected by store constraint",
			zap.String("collection", h.def.Collection),
			zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Conflict with an existing record, please retry"})
	}

	var re *apperr.ReferencedError
	if errors.As(err, &re) {
		h.recordMutation(op, "conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	var me *apperr.MissingCredentialError
	if errors.As(err, &me) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	if errors.Is(err, apperr.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
	}

	h.recordMutation(op, "error")
	log.Error("Pipeline operation failed",
		zap.String("collection", h.def.Collection),
		zap.String("operation", op),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal error"})
}

// shape projects a record into its external representation: hidden fields
// removed unconditionally, computed fields appended.
func (h *EntityHandler) shape(rec registry.Record) registry.Record {
	out := make(registry.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, field := range h.def.Hidden {
		delete(out, field)
	}
	if h.def.Compute != nil {
		h.def.Compute(out)
	}
	return out
}

func (h *EntityHandler) parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *EntityHandler) recordMutation(op, outcome string) {
	if h.httpMet != nil {
		h.httpMet.RecordMutation(h.def.Collection, op, outcome)
	}
}

func toUint(raw interface{}) (uint, bool) {
	switch n := raw.(type) {
	case float64:
		if n <= 0 || n != float64(uint(n)) {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n <= 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}
