package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/emirkay/schoolregistry/internal/app/auth"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/services"
	"github.com/emirkay/schoolregistry/internal/middleware"
)

// TimetableController handles timetable endpoints.
type TimetableController struct {
	timetableService *services.TimetableService
	gate             *appauth.Gate
}

// NewTimetableController creates a new TimetableController.
func NewTimetableController(timetableService *services.TimetableService, gate *appauth.Gate) *TimetableController {
	return &TimetableController{timetableService: timetableService, gate: gate}
}

// CreateEntry handles POST /timetables.
func (c *TimetableController) CreateEntry(ctx *gin.Context) {
	var req dto.TimetableRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	entry, err := c.timetableService.CreateEntry(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// GetEntry handles GET /timetables/:id.
func (c *TimetableController) GetEntry(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	entry, err := c.timetableService.GetEntry(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// GetAllEntries handles GET /timetables.
func (c *TimetableController) GetAllEntries(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionRead, appauth.Target{}) {
		return
	}

	entries, err := c.timetableService.GetAllEntries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// GetClassTimetable handles GET /classes/:id/timetable.
func (c *TimetableController) GetClassTimetable(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionRead, appauth.Target{ClassID: id}) {
		return
	}

	entries, err := c.timetableService.GetEntriesByClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// GetMyTimetable handles GET /timetables/mine: every entry the authenticated
// account can see through its own profiles and links. No gate check; the
// result is scoped to the actor by construction.
func (c *TimetableController) GetMyTimetable(ctx *gin.Context) {
	accountID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "no authenticated account"))
		return
	}

	entries, err := c.timetableService.GetEntriesForAccount(ctx, accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// UpdateEntry handles PUT /timetables/:id.
func (c *TimetableController) UpdateEntry(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.TimetableRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	entry, err := c.timetableService.UpdateEntry(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /timetables/:id.
func (c *TimetableController) DeleteEntry(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTimetable, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.timetableService.DeleteEntry(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
