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

// AbsenceController handles absence record endpoints.
type AbsenceController struct {
	absenceService *services.AbsenceService
	gate           *appauth.Gate
}

// NewAbsenceController creates a new AbsenceController.
func NewAbsenceController(absenceService *services.AbsenceService, gate *appauth.Gate) *AbsenceController {
	return &AbsenceController{absenceService: absenceService, gate: gate}
}

// CreateAbsence handles POST /absences. The subject reference scopes the
// teacher's create grant.
func (c *AbsenceController) CreateAbsence(ctx *gin.Context) {
	var req dto.AbsenceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	target := appauth.Target{StudentID: req.StudentID, SubjectID: req.SubjectID}
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionCreate, target) {
		return
	}

	absence, err := c.absenceService.CreateAbsence(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, absence)
}

// GetAbsence handles GET /absences/:id.
func (c *AbsenceController) GetAbsence(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	absence, err := c.absenceService.GetAbsence(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, absence)
}

// GetAllAbsences handles GET /absences.
func (c *AbsenceController) GetAllAbsences(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionRead, appauth.Target{}) {
		return
	}

	absences, err := c.absenceService.GetAllAbsences(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, absences)
}

// UpdateAbsence handles PUT /absences/:id.
func (c *AbsenceController) UpdateAbsence(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AbsenceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionUpdate, appauth.Target{ID: id, SubjectID: req.SubjectID}) {
		return
	}

	absence, err := c.absenceService.UpdateAbsence(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, absence)
}

// DeleteAbsence handles DELETE /absences/:id.
func (c *AbsenceController) DeleteAbsence(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.absenceService.DeleteAbsence(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
