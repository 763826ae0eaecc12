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

// SubjectController handles subject endpoints.
type SubjectController struct {
	subjectService *services.SubjectService
	gate           *appauth.Gate
}

// NewSubjectController creates a new SubjectController.
func NewSubjectController(subjectService *services.SubjectService, gate *appauth.Gate) *SubjectController {
	return &SubjectController{subjectService: subjectService, gate: gate}
}

// CreateSubject handles POST /subjects.
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntitySubject, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, subject)
}

// GetSubject handles GET /subjects/:id.
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntitySubject, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	subject, err := c.subjectService.GetSubject(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subject)
}

// GetAllSubjects handles GET /subjects.
func (c *SubjectController) GetAllSubjects(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntitySubject, appauth.ActionRead, appauth.Target{}) {
		return
	}

	subjects, err := c.subjectService.GetAllSubjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// UpdateSubject handles PUT /subjects/:id.
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntitySubject, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	subject, err := c.subjectService.UpdateSubject(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject handles DELETE /subjects/:id.
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntitySubject, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
