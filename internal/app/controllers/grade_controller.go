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

// GradeController handles grade record endpoints.
type GradeController struct {
	gradeService *services.GradeService
	gate         *appauth.Gate
}

// NewGradeController creates a new GradeController.
func NewGradeController(gradeService *services.GradeService, gate *appauth.Gate) *GradeController {
	return &GradeController{gradeService: gradeService, gate: gate}
}

// CreateGrade handles POST /grades. The subject reference scopes the
// teacher's create grant.
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if !bindJSON(ctx, &req) {
		return
	}
	target := appauth.Target{StudentID: req.StudentID, SubjectID: req.SubjectID}
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionCreate, target) {
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, grade)
}

// GetGrade handles GET /grades/:id.
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	grade, err := c.gradeService.GetGrade(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grade)
}

// GetAllGrades handles GET /grades.
func (c *GradeController) GetAllGrades(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionRead, appauth.Target{}) {
		return
	}

	grades, err := c.gradeService.GetAllGrades(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grades)
}

// UpdateGrade handles PUT /grades/:id.
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.GradeRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionUpdate, appauth.Target{ID: id, SubjectID: req.SubjectID}) {
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grade)
}

// DeleteGrade handles DELETE /grades/:id.
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
