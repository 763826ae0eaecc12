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

// ParentController handles guardian profile endpoints and the parent-student
// link.
type ParentController struct {
	parentService *services.ParentService
	gate          *appauth.Gate
}

// NewParentController creates a new ParentController.
func NewParentController(parentService *services.ParentService, gate *appauth.Gate) *ParentController {
	return &ParentController{parentService: parentService, gate: gate}
}

// CreateParent handles POST /parents.
func (c *ParentController) CreateParent(ctx *gin.Context) {
	var req dto.CreateParentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	parent, err := c.parentService.CreateParent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, parent)
}

// GetParent handles GET /parents/:id.
func (c *ParentController) GetParent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	parent, err := c.parentService.GetParent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, parent)
}

// GetAllParents handles GET /parents.
func (c *ParentController) GetAllParents(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionRead, appauth.Target{}) {
		return
	}

	parents, err := c.parentService.GetAllParents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, parents)
}

// UpdateParent handles PUT /parents/:id.
func (c *ParentController) UpdateParent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateParentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	parent, err := c.parentService.UpdateParent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, parent)
}

// DeleteParent handles DELETE /parents/:id.
func (c *ParentController) DeleteParent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.parentService.DeleteParent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// LinkStudent handles POST /parents/:id/students.
func (c *ParentController) LinkStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.LinkStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	if err := c.parentService.LinkStudent(ctx, id, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UnlinkStudent handles DELETE /parents/:id/students/:studentId.
func (c *ParentController) UnlinkStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := idParam(ctx, "studentId")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	if err := c.parentService.UnlinkStudent(ctx, id, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetStudentParents handles GET /students/:id/parents.
func (c *ParentController) GetStudentParents(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionRead, appauth.Target{StudentID: id}) {
		return
	}

	parents, err := c.parentService.GetGuardiansOfStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, parents)
}

// GetParentStudents handles GET /parents/:id/students.
func (c *ParentController) GetParentStudents(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityParent, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	students, err := c.parentService.GetStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}
