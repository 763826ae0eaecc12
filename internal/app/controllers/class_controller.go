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

// ClassController handles class group endpoints.
type ClassController struct {
	classService   *services.ClassService
	studentService *services.StudentService
	gate           *appauth.Gate
}

// NewClassController creates a new ClassController.
func NewClassController(classService *services.ClassService, studentService *services.StudentService, gate *appauth.Gate) *ClassController {
	return &ClassController{classService: classService, studentService: studentService, gate: gate}
}

// CreateClass handles POST /classes.
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityClassGroup, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	class := &models.ClassGroup{Name: req.Name, Level: req.Level}
	if err := c.classService.CreateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, class)
}

// GetClass handles GET /classes/:id.
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityClassGroup, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	class, err := c.classService.GetClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, class)
}

// GetAllClasses handles GET /classes.
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityClassGroup, appauth.ActionRead, appauth.Target{}) {
		return
	}

	classes, err := c.classService.GetAllClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, classes)
}

// GetClassStudents handles GET /classes/:id/students.
func (c *ClassController) GetClassStudents(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionRead, appauth.Target{ClassID: id}) {
		return
	}

	students, err := c.studentService.GetStudentsByClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// UpdateClass handles PUT /classes/:id.
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ClassRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityClassGroup, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	class := &models.ClassGroup{ID: id, Name: req.Name, Level: req.Level}
	if err := c.classService.UpdateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, class)
}

// DeleteClass handles DELETE /classes/:id.
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityClassGroup, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
