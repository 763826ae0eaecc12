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

// StudentController handles student profile endpoints, including the
// per-student record listings.
type StudentController struct {
	studentService   *services.StudentService
	absenceService   *services.AbsenceService
	gradeService     *services.GradeService
	paymentService   *services.PaymentService
	transportService *services.TransportService
	gate             *appauth.Gate
}

// NewStudentController creates a new StudentController.
func NewStudentController(
	studentService *services.StudentService,
	absenceService *services.AbsenceService,
	gradeService *services.GradeService,
	paymentService *services.PaymentService,
	transportService *services.TransportService,
	gate *appauth.Gate,
) *StudentController {
	return &StudentController{
		studentService:   studentService,
		absenceService:   absenceService,
		gradeService:     gradeService,
		paymentService:   paymentService,
		transportService: transportService,
		gate:             gate,
	}
}

// CreateStudent handles POST /students.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// GetStudent handles GET /students/:id.
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// GetAllStudents handles GET /students.
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionRead, appauth.Target{}) {
		return
	}

	students, err := c.studentService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// UpdateStudent handles PUT /students/:id.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent handles DELETE /students/:id.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetStudentAbsences handles GET /students/:id/absences.
func (c *StudentController) GetStudentAbsences(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAbsence, appauth.ActionRead, appauth.Target{StudentID: id}) {
		return
	}

	absences, err := c.absenceService.GetAbsencesByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, absences)
}

// GetStudentGrades handles GET /students/:id/grades.
func (c *StudentController) GetStudentGrades(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityGrade, appauth.ActionRead, appauth.Target{StudentID: id}) {
		return
	}

	grades, err := c.gradeService.GetGradesByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grades)
}

// GetStudentPayments handles GET /students/:id/payments.
func (c *StudentController) GetStudentPayments(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionRead, appauth.Target{StudentID: id}) {
		return
	}

	payments, err := c.paymentService.GetPaymentsByStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// GetStudentTransports handles GET /students/:id/transports.
func (c *StudentController) GetStudentTransports(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityStudent, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	enrollments, err := c.transportService.GetEnrollments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}
