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

// TransportController handles transport routes and student enrollments.
type TransportController struct {
	transportService *services.TransportService
	gate             *appauth.Gate
}

// NewTransportController creates a new TransportController.
func NewTransportController(transportService *services.TransportService, gate *appauth.Gate) *TransportController {
	return &TransportController{transportService: transportService, gate: gate}
}

// CreateTransport handles POST /transports.
func (c *TransportController) CreateTransport(ctx *gin.Context) {
	var req dto.TransportRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	transport := &models.Transport{
		VehicleNumber:    req.VehicleNumber,
		DriverName:       req.DriverName,
		RouteDescription: req.RouteDescription,
	}
	if err := c.transportService.CreateTransport(ctx, transport); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, transport)
}

// GetTransport handles GET /transports/:id.
func (c *TransportController) GetTransport(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	transport, err := c.transportService.GetTransport(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, transport)
}

// GetAllTransports handles GET /transports.
func (c *TransportController) GetAllTransports(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionRead, appauth.Target{}) {
		return
	}

	transports, err := c.transportService.GetAllTransports(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, transports)
}

// UpdateTransport handles PUT /transports/:id.
func (c *TransportController) UpdateTransport(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.TransportRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	transport := &models.Transport{
		ID:               id,
		VehicleNumber:    req.VehicleNumber,
		DriverName:       req.DriverName,
		RouteDescription: req.RouteDescription,
	}
	if err := c.transportService.UpdateTransport(ctx, transport); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, transport)
}

// DeleteTransport handles DELETE /transports/:id.
func (c *TransportController) DeleteTransport(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.transportService.DeleteTransport(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Enroll handles POST /transports/:id/students.
func (c *TransportController) Enroll(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollTransportRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	enrollment, err := c.transportService.Enroll(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// Withdraw handles DELETE /transports/:id/students/:studentId.
func (c *TransportController) Withdraw(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := idParam(ctx, "studentId")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityTransport, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	if err := c.transportService.Withdraw(ctx, id, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
