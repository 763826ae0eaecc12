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

// PaymentController handles payment record endpoints.
type PaymentController struct {
	paymentService *services.PaymentService
	gate           *appauth.Gate
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(paymentService *services.PaymentService, gate *appauth.Gate) *PaymentController {
	return &PaymentController{paymentService: paymentService, gate: gate}
}

// CreatePayment handles POST /payments.
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionCreate, appauth.Target{StudentID: req.StudentID}) {
		return
	}

	payment, err := c.paymentService.CreatePayment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /payments/:id.
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	payment, err := c.paymentService.GetPayment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// GetAllPayments handles GET /payments.
func (c *PaymentController) GetAllPayments(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionRead, appauth.Target{}) {
		return
	}

	payments, err := c.paymentService.GetAllPayments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// UpdatePayment handles PUT /payments/:id.
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	payment, err := c.paymentService.UpdatePayment(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /payments/:id.
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityPayment, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.paymentService.DeletePayment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
