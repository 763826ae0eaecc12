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

// AccountantController handles accountant profile endpoints.
type AccountantController struct {
	accountantService *services.AccountantService
	gate              *appauth.Gate
}

// NewAccountantController creates a new AccountantController.
func NewAccountantController(accountantService *services.AccountantService, gate *appauth.Gate) *AccountantController {
	return &AccountantController{accountantService: accountantService, gate: gate}
}

// CreateAccountant handles POST /accountants.
func (c *AccountantController) CreateAccountant(ctx *gin.Context) {
	var req dto.CreateAccountantRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccountant, appauth.ActionCreate, appauth.Target{}) {
		return
	}

	accountant, err := c.accountantService.CreateAccountant(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, accountant)
}

// GetAccountant handles GET /accountants/:id.
func (c *AccountantController) GetAccountant(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccountant, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	accountant, err := c.accountantService.GetAccountant(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, accountant)
}

// GetAllAccountants handles GET /accountants.
func (c *AccountantController) GetAllAccountants(ctx *gin.Context) {
	if !authorize(ctx, c.gate, models.EntityAccountant, appauth.ActionRead, appauth.Target{}) {
		return
	}

	accountants, err := c.accountantService.GetAllAccountants(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, accountants)
}

// UpdateAccountant handles PUT /accountants/:id.
func (c *AccountantController) UpdateAccountant(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccountantRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccountant, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	accountant, err := c.accountantService.UpdateAccountant(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, accountant)
}

// DeleteAccountant handles DELETE /accountants/:id.
func (c *AccountantController) DeleteAccountant(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccountant, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.accountantService.DeleteAccountant(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
