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

// AccountController handles account maintenance and role assignment.
type AccountController struct {
	accountService *services.AccountService
	gate           *appauth.Gate
}

// NewAccountController creates a new AccountController.
func NewAccountController(accountService *services.AccountService, gate *appauth.Gate) *AccountController {
	return &AccountController{accountService: accountService, gate: gate}
}

// GetAccount handles GET /accounts/:id.
func (c *AccountController) GetAccount(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccount, appauth.ActionRead, appauth.Target{ID: id}) {
		return
	}

	user, err := c.accountService.GetAccount(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateAccount handles PUT /accounts/:id.
func (c *AccountController) UpdateAccount(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccount, appauth.ActionUpdate, appauth.Target{ID: id}) {
		return
	}

	user, err := c.accountService.UpdateAccount(ctx, id, req.Name, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /accounts/:id.
func (c *AccountController) DeleteAccount(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityAccount, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.accountService.DeleteAccount(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AssignRole handles POST /accounts/:id/roles.
func (c *AccountController) AssignRole(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !authorize(ctx, c.gate, models.EntityRole, appauth.ActionCreate, appauth.Target{ID: id}) {
		return
	}

	if err := c.accountService.AssignRole(ctx, id, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RevokeRole handles DELETE /accounts/:id/roles/:role.
func (c *AccountController) RevokeRole(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	if !authorize(ctx, c.gate, models.EntityRole, appauth.ActionDelete, appauth.Target{ID: id}) {
		return
	}

	if err := c.accountService.RevokeRole(ctx, id, ctx.Param("role")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
