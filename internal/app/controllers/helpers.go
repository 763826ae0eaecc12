package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appauth "github.com/emirkay/schoolregistry/internal/app/auth"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/middleware"
)

// idParam parses a numeric path parameter. On failure it writes the 400
// response itself and returns false.
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("VALIDATION_FAILED", name+" must be a positive number"))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body. On failure it writes the 400 response
// itself and returns false.
func bindJSON(ctx *gin.Context, target any) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("VALIDATION_FAILED", err.Error()))
		return false
	}
	return true
}

// authorize runs the access gate for the authenticated account. On deny or
// failure it writes the response itself and returns false.
func authorize(ctx *gin.Context, gate *appauth.Gate, resource models.EntityType, action appauth.Action, target appauth.Target) bool {
	accountID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "no authenticated account"))
		return false
	}

	decision, err := gate.Authorize(ctx, accountID, resource, action, target)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	if decision != appauth.Allow {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse("FORBIDDEN", "permission denied"))
		return false
	}

	return true
}
