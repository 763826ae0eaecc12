package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
	pkgauth "github.com/emirkay/schoolregistry/internal/pkg/auth"
)

// Keys under which the authenticated identity is stored in the gin context.
const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
)

// JWTAuth validates the Authorization header and stores the authenticated
// account in the request context. Requests without a valid token never reach
// the handlers.
func JWTAuth(jwtService *pkgauth.JWTService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := pkgauth.ExtractBearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(ctx, "missing or malformed Authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(ctx, "token expired")
				return
			}
			abortUnauthorized(ctx, "invalid token")
			return
		}

		ctx.Set(ContextAccountID, claims.AccountID)
		ctx.Set(ContextEmail, claims.Email)
		ctx.Next()
	}
}

// AccountID returns the authenticated account id stored by JWTAuth.
func AccountID(ctx *gin.Context) (int64, bool) {
	v, ok := ctx.Get(ContextAccountID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", message))
}
