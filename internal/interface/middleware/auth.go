package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/internal/domain/repository"
	"github.com/clinichq/clinic-manager/pkg/helpers"
	"github.com/clinichq/clinic-manager/pkg/response"
)

const accountCtxKey = "account"

// AccountFromCtx returns the account attached by RequireAuth, or nil.
func AccountFromCtx(c *gin.Context) *entity.Account {
	v, ok := c.Get(accountCtxKey)
	if !ok {
		return nil
	}
	a, _ := v.(*entity.Account)
	return a
}

// RequireAuth verifies the bearer token and re-resolves the account on
// every request, so a block or suspension applied after the token was
// issued takes effect immediately.
func RequireAuth(jwt *helpers.JWTManager, accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized, no token", nil)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized, no token", nil)
			return
		}

		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized, token failed", nil)
			return
		}

		a, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortError[any](c, http.StatusUnauthorized, "user not found", nil)
				return
			}
			response.AbortError[any](c, http.StatusInternalServerError, "could not resolve account", nil)
			return
		}

		if a.Disabled() {
			response.AbortError[any](c, http.StatusForbidden, "your account has been blocked or deleted. contact the administrator", nil)
			return
		}
		if a.Status == entity.StatusSuspended {
			response.AbortError[any](c, http.StatusForbidden, "your account is suspended. contact the administrator", nil)
			return
		}

		c.Set(accountCtxKey, a.Stripped())
		c.Next()
	}
}
