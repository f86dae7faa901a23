package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
	"github.com/clinichq/clinic-manager/pkg/response"
)

// RequireRoles allows the request through only when the authenticated
// account's role is in the permitted set. Must run after RequireAuth.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	required := strings.Join(names, ", ")

	return func(c *gin.Context) {
		a := AccountFromCtx(c)
		if a == nil {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized, no token", nil)
			return
		}
		for _, r := range roles {
			if a.Role == r {
				c.Next()
				return
			}
		}
		response.AbortError[any](c, http.StatusForbidden, "access denied. required role: "+required, nil)
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRoles(entity.RoleAdmin)
}

func AdminOrFrontDesk() gin.HandlerFunc {
	return RequireRoles(entity.RoleAdmin, entity.RoleFrontDesk)
}

func DoctorOnly() gin.HandlerFunc {
	return RequireRoles(entity.RoleDoctor)
}
