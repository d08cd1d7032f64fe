package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/response"
)

// RequireOwner restricts a route to owner accounts. Staff can run the
// front desk but must not delete catalog or directory records.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != model.RoleOwner {
			response.AbortFail(c, http.StatusForbidden, response.ErrOwnerOnly)
			return
		}

		c.Next()
	}
}
