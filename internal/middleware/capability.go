package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

// RequireCapability rejects requests whose claims lack the capability.
// Must run after JWTAuth or the IServ bridge.
func RequireCapability(cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !claims.HasCapability(cap) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
