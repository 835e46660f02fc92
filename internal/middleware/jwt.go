package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

// ContextUserKey is the gin context key holding the authenticated
// user's claims.
const ContextUserKey = "user_claims"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWTAuth validates the Bearer token and stores its claims in the
// context. Requests already authenticated upstream (IServ bridge) pass
// through untouched.
func JWTAuth(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserKey); ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Ungültiger Authorization-Header"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// ClaimsFromContext extracts the authenticated claims, if present.
func ClaimsFromContext(c *gin.Context) (*models.JWTClaims, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
