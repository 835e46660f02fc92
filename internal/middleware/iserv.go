package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/service"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

// Headers the IServ reverse proxy asserts. The deployment strips any
// client-supplied copies, so their presence is proof of identity.
const (
	HeaderIServUser      = "X-IServ-User"
	HeaderIServEmail     = "X-IServ-Email"
	HeaderIServFirstname = "X-IServ-Firstname"
	HeaderIServLastname  = "X-IServ-Lastname"
	HeaderIServGroups    = "X-IServ-Groups"
)

type headerAuthenticator interface {
	SyncFromHeaders(ctx context.Context, profile *service.IServProfile) (*models.JWTClaims, error)
}

// IServBridge authenticates requests via trusted portal headers and
// provisions the user on first sight. Requests without the user header
// fall through to JWT auth.
func IServBridge(auth headerAuthenticator, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		username := c.GetHeader(HeaderIServUser)
		if username == "" {
			c.Next()
			return
		}

		profile := &service.IServProfile{
			Username:  username,
			Email:     c.GetHeader(HeaderIServEmail),
			FirstName: c.GetHeader(HeaderIServFirstname),
			LastName:  c.GetHeader(HeaderIServLastname),
			Groups:    splitGroups(c.GetHeader(HeaderIServGroups)),
		}

		claims, err := auth.SyncFromHeaders(c.Request.Context(), profile)
		if err != nil {
			logger.Warn("iserv header auth rejected",
				zap.String("username", username),
				zap.Error(err))
			response.Error(c, appErrors.FromError(err))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

func splitGroups(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			groups = append(groups, trimmed)
		}
	}
	return groups
}
