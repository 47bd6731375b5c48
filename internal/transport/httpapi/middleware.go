package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/belandja/commerce-api/internal/platform/auth"
	sharederrors "github.com/belandja/commerce-api/internal/shared/errors"
)

const (
	contextUserIDKey = "auth.userID"
	contextRolesKey  = "auth.roles"
)

// RequireAuth verifies the bearer token and stores the caller identity on the
// request context. Requests without a valid token are rejected with a 401
// problem response.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("authentication is not configured"))
			c.Abort()
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := bearerToken(header)
		if !ok {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		identity, err := tokens.Verify(token)
		if err != nil {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(contextUserIDKey, identity.UserID)
		c.Set(contextRolesKey, identity.Roles)
		c.Next()
	}
}

// CurrentUserID returns the verified caller ID set by RequireAuth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

// CurrentRoles returns the verified caller roles set by RequireAuth.
func CurrentRoles(c *gin.Context) []string {
	value, exists := c.Get(contextRolesKey)
	if !exists {
		return nil
	}
	roles, _ := value.([]string)
	return roles
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
