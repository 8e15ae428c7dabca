package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"echome-server/internal/app"
	"echome-server/internal/transport/http/response"
)

const ContextIdentityKey = "identity"

// AuthBearer rejects requests without a well-formed bearer credential
// before any verification attempt, then delegates to the configured
// verifier. Verification failures all map to the same generic 401.
func AuthBearer(verifier app.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.MsgNoToken)
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, response.MsgNoToken)
			c.Abort()
			return
		}

		credential := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		identity, err := verifier.Verify(credential)
		if err != nil {
			log.Printf("auth verification rejected: %v", err)
			response.Error(c, http.StatusUnauthorized, response.MsgInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, *identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity set by AuthBearer.
func IdentityFromContext(c *gin.Context) (app.Identity, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return app.Identity{}, false
	}
	identity, ok := value.(app.Identity)
	return identity, ok
}
