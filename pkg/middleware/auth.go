package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding the verified claims map.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		tok, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}

		var claims map[string]interface{}
		if err := tok.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// AdminPolicy decides which verified identities may edit site content.
// An empty policy admits every verified token.
type AdminPolicy struct {
	Emails []string
	Role   string
}

// Allows reports whether the claims satisfy the policy.
func (p AdminPolicy) Allows(claims map[string]interface{}) bool {
	if len(p.Emails) > 0 {
		email, _ := claims["email"].(string)
		found := false
		for _, e := range p.Emails {
			if strings.EqualFold(strings.TrimSpace(e), email) && email != "" {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if p.Role != "" && !hasRole(claims, p.Role) {
		return false
	}
	return true
}

// hasRole looks in the places common identity providers put roles:
// a top-level "role", Supabase "app_metadata.role" and Keycloak "realm_access.roles".
func hasRole(claims map[string]interface{}, role string) bool {
	if r, ok := claims["role"].(string); ok && r == role {
		return true
	}
	if md, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if r, ok := md["role"].(string); ok && r == role {
			return true
		}
	}
	if ra, ok := claims["realm_access"].(map[string]interface{}); ok {
		if roles, ok := ra["roles"].([]interface{}); ok {
			for _, r := range roles {
				if s, ok := r.(string); ok && s == role {
					return true
				}
			}
		}
	}
	return false
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(p AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ClaimsKey)
		claims, _ := v.(map[string]interface{})
		if !ok || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !p.Allows(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// Admin chains token verification with the admin policy. A nil verifier
// rejects every request, so write routes are never left open by accident.
func Admin(ver Verifier, p AdminPolicy) []gin.HandlerFunc {
	if ver == nil {
		return []gin.HandlerFunc{func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin authentication is not configured"})
		}}
	}
	return []gin.HandlerFunc{AuthMiddleware(ver), RequireAdmin(p)}
}
