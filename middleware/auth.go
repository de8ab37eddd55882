package middleware

import (
	"net/http"
	"strings"

	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func extractJwtClaims(c *gin.Context, secret string) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		utils.SendError(c, http.StatusUnauthorized, "Authorization header missing")
		c.Abort()
		return nil, false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		utils.SendError(c, http.StatusUnauthorized, "Invalid authorization format, expected: Bearer <token>")
		c.Abort()
		return nil, false
	}

	tokenString := strings.Trim(parts[1], "\"' ")

	claims, err := utils.DecodeJWT(secret, tokenString)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
		c.Abort()
		return nil, false
	}

	return claims, true
}

// AdminAuth accepts only HS256 tokens signed with secret and carrying role=ADMIN.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.SendError(c, http.StatusServiceUnavailable, "Admin API disabled: JWT_SECRET not configured")
			c.Abort()
			return
		}

		claims, ok := extractJwtClaims(c, secret)
		if !ok {
			return
		}

		role, exists := claims["role"]
		if !exists {
			utils.SendError(c, http.StatusUnauthorized, "Role not found in token")
			c.Abort()
			return
		}

		if role != utils.RoleAdmin {
			utils.SendError(c, http.StatusForbidden, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Set("admin", claims["sub"])
		c.Next()
	}
}

// AdminName returns the subject of the admin token, or "admin".
func AdminName(c *gin.Context) string {
	if sub, ok := c.Get("admin"); ok {
		if s, ok := sub.(string); ok && s != "" {
			return s
		}
	}
	return "admin"
}
