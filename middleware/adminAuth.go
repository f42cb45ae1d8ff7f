package middleware

import (
	"context"
	"net/http"
	"strings"

	"pathlab/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthenticator validates admin bearer tokens.
type AdminAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.AdminClaims, error)
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func JWTAuthAdminMiddleware(auth AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized admin access"})
			return
		}

		c.Set("adminToken", tokenString)
		c.Set("adminClaims", claims)
		c.Set("isAdmin", true)
		c.Next()
	}
}
