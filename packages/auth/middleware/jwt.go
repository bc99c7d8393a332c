package middleware

import (
	"net/http"
	"strings"

	"auth/utils"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware validates the Bearer token and stores the user identity in
// the request context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseAuthHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_gamertag", claims.Gamertag)
		c.Next()
	}
}

// OptionalJWTMiddleware stores the user identity when a valid token is
// present but lets anonymous requests through.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseAuthHeader(c); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_gamertag", claims.Gamertag)
		}
		c.Next()
	}
}

func parseAuthHeader(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmail returns the authenticated user's email from the context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", false
	}

	e, ok := email.(string)
	return e, ok
}
