package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"juegos/backend/pkg/jwt"
)

// SubjectKey is the gin context key holding the authenticated token subject.
const SubjectKey = "subject"

// AuthMiddleware rejects requests without a valid "Bearer <jwt>" header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": false,
				"errors": []string{"access denied: missing token"},
			})
			return
		}

		subject, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": false,
				"errors": []string{"access denied: invalid token"},
			})
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}
