package middleware

import (
	"errors"
	"net/http"
	"strings"

	"food-marketplace-api/apperr"
	"food-marketplace-api/auth"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthRequired validates the bearer token and stores the caller in the context
func AuthRequired(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required (Bearer <token>)"})
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(callerKey, authz.Caller{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := CurrentCaller(c).Require(roles...); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, apperr.ErrUnauthorized) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": apperr.Message(err)})
			return
		}
		c.Next()
	}
}

// CurrentCaller returns the authenticated caller, or the zero Caller on
// public routes.
func CurrentCaller(c *gin.Context) authz.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(authz.Caller); ok {
			return caller
		}
	}
	return authz.Caller{}
}
