package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/auth"
)

// TokenParser verifies a session token and returns its claims
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Try to get token from Header
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			// 2. Try to get token from Cookie
			tokenString = cookie
		}

		if tokenString == "" {
			response.Fail(c, http.StatusUnauthorized, apperror.KindUnauthorized, "Authorization header or auth_token cookie required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, apperror.KindUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role = domain.RoleHiringManager
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserName), claims.Name)
		c.Set(string(domain.KeyUserRole), role)

		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Fail(c, http.StatusForbidden, apperror.KindForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// ActorFromContext rebuilds the acting user from the values AuthMiddleware set
func ActorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Name:  c.GetString(string(domain.KeyUserName)),
		Role:  c.GetString(string(domain.KeyUserRole)),
	}
}
