package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/handler/httperr"
	"course-enrollment/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxCallerKey = "caller"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Access token required", nil)
			return
		}

		caller, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxCallerKey, caller)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
			return
		}
		if err := user.RequireRole(caller, roles...); err != nil {
			httperr.AbortWithError(c, http.StatusForbidden, httperr.CodeForbidden, err, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func GetCaller(c *gin.Context) (user.Caller, bool) {
	v, exists := c.Get(ctxCallerKey)
	if !exists {
		return user.Caller{}, false
	}
	caller, ok := v.(user.Caller)
	return caller, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
