package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/gin-gonic/gin"
)

// TokenParser verifies bearer tokens
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid bearer token. A missing token is 401, an
// invalid or expired one 403.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Access token required",
				Code:    CodeUnauthorized,
			})
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Invalid or expired token",
				Code:    CodeForbidden,
			})
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("roll_number", claims.RollNumber)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// AdminMiddleware allows only administrators; it must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin access required",
				Code:    CodeForbidden,
			})
			return
		}
		c.Next()
	}
}

// isAdmin reports whether AuthMiddleware authenticated an administrator.
func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	r, ok := role.(models.UserRole)
	return ok && r == models.RoleAdmin
}

// RequestContext carries the request id into service contexts.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
			c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), requestID))
		}
		c.Next()
	}
}
