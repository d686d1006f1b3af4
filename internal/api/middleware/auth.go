package middleware

import (
	"strings"

	"fordinner/internal/core/auth"
	"fordinner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for the decoded identity.
const (
	ContextUserID   = "user_id"
	ContextEmail    = "user_email"
	ContextUsername = "user_username"
)

// Auth verifies the Bearer session token and injects the decoded
// identity into the request context. Missing and expired tokens answer
// 401, malformed or otherwise invalid tokens answer 403.
func Auth(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := ""
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}

		if token == "" {
			c.AbortWithStatusJSON(common.ErrUnauthorized.Status, common.ErrorResponse{
				Code:    common.ErrCodeUnauthorized,
				Message: "access denied: no token provided",
			})
			return
		}

		claims, err := auth.ParseToken(token, secretKey)
		if err != nil {
			common.LogWarn("token verification failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			status, resp := common.MapError(err, false)
			c.AbortWithStatusJSON(status, resp)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		if claims.Username != nil {
			c.Set(ContextUsername, *claims.Username)
		}

		c.Next()
	}
}

// UserID reads the authenticated user id from the request context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
