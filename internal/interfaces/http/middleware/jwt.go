package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appidentity "github.com/seorganiza/backend/internal/application/identity"
	"github.com/seorganiza/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextSuperuser = "superuser"
	ContextToken     = "access_token"
)

// JWTAuth validates the bearer token and stores its claims on the
// request context. Revoked tokens are rejected like missing ones.
func JWTAuth(tokens appidentity.TokenManager, blacklist appidentity.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "Missing authorization token")
			return
		}

		claims, err := tokens.ParseAccess(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.TokenID)
		if err != nil || revoked {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextSuperuser, claims.Superuser)
		c.Set(ContextToken, token)
		c.Next()
	}
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse(dto.CodeUnauthorized, message))
}
