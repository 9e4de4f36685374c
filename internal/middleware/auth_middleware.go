package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tracker/internal/auth"
	"tracker/internal/logger"
)

const (
	// UserIDKey holds the authenticated user's uuid.UUID in the gin context
	UserIDKey = "user_id"
	// TokenKey holds the raw bearer token, used by logout
	TokenKey = "token"
)

// JWTAuthMiddleware rejects requests without a valid, unrevoked bearer token.
func JWTAuthMiddleware(tokens *auth.TokenManager, revoked auth.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), tokenStr)
		if err != nil {
			// хранилище недоступно: пропускаем, чтобы не блокировать всех пользователей
			logger.Warn("revocation check failed", zap.Error(err))
		}
		if isRevoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, tokenStr)
		c.Next()
	}
}
