package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/models/shared_models"
	"github.com/tripguide/api/models/user_models"
)

const userContextKey = "authenticated_user"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return authHeader[7:], true
	}
	return "", false
}

// AuthMiddleware validates the bearer token, resolves the user it belongs to
// and attaches it to the request context. Requests without a valid token are
// rejected with 401.
func AuthMiddleware(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			logger.WarnLogger.Warn("Missing or malformed authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		userID, err := shared_models.ParseToken(tokenString)
		if err != nil {
			logger.WarnLogger.Warnf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		user, err := user_models.GetUserByID(c.Request.Context(), db, userID)
		if err != nil {
			logger.WarnLogger.Warnf("User %s from token not found: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set("userId", user.ID.String())
		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is presented
// but never rejects the request.
func OptionalAuthMiddleware(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := shared_models.ParseToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if user, err := user_models.GetUserByID(c.Request.Context(), db, userID); err == nil {
			c.Set("userId", user.ID.String())
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*user_models.User, bool) {
	raw, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*user_models.User)
	return user, ok
}
