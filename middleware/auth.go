package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	clientRepo "wrenchworks/database/repository/client"
	"wrenchworks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const authCachePrefix = "auth:"

// JWTAuthMiddleware authenticates requests with a bearer token. The token
// hash is checked against the Redis auth cache first and against the stored
// hash on the client document on a miss, so logout and password changes
// revoke sessions even with a valid JWT in hand.
func JWTAuthMiddleware(clients clientRepo.ClientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		clientID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || clientID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		role, err := utils.ExtractRoleFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + clientID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set("clientID", clientID)
				c.Set("role", role)
				c.Next()
				return
			}
			if err != redis.Nil {
				zap.L().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: verify against the hash stored on the client document.
		cl, err := clients.GetByIDWithProjection(clientID, bson.M{"id": 1, "token_hash": 1})
		if err != nil || cl == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication error"})
			return
		}
		if cl.TokenHash == "" || cl.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set("clientID", clientID)
		c.Set("role", role)
		c.Next()
	}
}

// InvalidateAuthCache drops a client's cached session hash. Call on logout
// and password change so the next request hits the DB check.
func InvalidateAuthCache(ctx context.Context, clientID string) {
	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Del(ctx, authCachePrefix+clientID).Err()
	}
}
