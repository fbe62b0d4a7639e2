package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	userRepo "asumo/database/repository/user"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// JWTAuthMiddleware authenticates portal routes. It validates the bearer
// token, then confirms the account still exists — through the Redis auth
// cache when available, falling back to a store lookup. The resolved
// identity is placed on the context for handlers.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, email, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			if _, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				setCallerContext(c, userID, email, role)
				c.Next()
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: Error reading auth cache key: %v. Falling back to store lookup.", err)
			}
		}

		// Cache miss: confirm the account still exists.
		usr, err := repo.GetByIDWithProjection(ctx, userID, bson.M{"id": 1})
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, "1", utils.AuthCacheTTL).Err()
		}

		setCallerContext(c, userID, email, role)
		c.Next()
	}
}

func setCallerContext(c *gin.Context, userID, email, role string) {
	c.Set("userID", userID)
	c.Set("email", email)
	c.Set("role", role)
}
