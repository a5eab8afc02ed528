package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-summaries-backend/redis"
)

func AuthMiddleWare() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization is not found!"})
			return
		}

		// verify token
		token := strings.TrimPrefix(authHeader, "Bearer ")
		parsed, err := VerifyJWT(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		contactID, err := ContactIDFromToken(parsed)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// check on redis
		if redis.RedisClient != nil {
			exists, err := redis.RedisClient.Exists(redis.Ctx, token).Result()
			if err != nil || exists == 0 {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired or not found"})
				return
			}
		}

		ctx.Set("contact_id", contactID)
		ctx.Set("jwt_token", token)
		ctx.Next()
	}
}

// InternalAuthMiddleware guards the vocabulary-admin endpoints with the
// shared internal secret.
func InternalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimPrefix(
			ctx.GetHeader("Authorization"),
			"Bearer ",
		)

		if token != secret {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized internal call!"})
			return
		}

		ctx.Next()
	}
}
