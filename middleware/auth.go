package middleware

import (
	"context"
	"net/http"
	"strings"

	profileRepo "havenstay/database/repository/profile"
	"havenstay/models"
	"havenstay/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const sessionKey = "session"

// JWTAuthMiddleware accepts a bearer token only if it is the profile's
// current token. The stored token hash is cached in Redis; a nil cache
// falls back to the database on every request.
func JWTAuthMiddleware(profiles profileRepo.ProfileRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := utils.ExtractSessionFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		computedHash := utils.HashToken(tokenString)

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + session.UserID
		if authCache != nil {
			cached, err := authCache.HGetAll(ctx, cacheKey).Result()
			if err == nil && cached["tokenHash"] != "" {
				if cached["tokenHash"] != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				session.Role = models.Role(cached["role"])
				setSession(c, session)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				zap.L().Warn("auth cache unavailable, falling back to database", zap.Error(err))
			}
		}

		profile, err := profiles.GetByIDWithProjection(ctx, session.UserID, bson.M{"id": 1, "tokenHash": 1, "role": 1})
		if err != nil || profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if profile.TokenHash == "" || profile.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}
		session.Role = profile.Role
		if authCache != nil {
			cacheSession(ctx, authCache, cacheKey, profile)
		}

		setSession(c, session)
		c.Next()
	}
}

func cacheSession(ctx context.Context, authCache *redis.Client, key string, profile *models.Profile) {
	pipe := authCache.TxPipeline()
	pipe.HSet(ctx, key, "tokenHash", profile.TokenHash, "role", string(profile.Role))
	pipe.Expire(ctx, key, utils.AuthCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("failed to cache auth session", zap.String("profile", profile.ID), zap.Error(err))
	}
}

// RequireHost rejects callers whose profile is not a host.
func RequireHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).IsHost() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Host account required"})
			return
		}
		c.Next()
	}
}

func setSession(c *gin.Context, session models.Session) {
	c.Set(sessionKey, session)
}

// GetSession returns the authenticated caller, or the zero Session.
func GetSession(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

// SetSession lets tests and internal callers attach a session directly.
func SetSession(c *gin.Context, session models.Session) {
	setSession(c, session)
}
