package middleware

import (
	"net/http"
	"strings"

	"CampusConnect/internal/pkg"
	"CampusConnect/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// UserID returns the authenticated viewer's id, 0 for anonymous traffic.
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0
	}
	return v.(uint64)
}

// AuthMiddleware requires a valid bearer token that still matches the
// single session token held in redis.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth injects the viewer when a valid token is present and lets
// anonymous requests through. Feed and detail reads use it.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolveToken(c); ok {
			c.Set(ContextUserIDKey, claims.UserID)
		}
		c.Next()
	}
}

func resolveToken(c *gin.Context) (*pkg.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	tokenStr := parts[1]

	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return nil, false
	}

	userRepo := &redis.UserRepository{}
	stored, err := userRepo.GetUserToken(claims.UserID)
	if err != nil || stored != tokenStr {
		return nil, false
	}
	// sliding expiry on successful auth
	_ = userRepo.ExtendUserToken(claims.UserID)
	return claims, true
}
