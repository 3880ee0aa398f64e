package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minichat/pkg/cache"
	"minichat/pkg/config"
	"minichat/pkg/services"
)

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"service":     "Chat API",
			"version":     "1.0.0",
			"environment": config.AppEnv,
		})
	}
}

func GetStats(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cacheTTL > 0 {
			if v, ok := cache.Default().Get(statsCacheKey); ok {
				if stats, valid := v.(*services.Stats); valid {
					c.JSON(http.StatusOK, statsPayload(stats))
					return
				}
			}
		}
		stats, err := svc.GetStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if cacheTTL > 0 {
			cache.Default().Set(statsCacheKey, stats, cacheTTL)
		}
		c.JSON(http.StatusOK, statsPayload(stats))
	}
}

func statsPayload(stats *services.Stats) gin.H {
	return gin.H{
		"totalChats":    stats.TotalChats,
		"totalMessages": stats.TotalMessages,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}
}
