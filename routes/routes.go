package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minichat/controllers"
	"minichat/middleware"
	"minichat/pkg/config"
	"minichat/pkg/services"

	chatRoutes "minichat/routes/chat"
)

// RegisterRoutes wires the REST surface under /api, plus the JSON 404
// fallback for unmatched routes.
func RegisterRoutes(r *gin.Engine, svc *services.ChatService) {
	global := middleware.NewLimiter(
		time.Duration(config.GlobalRateWindowSeconds)*time.Second,
		config.GlobalRateCapacity,
		"Too many requests from this IP, please try again later.",
	)

	api := r.Group("/api")
	api.Use(global.Middleware())

	api.GET("/health", controllers.Health())
	api.GET("/stats", controllers.GetStats(svc))
	chatRoutes.Register(api, svc)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Route not found",
			"path":      c.Request.URL.Path,
			"method":    c.Request.Method,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
