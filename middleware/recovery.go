package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into the same JSON 500 shape the error paths
// use, instead of gin's default empty response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[recover] %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal Server Error",
			"code":      "INTERNAL_ERROR",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
