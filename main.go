package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"minichat/controllers"
	"minichat/middleware"
	"minichat/models"
	"minichat/pkg/cache"
	"minichat/pkg/config"
	"minichat/pkg/services"
	"minichat/pkg/store"
	"minichat/routes"
)

func main() {
	// config is loaded in pkg/config init()

	db, err := gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Chat{}, &models.Message{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	st := store.New(db)

	var provider services.Provider
	if config.OpenAIAPIKey != "" {
		provider = services.NewOpenAIProvider(services.OpenAIConfig{
			APIKey:      config.OpenAIAPIKey,
			Model:       config.OpenAIModel,
			MaxTokens:   config.MaxTokens,
			Temperature: float32(config.Temperature),
		}, st)
		log.Printf("[main] OpenAI provider initialized (model=%s)", config.OpenAIModel)
	} else {
		provider = services.NewMockProvider()
		log.Printf("[main] OPENAI_API_KEY not set, using mock responses")
	}

	svc := services.NewChatService(st, provider)

	cache.SetMaxItems(config.CacheMaxItems)
	controllers.SetCacheTTL(time.Duration(config.CacheTTLSeconds) * time.Second)

	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.FrontendURL, config.FrontendURL2},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, svc)

	log.Printf("[main] listening on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
