package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minichat/models"
	"minichat/pkg/cache"
	"minichat/pkg/services"
)

var (
	chatsCacheKey = cache.KeyFromStrings("chats", "list")
	statsCacheKey = cache.KeyFromStrings("stats")

	// cacheTTL <= 0 disables read caching; main sets it from config.
	cacheTTL time.Duration
)

// SetCacheTTL configures read caching for the chat list and stats
// endpoints. Call once at startup.
func SetCacheTTL(ttl time.Duration) {
	cacheTTL = ttl
}

func invalidateReadCaches() {
	cache.Default().Delete(chatsCacheKey)
	cache.Default().Delete(statsCacheKey)
}

func CreateChat(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title string `json:"title"`
		}
		// empty body is fine; the title defaults server-side
		_ = c.ShouldBindJSON(&body)

		chat, err := svc.CreateChat(c.Request.Context(), body.Title)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusCreated, chat)
	}
}

func ListChats(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cacheTTL > 0 {
			if v, ok := cache.Default().Get(chatsCacheKey); ok {
				c.JSON(http.StatusOK, v)
				return
			}
		}
		chats, err := svc.ListChats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if chats == nil {
			chats = []models.Chat{}
		}
		if cacheTTL > 0 {
			cache.Default().Set(chatsCacheKey, chats, cacheTTL)
		}
		c.JSON(http.StatusOK, chats)
	}
}

func GetChat(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		chat, msgs, err := svc.GetChat(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if msgs == nil {
			msgs = []models.Message{}
		}
		c.JSON(http.StatusOK, struct {
			models.Chat
			Messages []models.Message `json:"messages"`
		}{Chat: *chat, Messages: msgs})
	}
}

func UpdateChatTitle(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title string `json:"title"`
		}
		_ = c.ShouldBindJSON(&body)

		chat, err := svc.UpdateChatTitle(c.Request.Context(), c.Param("id"), body.Title)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusOK, chat)
	}
}

func DeleteChat(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteChat(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Chat deleted successfully",
		})
	}
}
