package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minichat/models"
	"minichat/pkg/services"
)

func ListMessages(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := svc.ListMessages(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if msgs == nil {
			msgs = []models.Message{}
		}
		c.JSON(http.StatusOK, msgs)
	}
}

func SendMessage(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Content string `json:"content"`
		}
		_ = c.ShouldBindJSON(&body)

		result, err := svc.SendMessage(c.Request.Context(), c.Param("id"), body.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusOK, result)
	}
}

func Regenerate(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.RegenerateLast(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusOK, result)
	}
}

func EditAndRegenerate(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Content string `json:"content"`
		}
		_ = c.ShouldBindJSON(&body)

		result, err := svc.EditAndRegenerate(c.Request.Context(), c.Param("id"), c.Param("messageId"), body.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateReadCaches()
		c.JSON(http.StatusOK, result)
	}
}
