package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minichat/pkg/services"
)

var errorResponses = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{services.ErrChatNotFound, http.StatusNotFound, "CHAT_NOT_FOUND", "Chat not found"},
	{services.ErrMessageNotFound, http.StatusNotFound, "MESSAGE_NOT_FOUND", "User message not found"},
	{services.ErrEmptyTitle, http.StatusBadRequest, "EMPTY_TITLE", "Title is required"},
	{services.ErrEmptyMessage, http.StatusBadRequest, "EMPTY_MESSAGE", "Message content is required"},
	{services.ErrMessageTooLong, http.StatusBadRequest, "MESSAGE_TOO_LONG", "Message too long (max 4096 characters)"},
	{services.ErrNoPairToRegenerate, http.StatusBadRequest, "NO_PAIR_TO_REGENERATE", "Cannot regenerate - need at least one user message and one assistant response"},
	{services.ErrInvalidMessagePair, http.StatusBadRequest, "INVALID_MESSAGE_PAIR", "Cannot regenerate - last pair must be user message followed by assistant response"},
}

// respondError maps service errors to stable {error, code} responses.
// Anything outside the taxonomy is a storage failure and becomes a 500.
func respondError(c *gin.Context, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			c.JSON(r.status, gin.H{"error": r.message, "code": r.code})
			return
		}
	}
	log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal Server Error",
		"code":      "INTERNAL_ERROR",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
