package controllers

import (
	"errors"
	"log"
	"net/http"

	"civiconnect-be/chat"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *chat.Service
}

func NewChatController(svc *chat.Service) *ChatController {
	return &ChatController{chat: svc}
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
	case errors.Is(err, chat.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat is unavailable right now"})
	default:
		log.Printf("Chat error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// StartSession opens a chat with the assistant greeting
func (cc *ChatController) StartSession(c *gin.Context) {
	id, greeting, err := cc.chat.Start(c.Request.Context())
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": id,
		"messages":  []any{greeting},
	})
}

// SendMessage logs the user's message. The reply shows up in the history
// once the assistant has "typed" it.
func (cc *ChatController) SendMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, err := cc.chat.Send(c.Request.Context(), c.Param("id"), input.Text)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, msg)
}

// GetMessages returns the session log in order
func (cc *ChatController) GetMessages(c *gin.Context) {
	messages, err := cc.chat.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
