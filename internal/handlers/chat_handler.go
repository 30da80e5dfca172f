package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderly/wanderly-server/internal/clients"
	"github.com/wanderly/wanderly-server/internal/helpers"
)

// ChatWithAssistant forwards a prompt to the trip-planning assistant and
// returns its reply. The session id keeps the conversation threaded.
func ChatWithAssistant(assistant *clients.AssistantClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerId, _, ok := callerID(c)
		if !ok {
			return
		}

		var req struct {
			Prompt    string `json:"prompt" binding:"required"`
			SessionID string `json:"session_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		sessionId := helpers.StringTrim(req.SessionID)
		if sessionId == "" {
			sessionId = callerId.String()
		}

		reply, err := assistant.Ask(c.Request.Context(), req.Prompt, sessionId)
		if err != nil {
			c.JSON(http.StatusBadGateway, helpers.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"reply":      reply,
			"session_id": sessionId,
		})
	}
}
