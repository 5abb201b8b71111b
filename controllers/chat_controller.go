package controllers

import (
	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

const chatSystemPrompt = "You are the support assistant for QRMenu, a digital menu " +
	"platform for restaurants. Help with menu setup, QR codes, subscriptions and " +
	"payments. Answer briefly and in the language the user writes in. If you do " +
	"not know something, say so and suggest contacting support@qrmenu.app."

// How many prior turns get replayed to the completion API per request
const chatHistoryLimit = 20

// POST /v1/chat
func SupportChat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	req.Message = utils.SanitizeString(req.Message)
	if req.Message == "" {
		utils.ValidationFailed(c, "message is required", nil)
		return
	}

	sessionID, err := utils.GetOrCreateChatSessionID(c)
	if err != nil {
		utils.LogError("Chat session error: %v", err)
		utils.InternalServerError(c, "Failed to start chat session", nil)
		return
	}

	db := config.DB
	var session models.ChatSession
	if err := db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		session = models.ChatSession{SessionID: sessionID}
		if val, exists := c.Get("tenant"); exists {
			if tenant, ok := val.(models.Tenant); ok {
				session.TenantID = &tenant.ID
			}
		}
		if err := db.Create(&session).Error; err != nil {
			utils.LogError("Failed to create chat session: %v", err)
			utils.InternalServerError(c, "Failed to start chat session", nil)
			return
		}
	}

	var history []models.ChatMessage
	err = db.Where("chat_session_id = ?", session.ID).
		Order("created_at desc").
		Limit(chatHistoryLimit).
		Find(&history).Error
	if err != nil {
		utils.LogError("Failed to load chat history for session %d: %v", session.ID, err)
		utils.InternalServerError(c, "Failed to load chat history", nil)
		return
	}

	// history is newest-first; replay oldest-first
	messages := make([]utils.LLMMessage, 0, len(history)+1)
	for i := len(history) - 1; i >= 0; i-- {
		messages = append(messages, utils.LLMMessage{Role: history[i].Role, Content: history[i].Content})
	}
	messages = append(messages, utils.LLMMessage{Role: "user", Content: req.Message})

	reply, err := utils.CallCompletionAPI(messages, chatSystemPrompt)
	if err != nil {
		utils.LogError("Completion API call failed: %v", err)
		utils.InternalServerError(c, "Support chat is temporarily unavailable", nil)
		return
	}

	// The reply is already generated; a failed history write must not eat it
	if err := db.Create(&models.ChatMessage{ChatSessionID: session.ID, Role: "user", Content: req.Message}).Error; err != nil {
		utils.LogError("Failed to persist chat message for session %d: %v", session.ID, err)
	}
	if err := db.Create(&models.ChatMessage{ChatSessionID: session.ID, Role: "assistant", Content: reply}).Error; err != nil {
		utils.LogError("Failed to persist chat reply for session %d: %v", session.ID, err)
	}

	utils.Success(c, "Reply generated", gin.H{"reply": reply})
}
