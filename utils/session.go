package utils

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const chatSessionKey = "chat_session_id"

// GetOrCreateChatSessionID returns the support-chat session id stored in the
// cookie session, minting one on first use.
func GetOrCreateChatSessionID(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	if v := session.Get(chatSessionKey); v != nil {
		if id, ok := v.(string); ok && id != "" {
			return id, nil
		}
	}
	id := uuid.New().String()
	session.Set(chatSessionKey, id)
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("failed to persist chat session: %v", err)
	}
	return id, nil
}
