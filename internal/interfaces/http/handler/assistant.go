package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/application/assistant"
)

// AssistantHandler exposes the tool-using chat assistant
type AssistantHandler struct {
	BaseHandler
	chat *assistant.ChatService
}

// NewAssistantHandler creates an AssistantHandler
func NewAssistantHandler(chat *assistant.ChatService) *AssistantHandler {
	return &AssistantHandler{chat: chat}
}

// Chat godoc
// @ID           assistantChat
// @Summary      Ask the CRM assistant
// @Description  The assistant answers with read-only access to the workspace's deals, contacts, tasks and reports.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body assistant.ChatRequest true "Conversation"
// @Success      200 {object} APIResponse[assistant.ChatResponse]
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	wsID, ok := h.Workspace(c)
	if !ok {
		return
	}
	var req assistant.ChatRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.chat.Chat(c.Request.Context(), wsID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
