// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consultor-ai-api/internal/application/advisor"
	"consultor-ai-api/internal/interfaces/http/dto"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/logger"
)

// ChatHandler 咨询问答处理器
type ChatHandler struct {
	service *advisor.Service
}

// NewChatHandler 创建问答处理器
func NewChatHandler(service *advisor.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat 咨询问答
// @Summary 咨询问答
// @Description 处理一次业务咨询问答，模拟激活时转入角色扮演状态机
// @Tags Chat
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "会话 ID，缺省时服务端生成"
// @Param body body dto.ChatRequest true "问答请求"
// @Success 200 {object} dto.Response[dto.ChatResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Message is required")
		return
	}

	sessionID := resolveSessionID(c, req.SessionID)
	ctx := logger.WithContext(c.Request.Context(), logger.SessionIDKey, sessionID)

	reply, err := h.service.ProcessQuery(ctx, advisor.ChatInput{
		SessionID: sessionID,
		Message:   req.Message,
		History:   req.ToEntities(),
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeValidationFailed) {
			dto.BadRequest(c, apperrors.AsAppError(err).Detail)
			return
		}
		dto.FromAppError(c, err)
		return
	}

	citations := reply.Citations
	if req.Citations != nil && !*req.Citations {
		citations = nil
	}

	c.Header("X-Session-ID", sessionID)
	dto.Success(c, dto.ChatResponse{
		Content:       reply.Content,
		Citations:     citations,
		IsStructured:  reply.IsStructured,
		IsSimulation:  reply.IsSimulation,
		CharacterName: reply.CharacterName,
		SimulationState: dto.SimulationStateDTO{
			IsActive:      reply.Simulation.IsActive,
			CharacterName: reply.Simulation.CharacterName,
			Turn:          string(reply.Simulation.Turn),
		},
		SessionID: sessionID,
	})
}

// resolveSessionID 解析会话 ID：请求体优先，其次请求头，缺省时生成新会话
func resolveSessionID(c *gin.Context, fromBody string) string {
	sessionID := strings.TrimSpace(fromBody)
	if sessionID == "" {
		sessionID = strings.TrimSpace(c.GetHeader("X-Session-ID"))
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return sessionID
}
