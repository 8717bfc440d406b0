package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"consultor-ai-api/internal/application/advisor"
	"consultor-ai-api/internal/interfaces/http/dto"
)

// SessionHandler 会话上下文处理器
type SessionHandler struct {
	service *advisor.Service
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(service *advisor.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// UpdateProfile 写入企业画像
// @Summary 写入企业画像
// @Description 保存会话的企业画像，阶段缺省时按画像推断，返回个性化洞察
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "会话 ID"
// @Param body body dto.ProfileRequest true "企业画像"
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/sessions/{id}/profile [put]
func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	profile := req.ToEntity()
	insights, err := h.service.UpdateProfile(c.Request.Context(), c.Param("id"), profile)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	dto.Success(c, dto.ProfileResponse{Profile: profile, Insights: insights})
}

// GetProfile 读取企业画像
// @Summary 读取企业画像
// @Tags Session
// @Produce json
// @Param id path string true "会话 ID"
// @Success 200 {object} dto.Response[entity.BusinessProfile]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{id}/profile [get]
func (h *SessionHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	if profile == nil {
		dto.NotFound(c, "profile not set for session")
		return
	}
	dto.Success(c, profile)
}

// ListTurns 读取会话审计轮次
// @Summary 读取会话审计轮次
// @Description 按时间倒序返回会话最近的问答轮次，需要开启审计持久化
// @Tags Session
// @Produce json
// @Param id path string true "会话 ID"
// @Param limit query int false "返回数量上限，缺省 50"
// @Success 200 {object} dto.Response[[]entity.ConversationTurn]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sessions/{id}/turns [get]
func (h *SessionHandler) ListTurns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	turns, err := h.service.Turns(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, turns)
}

// DeleteSession 清除会话上下文
// @Summary 清除会话上下文
// @Description 删除会话的画像与模拟状态
// @Tags Session
// @Param id path string true "会话 ID"
// @Success 204
// @Router /v1/sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.NoContent(c)
}
