package dto

import (
	"encoding/json"

	"consultor-ai-api/internal/domain/entity"
)

// ChatMessageDTO 会话历史消息
type ChatMessageDTO struct {
	Role          string `json:"role" binding:"required,oneof=user assistant"`
	Content       string `json:"content" binding:"required"`
	IsSimulation  bool   `json:"is_simulation,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
}

// ChatRequest 咨询问答请求。
// session_id 优先于 X-Session-ID 请求头；citations 缺省跟随服务端配置。
type ChatRequest struct {
	Message   string           `json:"message" binding:"required"`
	SessionID string           `json:"session_id,omitempty"`
	History   []ChatMessageDTO `json:"history,omitempty"`
	Citations *bool            `json:"citations,omitempty"`
}

// ChatResponse 咨询问答响应。
// is_chart/chart_data 为 UI 直通字段，由模型输出原样透传。
type ChatResponse struct {
	Content         string                `json:"content"`
	Citations       []entity.Citation     `json:"citations"`
	IsStructured    bool                  `json:"is_structured"`
	IsChart         bool                  `json:"is_chart,omitempty"`
	ChartData       json.RawMessage       `json:"chart_data,omitempty"`
	IsSimulation    bool                  `json:"is_simulation,omitempty"`
	CharacterName   string                `json:"character_name,omitempty"`
	SimulationState SimulationStateDTO    `json:"simulation_state"`
	SessionID       string                `json:"session_id"`
}

// SimulationStateDTO 模拟状态
type SimulationStateDTO struct {
	IsActive      bool   `json:"is_active"`
	CharacterName string `json:"character_name,omitempty"`
	Turn          string `json:"turn,omitempty"`
}

// ToEntities 转换历史消息为领域实体
func (r *ChatRequest) ToEntities() []entity.ChatMessage {
	history := make([]entity.ChatMessage, 0, len(r.History))
	for _, m := range r.History {
		history = append(history, entity.ChatMessage{
			Role:          entity.Role(m.Role),
			Content:       m.Content,
			IsSimulation:  m.IsSimulation,
			CharacterName: m.CharacterName,
		})
	}
	return history
}
