// Package repository 定义领域仓储接口
package repository

import (
	"context"

	"consultor-ai-api/internal/domain/entity"
)

// ConversationRepository 问答轮次审计仓储
type ConversationRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationTurn, error)
}
