package postgres

import (
	"context"

	"github.com/google/uuid"

	"consultor-ai-api/internal/domain/entity"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/tracer"
)

// ConversationRepo 问答轮次审计仓储实现
type ConversationRepo struct {
	client *Client
}

// NewConversationRepo 创建审计仓储
func NewConversationRepo(client *Client) *ConversationRepo {
	return &ConversationRepo{client: client}
}

// Create 写入一条问答轮次记录
func (r *ConversationRepo) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	ctx, span := tracer.Start(ctx, "conversation.Create")
	defer span.End()

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if err := r.client.db.WithContext(ctx).Create(turn).Error; err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist conversation turn")
	}
	return nil
}

// ListBySession 按会话倒序查询最近的轮次
func (r *ConversationRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationTurn, error) {
	ctx, span := tracer.Start(ctx, "conversation.ListBySession")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	var turns []*entity.ConversationTurn
	err := r.client.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list conversation turns")
	}
	return turns, nil
}
