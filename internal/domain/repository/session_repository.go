// Package repository 定义领域仓储接口
package repository

import (
	"context"

	"consultor-ai-api/internal/domain/entity"
)

// SessionContext 单个会话的管线上下文。按会话 ID 隔离，
// 取代进程级可变单例，消除并发请求间的画像串扰。
type SessionContext struct {
	SessionID  string                  `json:"session_id"`
	Profile    *entity.BusinessProfile `json:"profile,omitempty"`
	Simulation entity.SimulationState  `json:"simulation"`
}

// SessionRepository 会话上下文仓储。
// 顺序保证：同一调用方串行请求中，写入完成后的读取必须可见。
type SessionRepository interface {
	// Get 读取会话上下文；不存在时返回空上下文而非错误
	Get(ctx context.Context, sessionID string) (*SessionContext, error)
	// Save 覆盖写入会话上下文
	Save(ctx context.Context, sc *SessionContext) error
	// Delete 删除会话上下文
	Delete(ctx context.Context, sessionID string) error
}
