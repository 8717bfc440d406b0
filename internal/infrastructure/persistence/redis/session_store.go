package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"consultor-ai-api/internal/domain/repository"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/tracer"
)

const sessionKeyPrefix = "advisor:session:"

// SessionStore 按会话 ID 存储管线上下文（企业画像 + 模拟状态）。
// 单次写入为一条 JSON SET，天然满足同一调用方串行请求的可见性顺序。
type SessionStore struct {
	client *Client
	ttl    time.Duration
	sf     singleflight.Group
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Get 读取会话上下文；键不存在时返回空上下文。
// 经由 singleflight 合并同一会话的并发读取。
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*repository.SessionContext, error) {
	ctx, span := tracer.Start(ctx, "session.Get",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	v, err, _ := s.sf.Do(sessionID, func() (interface{}, error) {
		raw, err := s.client.Redis().Get(ctx, sessionKey(sessionID)).Result()
		if errors.Is(err, redis.Nil) {
			return &repository.SessionContext{SessionID: sessionID}, nil
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load session context")
		}

		sc := &repository.SessionContext{}
		if err := json.Unmarshal([]byte(raw), sc); err != nil {
			// 损坏的上下文按不存在处理，下一次写入覆盖
			return &repository.SessionContext{SessionID: sessionID}, nil
		}
		sc.SessionID = sessionID
		return sc, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return v.(*repository.SessionContext), nil
}

// Save 覆盖写入会话上下文并刷新 TTL
func (s *SessionStore) Save(ctx context.Context, sc *repository.SessionContext) error {
	ctx, span := tracer.Start(ctx, "session.Save",
		trace.WithAttributes(attribute.String("session.id", sc.SessionID)))
	defer span.End()

	payload, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal session context: %w", err)
	}

	if err := s.client.Redis().Set(ctx, sessionKey(sc.SessionID), payload, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session context")
	}
	return nil
}

// Delete 删除会话上下文
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "session.Delete",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := s.client.Redis().Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to delete session context")
	}
	return nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
