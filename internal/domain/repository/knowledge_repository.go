// Package repository 定义领域仓储接口
package repository

import (
	"context"

	"consultor-ai-api/internal/domain/entity"
)

// KnowledgeRepository 知识库仓储。目录在进程启动时固定，之后只读。
type KnowledgeRepository interface {
	// ListAll 返回全部条目
	ListAll(ctx context.Context) ([]entity.KnowledgeChunk, error)
	// ListByFramework 按支柱过滤
	ListByFramework(ctx context.Context, framework entity.Framework) ([]entity.KnowledgeChunk, error)
	// ListByTopics 按主题过滤（主题对条目 topics 的子串匹配，不区分大小写）
	ListByTopics(ctx context.Context, topics []string) ([]entity.KnowledgeChunk, error)
	// GetByChunkID 按 chunk_id 获取单个条目
	GetByChunkID(ctx context.Context, chunkID string) (*entity.KnowledgeChunk, error)
}
