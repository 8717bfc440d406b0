// Package knowledge 提供知识库目录与仓储实现
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"consultor-ai-api/internal/domain/entity"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/tracer"
)

// Repository 内存知识库仓储。条目加载后不可变。
type Repository struct {
	chunks []entity.KnowledgeChunk
	byID   map[string]int
}

// NewRepository 创建内置目录仓储
func NewRepository() *Repository {
	return newRepository(builtinCatalog())
}

// NewRepositoryFromFile 从外部 JSON 目录文件创建仓储
func NewRepositoryFromFile(path string) (*Repository, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var chunks []entity.KnowledgeChunk
	if err := json.Unmarshal(content, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no chunks", path)
	}
	return newRepository(chunks), nil
}

func newRepository(chunks []entity.KnowledgeChunk) *Repository {
	byID := make(map[string]int, len(chunks))
	for i := range chunks {
		// 缺失预计算向量的条目惰性赋予缺省向量，加载后不再修改
		if len(chunks[i].Embedding) == 0 {
			chunks[i].Embedding = entity.DefaultEmbedding()
		}
		byID[chunks[i].ChunkID] = i
	}
	return &Repository{chunks: chunks, byID: byID}
}

// ListAll 返回全部条目
func (r *Repository) ListAll(ctx context.Context) ([]entity.KnowledgeChunk, error) {
	_, span := tracer.Start(ctx, "knowledge.ListAll")
	defer span.End()

	out := make([]entity.KnowledgeChunk, len(r.chunks))
	copy(out, r.chunks)
	return out, nil
}

// ListByFramework 按支柱过滤
func (r *Repository) ListByFramework(ctx context.Context, framework entity.Framework) ([]entity.KnowledgeChunk, error) {
	_, span := tracer.Start(ctx, "knowledge.ListByFramework")
	defer span.End()

	var out []entity.KnowledgeChunk
	for _, c := range r.chunks {
		if c.Framework == framework {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListByTopics 按主题过滤（不区分大小写的子串匹配）
func (r *Repository) ListByTopics(ctx context.Context, topics []string) ([]entity.KnowledgeChunk, error) {
	_, span := tracer.Start(ctx, "knowledge.ListByTopics")
	defer span.End()

	var out []entity.KnowledgeChunk
	for _, c := range r.chunks {
		if chunkMatchesTopics(c, topics) {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetByChunkID 按 chunk_id 获取单个条目
func (r *Repository) GetByChunkID(ctx context.Context, chunkID string) (*entity.KnowledgeChunk, error) {
	_, span := tracer.Start(ctx, "knowledge.GetByChunkID")
	defer span.End()

	i, ok := r.byID[chunkID]
	if !ok {
		return nil, apperrors.ErrNotFound.WithDetail(fmt.Sprintf("chunk %s not found", chunkID))
	}
	c := r.chunks[i]
	return &c, nil
}

func chunkMatchesTopics(c entity.KnowledgeChunk, topics []string) bool {
	for _, topic := range topics {
		t := strings.ToLower(topic)
		for _, ct := range c.Topics {
			if strings.Contains(strings.ToLower(ct), t) {
				return true
			}
		}
	}
	return false
}
