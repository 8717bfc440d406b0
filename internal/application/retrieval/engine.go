package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/internal/domain/repository"
	"consultor-ai-api/pkg/metrics"
	"consultor-ai-api/pkg/tracer"
)

const (
	defaultTopK = 8
	maxTopK     = 50

	similarChunksK = 3
)

// Engine 检索引擎：评分、排序、多样性选段
type Engine struct {
	knowledge repository.KnowledgeRepository
	embedder  *Embedder
	scorer    *Scorer
	selector  *Selector
}

// NewEngine 创建检索引擎
func NewEngine(knowledgeRepo repository.KnowledgeRepository) *Engine {
	embedder := NewEmbedder()
	return &Engine{
		knowledge: knowledgeRepo,
		embedder:  embedder,
		scorer:    NewScorer(embedder),
		selector:  NewSelector(),
	}
}

// Search 执行完整检索：过滤候选、逐条评分、降序排序、截断 TopK。
// 仓储失败降级为空结果而不向上传播，调用方永远拿到可用的（可能为空的）列表。
func (e *Engine) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	ctx, span := tracer.Start(ctx, "retrieval.Search")
	defer span.End()

	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if in.TopK <= 0 {
		in.TopK = defaultTopK
	}
	if in.TopK > maxTopK {
		in.TopK = maxTopK
	}

	span.SetAttributes(
		attribute.String("query", in.Query),
		attribute.Int("top_k", in.TopK),
	)

	start := time.Now()
	status := "ok"

	candidates, err := e.candidates(ctx, in)
	if err != nil {
		// 降级：知识库读取失败按空候选处理
		status = "degraded"
		candidates = nil
	}

	out := &SearchOutput{
		Debug: &DebugInfo{TotalCandidates: len(candidates)},
	}

	queryEmbedding := e.embedder.Embed(in.Query)
	if in.IncludeEmbedding {
		out.QueryEmbedding = queryEmbedding
	}

	scored := make([]entity.SearchResult, 0, len(candidates))
	for _, chunk := range candidates {
		score, reason := e.scorer.scoreWithEmbedding(in.Query, queryEmbedding, chunk)
		scored = append(scored, entity.SearchResult{
			KnowledgeChunk:  chunk,
			SimilarityScore: score,
			RelevanceReason: reason,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > in.TopK {
		scored = scored[:in.TopK]
	}

	out.Results = scored
	out.Debug.FilteredCandidates = len(scored)
	out.Debug.ScoringTimeMs = time.Since(start).Milliseconds()

	metrics.RetrievalDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	return out, nil
}

// SelectPassages 检索后的多样性选段，供回答管线使用
func (e *Engine) SelectPassages(ctx context.Context, in SearchInput) ([]entity.SearchResult, error) {
	out, err := e.Search(ctx, in)
	if err != nil {
		return nil, err
	}
	selected := e.selector.Select(out.Results)
	metrics.RetrievalResults.Observe(float64(len(selected)))
	return selected, nil
}

// SimilarChunks 基于纯余弦相似度查找与指定条目最接近的若干条目
func (e *Engine) SimilarChunks(ctx context.Context, chunkID string) ([]entity.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "retrieval.SimilarChunks")
	defer span.End()

	target, err := e.knowledge.GetByChunkID(ctx, chunkID)
	if err != nil {
		return nil, err
	}

	all, err := e.knowledge.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]entity.SearchResult, 0, len(all))
	for _, chunk := range all {
		if chunk.ChunkID == target.ChunkID {
			continue
		}
		score := CosineSimilarity(target.Embedding, chunk.Embedding)
		scored = append(scored, entity.SearchResult{
			KnowledgeChunk:  chunk,
			SimilarityScore: score,
			RelevanceReason: fmt.Sprintf("Relacionado con framework %s", chunk.Framework),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})
	if len(scored) > similarChunksK {
		scored = scored[:similarChunksK]
	}
	return scored, nil
}

func (e *Engine) candidates(ctx context.Context, in SearchInput) ([]entity.KnowledgeChunk, error) {
	var (
		chunks []entity.KnowledgeChunk
		err    error
	)
	if in.Framework != "" {
		chunks, err = e.knowledge.ListByFramework(ctx, in.Framework)
	} else {
		chunks, err = e.knowledge.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if in.Language == "" {
		return chunks, nil
	}
	filtered := chunks[:0]
	for _, c := range chunks {
		if c.Language == "" || strings.EqualFold(c.Language, in.Language) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
