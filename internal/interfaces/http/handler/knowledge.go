package handler

import (
	"github.com/gin-gonic/gin"

	"consultor-ai-api/internal/application/retrieval"
	"consultor-ai-api/internal/domain/repository"
	"consultor-ai-api/internal/interfaces/http/dto"
)

// KnowledgeHandler 知识目录处理器
type KnowledgeHandler struct {
	knowledge repository.KnowledgeRepository
	engine    *retrieval.Engine
}

// NewKnowledgeHandler 创建知识目录处理器
func NewKnowledgeHandler(knowledge repository.KnowledgeRepository, engine *retrieval.Engine) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge, engine: engine}
}

// ListChunks 列出全部知识条目
// @Summary 列出全部知识条目
// @Tags Knowledge
// @Produce json
// @Success 200 {object} dto.Response[[]entity.KnowledgeChunk]
// @Router /v1/knowledge/chunks [get]
func (h *KnowledgeHandler) ListChunks(c *gin.Context) {
	chunks, err := h.knowledge.ListAll(c.Request.Context())
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, chunks)
}

// SimilarChunks 查找相近条目
// @Summary 查找相近条目
// @Description 基于余弦相似度返回与指定条目最接近的条目
// @Tags Knowledge
// @Produce json
// @Param id path string true "chunk_id"
// @Success 200 {object} dto.Response[[]dto.SearchResultDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/knowledge/chunks/{id}/similar [get]
func (h *KnowledgeHandler) SimilarChunks(c *gin.Context) {
	results, err := h.engine.SimilarChunks(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSearchResults(results))
}
