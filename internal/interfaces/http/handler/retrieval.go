package handler

import (
	"github.com/gin-gonic/gin"

	"consultor-ai-api/internal/application/retrieval"
	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/internal/interfaces/http/dto"
)

// RetrievalHandler 检索调试处理器
type RetrievalHandler struct {
	engine *retrieval.Engine
}

// NewRetrievalHandler 创建检索处理器
func NewRetrievalHandler(engine *retrieval.Engine) *RetrievalHandler {
	return &RetrievalHandler{engine: engine}
}

// Search 检索知识条目
// @Summary 检索知识条目
// @Description 对知识目录执行启发式向量检索，返回评分与相关性说明
// @Tags Retrieval
// @Accept json
// @Produce json
// @Param body body dto.SearchRequest true "检索请求"
// @Success 200 {object} dto.Response[dto.SearchResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/retrieval/search [post]
func (h *RetrievalHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	out, err := h.engine.Search(c.Request.Context(), retrieval.SearchInput{
		Query:            req.Query,
		TopK:             req.TopK,
		Framework:        entity.Framework(req.Framework),
		Language:         req.Language,
		IncludeEmbedding: req.IncludeEmbedding,
	})
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	resp := dto.SearchResponse{
		Results:        dto.NewSearchResults(out.Results),
		QueryEmbedding: out.QueryEmbedding,
	}
	if out.Debug != nil {
		resp.TotalCandidates = out.Debug.TotalCandidates
	}
	dto.Success(c, resp)
}
