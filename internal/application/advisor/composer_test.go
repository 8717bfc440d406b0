package advisor

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultor-ai-api/internal/domain/entity"
	apperrors "consultor-ai-api/pkg/errors"
)

type stubGenerator struct {
	reply      string
	err        error
	lastUser   string
	lastSystem string
	calls      int
}

func (s *stubGenerator) Generate(_ context.Context, userPrompt, systemPrompt string) (string, error) {
	s.calls++
	s.lastUser = userPrompt
	s.lastSystem = systemPrompt
	return s.reply, s.err
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func peoplePassage(docID string, score float64) entity.SearchResult {
	return entity.SearchResult{
		KnowledgeChunk: entity.KnowledgeChunk{
			DocID:     docID,
			ChunkID:   docID,
			Text:      "Contrata lento, despide rápido.",
			TStart:    245,
			Framework: entity.FrameworkPeople,
		},
		SimilarityScore: score,
		RelevanceReason: "Coincide en temas: liderazgo",
	}
}

func TestComposeFreeForm(t *testing.T) {
	llm := &stubGenerator{reply: "Mi consejo directo."}
	c := NewComposer(llm, testRand(), true)

	intent := entity.IntentClassification{Intent: entity.IntentHowToApply, Framework: entity.FrameworkPeople}
	reply, err := c.Compose(context.Background(), "cómo delegar mejor", intent,
		[]entity.SearchResult{peoplePassage("people_delegation_002", 0.8)}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Mi consejo directo.", reply.Content)
	assert.False(t, reply.IsStructured)
	assert.Contains(t, llm.lastSystem, "Juan Pérez")
	assert.Contains(t, llm.lastUser, "Contrata lento")
}

func TestComposeStructuredByIntent(t *testing.T) {
	llm := &stubGenerator{reply: "Diagnóstico: ...\nPlan de Acción:\n1) ...\n¿Qué harás primero?"}
	c := NewComposer(llm, testRand(), false)

	intent := entity.IntentClassification{Intent: entity.IntentChecklist, Framework: entity.FrameworkExecution}
	reply, err := c.Compose(context.Background(), "Dame un checklist para implementar KPIs", intent, nil, nil, nil)

	require.NoError(t, err)
	assert.True(t, reply.IsStructured)
	// 结构化提示词内嵌固定模板骨架
	assert.Contains(t, llm.lastUser, "USA ESTA PLANTILLA")
	assert.Contains(t, llm.lastUser, "Plan de Acción")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(reply.Content), "?"))
}

func TestComposeStructuredCarriesCitations(t *testing.T) {
	llm := &stubGenerator{reply: "Plan de Acción:\n1) ...\n¿Por dónde empiezas?"}
	c := NewComposer(llm, testRand(), true)

	intent := entity.IntentClassification{Intent: entity.IntentChecklist, Framework: entity.FrameworkPeople}
	reply, err := c.Compose(context.Background(), "dame un checklist para delegar", intent,
		[]entity.SearchResult{peoplePassage("people_delegation_002", 0.8)}, nil, nil)

	// 引用来自选段，与结构化与否无关
	require.NoError(t, err)
	assert.True(t, reply.IsStructured)
	require.Len(t, reply.Citations, 1)
	assert.Equal(t, "People - People Delegation", reply.Citations[0].Source)
}

func TestComposeStructuredByPattern(t *testing.T) {
	llm := &stubGenerator{reply: "ok"}
	c := NewComposer(llm, testRand(), false)

	intent := entity.IntentClassification{Intent: entity.IntentHowToApply}
	reply, err := c.Compose(context.Background(), "¿cómo puedo implementar un scorecard?", intent, nil, nil, nil)

	require.NoError(t, err)
	assert.True(t, reply.IsStructured)
}

func TestComposeFallbackOnProviderError(t *testing.T) {
	llm := &stubGenerator{err: apperrors.ErrProvider}
	c := NewComposer(llm, testRand(), true)

	intent := entity.IntentClassification{Intent: entity.IntentHowToApply, Framework: entity.FrameworkPeople}
	reply, err := c.Compose(context.Background(), "cómo contratar mejor", intent,
		[]entity.SearchResult{peoplePassage("people_leadership_001", 0.9)}, nil, nil)

	// LLM 失败不向上传播，退回 People 兜底文案
	require.NoError(t, err)
	assert.Equal(t, frameworkFallbacks[entity.FrameworkPeople], reply.Content)
	assert.NotEmpty(t, reply.Content)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(reply.Content), "?"))
	// 引用不依赖生成结果
	assert.NotEmpty(t, reply.Citations)
}

func TestResolveFrameworkMajorityVote(t *testing.T) {
	c := NewComposer(&stubGenerator{}, testRand(), false)

	passages := []entity.SearchResult{
		peoplePassage("doc_a", 0.9),
		peoplePassage("doc_b", 0.8),
		{KnowledgeChunk: entity.KnowledgeChunk{DocID: "doc_c", ChunkID: "doc_c", Framework: entity.FrameworkCash}, SimilarityScore: 0.7},
	}

	got := c.resolveFramework(entity.IntentClassification{}, passages)
	assert.Equal(t, entity.FrameworkPeople, got)
}

func TestResolveFrameworkDefaults(t *testing.T) {
	c := NewComposer(&stubGenerator{}, testRand(), false)

	// 意图自带支柱时优先
	got := c.resolveFramework(entity.IntentClassification{Framework: entity.FrameworkCash}, nil)
	assert.Equal(t, entity.FrameworkCash, got)

	// 无选段时缺省 Strategy
	got = c.resolveFramework(entity.IntentClassification{}, nil)
	assert.Equal(t, entity.FrameworkStrategy, got)
}

func TestGeneralQuestion(t *testing.T) {
	c := NewComposer(&stubGenerator{}, testRand(), false)

	assert.True(t, c.IsGeneralQuestion("hola"))
	assert.True(t, c.IsGeneralQuestion("¿quién eres?"))
	assert.True(t, c.IsGeneralQuestion("necesito ayuda"))
	assert.False(t, c.IsGeneralQuestion("cómo subo mis precios"))

	withProfile := c.GeneralResponse(&entity.BusinessProfile{Industry: "Tecnología"})
	assert.Contains(t, withProfile.Content, "People, Strategy, Execution o Cash")

	anonymous := c.GeneralResponse(nil)
	assert.Contains(t, anonymous.Content, "Juan Pérez")
}

func TestAllFallbacksEndWithQuestion(t *testing.T) {
	for fw, text := range frameworkFallbacks {
		assert.True(t, strings.HasSuffix(strings.TrimSpace(text), "?"), "fallback for %s must end with a question", fw)
	}
}
