package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/pkg/metrics"
)

// Generator 文本生成能力，由 LLM 基础设施实现
type Generator interface {
	Generate(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// Reply 回答管线的输出
type Reply struct {
	Content      string
	Citations    []entity.Citation
	IsStructured bool
}

// 结构化回答触发模式
var structuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cómo.*implementar`),
	regexp.MustCompile(`(?i)pasos`),
	regexp.MustCompile(`(?i)checklist`),
	regexp.MustCompile(`(?i)plan.*acción`),
}

var generalQuestionPattern = regexp.MustCompile(`(?i)ayuda|hola|quién eres`)

// Composer 回答合成器。依赖注入的随机源保证模板选择在测试中可复现。
type Composer struct {
	llm              Generator
	rng              *rand.Rand
	citationsEnabled bool
}

// NewComposer 创建回答合成器；rng 为 nil 时使用时间种子
func NewComposer(llm Generator, rng *rand.Rand, citationsEnabled bool) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{llm: llm, rng: rng, citationsEnabled: citationsEnabled}
}

// IsGeneralQuestion 问候/求助类通用问题，走固定文案短路，不检索不生成
func (c *Composer) IsGeneralQuestion(query string) bool {
	return generalQuestionPattern.MatchString(query)
}

// GeneralResponse 通用问题的固定回答
func (c *Composer) GeneralResponse(profile *entity.BusinessProfile) *Reply {
	if profile != nil {
		return &Reply{Content: "Conozco tu contexto. ¿En qué área necesitas más ayuda ahora: People, Strategy, Execution o Cash?"}
	}
	return &Reply{Content: "¡Hola! Soy Juan Pérez. Para darte el mejor consejo, ¿quieres hacer un diagnóstico rápido? O pregúntame directamente sobre tu mayor desafío."}
}

// Compose 合成最终回答。LLM 失败不外传：退回支柱兜底文案。
func (c *Composer) Compose(
	ctx context.Context,
	query string,
	intent entity.IntentClassification,
	passages []entity.SearchResult,
	history []entity.ChatMessage,
	profile *entity.BusinessProfile,
) (*Reply, error) {
	convContext := conversationalContext(history)
	knowledgeContext := joinPassages(passages)
	framework := c.resolveFramework(intent, passages)
	structured := c.shouldUseStructuredFormat(query, intent)

	var citations []entity.Citation
	if c.citationsEnabled {
		citations = buildCitations(passages)
	}

	var (
		content string
		err     error
	)
	if structured {
		content, err = c.generateStructured(ctx, query, framework, knowledgeContext, convContext, profile)
	} else {
		content, err = c.llm.Generate(ctx, userPrompt(query, knowledgeContext, convContext, profile), systemPrompt(profile))
	}
	if err != nil {
		metrics.FallbacksTotal.WithLabelValues(string(framework)).Inc()
		return &Reply{Content: fallbackResponse(framework), Citations: citations}, nil
	}

	metrics.QueriesTotal.WithLabelValues(string(intent.Intent), fmt.Sprintf("%t", structured)).Inc()
	return &Reply{Content: content, Citations: citations, IsStructured: structured}, nil
}

func (c *Composer) generateStructured(
	ctx context.Context,
	query string,
	framework entity.Framework,
	knowledgeContext, convContext string,
	profile *entity.BusinessProfile,
) (string, error) {
	templates := responseTemplates(framework)
	template := templates[c.rng.Intn(len(templates))]
	return c.llm.Generate(ctx, structuredPrompt(query, knowledgeContext, convContext, template, profile), "")
}

func (c *Composer) shouldUseStructuredFormat(query string, intent entity.IntentClassification) bool {
	for _, p := range structuredPatterns {
		if p.MatchString(query) {
			return true
		}
	}
	return intent.Intent == entity.IntentChecklist || intent.Intent == entity.IntentFramework
}

// resolveFramework 意图未带支柱时对选段做多数表决，平票取先出现者；
// 无选段时缺省 Strategy
func (c *Composer) resolveFramework(intent entity.IntentClassification, passages []entity.SearchResult) entity.Framework {
	if intent.Framework != "" {
		return intent.Framework
	}
	if len(passages) == 0 {
		return entity.FrameworkStrategy
	}

	counts := make(map[entity.Framework]int)
	var order []entity.Framework
	for _, p := range passages {
		if counts[p.Framework] == 0 {
			order = append(order, p.Framework)
		}
		counts[p.Framework]++
	}

	best := order[0]
	for _, fw := range order[1:] {
		if counts[fw] > counts[best] {
			best = fw
		}
	}
	return best
}

func joinPassages(passages []entity.SearchResult) string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n\n")
}
