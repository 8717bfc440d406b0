// Package advisor 实现顾问回答管线：意图归一化、提示词组装、
// 结构化/自由体回答生成、引用格式化与兜底策略。
package advisor

import (
	"strings"

	"consultor-ai-api/internal/domain/entity"
)

const canonicalQueryMaxLen = 100

// 意图与支柱识别规则均为有序表，自上而下首个命中生效。
// 顺序即优先级，调整顺序等于调整语义。
type intentRule struct {
	keywords []string
	intent   entity.Intent
}

type frameworkRule struct {
	keywords  []string
	framework entity.Framework
}

var intentRules = []intentRule{
	{keywords: []string{"qué es", "define"}, intent: entity.IntentDefinition},
	{keywords: []string{"framework", "marco"}, intent: entity.IntentFramework},
	{keywords: []string{"checklist", "pasos"}, intent: entity.IntentChecklist},
	{keywords: []string{"métrica", "kpi"}, intent: entity.IntentMetric},
	{keywords: []string{"ejemplo"}, intent: entity.IntentExample},
	{keywords: []string{"caso"}, intent: entity.IntentCase},
}

var frameworkRules = []frameworkRule{
	{keywords: []string{"equipo", "liderazgo"}, framework: entity.FrameworkPeople},
	{keywords: []string{"estrategia", "cliente"}, framework: entity.FrameworkStrategy},
	{keywords: []string{"ejecución", "proceso", "kpi"}, framework: entity.FrameworkExecution},
	{keywords: []string{"cash", "dinero"}, framework: entity.FrameworkCash},
}

// 规范化查询时剔除的疑问词（短语优先于单词处理）
var (
	interrogativePhrases = []string{"por qué"}
	interrogativeWords   = []string{"cómo", "qué", "cuál"}
)

// Classifier 意图分类器。纯启发式，无外部调用。
type Classifier struct{}

// NewClassifier 创建意图分类器
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify 对用户查询做意图归一化。
// 未命中任何意图规则时默认 como_aplicar；支柱无默认值，未命中则缺省。
func (c *Classifier) Classify(userQuery string) entity.IntentClassification {
	query := strings.ToLower(userQuery)

	intent := entity.IntentHowToApply
	for _, rule := range intentRules {
		if containsAny(query, rule.keywords) {
			intent = rule.intent
			break
		}
	}

	var framework entity.Framework
	for _, rule := range frameworkRules {
		if containsAny(query, rule.keywords) {
			framework = rule.framework
			break
		}
	}

	return entity.IntentClassification{
		Intent:         intent,
		Framework:      framework,
		Language:       "es",
		CanonicalQuery: canonicalQuery(userQuery, framework),
	}
}

// canonicalQuery 构造规范化查询：去标点疑问词、前置支柱名、截断 100 字符
func canonicalQuery(userQuery string, framework entity.Framework) string {
	canonical := strings.ToLower(userQuery)
	canonical = strings.NewReplacer("¿", "", "?", "", "¡", "", "!", "").Replace(canonical)
	for _, phrase := range interrogativePhrases {
		canonical = strings.ReplaceAll(canonical, phrase, " ")
	}

	words := strings.Fields(canonical)
	kept := words[:0]
	for _, w := range words {
		if !isInterrogative(w) {
			kept = append(kept, w)
		}
	}
	canonical = strings.TrimSpace(strings.Join(kept, " "))

	if framework != "" {
		canonical = strings.ToLower(string(framework)) + " " + canonical
	}
	if runes := []rune(canonical); len(runes) > canonicalQueryMaxLen {
		canonical = string(runes[:canonicalQueryMaxLen])
	}
	return canonical
}

func isInterrogative(word string) bool {
	for _, iw := range interrogativeWords {
		if word == iw {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
