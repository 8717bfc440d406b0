// Package entity 定义领域实体
package entity

// Intent 查询意图类别
type Intent string

const (
	IntentDefinition Intent = "definicion"
	IntentFramework  Intent = "framework"
	IntentHowToApply Intent = "como_aplicar"
	IntentChecklist  Intent = "checklist"
	IntentMetric     Intent = "metrica"
	IntentExample    Intent = "ejemplo"
	IntentCase       Intent = "caso"
)

// IntentClassification 意图归一化结果，按查询派生，无状态
type IntentClassification struct {
	Intent Intent `json:"intent"`
	// Framework 可选；未命中任何关键词时为空
	Framework Framework `json:"framework,omitempty"`
	Language  string    `json:"language"`
	// CanonicalQuery 规范化查询，长度不超过 100 字符
	CanonicalQuery string `json:"canonical_query"`
}
