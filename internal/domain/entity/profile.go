// Package entity 定义领域实体
package entity

// BusinessPhase 企业所处阶段
type BusinessPhase string

const (
	PhaseStartup BusinessPhase = "startup"
	PhaseScaleup BusinessPhase = "scaleup"
	PhaseGrowth  BusinessPhase = "growth"
	PhaseMature  BusinessPhase = "mature"
)

// BusinessSize 企业规模
type BusinessSize string

const (
	SizeMicro  BusinessSize = "micro"
	SizeSmall  BusinessSize = "small"
	SizeMedium BusinessSize = "medium"
	SizeLarge  BusinessSize = "large"
)

// FocusArea 当前关注领域（四大支柱的小写形式）
type FocusArea string

const (
	FocusPeople    FocusArea = "people"
	FocusStrategy  FocusArea = "strategy"
	FocusExecution FocusArea = "execution"
	FocusCash      FocusArea = "cash"
)

// BusinessProfile 企业画像。由诊断问卷（外部协作方）产出，
// 按会话 ID 存储，随每次管线调用显式传入。
type BusinessProfile struct {
	Phase          BusinessPhase `json:"phase"`
	Industry       string        `json:"industry"`
	Size           BusinessSize  `json:"size"`
	Revenue        string        `json:"revenue"`
	Employees      int           `json:"employees"`
	GrowthStage    string        `json:"growth_stage,omitempty"`
	MainChallenges []string      `json:"main_challenges,omitempty"`
	CurrentFocus   FocusArea     `json:"current_focus,omitempty"`
}
