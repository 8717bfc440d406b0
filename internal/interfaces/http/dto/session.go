package dto

import "consultor-ai-api/internal/domain/entity"

// ProfileRequest 企业画像写入请求
type ProfileRequest struct {
	Phase          string   `json:"phase" binding:"omitempty,oneof=startup scaleup growth mature"`
	Industry       string   `json:"industry" binding:"required"`
	Size           string   `json:"size" binding:"omitempty,oneof=micro small medium large"`
	Revenue        string   `json:"revenue"`
	Employees      int      `json:"employees" binding:"required,min=1"`
	GrowthStage    string   `json:"growth_stage,omitempty"`
	MainChallenges []string `json:"main_challenges,omitempty"`
	CurrentFocus   string   `json:"current_focus" binding:"omitempty,oneof=people strategy execution cash"`
}

// ProfileResponse 画像写入响应：回显画像并附个性化洞察
type ProfileResponse struct {
	Profile  *entity.BusinessProfile `json:"profile"`
	Insights string                  `json:"insights"`
}

// ToEntity 转换为领域实体
func (r *ProfileRequest) ToEntity() *entity.BusinessProfile {
	return &entity.BusinessProfile{
		Phase:          entity.BusinessPhase(r.Phase),
		Industry:       r.Industry,
		Size:           entity.BusinessSize(r.Size),
		Revenue:        r.Revenue,
		Employees:      r.Employees,
		GrowthStage:    r.GrowthStage,
		MainChallenges: r.MainChallenges,
		CurrentFocus:   entity.FocusArea(r.CurrentFocus),
	}
}
