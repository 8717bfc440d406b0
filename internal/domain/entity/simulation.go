// Package entity 定义领域实体
package entity

// SimulationTurn 模拟会话所处回合
type SimulationTurn string

const (
	// SimulationTurnBriefing 收集角色性格信息的回合
	SimulationTurnBriefing SimulationTurn = "briefing"
	// SimulationTurnActive 正式角色扮演回合
	SimulationTurnActive SimulationTurn = "simulation"
)

// SimulationState 多轮角色扮演状态机。
// 合法迁移仅限 inactive → briefing → simulation → inactive。
type SimulationState struct {
	IsActive      bool           `json:"is_active"`
	CharacterName string         `json:"character_name"`
	Context       string         `json:"context"`
	Turn          SimulationTurn `json:"turn"`
}

// InactiveSimulation 返回终态/初始态
func InactiveSimulation() SimulationState {
	return SimulationState{}
}

// StateName 返回用于指标与日志的状态名
func (s SimulationState) StateName() string {
	if !s.IsActive {
		return "inactive"
	}
	return string(s.Turn)
}
