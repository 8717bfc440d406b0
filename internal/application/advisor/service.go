package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"consultor-ai-api/internal/application/diagnostic"
	"consultor-ai-api/internal/application/retrieval"
	"consultor-ai-api/internal/application/simulation"
	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/internal/domain/repository"
	apperrors "consultor-ai-api/pkg/errors"
	"consultor-ai-api/pkg/logger"
)

const minQueryLength = 3

// 模拟会话的触发短语。模拟激活期间所有消息都交给状态机，
// 直到命中结束短语或状态机自行复位。
var (
	simulationStartTriggers = []string{"quiero practicar", "simulemos", "hagamos una simulación", "iniciar simulación"}
	simulationEndTriggers   = []string{"terminar simulación", "termina la simulación", "fin de la simulación", "dame feedback", "dame tu feedback"}
)

// ChatInput 单次问答输入
type ChatInput struct {
	SessionID string
	Message   string
	History   []entity.ChatMessage
}

// ChatReply 单次问答输出
type ChatReply struct {
	Content       string
	Citations     []entity.Citation
	IsStructured  bool
	IsSimulation  bool
	CharacterName string
	Simulation    entity.SimulationState
}

// Service 顾问服务：校验、会话上下文、模拟分发与问答管线编排
type Service struct {
	sessions   repository.SessionRepository
	retriever  *retrieval.Engine
	classifier *Classifier
	composer   *Composer
	simulator  *simulation.Engine
	turns      repository.ConversationRepository

	defaultLanguage string
	persistTurns    bool
}

// NewService 创建顾问服务。turns 可为 nil（审计持久化关闭时）。
func NewService(
	sessions repository.SessionRepository,
	retriever *retrieval.Engine,
	classifier *Classifier,
	composer *Composer,
	simulator *simulation.Engine,
	turns repository.ConversationRepository,
	defaultLanguage string,
	persistTurns bool,
) *Service {
	return &Service{
		sessions:        sessions,
		retriever:       retriever,
		classifier:      classifier,
		composer:        composer,
		simulator:       simulator,
		turns:           turns,
		defaultLanguage: defaultLanguage,
		persistTurns:    persistTurns,
	}
}

// ProcessQuery 处理一次咨询问答。
// 模拟激活时整条消息交给状态机；否则走 分类 → 检索 → 合成 管线。
func (s *Service) ProcessQuery(ctx context.Context, in ChatInput) (*ChatReply, error) {
	message := strings.TrimSpace(in.Message)
	if len([]rune(message)) < minQueryLength {
		return nil, apperrors.ErrValidation.WithDetail("La consulta debe tener al menos 3 caracteres")
	}

	sc, err := s.sessions.Get(ctx, in.SessionID)
	if err != nil {
		// 会话存储不可用按无上下文处理，不阻断问答
		logger.Warn(ctx, "session context unavailable", "session_id", in.SessionID, "error", err.Error())
		sc = &repository.SessionContext{SessionID: in.SessionID}
	}

	history := append(in.History, entity.ChatMessage{Role: entity.RoleUser, Content: message})

	reply, err := s.dispatch(ctx, message, history, sc)
	if err != nil {
		return nil, err
	}

	s.persistTurn(ctx, in.SessionID, message, reply)
	return reply, nil
}

func (s *Service) dispatch(ctx context.Context, message string, history []entity.ChatMessage, sc *repository.SessionContext) (*ChatReply, error) {
	lower := strings.ToLower(message)

	if sc.Simulation.IsActive {
		// 反馈只在正式角色扮演回合可达；briefing 回合的消息一律按性格描述处理，
		// 保证迁移序列封闭于 inactive → briefing → simulation → inactive
		if sc.Simulation.Turn == entity.SimulationTurnActive && containsAny(lower, simulationEndTriggers) {
			result, err := s.simulator.Feedback(ctx, history, sc.Simulation, systemPrompt(sc.Profile))
			if err != nil {
				return nil, err
			}
			return s.saveSimulation(ctx, sc, result), nil
		}
		result, err := s.simulator.Turn(ctx, history, sc.Simulation)
		if err != nil {
			return nil, err
		}
		return s.saveSimulation(ctx, sc, result), nil
	}

	if containsAny(lower, simulationStartTriggers) {
		result, err := s.simulator.Start(ctx, history)
		if err != nil {
			return nil, err
		}
		return s.saveSimulation(ctx, sc, result), nil
	}

	if s.composer.IsGeneralQuestion(message) && len(history) <= 1 {
		return toChatReply(s.composer.GeneralResponse(sc.Profile), sc.Simulation), nil
	}

	intent := s.classifier.Classify(message)
	passages, err := s.retriever.SelectPassages(ctx, retrieval.SearchInput{
		Query:     intent.CanonicalQuery,
		Framework: intent.Framework,
		Language:  s.defaultLanguage,
	})
	if err != nil {
		// 检索失败降级为零选段，永不中断回答
		logger.Warn(ctx, "retrieval degraded to empty passages", "error", err.Error())
		passages = nil
	}

	reply, err := s.composer.Compose(ctx, message, intent, passages, history, sc.Profile)
	if err != nil {
		return nil, err
	}
	return toChatReply(reply, sc.Simulation), nil
}

// saveSimulation 持久化模拟状态迁移；存储失败记日志但不吞掉回复
func (s *Service) saveSimulation(ctx context.Context, sc *repository.SessionContext, result *simulation.Result) *ChatReply {
	sc.Simulation = result.State
	if err := s.sessions.Save(ctx, sc); err != nil {
		logger.Error(ctx, "failed to save simulation state", err, "session_id", sc.SessionID)
	}
	return &ChatReply{
		Content:       result.Content,
		IsStructured:  result.IsStructured,
		IsSimulation:  result.IsSimulation,
		CharacterName: result.CharacterName,
		Simulation:    result.State,
	}
}

// UpdateProfile 保存企业画像并返回个性化洞察。
// 阶段缺省时按员工数/营收/自述阶段推断。
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, profile *entity.BusinessProfile) (string, error) {
	if profile.Phase == "" {
		profile.Phase = diagnostic.DeterminePhase(profile)
	}

	sc, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	sc.Profile = profile
	if err := s.sessions.Save(ctx, sc); err != nil {
		return "", err
	}
	return diagnostic.PersonalizedInsights(profile), nil
}

// GetProfile 读取会话画像；未设置时返回 nil
func (s *Service) GetProfile(ctx context.Context, sessionID string) (*entity.BusinessProfile, error) {
	sc, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sc.Profile, nil
}

// DeleteSession 清除会话上下文（画像与模拟状态）
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Turns 读取会话最近的审计轮次；审计持久化关闭时返回未找到
func (s *Service) Turns(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationTurn, error) {
	if s.turns == nil {
		return nil, apperrors.ErrNotFound.WithDetail("conversation audit log disabled")
	}
	return s.turns.ListBySession(ctx, sessionID, limit)
}

// persistTurn 尽力而为的审计写入，失败只记日志
func (s *Service) persistTurn(ctx context.Context, sessionID, message string, reply *ChatReply) {
	if !s.persistTurns || s.turns == nil {
		return
	}

	if err := s.turns.Create(ctx, entity.NewConversationTurn(sessionID, entity.RoleUser, message, nil)); err != nil {
		logger.Warn(ctx, "failed to persist user turn", "session_id", sessionID, "error", err.Error())
		return
	}

	meta, _ := json.Marshal(map[string]any{
		"is_structured":  reply.IsStructured,
		"is_simulation":  reply.IsSimulation,
		"character_name": reply.CharacterName,
	})
	if err := s.turns.Create(ctx, entity.NewConversationTurn(sessionID, entity.RoleAssistant, reply.Content, meta)); err != nil {
		logger.Warn(ctx, "failed to persist assistant turn", "session_id", sessionID, "error", err.Error())
	}
}

func toChatReply(reply *Reply, state entity.SimulationState) *ChatReply {
	return &ChatReply{
		Content:      reply.Content,
		Citations:    reply.Citations,
		IsStructured: reply.IsStructured,
		Simulation:   state,
	}
}
