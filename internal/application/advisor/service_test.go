package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultor-ai-api/internal/application/retrieval"
	"consultor-ai-api/internal/application/simulation"
	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/internal/domain/repository"
	"consultor-ai-api/internal/infrastructure/knowledge"
	apperrors "consultor-ai-api/pkg/errors"
)

// dualStub 同时实现叙事生成与低温度抽取
type dualStub struct {
	reply      string
	extractRaw string
	err        error
}

func (s *dualStub) Generate(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}

func (s *dualStub) Extract(_ context.Context, _, _ string) (string, error) {
	return s.extractRaw, s.err
}

type memorySessions struct {
	data map[string]*repository.SessionContext
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: make(map[string]*repository.SessionContext)}
}

func (m *memorySessions) Get(_ context.Context, sessionID string) (*repository.SessionContext, error) {
	if sc, ok := m.data[sessionID]; ok {
		clone := *sc
		return &clone, nil
	}
	return &repository.SessionContext{SessionID: sessionID}, nil
}

func (m *memorySessions) Save(_ context.Context, sc *repository.SessionContext) error {
	clone := *sc
	m.data[sc.SessionID] = &clone
	return nil
}

func (m *memorySessions) Delete(_ context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

type memoryTurns struct {
	turns []*entity.ConversationTurn
}

func (m *memoryTurns) Create(_ context.Context, turn *entity.ConversationTurn) error {
	m.turns = append(m.turns, turn)
	return nil
}

func (m *memoryTurns) ListBySession(_ context.Context, sessionID string, limit int) ([]*entity.ConversationTurn, error) {
	var out []*entity.ConversationTurn
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].SessionID != sessionID {
			continue
		}
		out = append(out, m.turns[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func newTestService(llm *dualStub, sessions *memorySessions) *Service {
	return NewService(
		sessions,
		retrieval.NewEngine(knowledge.NewRepository()),
		NewClassifier(),
		NewComposer(llm, testRand(), true),
		simulation.NewEngine(llm),
		nil,
		"es",
		false,
	)
}

func TestProcessQueryValidation(t *testing.T) {
	s := newTestService(&dualStub{reply: "ok"}, newMemorySessions())

	_, err := s.ProcessQuery(context.Background(), ChatInput{SessionID: "s1", Message: "  ab "})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestProcessQueryPipeline(t *testing.T) {
	s := newTestService(&dualStub{reply: "Sube tus precios."}, newMemorySessions())

	reply, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "¿cómo mejoro mi flujo de cash?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sube tus precios.", reply.Content)
	assert.False(t, reply.IsSimulation)
	assert.NotEmpty(t, reply.Citations)
}

func TestProcessQueryGeneralShortCircuit(t *testing.T) {
	llm := &dualStub{reply: "no debería llamarse"}
	s := newTestService(llm, newMemorySessions())

	reply, err := s.ProcessQuery(context.Background(), ChatInput{SessionID: "s1", Message: "hola"})
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Juan Pérez")
}

func TestSimulationStartTrigger(t *testing.T) {
	llm := &dualStub{extractRaw: `{"context": "despido por bajo rendimiento", "characterName": "Ana"}`}
	sessions := newMemorySessions()
	s := newTestService(llm, sessions)

	reply, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "quiero practicar un despido, el personaje se llama Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SimulationTurnBriefing, reply.Simulation.Turn)
	assert.Equal(t, "Ana", reply.Simulation.CharacterName)
	assert.Contains(t, reply.Content, "personalidad")
	assert.True(t, strings.Contains(reply.Content, "?"))

	// 状态已按会话持久化
	saved := sessions.data["s1"]
	require.NotNil(t, saved)
	assert.True(t, saved.Simulation.IsActive)
}

func TestSimulationBriefingThenActive(t *testing.T) {
	llm := &dualStub{reply: "No entiendo por qué me haces esto."}
	sessions := newMemorySessions()
	sessions.data["s1"] = &repository.SessionContext{
		SessionID: "s1",
		Simulation: entity.SimulationState{
			IsActive:      true,
			CharacterName: "Ana",
			Context:       "despido",
			Turn:          entity.SimulationTurnBriefing,
		},
	}
	s := newTestService(llm, sessions)

	reply, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "es conflictiva y está desmotivada",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SimulationTurnActive, reply.Simulation.Turn)
	assert.Contains(t, reply.Content, "Ana")

	// 下一条消息进入角色扮演
	reply, err = s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "Ana, tenemos que hablar de tu desempeño",
	})
	require.NoError(t, err)
	assert.True(t, reply.IsSimulation)
	assert.Equal(t, "Ana", reply.CharacterName)
	assert.Equal(t, "No entiendo por qué me haces esto.", reply.Content)
}

func TestSimulationFeedbackResets(t *testing.T) {
	llm := &dualStub{reply: "Hiciste bien en ser directo."}
	sessions := newMemorySessions()
	sessions.data["s1"] = &repository.SessionContext{
		SessionID: "s1",
		Simulation: entity.SimulationState{
			IsActive:      true,
			CharacterName: "Ana",
			Context:       "despido",
			Turn:          entity.SimulationTurnActive,
		},
	}
	s := newTestService(llm, sessions)

	reply, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "terminar simulación y dame feedback",
	})
	require.NoError(t, err)
	assert.False(t, reply.Simulation.IsActive)
	assert.Contains(t, reply.Content, "Simulación terminada")
	assert.False(t, sessions.data["s1"].Simulation.IsActive)
}

func TestSimulationEndTriggerDuringBriefing(t *testing.T) {
	llm := &dualStub{}
	sessions := newMemorySessions()
	sessions.data["s1"] = &repository.SessionContext{
		SessionID: "s1",
		Simulation: entity.SimulationState{
			IsActive:      true,
			CharacterName: "Ana",
			Context:       "despido",
			Turn:          entity.SimulationTurnBriefing,
		},
	}
	s := newTestService(llm, sessions)

	// briefing 回合不接受结束短语，消息按性格描述处理并进入角色扮演
	reply, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "dame feedback sobre cómo hablarle",
	})
	require.NoError(t, err)
	assert.True(t, reply.Simulation.IsActive)
	assert.Equal(t, entity.SimulationTurnActive, reply.Simulation.Turn)
	assert.NotContains(t, reply.Content, "Simulación terminada")
}

func TestConversationTurnsAudit(t *testing.T) {
	turns := &memoryTurns{}
	s := NewService(
		newMemorySessions(),
		retrieval.NewEngine(knowledge.NewRepository()),
		NewClassifier(),
		NewComposer(&dualStub{reply: "Sube tus precios."}, testRand(), true),
		simulation.NewEngine(&dualStub{reply: "Sube tus precios."}),
		turns,
		"es",
		true,
	)

	_, err := s.ProcessQuery(context.Background(), ChatInput{
		SessionID: "s1",
		Message:   "¿cómo mejoro mi flujo de cash?",
	})
	require.NoError(t, err)

	// 用户与助手各一条，倒序返回
	listed, err := s.Turns(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, entity.RoleAssistant, listed[0].Role)
	assert.Equal(t, entity.RoleUser, listed[1].Role)
	assert.Contains(t, string(listed[0].Metadata), "is_structured")
}

func TestTurnsDisabledReturnsNotFound(t *testing.T) {
	s := newTestService(&dualStub{}, newMemorySessions())

	_, err := s.Turns(context.Background(), "s1", 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdateProfileInfersPhase(t *testing.T) {
	s := newTestService(&dualStub{}, newMemorySessions())

	profile := &entity.BusinessProfile{
		Industry:  "Tecnología/Software",
		Employees: 5,
		Revenue:   "Menos de $500K MXN",
	}
	insights, err := s.UpdateProfile(context.Background(), "s1", profile)
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseStartup, profile.Phase)
	assert.Contains(t, insights, "Startup")

	saved, err := s.GetProfile(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.PhaseStartup, saved.Phase)
}
