// Package simulation 实现困难对话角色扮演的多轮状态机：
// inactive → briefing → simulation → inactive。
package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/pkg/metrics"
	"consultor-ai-api/pkg/tracer"
)

const (
	defaultCharacterName = "el empleado"
	defaultContext       = "una conversación difícil"
)

// Generator 文本生成能力。Extract 用于低温度的结构化信息抽取。
type Generator interface {
	Generate(ctx context.Context, userPrompt, systemPrompt string) (string, error)
	Extract(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// Result 单次模拟交互的输出
type Result struct {
	Content       string
	IsSimulation  bool
	IsStructured  bool
	CharacterName string
	State         entity.SimulationState
}

// Engine 模拟状态机。状态本身由调用方持有（按会话存储），
// 引擎只做迁移，不保留跨请求状态。
type Engine struct {
	llm Generator
}

// NewEngine 创建模拟引擎
func NewEngine(llm Generator) *Engine {
	return &Engine{llm: llm}
}

type extractedContext struct {
	Context       string `json:"context"`
	CharacterName string `json:"characterName"`
}

// Start 启动模拟（inactive → briefing）。
// 借助一次低温度抽取调用解析主题与角色名；抽取失败退回缺省值而不中断启动。
func (e *Engine) Start(ctx context.Context, history []entity.ChatMessage) (*Result, error) {
	ctx, span := tracer.Start(ctx, "simulation.Start")
	defer span.End()

	lastUserMessage := entity.LastUserMessage(history)

	prompt := fmt.Sprintf(
		`Un usuario quiere iniciar una simulación de conversación. Su petición es: %q. Extrae el tema central (ej: "despido por bajo rendimiento") y el nombre del personaje si lo menciona (ej: "Juan"). Responde en formato JSON {"context": "...", "characterName": "..."}. Si no hay nombre, usa %q.`,
		lastUserMessage, defaultCharacterName,
	)

	extracted := extractedContext{}
	if raw, err := e.llm.Extract(ctx, prompt, "Eres un asistente que extrae datos para una simulación."); err == nil {
		_ = json.Unmarshal([]byte(extractJSONValue(raw)), &extracted)
	}
	if extracted.CharacterName == "" {
		extracted.CharacterName = defaultCharacterName
	}
	if extracted.Context == "" {
		extracted.Context = defaultContext
	}

	state := entity.SimulationState{
		IsActive:      true,
		CharacterName: extracted.CharacterName,
		Context:       extracted.Context,
		Turn:          entity.SimulationTurnBriefing,
	}
	e.recordTransition("inactive", state)

	return &Result{
		Content: fmt.Sprintf(
			"Entendido, vamos a practicar. Para que sea realista, necesito un poco más de contexto. ¿Cómo describirías la personalidad de **%s**? Por ejemplo: ¿es conflictivo, está desmotivado, o no es consciente de su mal desempeño?",
			state.CharacterName,
		),
		State: state,
	}, nil
}

// Turn 推进一轮模拟。briefing 回合收集性格描述并进入 simulation；
// simulation 回合生成角色台词，状态不变。
// 状态缺失/损坏时立即复位并返回致歉文案，绝不向调用方抛错。
func (e *Engine) Turn(ctx context.Context, history []entity.ChatMessage, state entity.SimulationState) (*Result, error) {
	ctx, span := tracer.Start(ctx, "simulation.Turn")
	defer span.End()

	if !state.IsActive || (state.Turn != entity.SimulationTurnBriefing && state.Turn != entity.SimulationTurnActive) {
		e.recordTransition(state.StateName(), entity.InactiveSimulation())
		return &Result{
			Content: "Hubo un error con el contexto de la simulación. Terminemos y empecemos de nuevo.",
			State:   entity.InactiveSimulation(),
		}, nil
	}

	if state.Turn == entity.SimulationTurnBriefing {
		next := state
		next.Context = fmt.Sprintf("%s. Personalidad del personaje: %s", state.Context, entity.LastUserMessage(history))
		next.Turn = entity.SimulationTurnActive
		e.recordTransition(state.StateName(), next)
		return &Result{
			Content: fmt.Sprintf("Perfecto. Estoy listo. Cuando quieras, empieza la conversación. Yo seré **%s**.", next.CharacterName),
			State:   next,
		}, nil
	}

	prompt := fmt.Sprintf(
		"Estás en una simulación de role-play.\n- **Tu personaje:** %s.\n- **Tu contexto/personalidad:** %s.\n- **La conversación hasta ahora:**\n%s\n\nGenera la siguiente respuesta de **%s** de forma realista y coherente.",
		state.CharacterName, state.Context, renderTranscript(history), state.CharacterName,
	)

	line, err := e.llm.Generate(ctx, prompt, "Actúa como el personaje descrito.")
	if err != nil {
		line = fmt.Sprintf("(%s guarda silencio un momento.) Perdona, ¿puedes repetir eso?", state.CharacterName)
	}

	return &Result{
		Content:       line,
		IsSimulation:  true,
		CharacterName: state.CharacterName,
		State:         state,
	}, nil
}

// Feedback 结束模拟（simulation → inactive）：以顾问人设给出 2-3 点反馈并复位
func (e *Engine) Feedback(ctx context.Context, history []entity.ChatMessage, state entity.SimulationState, personaPrompt string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "simulation.Feedback")
	defer span.End()

	prompt := fmt.Sprintf(
		"La siguiente es una transcripción de una simulación de conversación difícil. El objetivo del usuario era manejar la situación sobre %q.\n\nTranscripción:\n%s\n\nActúa como el consultor Juan Pérez y dale al usuario un feedback constructivo en 2-3 puntos clave. Basa tu feedback en principios de liderazgo y comunicación efectiva. ¿Qué hizo bien? ¿Qué podría mejorar?",
		state.Context, renderTranscript(history),
	)

	feedback, err := e.llm.Generate(ctx, prompt, personaPrompt)
	if err != nil {
		feedback = "Mantuviste la conversación en marcha, y eso ya es mérito. Para la próxima: prepara el mensaje central por adelantado, sé directo sin perder empatía, y cierra siempre con acuerdos concretos. ¿Qué fue lo que más trabajo te costó?"
	}

	e.recordTransition(state.StateName(), entity.InactiveSimulation())
	return &Result{
		Content:      fmt.Sprintf("**Simulación terminada. Aquí tienes mi feedback:**\n\n%s", feedback),
		IsStructured: true,
		State:        entity.InactiveSimulation(),
	}, nil
}

// recordTransition 记录状态迁移指标并维护活跃模拟计数
func (e *Engine) recordTransition(from string, to entity.SimulationState) {
	metrics.SimulationTransitions.WithLabelValues(from, to.StateName()).Inc()
	if from == "inactive" && to.IsActive {
		metrics.ActiveSimulations.Inc()
	}
	if from != "inactive" && !to.IsActive {
		metrics.ActiveSimulations.Dec()
	}
}

// renderTranscript 回放用户与角色的台词（过滤顾问的普通回答）
func renderTranscript(history []entity.ChatMessage) string {
	var lines []string
	for _, m := range history {
		if m.Role == entity.RoleUser || m.IsSimulation {
			lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
		}
	}
	return strings.Join(lines, "\n")
}

// extractJSONValue 从模型输出中截取第一个完整 JSON 值。
// 模型可能在 JSON 前后夹杂多余文本，这里做容错截取。
func extractJSONValue(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start, end := -1, -1
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		start = objStart
		end = strings.LastIndex(raw, "}")
	case arrStart >= 0:
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err == nil {
		if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
			return raw
		}
	}

	dec = json.NewDecoder(strings.NewReader(raw))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return strings.TrimSpace(s)
		}
	}
	return raw
}
