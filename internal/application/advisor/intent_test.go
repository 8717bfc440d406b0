package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"consultor-ai-api/internal/domain/entity"
)

func TestClassifyIntents(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		query  string
		intent entity.Intent
	}{
		{query: "¿Qué es un BHAG?", intent: entity.IntentDefinition},
		{query: "explícame el framework de ejecución", intent: entity.IntentFramework},
		{query: "Dame un checklist para implementar KPIs", intent: entity.IntentChecklist},
		{query: "¿qué métrica debo seguir?", intent: entity.IntentMetric},
		{query: "dame un ejemplo de scorecard", intent: entity.IntentExample},
		{query: "cuéntame un caso real", intent: entity.IntentCase},
		{query: "necesito mejorar mi empresa", intent: entity.IntentHowToApply},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Classify(tt.query)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, "es", got.Language)
		})
	}
}

func TestClassifyFrameworks(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		query     string
		framework entity.Framework
	}{
		{query: "cómo motivar a mi equipo", framework: entity.FrameworkPeople},
		{query: "definir mi estrategia de nicho", framework: entity.FrameworkStrategy},
		{query: "Dame un checklist para implementar KPIs", framework: entity.FrameworkExecution},
		{query: "necesito más dinero en caja", framework: entity.FrameworkCash},
		{query: "¿Qué es un BHAG?", framework: ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Classify(tt.query)
			assert.Equal(t, tt.framework, got.Framework)
		})
	}
}

func TestCanonicalQueryStripsInterrogatives(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("¿Cómo puedo delegar mejor en mi equipo?")
	assert.NotContains(t, got.CanonicalQuery, "cómo")
	assert.NotContains(t, got.CanonicalQuery, "?")
	assert.NotContains(t, got.CanonicalQuery, "¿")
	// 识别出支柱时前置其小写名
	assert.True(t, strings.HasPrefix(got.CanonicalQuery, "people "))
}

func TestCanonicalQueryTruncation(t *testing.T) {
	c := NewClassifier()

	long := strings.Repeat("crecimiento acelerado ", 20)
	got := c.Classify(long)
	assert.LessOrEqual(t, len([]rune(got.CanonicalQuery)), canonicalQueryMaxLen)
}

func TestCanonicalQueryMultiwordPhrase(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("¿por qué pierdo clientes cada mes?")
	assert.NotContains(t, got.CanonicalQuery, "por qué")
	assert.Contains(t, got.CanonicalQuery, "pierdo")
}
