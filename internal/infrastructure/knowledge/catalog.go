// Package knowledge 提供知识库目录与仓储实现
package knowledge

import "consultor-ai-api/internal/domain/entity"

// builtinCatalog 内置知识目录。与对外发布的目录版本一一对应；
// 新增条目通过外部目录文件覆盖，而不是修改这里。
func builtinCatalog() []entity.KnowledgeChunk {
	return []entity.KnowledgeChunk{
		// People
		{
			DocID:     "people_leadership_001",
			ChunkID:   "chunk_001",
			Title:     "Liderazgo y A-Players",
			Text:      "Los A-players son fundamentales para el crecimiento. Un A-player es alguien que está en el top 10% de su función y que además encaja culturalmente con la organización. La regla es simple: contrata lento, despide rápido. Cuando tienes dudas sobre alguien, ya tienes la respuesta. El costo de mantener a un B-player o C-player es exponencial porque afecta a todo el equipo.",
			TStart:    245,
			TEnd:      312,
			Topics:    []string{"liderazgo", "contratación", "a-players", "cultura"},
			Framework: entity.FrameworkPeople,
			KeyTerms:  []string{"a-players", "contratación", "cultura", "equipo"},
			Language:  "es",
			Embedding: []float64{0.8, 0.6, 0.9, 0.7, 0.5},
		},
		{
			DocID:     "people_delegation_002",
			ChunkID:   "chunk_002",
			Title:     "Delegación vs Abdicación",
			Text:      "Delegar no es abdicar. Cuando delegas, mantienes la responsabilidad final pero das autoridad para ejecutar. Debes establecer expectativas claras, dar contexto suficiente, y crear checkpoints regulares. La delegación efectiva requiere que entrenes a tu gente, no que simplemente les asignes tareas. El objetivo es que puedan tomar decisiones sin ti.",
			TStart:    567,
			TEnd:      634,
			Topics:    []string{"delegación", "liderazgo", "responsabilidad", "autonomía"},
			Framework: entity.FrameworkPeople,
			KeyTerms:  []string{"delegación", "responsabilidad", "autonomía", "entrenamiento"},
			Language:  "es",
			Embedding: []float64{0.7, 0.8, 0.6, 0.9, 0.4},
		},

		// Strategy
		{
			DocID:     "strategy_value_prop_001",
			ChunkID:   "chunk_003",
			Title:     "Propuesta de Valor Única",
			Text:      "Tu propuesta de valor debe ser clara, diferenciada y relevante. No puedes ser todo para todos. Debes elegir un nicho específico y ser el mejor en eso. La pregunta clave es: ¿por qué un cliente te elegiría a ti sobre todas las alternativas, incluyendo no hacer nada? Tu propuesta de valor debe resolver un problema real y urgente para tu cliente ideal.",
			TStart:    123,
			TEnd:      189,
			Topics:    []string{"propuesta de valor", "diferenciación", "nicho", "cliente ideal"},
			Framework: entity.FrameworkStrategy,
			KeyTerms:  []string{"propuesta de valor", "diferenciación", "nicho", "cliente"},
			Language:  "es",
			Embedding: []float64{0.9, 0.7, 0.8, 0.6, 0.7},
		},
		{
			DocID:     "strategy_bhag_002",
			ChunkID:   "chunk_004",
			Title:     "BHAG y Visión",
			Text:      "Un BHAG (Big Hairy Audacious Goal) debe ser específico, medible y inspirador. Debe estar entre 10-30 años en el futuro y ser lo suficientemente grande como para requerir un cambio fundamental en tu organización. No es un objetivo financiero, es una declaración de impacto. Por ejemplo: 'Ser la plataforma #1 de educación online en Latinoamérica para 2035'.",
			TStart:    445,
			TEnd:      512,
			Topics:    []string{"bhag", "visión", "objetivos", "impacto"},
			Framework: entity.FrameworkStrategy,
			KeyTerms:  []string{"bhag", "visión", "objetivos", "impacto"},
			Language:  "es",
			Embedding: []float64{0.8, 0.9, 0.7, 0.8, 0.6},
		},

		// Execution
		{
			DocID:     "execution_l10_001",
			ChunkID:   "chunk_005",
			Title:     "Ritmo de Juntas L10",
			Text:      "Las juntas L10 son reuniones semanales de 90 minutos con una agenda fija: Segue (5 min), Scorecard (5 min), Rock Review (5 min), Customer/Employee Headlines (5 min), To-Do List (5 min), IDS - Identify, Discuss, Solve (60 min), Conclude (5 min). La clave es la disciplina: misma hora, mismo día, misma agenda. Sin excepciones.",
			TStart:    678,
			TEnd:      745,
			Topics:    []string{"l10", "juntas", "agenda", "disciplina"},
			Framework: entity.FrameworkExecution,
			KeyTerms:  []string{"l10", "juntas", "scorecard", "disciplina"},
			Language:  "es",
			Embedding: []float64{0.6, 0.8, 0.9, 0.7, 0.8},
		},
		{
			DocID:     "execution_kpis_002",
			ChunkID:   "chunk_006",
			Title:     "KPIs y Scorecard",
			Text:      "Un buen scorecard tiene 5-15 métricas que se revisan semanalmente. Cada métrica debe tener un owner, un goal, y ser un leading indicator, no lagging. Por ejemplo: número de demos programadas (leading) vs revenue del mes (lagging). Los números deben ser simples: verde si está en goal, rojo si no. Sin amarillos, sin excusas.",
			TStart:    234,
			TEnd:      301,
			Topics:    []string{"kpis", "scorecard", "métricas", "leading indicators"},
			Framework: entity.FrameworkExecution,
			KeyTerms:  []string{"kpis", "scorecard", "métricas", "indicadores"},
			Language:  "es",
			Embedding: []float64{0.7, 0.6, 0.8, 0.9, 0.7},
		},

		// Cash
		{
			DocID:     "cash_flow_001",
			ChunkID:   "chunk_007",
			Title:     "Ciclo de Conversión de Efectivo",
			Text:      "El ciclo de conversión de efectivo es el tiempo que tarda tu dinero en volver a ti. Se calcula como: Días de Inventario + Días de Cobranza - Días de Pago a Proveedores. Mientras más corto, mejor. Puedes mejorarlo cobrando más rápido, pagando más lento (sin dañar relaciones), o reduciendo inventario. Cada día que reduces el ciclo libera cash flow.",
			TStart:    456,
			TEnd:      523,
			Topics:    []string{"cash flow", "ciclo conversión", "cobranza", "inventario"},
			Framework: entity.FrameworkCash,
			KeyTerms:  []string{"cash flow", "ciclo", "cobranza", "inventario"},
			Language:  "es",
			Embedding: []float64{0.8, 0.7, 0.6, 0.8, 0.9},
		},
		{
			DocID:     "cash_pricing_002",
			ChunkID:   "chunk_008",
			Title:     "Estrategia de Pricing",
			Text:      "El pricing no es solo costo + margen. Es una herramienta estratégica. Debes entender el valor que generas para el cliente y capturar una porción justa de ese valor. Si tu producto ahorra $100K al cliente, puedes cobrar $30K y todos ganan. El pricing basado en valor siempre supera al pricing basado en costo. Además, subir precios es más fácil que conseguir más clientes.",
			TStart:    789,
			TEnd:      856,
			Topics:    []string{"pricing", "valor", "estrategia", "margen"},
			Framework: entity.FrameworkCash,
			KeyTerms:  []string{"pricing", "valor", "margen", "estrategia"},
			Language:  "es",
			Embedding: []float64{0.9, 0.8, 0.7, 0.6, 0.8},
		},
	}
}
