// Package diagnostic 根据企业画像推断所处阶段并生成个性化洞察
package diagnostic

import (
	"fmt"
	"strings"

	"consultor-ai-api/internal/domain/entity"
)

// PhaseCharacteristics 阶段画像：用于个性化洞察文案
type PhaseCharacteristics struct {
	Name             string
	Description      string
	KeyFocus         []string
	CommonChallenges []string
	Frameworks       []entity.Framework
	Metrics          []string
}

var phaseCharacteristics = map[entity.BusinessPhase]PhaseCharacteristics{
	entity.PhaseStartup: {
		Name:             "Startup",
		Description:      "Validando producto-mercado, buscando tracción inicial",
		KeyFocus:         []string{"Validación de mercado", "Producto mínimo viable", "Primeros clientes"},
		CommonChallenges: []string{"Encontrar product-market fit", "Generar ingresos consistentes", "Construir equipo inicial"},
		Frameworks:       []entity.Framework{entity.FrameworkStrategy, entity.FrameworkCash},
		Metrics:          []string{"Customer acquisition", "Product-market fit", "Burn rate"},
	},
	entity.PhaseScaleup: {
		Name:             "Scale-up",
		Description:      "Crecimiento acelerado, escalando operaciones",
		KeyFocus:         []string{"Escalamiento de ventas", "Construcción de equipo", "Sistemas y procesos"},
		CommonChallenges: []string{"Escalar el equipo rápidamente", "Mantener la cultura", "Optimizar procesos"},
		Frameworks:       []entity.Framework{entity.FrameworkPeople, entity.FrameworkExecution},
		Metrics:          []string{"Revenue growth", "Team scaling", "Process efficiency"},
	},
	entity.PhaseGrowth: {
		Name:             "Growth",
		Description:      "Expansión sostenida, optimización de operaciones",
		KeyFocus:         []string{"Expansión de mercado", "Optimización operacional", "Liderazgo distribuido"},
		CommonChallenges: []string{"Mantener crecimiento", "Desarrollar líderes", "Eficiencia operacional"},
		Frameworks:       []entity.Framework{entity.FrameworkStrategy, entity.FrameworkExecution, entity.FrameworkPeople},
		Metrics:          []string{"Market expansion", "Operational efficiency", "Leadership development"},
	},
	entity.PhaseMature: {
		Name:             "Mature",
		Description:      "Empresa establecida, enfoque en innovación y optimización",
		KeyFocus:         []string{"Innovación continua", "Optimización de márgenes", "Desarrollo de talento"},
		CommonChallenges: []string{"Mantener innovación", "Optimizar rentabilidad", "Sucesión de liderazgo"},
		Frameworks:       []entity.Framework{entity.FrameworkStrategy, entity.FrameworkPeople, entity.FrameworkCash},
		Metrics:          []string{"Innovation metrics", "Profitability", "Talent development"},
	},
}

// DeterminePhase 按员工数、营收区间与自述阶段推断企业阶段。
// 规则自上而下首个命中生效，全部未命中时缺省 startup。
func DeterminePhase(profile *entity.BusinessProfile) entity.BusinessPhase {
	if profile == nil {
		return entity.PhaseStartup
	}
	employees := profile.Employees
	revenue := profile.Revenue
	stage := profile.GrowthStage

	switch {
	case employees < 10 && (strings.Contains(revenue, "Menos de $500K") || strings.Contains(revenue, "$500K - $2M")):
		return entity.PhaseStartup
	case employees >= 10 && employees < 50 && (strings.Contains(revenue, "$2M - $10M") || strings.Contains(revenue, "$10M - $50M")):
		return entity.PhaseScaleup
	case employees >= 50 && employees < 200 && (strings.Contains(revenue, "$50M - $200M") || strings.Contains(stage, "Escalando")):
		return entity.PhaseGrowth
	case employees >= 200 || strings.Contains(revenue, "Más de $200M") || strings.Contains(stage, "Optimizando"):
		return entity.PhaseMature
	}

	switch {
	case strings.Contains(stage, "Validando"):
		return entity.PhaseStartup
	case strings.Contains(stage, "Creciendo"):
		return entity.PhaseScaleup
	case strings.Contains(stage, "Escalando"):
		return entity.PhaseGrowth
	case strings.Contains(stage, "Optimizando"):
		return entity.PhaseMature
	}
	return entity.PhaseStartup
}

// Characteristics 返回阶段画像；未知阶段按 startup 处理
func Characteristics(phase entity.BusinessPhase) PhaseCharacteristics {
	if c, ok := phaseCharacteristics[phase]; ok {
		return c
	}
	return phaseCharacteristics[entity.PhaseStartup]
}

// PersonalizedInsights 生成画像确认后的个性化洞察文案
func PersonalizedInsights(profile *entity.BusinessProfile) string {
	phase := profile.Phase
	if phase == "" {
		phase = DeterminePhase(profile)
	}
	c := Characteristics(phase)

	frameworks := make([]string, 0, len(c.Frameworks))
	for _, fw := range c.Frameworks {
		frameworks = append(frameworks, string(fw))
	}

	return strings.TrimSpace(fmt.Sprintf(`
Basado en tu perfil empresarial, identifico que tu empresa está en la fase de **%s**.

**Características de tu fase actual:**
%s

**Áreas de enfoque prioritarias:**
%s

**Desafíos típicos en esta fase:**
%s

**Frameworks más relevantes para ti:**
%s

Ahora que entiendo mejor tu contexto, puedo darte consejos más específicos y relevantes para tu situación actual.
`,
		c.Name,
		c.Description,
		bulleted(c.KeyFocus),
		bulleted(c.CommonChallenges),
		strings.Join(frameworks, ", "),
	))
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}
