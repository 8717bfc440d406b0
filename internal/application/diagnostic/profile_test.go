package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consultor-ai-api/internal/domain/entity"
)

func TestDeterminePhase(t *testing.T) {
	tests := []struct {
		name    string
		profile *entity.BusinessProfile
		want    entity.BusinessPhase
	}{
		{
			name:    "nil profile",
			profile: nil,
			want:    entity.PhaseStartup,
		},
		{
			name:    "small team low revenue",
			profile: &entity.BusinessProfile{Employees: 5, Revenue: "Menos de $500K MXN"},
			want:    entity.PhaseStartup,
		},
		{
			name:    "scaleup by headcount and revenue",
			profile: &entity.BusinessProfile{Employees: 25, Revenue: "$2M - $10M MXN"},
			want:    entity.PhaseScaleup,
		},
		{
			name:    "growth by headcount and stage",
			profile: &entity.BusinessProfile{Employees: 80, GrowthStage: "Escalando operaciones"},
			want:    entity.PhaseGrowth,
		},
		{
			name:    "mature by headcount alone",
			profile: &entity.BusinessProfile{Employees: 500},
			want:    entity.PhaseMature,
		},
		{
			name:    "mature by revenue",
			profile: &entity.BusinessProfile{Employees: 30, Revenue: "Más de $200M MXN"},
			want:    entity.PhaseMature,
		},
		{
			name:    "stage fallback when size rules miss",
			profile: &entity.BusinessProfile{Employees: 12, Revenue: "Menos de $500K MXN", GrowthStage: "Creciendo consistentemente"},
			want:    entity.PhaseScaleup,
		},
		{
			name:    "default startup",
			profile: &entity.BusinessProfile{Employees: 12},
			want:    entity.PhaseStartup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeterminePhase(tt.profile))
		})
	}
}

func TestCharacteristicsUnknownPhase(t *testing.T) {
	c := Characteristics("desconocida")
	assert.Equal(t, "Startup", c.Name)
}

func TestPersonalizedInsights(t *testing.T) {
	profile := &entity.BusinessProfile{
		Industry:  "Tecnología/Software",
		Employees: 25,
		Revenue:   "$2M - $10M MXN",
	}

	insights := PersonalizedInsights(profile)

	assert.Contains(t, insights, "**Scale-up**")
	assert.Contains(t, insights, "• Escalamiento de ventas")
	assert.Contains(t, insights, "People, Execution")
	assert.Contains(t, insights, "Desafíos típicos")
}
