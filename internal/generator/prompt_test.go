package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"brushquote/internal/domain"
	"brushquote/internal/generator"
	"brushquote/internal/port"
)

func TestBuildProposalPrompt_IncludesSchemaAndValues(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"client_name":  "Jordan Alvarez",
			"project_type": "interior",
			"rush_job":     true,
			"sqft":         float64(1850),
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	assert.Contains(t, prompt, `"proposal"`)
	assert.Contains(t, prompt, `"upsells"`)
	assert.Contains(t, prompt, "client_name: Jordan Alvarez")
	assert.Contains(t, prompt, "project_type: interior")
	assert.Contains(t, prompt, "rush_job: yes")
	assert.Contains(t, prompt, "sqft: 1850")
}

func TestBuildProposalPrompt_ValuesSorted(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"zzz_last":  "b",
			"aaa_first": "a",
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	first := strings.Index(prompt, "aaa_first")
	last := strings.Index(prompt, "zzz_last")
	assert.Greater(t, first, 0)
	assert.Greater(t, last, first)
}

func TestBuildProposalPrompt_EmptyValuesSkipped(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"notes":       "",
			"client_name": "Jordan",
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	assert.Contains(t, prompt, "client_name: Jordan")
	assert.NotContains(t, prompt, "notes:")
}

func TestBuildProposalPrompt_MatrixRows(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"rooms": []domain.MatrixItem{
				{"id": "kitchen", "label": "Kitchen", "selected": true, "walls": true, "ceiling": false, "coats": float64(2)},
				{"id": "hall", "label": "Hallway", "selected": true, "walls": true},
			},
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	assert.Contains(t, prompt, "Kitchen (coats 2, walls)")
	assert.Contains(t, prompt, "Hallway (walls)")
}

func TestBuildProposalPrompt_LineItems(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"quote": []domain.LineItem{
				{ID: "li-1", Service: "Interior walls", Price: 1500},
				{ID: "li-2", Description: "Ceiling touch-up", Price: 250.5},
			},
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	assert.Contains(t, prompt, "Interior walls ($1500.00)")
	assert.Contains(t, prompt, "Ceiling touch-up ($250.50)")
}

func TestBuildProposalPrompt_StringSlices(t *testing.T) {
	input := port.GenerateInput{
		Values: map[string]any{
			"surfaces": []string{"walls", "trim", "doors"},
		},
	}

	prompt := generator.BuildProposalPrompt(input)

	assert.Contains(t, prompt, "surfaces: walls, trim, doors")
}
