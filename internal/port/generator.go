package port

import (
	"context"
	"encoding/json"

	"brushquote/internal/domain"
)

// GenerateInput carries the submitted form data for proposal generation.
// Values are keyed by each field's template-variable name, not its id.
type GenerateInput struct {
	Values map[string]any
	Fields []domain.FieldConfig
}

// GenerateOutput contains the structured result from an LLM generator.
type GenerateOutput struct {
	Content    json.RawMessage
	ModelUsed  string
	PromptUsed string
}

// ProposalGenerator abstracts LLM-based proposal drafting.
type ProposalGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}
