package generator

import (
	"fmt"
	"sort"
	"strings"

	"brushquote/internal/domain"
	"brushquote/internal/port"
)

// BuildProposalPrompt renders the submitted form data into the drafting
// prompt. Values are keyed by each field's template-variable name so the
// model sees the same vocabulary the proposal templates use.
func BuildProposalPrompt(input port.GenerateInput) string {
	var b strings.Builder
	b.WriteString(`You are a proposal writer for a professional painting contractor. Using the project details below, draft a complete, client-ready painting proposal.

IMPORTANT INSTRUCTIONS:
- Write in a confident, professional tone addressed to the client by name where available.
- The scope of work must cover every room and surface listed; do not skip, merge, or invent rooms.
- Suggest at most three upsells, each grounded in the project details (e.g. ceilings in rooms where only walls were requested).
- Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object.

The JSON object must follow this schema:
{
  "proposal": {
    "introduction": "",
    "scope_of_work": "",
    "materials_and_preparation": "",
    "timeline": "",
    "closing": ""
  },
  "upsells": [
    {"title": "", "description": "", "estimated_price": 0}
  ]
}

PROJECT DETAILS:
`)

	names := make([]string, 0, len(input.Values))
	for name := range input.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rendered := renderValue(input.Values[name])
		if rendered == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", name, rendered)
	}
	return b.String()
}

// renderValue flattens a form value into prompt text. Matrix rows become a
// per-room attribute summary; line items keep their prices.
func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", val), "0"), ".")
	case []string:
		return strings.Join(val, ", ")
	case []domain.MatrixItem:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, renderMatrixItem(item))
		}
		return strings.Join(parts, "; ")
	case []domain.LineItem:
		parts := make([]string, 0, len(val))
		for i := range val {
			li := &val[i]
			parts = append(parts, fmt.Sprintf("%s ($%.2f)", li.DisplayName(), li.Price))
		}
		return strings.Join(parts, "; ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			if s := renderValue(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		return renderMatrixItem(domain.MatrixItem(val))
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func renderMatrixItem(item domain.MatrixItem) string {
	label := item.Label()
	if label == "" {
		label = item.ID()
	}
	var attrs []string
	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "id", "label", "selected":
			continue
		}
		switch v := item[k].(type) {
		case bool:
			if v {
				attrs = append(attrs, k)
			}
		case float64:
			attrs = append(attrs, fmt.Sprintf("%s %g", k, v))
		case string:
			if v != "" {
				attrs = append(attrs, fmt.Sprintf("%s %s", k, v))
			}
		}
	}
	if len(attrs) == 0 {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, strings.Join(attrs, ", "))
}
