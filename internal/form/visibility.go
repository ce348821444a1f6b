package form

import (
	"sort"

	"brushquote/internal/domain"
)

// Section is a named, collapsible grouping of fields.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SectionOther is the catch-all bucket for fields outside declared sections.
const SectionOther = "other"

// DefaultSections is the fixed section order of the proposal form.
var DefaultSections = []Section{
	{ID: "client-info", Title: "Client Information"},
	{ID: "project-details", Title: "Project Details"},
	{ID: "surfaces", Title: "Surfaces"},
	{ID: "colors", Title: "Colors"},
	{ID: "additional", Title: "Additional Details"},
	{ID: "options", Title: "Options"},
}

// Visible applies the complexity rule: advanced mode shows everything;
// basic mode shows basic-tier fields plus every required field regardless
// of tier. Fields without a declared tier count as basic.
func Visible(field domain.FieldConfig, mode domain.SessionMode) bool {
	if mode == domain.SessionModeAdvanced {
		return true
	}
	return field.Complexity != domain.ComplexityAdvanced || field.Required
}

// FieldView pairs a field config with its current value for rendering.
type FieldView struct {
	Config      domain.FieldConfig `json:"config"`
	Value       any                `json:"value"`
	Unsupported bool               `json:"unsupported,omitempty"`
}

// SectionView is one rendered form section.
type SectionView struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FieldView `json:"fields"`
}

// PartitionSections filters fields by visibility, orders them by their
// declared order, and groups them under the fixed section list. Fields
// whose section id matches no declared section fall into a trailing
// "other" bucket, rendered only when non-empty. Hiding a field never
// touches its value — mode switching is purely a filter.
func PartitionSections(fields []domain.FieldConfig, values domain.ValueMap, mode domain.SessionMode) []SectionView {
	visible := make([]domain.FieldConfig, 0, len(fields))
	for _, f := range fields {
		if Visible(f, mode) {
			visible = append(visible, f)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Order < visible[j].Order })

	declared := make(map[string]bool, len(DefaultSections))
	bySection := make(map[string][]FieldView)
	for _, s := range DefaultSections {
		declared[s.ID] = true
	}
	for _, f := range visible {
		key := f.SectionID
		if !declared[key] {
			key = SectionOther
		}
		bySection[key] = append(bySection[key], FieldView{
			Config:      f,
			Value:       values[f.ID],
			Unsupported: !f.Type.Supported(),
		})
	}

	out := make([]SectionView, 0, len(DefaultSections)+1)
	for _, s := range DefaultSections {
		if fields := bySection[s.ID]; len(fields) > 0 {
			out = append(out, SectionView{ID: s.ID, Title: s.Title, Fields: fields})
		}
	}
	if fields := bySection[SectionOther]; len(fields) > 0 {
		out = append(out, SectionView{ID: SectionOther, Title: "Other", Fields: fields})
	}
	return out
}
