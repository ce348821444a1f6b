package domain

import (
	"encoding/json"
	"fmt"
)

// FieldType identifies the editor component a field renders as.
type FieldType string

const (
	FieldTypeText           FieldType = "text"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeSelect         FieldType = "select"
	FieldTypeNumber         FieldType = "number"
	FieldTypeToggle         FieldType = "toggle"
	FieldTypeDate           FieldType = "date"
	FieldTypeCheckboxGroup  FieldType = "checkbox-group"
	FieldTypeMultiSelect    FieldType = "multi-select"
	FieldTypeFileUpload     FieldType = "file-upload"
	FieldTypeQuoteTable     FieldType = "quote-table"
	FieldTypeUpsellTable    FieldType = "upsell-table"
	FieldTypeTaxCalculator  FieldType = "tax-calculator"
	FieldTypeMatrixSelector FieldType = "matrix-selector"
	FieldTypeScopeOfWork    FieldType = "scope-of-work"
)

// supportedFieldTypes is the closed set of renderable field types.
var supportedFieldTypes = map[FieldType]bool{
	FieldTypeText:           true,
	FieldTypeTextarea:       true,
	FieldTypeSelect:         true,
	FieldTypeNumber:         true,
	FieldTypeToggle:         true,
	FieldTypeDate:           true,
	FieldTypeCheckboxGroup:  true,
	FieldTypeMultiSelect:    true,
	FieldTypeFileUpload:     true,
	FieldTypeQuoteTable:     true,
	FieldTypeUpsellTable:    true,
	FieldTypeTaxCalculator:  true,
	FieldTypeMatrixSelector: true,
	FieldTypeScopeOfWork:    true,
}

// Supported reports whether a renderer exists for the field type.
// Unsupported types degrade to a visible placeholder instead of an error.
func (t FieldType) Supported() bool {
	return supportedFieldTypes[t]
}

// MultiValued reports whether the field's value is a string list.
func (t FieldType) MultiValued() bool {
	switch t {
	case FieldTypeCheckboxGroup, FieldTypeMultiSelect, FieldTypeFileUpload:
		return true
	}
	return false
}

// ItemList reports whether the field's value is a structured line-item list.
func (t FieldType) ItemList() bool {
	switch t {
	case FieldTypeQuoteTable, FieldTypeUpsellTable, FieldTypeScopeOfWork:
		return true
	}
	return false
}

// Complexity gates field visibility in the streamlined (basic) view.
type Complexity string

const (
	ComplexityBasic    Complexity = "basic"
	ComplexityAdvanced Complexity = "advanced"
)

// OptionItem is one entry of a choice field's option list.
type OptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MatrixColumnType declares the value type of a matrix column.
type MatrixColumnType string

const (
	MatrixColumnCheckbox MatrixColumnType = "checkbox"
	MatrixColumnNumber   MatrixColumnType = "number"
	MatrixColumnText     MatrixColumnType = "text"
)

// MatrixRow is one selectable row of a matrix field, e.g. a room.
type MatrixRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MatrixColumn is one per-row attribute of a matrix field.
type MatrixColumn struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Type    MatrixColumnType `json:"type"`
	Tooltip string           `json:"tooltip,omitempty"`
}

// MatrixGroup partitions rows into a titled display section.
type MatrixGroup struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	RowIDs []string `json:"row_ids"`
}

// MatrixConfig configures a matrix-selector field: ordered rows and
// columns, optional display groups, and an optional quantity column
// rendered as a stepper and defaulted to 1.
type MatrixConfig struct {
	Rows             []MatrixRow    `json:"rows"`
	Columns          []MatrixColumn `json:"columns"`
	Groups           []MatrixGroup  `json:"groups,omitempty"`
	QuantityColumnID string         `json:"quantity_column_id,omitempty"`
}

// Valid reports whether the config declares at least one row and column.
func (c *MatrixConfig) Valid() bool {
	return c != nil && len(c.Rows) > 0 && len(c.Columns) > 0
}

// Column returns the column with the given id, or nil.
func (c *MatrixConfig) Column(id string) *MatrixColumn {
	for i := range c.Columns {
		if c.Columns[i].ID == id {
			return &c.Columns[i]
		}
	}
	return nil
}

// FieldOptions kinds.
const (
	OptionsKindChoices = "options"
	OptionsKindMatrix  = "matrix-config"
)

// FieldOptions is the polymorphic options payload of a FieldConfig:
// either an ordered choice list or a MatrixConfig, discriminated by Kind.
// Exactly one interpretation is valid per field type.
type FieldOptions struct {
	Kind    string
	Choices []OptionItem
	Matrix  *MatrixConfig
}

// legacyMatrixProbe detects untagged legacy matrix payloads by structure.
type legacyMatrixProbe struct {
	Type    string          `json:"type"`
	Rows    json.RawMessage `json:"rows"`
	Columns json.RawMessage `json:"columns"`
}

// UnmarshalJSON accepts the tagged form, a bare choice array, an untagged
// legacy matrix object, or a JSON-encoded string wrapping any of those.
// Structural probing happens only here, at the deserialization boundary;
// unrecognized payloads leave the union empty rather than erroring.
func (o *FieldOptions) UnmarshalJSON(data []byte) error {
	*o = FieldOptions{}

	switch firstNonSpace(data) {
	case '[':
		var choices []OptionItem
		if err := json.Unmarshal(data, &choices); err != nil {
			return fmt.Errorf("FieldOptions: parsing choice list: %w", err)
		}
		o.Kind = OptionsKindChoices
		o.Choices = choices
		return nil

	case '"':
		// Template builders sometimes double-encode options as a JSON string.
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("FieldOptions: unquoting options string: %w", err)
		}
		return o.UnmarshalJSON([]byte(inner))

	case '{':
		var tagged struct {
			Kind    string          `json:"kind"`
			Choices []OptionItem    `json:"choices"`
			Matrix  json.RawMessage `json:"matrix"`
		}
		if err := json.Unmarshal(data, &tagged); err == nil && tagged.Kind != "" {
			switch tagged.Kind {
			case OptionsKindChoices:
				o.Kind = OptionsKindChoices
				o.Choices = tagged.Choices
				return nil
			case OptionsKindMatrix:
				var cfg MatrixConfig
				if len(tagged.Matrix) > 0 {
					if err := json.Unmarshal(tagged.Matrix, &cfg); err != nil {
						return fmt.Errorf("FieldOptions: parsing matrix config: %w", err)
					}
				}
				o.Kind = OptionsKindMatrix
				o.Matrix = &cfg
				return nil
			}
		}

		var probe legacyMatrixProbe
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil
		}
		if probe.Type == OptionsKindMatrix || (len(probe.Rows) > 0 && len(probe.Columns) > 0) {
			var cfg MatrixConfig
			if err := json.Unmarshal(data, &cfg); err != nil {
				return nil
			}
			o.Kind = OptionsKindMatrix
			o.Matrix = &cfg
		}
		return nil
	}
	return nil
}

// MarshalJSON always emits the tagged form.
func (o FieldOptions) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OptionsKindChoices:
		return json.Marshal(struct {
			Kind    string       `json:"kind"`
			Choices []OptionItem `json:"choices"`
		}{o.Kind, o.Choices})
	case OptionsKindMatrix:
		return json.Marshal(struct {
			Kind   string        `json:"kind"`
			Matrix *MatrixConfig `json:"matrix"`
		}{o.Kind, o.Matrix})
	}
	return []byte("null"), nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// FieldConfig declares one configurable form input.
type FieldConfig struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Label       string        `json:"label"`
	HelpText    string        `json:"help_text,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Type        FieldType     `json:"type"`
	Required    bool          `json:"required"`
	Complexity  Complexity    `json:"complexity,omitempty"`
	SectionID   string        `json:"section_id,omitempty"`
	Options     *FieldOptions `json:"options,omitempty"`
	Order       int           `json:"order"`
}

// DisplayLabel returns the label shown to users, falling back to name and id.
func (f *FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// TemplateName returns the variable name used when interpolating the
// field's value into generated text. Falls back to the id.
func (f *FieldConfig) TemplateName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// ParseFieldConfigs decodes a persisted FieldConfig list.
func ParseFieldConfigs(raw json.RawMessage) ([]FieldConfig, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var fields []FieldConfig
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parsing field configs: %w", err)
	}
	return fields, nil
}

// MatrixItem is one row's live value. Besides the fixed keys ("id",
// "label", "selected") it carries one entry per column id, typed per that
// column's declared type. Unknown keys supplied by external data are
// preserved through merges.
type MatrixItem map[string]any

// ID returns the item's row id.
func (m MatrixItem) ID() string {
	s, _ := m["id"].(string)
	return s
}

// Label returns the display label denormalized from config, if present.
func (m MatrixItem) Label() string {
	s, _ := m["label"].(string)
	return s
}

// Selected reports whether the row is selected. A missing key is false.
func (m MatrixItem) Selected() bool {
	b, _ := m["selected"].(bool)
	return b
}

// HasSelected reports whether the item carries an explicit selection flag.
func (m MatrixItem) HasSelected() bool {
	_, ok := m["selected"]
	return ok
}

// SetSelected sets the selection flag.
func (m MatrixItem) SetSelected(selected bool) {
	m["selected"] = selected
}

// Number returns a numeric column value, coercing JSON's float64 decoding.
func (m MatrixItem) Number(columnID string) float64 {
	switch v := m[columnID].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns a checkbox column value.
func (m MatrixItem) Bool(columnID string) bool {
	b, _ := m[columnID].(bool)
	return b
}

// Text returns a text column value.
func (m MatrixItem) Text(columnID string) string {
	s, _ := m[columnID].(string)
	return s
}

// Clone returns a shallow copy of the item.
func (m MatrixItem) Clone() MatrixItem {
	out := make(MatrixItem, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// LineItem is one priced row of a quote-table, upsell-table, or
// scope-of-work field.
type LineItem struct {
	ID          string  `json:"id"`
	Service     string  `json:"service,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Price       float64 `json:"price"`
	Selected    *bool   `json:"selected,omitempty"`
}

// DisplayName returns the service name, falling back to the description.
func (li *LineItem) DisplayName() string {
	if li.Service != "" {
		return li.Service
	}
	return li.Description
}

// ValueMap is the flat form value map keyed by field id.
type ValueMap map[string]any
