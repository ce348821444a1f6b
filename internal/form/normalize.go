package form

import (
	"encoding/json"
	"strconv"

	"brushquote/internal/domain"
)

// NormalizeValue coerces an inbound raw value (typically freshly decoded
// JSON) into the canonical shape for the field's type before it enters the
// form value map. Multi-valued fields always come out as a non-nil slice —
// a leaf consumer expecting a list never sees nil. Malformed data degrades
// to the type's empty value; normalization never fails.
func NormalizeValue(field domain.FieldConfig, raw any) any {
	switch {
	case field.Type == domain.FieldTypeMatrixSelector:
		return ToMatrixItems(raw)
	case field.Type.MultiValued():
		return toStringSlice(raw)
	case field.Type.ItemList():
		return ToLineItems(raw)
	case field.Type == domain.FieldTypeToggle:
		b, _ := raw.(bool)
		return b
	case field.Type == domain.FieldTypeNumber, field.Type == domain.FieldTypeTaxCalculator:
		return toFloat(raw)
	case field.Type.Supported():
		return toString(raw)
	}
	// Unsupported type: keep the raw value so nothing is silently lost;
	// the view layer renders it as an unsupported placeholder.
	return raw
}

// ToMatrixItems coerces a raw value into a MatrixItem list via a JSON
// round-trip, preserving unknown keys. Anything non-list yields an empty
// list.
func ToMatrixItems(raw any) []domain.MatrixItem {
	switch v := raw.(type) {
	case nil:
		return []domain.MatrixItem{}
	case []domain.MatrixItem:
		return v
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return []domain.MatrixItem{}
	}
	var items []domain.MatrixItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []domain.MatrixItem{}
	}
	return items
}

// ToLineItems coerces a raw value into a LineItem list via a JSON
// round-trip. Anything non-list yields an empty list.
func ToLineItems(raw any) []domain.LineItem {
	switch v := raw.(type) {
	case nil:
		return []domain.LineItem{}
	case []domain.LineItem:
		return v
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return []domain.LineItem{}
	}
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []domain.LineItem{}
	}
	return items
}

func toStringSlice(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func toString(raw any) string {
	s, _ := raw.(string)
	return s
}
