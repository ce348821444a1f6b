package form

import (
	"reflect"

	"brushquote/internal/domain"
)

// MissingRequired returns the display labels of every required field whose
// current value is empty, in field order. Array-valued fields are missing
// when the list is empty; scalar fields follow the falsy check the
// product has always used (empty string, false, numeric zero all count as
// missing — including a number field legitimately set to 0).
func MissingRequired(fields []domain.FieldConfig, values domain.ValueMap) []string {
	var missing []string
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if valueMissing(values[f.ID]) {
			missing = append(missing, f.DisplayLabel())
		}
	}
	return missing
}

// ValidateSubmission blocks submission when any required field is missing,
// reporting all of them in a single error. Nil means the form may submit.
func ValidateSubmission(fields []domain.FieldConfig, values domain.ValueMap) error {
	if missing := MissingRequired(fields, values); len(missing) > 0 {
		return &domain.MissingFieldsError{Labels: missing}
	}
	return nil
}

func valueMissing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case int:
		return val == 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
		return rv.Len() == 0
	}
	return false
}
