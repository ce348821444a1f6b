package form

import (
	"log"

	"brushquote/internal/domain"
)

// UngroupedKey is the bucket key for rows not claimed by any group.
const UngroupedKey = "ungrouped"

// DefaultMatrixConfig returns the built-in fallback configuration used when
// a matrix field's options are missing or malformed: a single room with two
// checkbox attributes. Always renderable.
func DefaultMatrixConfig() domain.MatrixConfig {
	return domain.MatrixConfig{
		Rows: []domain.MatrixRow{
			{ID: "room-1", Label: "Room"},
		},
		Columns: []domain.MatrixColumn{
			{ID: "walls", Label: "Walls", Type: domain.MatrixColumnCheckbox},
			{ID: "ceiling", Label: "Ceiling", Type: domain.MatrixColumnCheckbox},
		},
	}
}

// MatrixConfigFrom resolves a field's polymorphic options into a renderable
// MatrixConfig. Returns the declared config when it carries rows and
// columns; otherwise logs the fallback and returns the default. Never fails.
func MatrixConfigFrom(opts *domain.FieldOptions) domain.MatrixConfig {
	if opts != nil && opts.Matrix.Valid() {
		return *opts.Matrix
	}
	log.Printf("form.MatrixConfigFrom: options missing rows/columns, falling back to default config")
	return DefaultMatrixConfig()
}

// RowBucket is one display section of matrix rows.
type RowBucket struct {
	Key    string
	Label  string
	RowIDs []string
}

// OrganizeRows partitions configured rows into display buckets. With no
// declared groups every row lands in a single ungrouped bucket. Otherwise
// one bucket per declared group (rows in the group's declared order), plus
// a trailing ungrouped bucket only when some rows are claimed by no group.
func OrganizeRows(cfg domain.MatrixConfig) []RowBucket {
	if len(cfg.Groups) == 0 {
		all := make([]string, 0, len(cfg.Rows))
		for _, row := range cfg.Rows {
			all = append(all, row.ID)
		}
		return []RowBucket{{Key: UngroupedKey, RowIDs: all}}
	}

	claimed := make(map[string]bool)
	buckets := make([]RowBucket, 0, len(cfg.Groups)+1)
	for _, g := range cfg.Groups {
		rowIDs := make([]string, len(g.RowIDs))
		copy(rowIDs, g.RowIDs)
		for _, id := range rowIDs {
			claimed[id] = true
		}
		buckets = append(buckets, RowBucket{Key: g.ID, Label: g.Label, RowIDs: rowIDs})
	}

	var leftover []string
	for _, row := range cfg.Rows {
		if !claimed[row.ID] {
			leftover = append(leftover, row.ID)
		}
	}
	if len(leftover) > 0 {
		buckets = append(buckets, RowBucket{Key: UngroupedKey, RowIDs: leftover})
	}
	return buckets
}

// ColumnDefault returns the at-rest value for a column: checkbox false,
// number (incl. the quantity column) 1, text empty string.
func ColumnDefault(col domain.MatrixColumn) any {
	switch col.Type {
	case domain.MatrixColumnCheckbox:
		return false
	case domain.MatrixColumnNumber:
		return float64(1)
	default:
		return ""
	}
}

// NewMatrixItem materializes a fresh, unselected item for a configured row.
func NewMatrixItem(row domain.MatrixRow, cfg domain.MatrixConfig) domain.MatrixItem {
	item := domain.MatrixItem{
		"id":       row.ID,
		"label":    row.Label,
		"selected": false,
	}
	for _, col := range cfg.Columns {
		item[col.ID] = ColumnDefault(col)
	}
	return item
}

// MergeRow merges an externally supplied item over a row's type-correct
// defaults. External keys win, unknown keys are preserved, and an external
// item without an explicit selection flag is treated as already selected
// (rows saved before the flag existed were selections by definition).
func MergeRow(row domain.MatrixRow, cfg domain.MatrixConfig, external domain.MatrixItem) domain.MatrixItem {
	item := NewMatrixItem(row, cfg)
	if external == nil {
		return item
	}
	for k, v := range external {
		item[k] = v
	}
	if !external.HasSelected() {
		item.SetSelected(true)
	}
	item["id"] = row.ID
	return item
}

// InitializeMatrixValue materializes a full row-keyed value table. An empty
// external value yields one default item per configured row; a non-empty
// value is returned unchanged (the selector applies the stricter per-row
// merge on mount).
func InitializeMatrixValue(external []domain.MatrixItem, cfg domain.MatrixConfig) []domain.MatrixItem {
	if len(external) > 0 {
		return external
	}
	items := make([]domain.MatrixItem, 0, len(cfg.Rows))
	for _, row := range cfg.Rows {
		items = append(items, NewMatrixItem(row, cfg))
	}
	return items
}

// RowMapping builds a row-id lookup table. Last write wins on duplicates.
func RowMapping(items []domain.MatrixItem) map[string]domain.MatrixItem {
	mapping := make(map[string]domain.MatrixItem, len(items))
	for _, item := range items {
		if id := item.ID(); id != "" {
			mapping[id] = item
		}
	}
	return mapping
}
