package form

import (
	"sync"
	"time"

	"brushquote/internal/domain"
)

// DefaultDebounce is the window within which rapid matrix edits coalesce
// into a single propagation to the owning form.
const DefaultDebounce = 100 * time.Millisecond

// TriState is the aggregate selection state of a row group.
type TriState string

const (
	GroupChecked       TriState = "checked"
	GroupUnchecked     TriState = "unchecked"
	GroupIndeterminate TriState = "indeterminate"
)

// Selector is the matrix-selector state machine. It owns a full row-keyed
// value table (selected rows and not), applies row/group selection and
// per-cell edits, and propagates only the selected subset to its onChange
// callback, debounced so stepper double-clicks coalesce into one update.
//
// The external value seeds state once at construction; afterwards the
// internal table is authoritative and the emission channel is one-way.
type Selector struct {
	mu       sync.Mutex
	cfg      domain.MatrixConfig
	items    map[string]domain.MatrixItem
	order    []string
	buckets  []RowBucket
	expanded map[string]bool
	onChange func([]domain.MatrixItem)
	debounce time.Duration
	timer    *time.Timer
	closed   bool
}

// NewSelector builds a Selector for cfg, merging any externally supplied
// prior value over per-row defaults (external wins; a pre-existing row
// without a selection flag counts as selected). Groups containing an
// initially selected row start expanded; if none do, the first bucket
// does, so the view is never fully collapsed.
func NewSelector(cfg domain.MatrixConfig, external []domain.MatrixItem, debounce time.Duration, onChange func([]domain.MatrixItem)) *Selector {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	byID := RowMapping(external)
	items := make(map[string]domain.MatrixItem, len(cfg.Rows))
	order := make([]string, 0, len(cfg.Rows))
	for _, row := range cfg.Rows {
		items[row.ID] = MergeRow(row, cfg, byID[row.ID])
		order = append(order, row.ID)
	}

	buckets := OrganizeRows(cfg)
	expanded := make(map[string]bool, len(buckets))
	anyExpanded := false
	for _, b := range buckets {
		for _, id := range b.RowIDs {
			if item, ok := items[id]; ok && item.Selected() {
				expanded[b.Key] = true
				anyExpanded = true
				break
			}
		}
	}
	if !anyExpanded && len(buckets) > 0 {
		expanded[buckets[0].Key] = true
	}

	return &Selector{
		cfg:      cfg,
		items:    items,
		order:    order,
		buckets:  buckets,
		expanded: expanded,
		onChange: onChange,
		debounce: debounce,
	}
}

// Config returns the selector's resolved matrix configuration.
func (s *Selector) Config() domain.MatrixConfig {
	return s.cfg
}

// HandleRowSelection sets a row's selection flag. Checkbox columns follow
// the flag (selecting a room defaults its checkbox attributes on,
// deselecting clears them); number and text columns keep their edits so a
// reselected row comes back as the user left it.
func (s *Selector) HandleRowSelection(rowID string, selected bool) {
	s.mu.Lock()
	s.applyRowSelection(rowID, selected)
	s.scheduleEmitLocked()
	s.mu.Unlock()
}

func (s *Selector) applyRowSelection(rowID string, selected bool) {
	item, ok := s.items[rowID]
	if !ok {
		return
	}
	item.SetSelected(selected)
	for _, col := range s.cfg.Columns {
		if col.Type == domain.MatrixColumnCheckbox {
			item[col.ID] = selected
		}
	}
}

// HandleValueChange sets exactly one column value on one row.
func (s *Selector) HandleValueChange(rowID, columnID string, value any) {
	s.mu.Lock()
	if item, ok := s.items[rowID]; ok {
		item[columnID] = value
		s.scheduleEmitLocked()
	}
	s.mu.Unlock()
}

// HandleQuantityChange adjusts the designated quantity column by delta,
// clamped to a floor of 1. No-op when no quantity column is declared.
func (s *Selector) HandleQuantityChange(rowID string, delta float64) {
	if s.cfg.QuantityColumnID == "" {
		return
	}
	s.mu.Lock()
	if item, ok := s.items[rowID]; ok {
		qty := item.Number(s.cfg.QuantityColumnID) + delta
		if qty < 1 {
			qty = 1
		}
		item[s.cfg.QuantityColumnID] = qty
		s.scheduleEmitLocked()
	}
	s.mu.Unlock()
}

// HandleGroupSelection applies row selection to every row in the bucket in
// one batch.
func (s *Selector) HandleGroupSelection(groupKey string, selected bool) {
	s.mu.Lock()
	for _, b := range s.buckets {
		if b.Key != groupKey {
			continue
		}
		for _, id := range b.RowIDs {
			s.applyRowSelection(id, selected)
		}
		s.scheduleEmitLocked()
		break
	}
	s.mu.Unlock()
}

// GroupState returns the tri-state of a bucket's select-all control:
// checked when every row is selected, unchecked when none is, otherwise
// indeterminate.
func (s *Selector) GroupState(groupKey string) TriState {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buckets {
		if b.Key != groupKey {
			continue
		}
		selected := 0
		for _, id := range b.RowIDs {
			if item, ok := s.items[id]; ok && item.Selected() {
				selected++
			}
		}
		switch {
		case selected == 0:
			return GroupUnchecked
		case selected == len(b.RowIDs):
			return GroupChecked
		default:
			return GroupIndeterminate
		}
	}
	return GroupUnchecked
}

// ToggleGroup expands or collapses a bucket.
func (s *Selector) ToggleGroup(groupKey string, expand bool) {
	s.mu.Lock()
	s.expanded[groupKey] = expand
	s.mu.Unlock()
}

// IsExpanded reports whether a bucket is currently expanded.
func (s *Selector) IsExpanded(groupKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[groupKey]
}

// MatrixGroupView is one rendered bucket of the matrix view.
type MatrixGroupView struct {
	Key      string              `json:"key"`
	Label    string              `json:"label"`
	Expanded bool                `json:"expanded"`
	State    TriState            `json:"state"`
	Rows     []domain.MatrixItem `json:"rows"`
}

// MatrixView is the rendering contract for the matrix selector: grouped
// rows with expansion and tri-state, plus the stepper column if declared.
type MatrixView struct {
	Groups           []MatrixGroupView     `json:"groups"`
	Columns          []domain.MatrixColumn `json:"columns"`
	QuantityColumnID string                `json:"quantity_column_id,omitempty"`
}

// View snapshots the full selector state for rendering. All configured
// rows appear, selected or not.
func (s *Selector) View() MatrixView {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]MatrixGroupView, 0, len(s.buckets))
	for _, b := range s.buckets {
		rows := make([]domain.MatrixItem, 0, len(b.RowIDs))
		selected := 0
		for _, id := range b.RowIDs {
			item, ok := s.items[id]
			if !ok {
				continue
			}
			if item.Selected() {
				selected++
			}
			rows = append(rows, item.Clone())
		}
		state := GroupIndeterminate
		switch {
		case selected == 0:
			state = GroupUnchecked
		case selected == len(rows):
			state = GroupChecked
		}
		groups = append(groups, MatrixGroupView{
			Key:      b.Key,
			Label:    b.Label,
			Expanded: s.expanded[b.Key],
			State:    state,
			Rows:     rows,
		})
	}
	return MatrixView{
		Groups:           groups,
		Columns:          s.cfg.Columns,
		QuantityColumnID: s.cfg.QuantityColumnID,
	}
}

// SelectedItems returns clones of the selected rows in configured order —
// the only shape ever propagated to the owning form.
func (s *Selector) SelectedItems() []domain.MatrixItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedItemsLocked()
}

func (s *Selector) selectedItemsLocked() []domain.MatrixItem {
	out := make([]domain.MatrixItem, 0, len(s.order))
	for _, id := range s.order {
		if item, ok := s.items[id]; ok && item.Selected() {
			out = append(out, item.Clone())
		}
	}
	return out
}

// scheduleEmitLocked restarts the debounce timer. Intermediate states
// inside the window are dropped; each emission is a complete snapshot.
func (s *Selector) scheduleEmitLocked() {
	if s.closed || s.onChange == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.emit)
}

func (s *Selector) emit() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	snapshot := s.selectedItemsLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

// Flush commits any pending debounce immediately. Used at submission so
// the form sees the final state before validating.
func (s *Selector) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.emit()
}

// Close cancels any pending timer without emitting. Must be called on
// teardown so an unmounted selector never fires a late update.
func (s *Selector) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}
