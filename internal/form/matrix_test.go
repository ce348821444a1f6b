package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brushquote/internal/domain"
)

func roomsConfig() domain.MatrixConfig {
	return domain.MatrixConfig{
		Rows: []domain.MatrixRow{
			{ID: "living-room", Label: "Living Room"},
			{ID: "kitchen", Label: "Kitchen"},
			{ID: "bedroom-1", Label: "Bedroom 1"},
		},
		Columns: []domain.MatrixColumn{
			{ID: "walls", Label: "Walls", Type: domain.MatrixColumnCheckbox},
			{ID: "ceiling", Label: "Ceiling", Type: domain.MatrixColumnCheckbox},
			{ID: "coats", Label: "Coats", Type: domain.MatrixColumnNumber},
			{ID: "notes", Label: "Notes", Type: domain.MatrixColumnText},
		},
		QuantityColumnID: "coats",
	}
}

func TestMatrixConfigFrom_ValidOptions(t *testing.T) {
	cfg := roomsConfig()
	opts := &domain.FieldOptions{Kind: domain.OptionsKindMatrix, Matrix: &cfg}

	got := MatrixConfigFrom(opts)

	assert.Len(t, got.Rows, 3)
	assert.Len(t, got.Columns, 4)
	assert.Equal(t, "coats", got.QuantityColumnID)
}

func TestMatrixConfigFrom_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		opts *domain.FieldOptions
	}{
		{"nil options", nil},
		{"choices options", &domain.FieldOptions{Kind: domain.OptionsKindChoices}},
		{"matrix without rows", &domain.FieldOptions{
			Kind:   domain.OptionsKindMatrix,
			Matrix: &domain.MatrixConfig{Columns: []domain.MatrixColumn{{ID: "walls"}}},
		}},
		{"matrix without columns", &domain.FieldOptions{
			Kind:   domain.OptionsKindMatrix,
			Matrix: &domain.MatrixConfig{Rows: []domain.MatrixRow{{ID: "room-1"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatrixConfigFrom(tt.opts)
			assert.Equal(t, DefaultMatrixConfig(), got)
			assert.True(t, got.Valid())
		})
	}
}

func TestOrganizeRows_NoGroups(t *testing.T) {
	buckets := OrganizeRows(roomsConfig())

	require.Len(t, buckets, 1)
	assert.Equal(t, UngroupedKey, buckets[0].Key)
	assert.Equal(t, []string{"living-room", "kitchen", "bedroom-1"}, buckets[0].RowIDs)
}

func TestOrganizeRows_GroupsWithLeftover(t *testing.T) {
	cfg := roomsConfig()
	cfg.Groups = []domain.MatrixGroup{
		{ID: "common", Label: "Common Areas", RowIDs: []string{"living-room", "kitchen"}},
	}

	buckets := OrganizeRows(cfg)

	require.Len(t, buckets, 2)
	assert.Equal(t, "common", buckets[0].Key)
	assert.Equal(t, []string{"living-room", "kitchen"}, buckets[0].RowIDs)
	assert.Equal(t, UngroupedKey, buckets[1].Key)
	assert.Equal(t, []string{"bedroom-1"}, buckets[1].RowIDs)
}

func TestOrganizeRows_AllRowsClaimed(t *testing.T) {
	cfg := roomsConfig()
	cfg.Groups = []domain.MatrixGroup{
		{ID: "common", Label: "Common Areas", RowIDs: []string{"living-room", "kitchen"}},
		{ID: "private", Label: "Private Rooms", RowIDs: []string{"bedroom-1"}},
	}

	buckets := OrganizeRows(cfg)

	require.Len(t, buckets, 2)
	assert.Equal(t, "common", buckets[0].Key)
	assert.Equal(t, "private", buckets[1].Key)
}

func TestColumnDefault(t *testing.T) {
	assert.Equal(t, false, ColumnDefault(domain.MatrixColumn{Type: domain.MatrixColumnCheckbox}))
	assert.Equal(t, float64(1), ColumnDefault(domain.MatrixColumn{Type: domain.MatrixColumnNumber}))
	assert.Equal(t, "", ColumnDefault(domain.MatrixColumn{Type: domain.MatrixColumnText}))
}

func TestNewMatrixItem(t *testing.T) {
	cfg := roomsConfig()
	item := NewMatrixItem(cfg.Rows[0], cfg)

	assert.Equal(t, "living-room", item.ID())
	assert.Equal(t, "Living Room", item.Label())
	assert.False(t, item.Selected())
	assert.Equal(t, false, item["walls"])
	assert.Equal(t, float64(1), item["coats"])
	assert.Equal(t, "", item["notes"])
}

func TestMergeRow_ExternalWins(t *testing.T) {
	cfg := roomsConfig()
	external := domain.MatrixItem{
		"id":       "living-room",
		"selected": true,
		"walls":    true,
		"coats":    float64(3),
		"custom":   "kept",
	}

	item := MergeRow(cfg.Rows[0], cfg, external)

	assert.True(t, item.Selected())
	assert.Equal(t, true, item["walls"])
	assert.Equal(t, false, item["ceiling"])
	assert.Equal(t, float64(3), item["coats"])
	assert.Equal(t, "kept", item["custom"])
}

func TestMergeRow_MissingSelectionFlagCountsAsSelected(t *testing.T) {
	cfg := roomsConfig()
	external := domain.MatrixItem{"id": "kitchen", "walls": true}

	item := MergeRow(cfg.Rows[1], cfg, external)

	assert.True(t, item.Selected())
}

func TestMergeRow_NilExternalYieldsDefaults(t *testing.T) {
	cfg := roomsConfig()
	item := MergeRow(cfg.Rows[0], cfg, nil)

	assert.False(t, item.Selected())
	assert.Equal(t, float64(1), item["coats"])
}

func TestInitializeMatrixValue(t *testing.T) {
	cfg := roomsConfig()

	items := InitializeMatrixValue(nil, cfg)
	require.Len(t, items, 3)
	assert.Equal(t, "living-room", items[0].ID())
	assert.False(t, items[0].Selected())

	existing := []domain.MatrixItem{{"id": "kitchen", "selected": true}}
	assert.Equal(t, existing, InitializeMatrixValue(existing, cfg))
}

func TestRowMapping(t *testing.T) {
	items := []domain.MatrixItem{
		{"id": "a", "coats": float64(1)},
		{"id": "b"},
		{"label": "no id"},
		{"id": "a", "coats": float64(5)},
	}

	mapping := RowMapping(items)

	require.Len(t, mapping, 2)
	assert.Equal(t, float64(5), mapping["a"].Number("coats"))
	assert.NotNil(t, mapping["b"])
}
