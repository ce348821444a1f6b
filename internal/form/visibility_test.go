package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brushquote/internal/domain"
)

func TestVisible(t *testing.T) {
	basic := domain.FieldConfig{ID: "a", Complexity: domain.ComplexityBasic}
	advanced := domain.FieldConfig{ID: "b", Complexity: domain.ComplexityAdvanced}
	requiredAdvanced := domain.FieldConfig{ID: "c", Complexity: domain.ComplexityAdvanced, Required: true}
	untiered := domain.FieldConfig{ID: "d"}

	assert.True(t, Visible(basic, domain.SessionModeBasic))
	assert.False(t, Visible(advanced, domain.SessionModeBasic))
	assert.True(t, Visible(requiredAdvanced, domain.SessionModeBasic))
	assert.True(t, Visible(untiered, domain.SessionModeBasic))

	assert.True(t, Visible(basic, domain.SessionModeAdvanced))
	assert.True(t, Visible(advanced, domain.SessionModeAdvanced))
}

func sampleFields() []domain.FieldConfig {
	return []domain.FieldConfig{
		{ID: "client_name", Label: "Client Name", Type: domain.FieldTypeText, SectionID: "client-info", Order: 1, Required: true},
		{ID: "tax_rate", Label: "Tax Rate", Type: domain.FieldTypeTaxCalculator, SectionID: "options", Order: 4, Complexity: domain.ComplexityAdvanced},
		{ID: "surfaces", Label: "Surfaces", Type: domain.FieldTypeMatrixSelector, SectionID: "surfaces", Order: 2},
		{ID: "mystery", Label: "Mystery", Type: domain.FieldType("hologram"), SectionID: "nonexistent", Order: 3},
	}
}

func TestPartitionSections_BasicHidesAdvanced(t *testing.T) {
	values := domain.ValueMap{"client_name": "Jordan"}

	sections := PartitionSections(sampleFields(), values, domain.SessionModeBasic)

	require.Len(t, sections, 3)
	assert.Equal(t, "client-info", sections[0].ID)
	assert.Equal(t, "surfaces", sections[1].ID)
	assert.Equal(t, SectionOther, sections[2].ID)

	require.Len(t, sections[0].Fields, 1)
	assert.Equal(t, "Jordan", sections[0].Fields[0].Value)
}

func TestPartitionSections_AdvancedShowsAll(t *testing.T) {
	sections := PartitionSections(sampleFields(), domain.ValueMap{}, domain.SessionModeAdvanced)

	var ids []string
	for _, s := range sections {
		for _, f := range s.Fields {
			ids = append(ids, f.Config.ID)
		}
	}
	assert.ElementsMatch(t, []string{"client_name", "tax_rate", "surfaces", "mystery"}, ids)
}

func TestPartitionSections_OrdersByDeclaredOrder(t *testing.T) {
	fields := []domain.FieldConfig{
		{ID: "second", SectionID: "client-info", Order: 2, Type: domain.FieldTypeText},
		{ID: "first", SectionID: "client-info", Order: 1, Type: domain.FieldTypeText},
	}

	sections := PartitionSections(fields, domain.ValueMap{}, domain.SessionModeAdvanced)

	require.Len(t, sections, 1)
	require.Len(t, sections[0].Fields, 2)
	assert.Equal(t, "first", sections[0].Fields[0].Config.ID)
	assert.Equal(t, "second", sections[0].Fields[1].Config.ID)
}

func TestPartitionSections_UnsupportedFlagged(t *testing.T) {
	sections := PartitionSections(sampleFields(), domain.ValueMap{}, domain.SessionModeAdvanced)

	for _, s := range sections {
		for _, f := range s.Fields {
			if f.Config.ID == "mystery" {
				assert.True(t, f.Unsupported)
				return
			}
		}
	}
	t.Fatal("mystery field not rendered")
}

func TestPartitionSections_HidingNeverTouchesValues(t *testing.T) {
	values := domain.ValueMap{"tax_rate": float64(8.25)}

	basic := PartitionSections(sampleFields(), values, domain.SessionModeBasic)
	for _, s := range basic {
		for _, f := range s.Fields {
			assert.NotEqual(t, "tax_rate", f.Config.ID)
		}
	}

	// Switching back shows the retained value.
	advanced := PartitionSections(sampleFields(), values, domain.SessionModeAdvanced)
	found := false
	for _, s := range advanced {
		for _, f := range s.Fields {
			if f.Config.ID == "tax_rate" {
				assert.Equal(t, float64(8.25), f.Value)
				found = true
			}
		}
	}
	assert.True(t, found)
}
