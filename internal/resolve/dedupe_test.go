package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/dealerxref/internal/model"
)

func TestDedupeSource_CollapsesByPhoneKey(t *testing.T) {
	records := []model.RawRecord{
		{SourceID: "generac", Name: "Luminalt", Phone: "(415) 641-4000"},
		{SourceID: "generac", Name: "Luminalt Energy", Phone: "14156414000"},
	}

	out := DedupeSource(records, model.DefaultTierRanks)
	require.Len(t, out, 1)
}

func TestDedupeSource_HigherReviewCountSurvives(t *testing.T) {
	records := []model.RawRecord{
		{Name: "Luminalt", Phone: "4156414000", ReviewCount: 4},
		{Name: "Luminalt Energy Corp", Phone: "4156414000", ReviewCount: 120},
	}

	out := DedupeSource(records, model.DefaultTierRanks)
	require.Len(t, out, 1)
	assert.Equal(t, "Luminalt Energy Corp", out[0].Name)
}

func TestDedupeSource_IncumbentKeptOnIdenticalQuality(t *testing.T) {
	records := []model.RawRecord{
		{Name: "Acme Solar", Phone: "4155550100"},
		{Name: "Acme Solar", Phone: "4155550100"},
	}

	out := DedupeSource(records, model.DefaultTierRanks)
	require.Len(t, out, 1)
	assert.Equal(t, records[0], out[0])
}

func TestDedupeSource_EmptyPhoneKeyPassesThrough(t *testing.T) {
	// Records with no phone signal are never merged, even when identical.
	records := []model.RawRecord{
		{Name: "Acme Solar", Phone: "N/A"},
		{Name: "Acme Solar", Phone: ""},
		{Name: "Acme Solar", Phone: "N/A"},
	}

	out := DedupeSource(records, model.DefaultTierRanks)
	assert.Len(t, out, 3)
}

func TestDedupeSource_OrderPreserving(t *testing.T) {
	records := []model.RawRecord{
		{Name: "First", Phone: "4155550101"},
		{Name: "Second", Phone: "4155550102"},
		{Name: "First Dup", Phone: "415-555-0101", ReviewCount: 1},
		{Name: "Third", Phone: "4155550103"},
	}

	out := DedupeSource(records, model.DefaultTierRanks)
	require.Len(t, out, 3)
	assert.Equal(t, "First Dup", out[0].Name) // replaced in place
	assert.Equal(t, "Second", out[1].Name)
	assert.Equal(t, "Third", out[2].Name)
}

func TestDedupeSource_Empty(t *testing.T) {
	assert.Empty(t, DedupeSource(nil, model.DefaultTierRanks))
}
