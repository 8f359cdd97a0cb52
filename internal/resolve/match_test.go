package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/dealerxref/internal/model"
)

func TestGroupRecords_PhoneLink(t *testing.T) {
	records := []model.RawRecord{
		{SourceID: "generac", Name: "Luminalt", Phone: "4156414000"},
		{SourceID: "tesla", Name: "Luminalt Energy", Phone: "(415) 641-4000"},
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}

func TestGroupRecords_DomainLink(t *testing.T) {
	records := []model.RawRecord{
		{SourceID: "a", Name: "ABC Electric", Website: "abc-electric.com"},
		{SourceID: "b", Name: "ABC Electric Inc", Website: "www.abc-electric.com/contact"},
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}

func TestGroupRecords_TransitiveAcrossSignals(t *testing.T) {
	// A links B by phone, B links C by domain: one group of three.
	records := []model.RawRecord{
		{SourceID: "a", Name: "One", Phone: "4155550100"},
		{SourceID: "b", Name: "Two", Phone: "4155550100", Website: "shared.com"},
		{SourceID: "c", Name: "Three", Website: "https://www.shared.com"},
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 3)
}

func TestGroupRecords_NameAloneNeverLinks(t *testing.T) {
	// Identical names with no phone or domain signal stay separate.
	records := []model.RawRecord{
		{SourceID: "a", Name: "Acme Solar"},
		{SourceID: "b", Name: "Acme Solar"},
	}

	groups := GroupRecords(records)
	assert.Len(t, groups, 2)
}

func TestGroupRecords_EmptyKeysNeverLink(t *testing.T) {
	records := []model.RawRecord{
		{SourceID: "a", Name: "One", Phone: "N/A", Website: "none"},
		{SourceID: "b", Name: "Two", Phone: "N/A", Website: "none"},
	}

	groups := GroupRecords(records)
	assert.Len(t, groups, 2)
}

func TestGroupRecords_SingleSourceGroupsKept(t *testing.T) {
	records := []model.RawRecord{
		{SourceID: "a", Name: "Solo", Phone: "4155550100"},
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "Solo", groups[0][0].Name)
}

func TestGroupRecords_Empty(t *testing.T) {
	assert.Empty(t, GroupRecords(nil))
}
