package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadgrid/dealerxref/internal/model"
)

func TestBetter_ReviewCountWins(t *testing.T) {
	a := model.RawRecord{Name: "Acme", ReviewCount: 10}
	b := model.RawRecord{Name: "Acme", ReviewCount: 3, Tier: "Elite", Website: "acme.com"}

	assert.True(t, Better(a, b, model.DefaultTierRanks))
	assert.False(t, Better(b, a, model.DefaultTierRanks))
}

func TestBetter_TierBreaksReviewTie(t *testing.T) {
	a := model.RawRecord{Name: "Acme", ReviewCount: 5, Tier: "Gold"}
	b := model.RawRecord{Name: "Acme", ReviewCount: 5, Tier: "Silver"}

	assert.True(t, Better(a, b, model.DefaultTierRanks))
	assert.False(t, Better(b, a, model.DefaultTierRanks))
}

func TestBetter_UnmappedTierRanksLowest(t *testing.T) {
	a := model.RawRecord{Name: "Acme", Tier: "Authorized"}
	b := model.RawRecord{Name: "Acme", Tier: "Mystery Tier"}

	assert.True(t, Better(a, b, model.DefaultTierRanks))
}

func TestBetter_PopulatedFieldsBreakTierTie(t *testing.T) {
	a := model.RawRecord{Name: "Acme", Website: "https://acme.com", Street: "1 Main St"}
	b := model.RawRecord{Name: "Acme"}

	assert.True(t, Better(a, b, model.DefaultTierRanks))
	assert.False(t, Better(b, a, model.DefaultTierRanks))
}

func TestBetter_IdenticalRecordsNeverBetter(t *testing.T) {
	a := model.RawRecord{Name: "Acme", Phone: "4156414000"}

	assert.False(t, Better(a, a, model.DefaultTierRanks))
}

func TestBetter_FullTieIsDeterministic(t *testing.T) {
	// Equal quality, different content: exactly one direction wins, in
	// both comparison orders.
	a := model.RawRecord{Name: "Acme Electric"}
	b := model.RawRecord{Name: "Acme Electrical"}

	assert.NotEqual(t, Better(a, b, model.DefaultTierRanks), Better(b, a, model.DefaultTierRanks))
}

func TestBest_OrderIndependent(t *testing.T) {
	a := model.RawRecord{Name: "Acme", ReviewCount: 2}
	b := model.RawRecord{Name: "Acme", ReviewCount: 9}
	c := model.RawRecord{Name: "Acme", ReviewCount: 5}

	assert.Equal(t, b, best([]model.RawRecord{a, b, c}, model.DefaultTierRanks))
	assert.Equal(t, b, best([]model.RawRecord{c, a, b}, model.DefaultTierRanks))
	assert.Equal(t, b, best([]model.RawRecord{b, c, a}, model.DefaultTierRanks))
}
