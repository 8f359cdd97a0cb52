package resolve

import (
	"sort"
	"strings"

	"github.com/leadgrid/dealerxref/internal/model"
)

// Merger produces one canonical entity per match group.
type Merger struct {
	ranks model.TierRanks
}

// NewMerger creates a Merger using the given tier ranks for tie-breaking.
func NewMerger(ranks model.TierRanks) *Merger {
	if ranks == nil {
		ranks = model.DefaultTierRanks
	}
	return &Merger{ranks: ranks}
}

// Merge builds the canonical entity for a group. Each scalar field takes
// its value from the highest-quality member that actually populates it,
// under the same tie-break order used for intra-source dedup. Source IDs
// and tiers are unioned, never chosen. Every selection is a max or a union
// over the member set, so merging is associative and commutative in group
// membership.
func (m *Merger) Merge(group []model.RawRecord, confidence model.Confidence) model.CanonicalEntity {
	top := best(group, m.ranks)

	e := model.CanonicalEntity{
		Name:        m.fieldFrom(group, top.Name, func(r model.RawRecord) string { return r.Name }),
		Phone:       m.fieldFrom(group, top.Phone, func(r model.RawRecord) string { return r.Phone }),
		Website:     m.fieldFrom(group, top.Website, func(r model.RawRecord) string { return r.Website }),
		Street:      m.fieldFrom(group, top.Street, func(r model.RawRecord) string { return r.Street }),
		City:        m.fieldFrom(group, top.City, func(r model.RawRecord) string { return r.City }),
		State:       m.fieldFrom(group, top.State, func(r model.RawRecord) string { return r.State }),
		ZipCode:     m.fieldFrom(group, top.ZipCode, func(r model.RawRecord) string { return r.ZipCode }),
		ReviewCount: top.ReviewCount,
		Confidence:  confidence,
	}

	e.Domain = DomainKey(e.Website)

	// Rating: best member that reports one.
	var rated model.RawRecord
	found := false
	for _, r := range group {
		if r.Rating <= 0 {
			continue
		}
		if !found || Better(r, rated, m.ranks) {
			rated = r
			found = true
		}
	}
	if found {
		e.Rating = rated.Rating
	}

	e.SourceIDs = unionOf(group, func(r model.RawRecord) string { return r.SourceID })
	e.Tiers = unionOf(group, func(r model.RawRecord) string { return r.Tier })

	return e
}

// fieldFrom returns the field value of the best group member that has a
// non-blank value, falling back to the overall winner's (possibly blank)
// value when nobody populates the field.
func (m *Merger) fieldFrom(group []model.RawRecord, fallback string, get func(model.RawRecord) string) string {
	var chosen model.RawRecord
	found := false
	for _, r := range group {
		if strings.TrimSpace(get(r)) == "" {
			continue
		}
		if !found || Better(r, chosen, m.ranks) {
			chosen = r
			found = true
		}
	}
	if !found {
		return fallback
	}
	return get(chosen)
}

// unionOf collects the sorted set of non-blank values across the group.
func unionOf(group []model.RawRecord, get func(model.RawRecord) string) []string {
	seen := make(map[string]struct{}, len(group))
	var out []string
	for _, r := range group {
		v := strings.TrimSpace(get(r))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
