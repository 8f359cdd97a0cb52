package resolve

import (
	"strconv"
	"strings"

	"github.com/leadgrid/dealerxref/internal/model"
)

// Better reports whether a is strictly higher quality than b. Criteria are
// applied in order until one is decisive:
//  1. Higher review count
//  2. Higher tier rank (unmapped tiers rank lowest)
//  3. More populated optional fields (website, domain key, street)
//  4. Lexicographic order key, so a full quality tie still resolves the
//     same way regardless of input order
//
// Records identical under all four criteria compare as not-better both
// ways; callers keep the incumbent.
func Better(a, b model.RawRecord, ranks model.TierRanks) bool {
	if a.ReviewCount != b.ReviewCount {
		return a.ReviewCount > b.ReviewCount
	}
	if ra, rb := ranks.Rank(a.Tier), ranks.Rank(b.Tier); ra != rb {
		return ra > rb
	}
	if pa, pb := populatedFields(a), populatedFields(b); pa != pb {
		return pa > pb
	}
	return orderKey(a) < orderKey(b)
}

// populatedFields counts the optional fields that carry signal.
func populatedFields(r model.RawRecord) int {
	n := 0
	if strings.TrimSpace(r.Website) != "" {
		n++
	}
	if DomainKey(r.Website) != "" {
		n++
	}
	if strings.TrimSpace(r.Street) != "" {
		n++
	}
	return n
}

// orderKey builds a deterministic comparison key over every record field.
func orderKey(r model.RawRecord) string {
	return strings.Join([]string{
		r.Name, r.Street, r.City, r.State, r.ZipCode,
		r.Website, r.Phone, r.Tier, r.SourceID,
		strconv.FormatFloat(r.Rating, 'f', -1, 64),
	}, "\x1f")
}

// best folds Better over a group and returns the quality winner. The fold
// is a max over a total order, so the result does not depend on group
// member ordering.
func best(group []model.RawRecord, ranks model.TierRanks) model.RawRecord {
	top := group[0]
	for _, r := range group[1:] {
		if Better(r, top, ranks) {
			top = r
		}
	}
	return top
}
