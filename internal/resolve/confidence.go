package resolve

import (
	"github.com/antzucaro/matchr"

	"github.com/leadgrid/dealerxref/internal/model"
)

// DefaultNameSimilarityThreshold is the Jaro-Winkler similarity above which
// two name keys corroborate a match. Tunable via
// resolve.name_similarity_threshold; kept high because common business
// names recur across unrelated companies.
const DefaultNameSimilarityThreshold = 0.93

// Scorer assigns a confidence label to each match group based on the
// strongest combination of evidence shared by any pair in the group.
type Scorer struct {
	threshold float64
}

// NewScorer creates a Scorer. A non-positive threshold selects the default.
func NewScorer(threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultNameSimilarityThreshold
	}
	return &Scorer{threshold: threshold}
}

// NamesSimilar reports whether two raw names pass the fuzzy validation
// threshold after key normalization. Empty keys never match.
func (s *Scorer) NamesSimilar(a, b string) bool {
	ka, kb := NameKey(a), NameKey(b)
	if ka == "" || kb == "" {
		return false
	}
	if ka == kb {
		return true
	}
	return matchr.JaroWinkler(ka, kb, false) >= s.threshold
}

// Score classifies a group by its best-corroborated pair:
//
//	HIGH   - some pair shares phone AND domain AND passes the name check
//	MEDIUM - some pair shares phone plus one of domain / name check
//	LOW    - phone-only linkage, or anything weaker (domain-only groups
//	         score LOW so every group the matcher produces gets a label)
func (s *Scorer) Score(group []model.RawRecord) model.Confidence {
	label := model.ConfidenceLow

	for i := 0; i < len(group); i++ {
		ki := Keys(group[i])
		for j := i + 1; j < len(group); j++ {
			kj := Keys(group[j])

			phone := ki.Phone != "" && ki.Phone == kj.Phone
			if !phone {
				continue
			}

			domain := ki.Domain != "" && ki.Domain == kj.Domain
			name := s.NamesSimilar(group[i].Name, group[j].Name)

			switch {
			case domain && name:
				return model.ConfidenceHigh
			case domain || name:
				label = model.ConfidenceMedium
			}
		}
	}

	return label
}
