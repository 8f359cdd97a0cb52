package resolve

import (
	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/model"
)

// DedupeSource collapses duplicate records within one source's scrape.
// The phone key is the identity: records sharing a non-empty phone key are
// the same business, and the quality tie-break decides which survives.
// Records with no phone key pass through untouched, each as its own
// singleton: insufficient signal to merge, so we favor false negatives
// over discarding a distinct business.
func DedupeSource(records []model.RawRecord, ranks model.TierRanks) []model.RawRecord {
	kept := make([]model.RawRecord, 0, len(records))
	byPhone := make(map[string]int, len(records))

	dropped := 0
	for _, rec := range records {
		key := PhoneKey(rec.Phone)
		if key == "" {
			kept = append(kept, rec)
			continue
		}

		if i, ok := byPhone[key]; ok {
			dropped++
			if Better(rec, kept[i], ranks) {
				kept[i] = rec
			}
			continue
		}

		byPhone[key] = len(kept)
		kept = append(kept, rec)
	}

	if dropped > 0 {
		zap.L().Debug("dedupe: collapsed duplicate records",
			zap.Int("in", len(records)),
			zap.Int("out", len(kept)),
			zap.Int("dropped", dropped),
		)
	}

	return kept
}
