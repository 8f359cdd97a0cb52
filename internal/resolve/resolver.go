package resolve

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/model"
)

// Options tunes the resolver. Zero values select defaults.
type Options struct {
	TierRanks               model.TierRanks
	NameSimilarityThreshold float64
}

// Resolver runs the full entity-resolution pipeline: validate, normalize,
// per-source dedupe, pool, cross-source match, score, merge. It is a pure
// synchronous batch transformation with no I/O and no shared mutable
// state beyond one run.
type Resolver struct {
	ranks  model.TierRanks
	scorer *Scorer
	merger *Merger
}

// NewResolver creates a Resolver.
func NewResolver(opts Options) *Resolver {
	ranks := opts.TierRanks
	if ranks == nil {
		ranks = model.DefaultTierRanks
	}
	return &Resolver{
		ranks:  ranks,
		scorer: NewScorer(opts.NameSimilarityThreshold),
		merger: NewMerger(ranks),
	}
}

// Resolve transforms per-source record batches into canonical entities.
// The input maps source ID to that source's scraped records; an empty
// batch is valid. The only fatal condition is a structurally invalid
// record, reported with its source and position. Output ordering is
// deterministic: entities sort by name, phone, then domain.
func (r *Resolver) Resolve(sources map[string][]model.RawRecord) ([]model.CanonicalEntity, error) {
	pooled, err := r.pool(sources)
	if err != nil {
		return nil, err
	}

	groups := GroupRecords(pooled)

	entities := make([]model.CanonicalEntity, 0, len(groups))
	for _, group := range groups {
		conf := r.scorer.Score(group)
		entities = append(entities, r.merger.Merge(group, conf))
	}

	sort.Slice(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Phone != b.Phone {
			return a.Phone < b.Phone
		}
		return a.Domain < b.Domain
	})

	zap.L().Info("resolve: pipeline complete",
		zap.Int("sources", len(sources)),
		zap.Int("pooled_records", len(pooled)),
		zap.Int("entities", len(entities)),
	)

	return entities, nil
}

// pool validates every batch, dedupes each source, and concatenates the
// survivors in sorted source order so the run is independent of map
// iteration order.
func (r *Resolver) pool(sources map[string][]model.RawRecord) ([]model.RawRecord, error) {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var pooled []model.RawRecord
	for _, id := range ids {
		batch, err := validateBatch(id, sources[id])
		if err != nil {
			return nil, err
		}

		deduped := DedupeSource(batch, r.ranks)
		zap.L().Debug("resolve: source deduped",
			zap.String("source", id),
			zap.Int("in", len(batch)),
			zap.Int("out", len(deduped)),
		)
		pooled = append(pooled, deduped...)
	}

	return pooled, nil
}

// validateBatch rejects structurally invalid records before they can reach
// the matcher. Records with an empty SourceID inherit the batch's source
// ID; a batch keyed by the empty string is itself invalid.
func validateBatch(sourceID string, records []model.RawRecord) ([]model.RawRecord, error) {
	if sourceID == "" {
		return nil, eris.New("resolve: batch has empty source id")
	}

	out := make([]model.RawRecord, len(records))
	for i, rec := range records {
		if rec.SourceID == "" {
			rec.SourceID = sourceID
		} else if rec.SourceID != sourceID {
			return nil, eris.Errorf("resolve: source %q record %d: source_id %q does not match batch", sourceID, i, rec.SourceID)
		}
		if rec.ReviewCount < 0 {
			return nil, eris.Errorf("resolve: source %q record %d: negative review_count %d", sourceID, i, rec.ReviewCount)
		}
		if rec.Rating < 0 || rec.Rating > 5 {
			return nil, eris.Errorf("resolve: source %q record %d: rating %v outside [0,5]", sourceID, i, rec.Rating)
		}
		out[i] = rec
	}
	return out, nil
}

// MultiSource filters entities to those corroborated by at least two
// distinct sources.
func MultiSource(entities []model.CanonicalEntity) []model.CanonicalEntity {
	out := make([]model.CanonicalEntity, 0, len(entities))
	for _, e := range entities {
		if e.MultiSource() {
			out = append(out, e)
		}
	}
	return out
}
