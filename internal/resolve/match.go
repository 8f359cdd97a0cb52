package resolve

import (
	"sort"

	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/model"
)

// GroupRecords partitions pooled records into match groups that may span
// sources. Two records link when they share a non-empty phone key or a
// non-empty domain key; linkage is transitive (connected components over
// the union of both indices). Fuzzy name similarity never creates a link;
// it only validates groups later, at scoring time.
//
// Single-source groups are kept: this is a general grouping primitive, and
// the multi-source filter belongs to the consumer.
func GroupRecords(records []model.RawRecord) [][]model.RawRecord {
	uf := newUnionFind(len(records))

	phoneIdx := make(map[string]int)
	domainIdx := make(map[string]int)

	for i, rec := range records {
		if k := PhoneKey(rec.Phone); k != "" {
			if j, ok := phoneIdx[k]; ok {
				uf.union(i, j)
			} else {
				phoneIdx[k] = i
			}
		}
		if k := DomainKey(rec.Website); k != "" {
			if j, ok := domainIdx[k]; ok {
				uf.union(i, j)
			} else {
				domainIdx[k] = i
			}
		}
	}

	// Collect components, ordered by their lowest record index so the
	// grouping is stable for a given pooled ordering.
	members := make(map[int][]int)
	for i := range records {
		root := uf.find(i)
		members[root] = append(members[root], i)
	}

	roots := make([]int, 0, len(members))
	for root := range members {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(a, b int) bool {
		return members[roots[a]][0] < members[roots[b]][0]
	})

	groups := make([][]model.RawRecord, 0, len(roots))
	for _, root := range roots {
		group := make([]model.RawRecord, 0, len(members[root]))
		for _, i := range members[root] {
			group = append(group, records[i])
		}
		groups = append(groups, group)
	}

	zap.L().Debug("match: grouped records",
		zap.Int("records", len(records)),
		zap.Int("groups", len(groups)),
		zap.Int("phone_keys", len(phoneIdx)),
		zap.Int("domain_keys", len(domainIdx)),
	)

	return groups
}
