package model

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// TierRanks maps source-specific tier strings to an ordinal. Higher means
// better. Lookups are case- and whitespace-insensitive; unmapped tiers
// rank zero (lowest).
type TierRanks map[string]int

// DefaultTierRanks covers the tier vocabulary seen across OEM dealer
// programs. Override per deployment with a YAML file (resolve.tier_ranks_path).
var DefaultTierRanks = TierRanks{
	"ELITE":      7,
	"PREMIER":    6,
	"PLATINUM":   5,
	"GOLD":       4,
	"PREFERRED":  3,
	"SILVER":     3,
	"CERTIFIED":  2,
	"BRONZE":     2,
	"AUTHORIZED": 1,
}

// Rank returns the ordinal for a tier string, 0 if unmapped or empty.
func (t TierRanks) Rank(tier string) int {
	return t[strings.ToUpper(strings.TrimSpace(tier))]
}

// LoadTierRanks reads a tier rank table from a YAML file.
// The file has a top-level "tiers" key mapping tier name to rank.
func LoadTierRanks(path string) (TierRanks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: read tier ranks %s", path)
	}

	var wrapper struct {
		Tiers map[string]int `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "model: parse tier ranks")
	}
	if len(wrapper.Tiers) == 0 {
		return nil, eris.Errorf("model: tier ranks file %s has no tiers", path)
	}

	ranks := make(TierRanks, len(wrapper.Tiers))
	for name, rank := range wrapper.Tiers {
		ranks[strings.ToUpper(strings.TrimSpace(name))] = rank
	}
	return ranks, nil
}
