package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/dealerxref/internal/model"
)

func sampleEntities() []model.CanonicalEntity {
	return []model.CanonicalEntity{
		{
			Name: "Luminalt Energy Corp", Phone: "(415) 641-4000",
			Domain: "luminalt.com", Website: "https://luminalt.com",
			Street: "1320 Potrero Ave", City: "SAN FRANCISCO", State: "CA",
			ZipCode: "94110", Rating: 4.8, ReviewCount: 127,
			SourceIDs: []string{"generac", "tesla"}, Tiers: []string{"Premier"},
			Confidence: model.ConfidenceHigh,
		},
		{
			Name: "Bay Solar", SourceIDs: []string{"tesla"},
			Confidence: model.ConfidenceLow,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.csv")
	require.NoError(t, WriteCSV(sampleEntities(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, entityColumns, rows[0])
	assert.Equal(t, "Luminalt Energy Corp", rows[1][0])
	assert.Equal(t, "San Francisco", rows[1][5]) // title-cased city
	assert.Equal(t, "4.8", rows[1][8])
	assert.Equal(t, "HIGH", rows[1][10])
	assert.Equal(t, "generac;tesla", rows[1][11])

	// Zero rating/reviews render as empty cells, not "0".
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "", rows[2][9])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.json")
	require.NoError(t, WriteJSON(sampleEntities(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []model.CanonicalEntity
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, sampleEntities(), out)
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(nil, filepath.Join(t.TempDir(), "missing", "entities.csv"))
	require.Error(t, err)
}
