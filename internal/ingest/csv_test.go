package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrape.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSV_Basic(t *testing.T) {
	path := writeCSV(t, `Name,Phone,Website,City,State,Zip Code,Tier,Rating,Review Count
Luminalt Energy,(415) 641-4000,https://luminalt.com,San Francisco,CA,94110,Premier,4.8,127
Bay Solar,415-555-0100,,Oakland,CA,94601,,,"1,204"
`)

	records, err := ParseCSV(path, "generac")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "generac", records[0].SourceID)
	assert.Equal(t, "Luminalt Energy", records[0].Name)
	assert.Equal(t, "(415) 641-4000", records[0].Phone)
	assert.Equal(t, "https://luminalt.com", records[0].Website)
	assert.Equal(t, "Premier", records[0].Tier)
	assert.Equal(t, 4.8, records[0].Rating) //nolint:testifylint // exact literal round-trips
	assert.Equal(t, 127, records[0].ReviewCount)

	assert.Equal(t, 1204, records[1].ReviewCount) // thousands separator handled
}

func TestParseCSV_SourceColumnOverridesDefault(t *testing.T) {
	path := writeCSV(t, `Name,Phone,Source
Luminalt,4156414000,tesla
Bay Solar,4155550100,
`)

	records, err := ParseCSV(path, "generac")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "tesla", records[0].SourceID)
	assert.Equal(t, "generac", records[1].SourceID)
}

func TestParseCSV_HeaderAliases(t *testing.T) {
	path := writeCSV(t, `Dealer Name,Phone Number,Domain,Address,Certification
Acme Generators,4155550123,acme-gen.com,12 Pine St,Elite
`)

	records, err := ParseCSV(path, "generac")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme Generators", records[0].Name)
	assert.Equal(t, "acme-gen.com", records[0].Website)
	assert.Equal(t, "12 Pine St", records[0].Street)
	assert.Equal(t, "Elite", records[0].Tier)
}

func TestParseCSV_MalformedNumericsDegrade(t *testing.T) {
	path := writeCSV(t, `Name,Phone,Rating,Review Count
Acme,4155550123,lots of stars,many
`)

	records, err := ParseCSV(path, "generac")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].Rating)
	assert.Zero(t, records[0].ReviewCount)
}

func TestParseCSV_SkipsEmptyRows(t *testing.T) {
	path := writeCSV(t, `Name,Phone,City
Acme,4155550123,Oakland
,,Somewhere
`)

	records, err := ParseCSV(path, "generac")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseCSV_NoDataRows(t *testing.T) {
	path := writeCSV(t, "Name,Phone\n")

	_, err := ParseCSV(path, "generac")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestParseCSV_MissingFile(t *testing.T) {
	_, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"), "generac")
	require.Error(t, err)
}
