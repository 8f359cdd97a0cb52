package ingest

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/leadgrid/dealerxref/internal/model"
)

// ParseCSV reads a scrape-export CSV and returns raw records. source is the
// default source ID for rows that lack a Source column.
func ParseCSV(path, source string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open csv %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // scrape exports have ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read csv %s", path)
	}
	if len(rows) < 2 {
		return nil, eris.Errorf("ingest: csv %s has no data rows", path)
	}

	return recordsFromRows(rows[0], rows[1:], source), nil
}
