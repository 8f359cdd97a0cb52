// Package export writes canonical entities to CSV and JSON for the
// downstream scoring and dashboard collaborators.
package export

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leadgrid/dealerxref/internal/model"
)

// entityColumns defines the ordered CSV output columns.
var entityColumns = []string{
	"Name",
	"Phone",
	"Domain",
	"Website",
	"Street",
	"City",
	"State",
	"Zip Code",
	"Rating",
	"Review Count",
	"Confidence",
	"Sources",
	"Tiers",
}

var titleCaser = cases.Title(language.AmericanEnglish)

// WriteCSV writes entities as a CSV file with a fixed column order.
func WriteCSV(entities []model.CanonicalEntity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create csv %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(entityColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, e := range entities {
		if err := w.Write(entityRow(e)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// entityRow maps a CanonicalEntity to a CSV row.
func entityRow(e model.CanonicalEntity) []string {
	rating := ""
	if e.Rating > 0 {
		rating = strconv.FormatFloat(e.Rating, 'f', -1, 64)
	}
	reviews := ""
	if e.ReviewCount > 0 {
		reviews = strconv.Itoa(e.ReviewCount)
	}

	return []string{
		e.Name,
		e.Phone,
		e.Domain,
		e.Website,
		e.Street,
		titleCaser.String(strings.ToLower(e.City)),
		e.State,
		e.ZipCode,
		rating,
		reviews,
		string(e.Confidence),
		strings.Join(e.SourceIDs, ";"),
		strings.Join(e.Tiers, ";"),
	}
}
