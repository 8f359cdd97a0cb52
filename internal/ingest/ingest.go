// Package ingest parses dealer-locator scrape exports (CSV, XLSX) into raw
// records for the resolver.
package ingest

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/leadgrid/dealerxref/internal/model"
)

// columnAliases maps each record field to the header names scrape exports
// use for it. Header matching is case-insensitive.
var columnAliases = map[string][]string{
	"name":         {"Name", "Dealer Name", "Business Name", "Company"},
	"phone":        {"Phone", "Phone Number", "Telephone"},
	"website":      {"Website", "Domain", "URL", "Web Site"},
	"street":       {"Street", "Address", "Mailing Address", "Street Address"},
	"city":         {"City"},
	"state":        {"State", "Province"},
	"zip":          {"Zip Code", "Zip", "Postal Code", "Zipcode"},
	"rating":       {"Rating", "Aggregate Rating", "Stars"},
	"review_count": {"Review Count", "Reviews", "Total Review Count"},
	"tier":         {"Tier", "Certification", "Dealer Tier", "Level"},
	"source":       {"Source", "Source ID", "OEM"},
}

// headerIndex resolves each record field to a column index, or -1.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[strings.ToLower(strings.TrimSpace(col))] = i
	}

	idx := make(headerIndex, len(columnAliases))
	for field, aliases := range columnAliases {
		idx[field] = -1
		for _, alias := range aliases {
			if i, ok := byName[strings.ToLower(alias)]; ok {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

func (h headerIndex) get(row []string, field string) string {
	i := h[field]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// recordsFromRows maps parsed rows to RawRecords. source is the default
// source ID for files without a Source column. Rows with no name and no
// phone are skipped; malformed numeric cells degrade to zero values,
// costing matching signal but never the file.
func recordsFromRows(header []string, rows [][]string, source string) []model.RawRecord {
	idx := indexHeader(header)

	records := make([]model.RawRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		name := idx.get(row, "name")
		phone := idx.get(row, "phone")
		if name == "" && phone == "" {
			skipped++
			continue
		}

		rec := model.RawRecord{
			SourceID: source,
			Name:     name,
			Phone:    phone,
			Website:  idx.get(row, "website"),
			Street:   idx.get(row, "street"),
			City:     idx.get(row, "city"),
			State:    idx.get(row, "state"),
			ZipCode:  idx.get(row, "zip"),
			Tier:     idx.get(row, "tier"),
		}
		if s := idx.get(row, "source"); s != "" {
			rec.SourceID = s
		}

		if v := idx.get(row, "rating"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 5 {
				rec.Rating = f
			}
		}
		if v := idx.get(row, "review_count"); v != "" {
			if n, err := strconv.Atoi(strings.ReplaceAll(v, ",", "")); err == nil && n >= 0 {
				rec.ReviewCount = n
			}
		}

		records = append(records, rec)
	}

	if skipped > 0 {
		zap.L().Debug("ingest: skipped rows with no name or phone",
			zap.Int("skipped", skipped),
		)
	}

	return records
}
