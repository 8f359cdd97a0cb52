// Package model defines the record and entity types shared across the
// dealer aggregation pipeline.
package model

// RawRecord is one row scraped from an OEM dealer-locator site. Fields are
// free text exactly as extracted; the resolve package derives comparable
// keys from them. A RawRecord is immutable once handed to the resolver.
type RawRecord struct {
	SourceID    string  `json:"source_id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Website     string  `json:"website"`
	Street      string  `json:"street,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
	Tier        string  `json:"tier,omitempty"`
}
