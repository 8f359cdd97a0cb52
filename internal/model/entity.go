package model

// Confidence classifies how much corroborating evidence supports a match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// CanonicalEntity is the merged representation of one resolved business.
// Scalar fields carry the best observed value; SourceIDs and Tiers are the
// union of everything that contributed. Never mutated after merge.
type CanonicalEntity struct {
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Domain      string     `json:"domain,omitempty"`
	Website     string     `json:"website,omitempty"`
	Street      string     `json:"street,omitempty"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	ZipCode     string     `json:"zip_code,omitempty"`
	Rating      float64    `json:"rating,omitempty"`
	ReviewCount int        `json:"review_count,omitempty"`
	SourceIDs   []string   `json:"source_ids"`
	Tiers       []string   `json:"tiers,omitempty"`
	Confidence  Confidence `json:"confidence"`
}

// MultiSource reports whether at least two distinct sources contributed.
func (e CanonicalEntity) MultiSource() bool {
	return len(e.SourceIDs) >= 2
}
