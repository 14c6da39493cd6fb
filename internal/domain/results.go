package domain

import (
	"encoding/json"
	"fmt"
)

// ResultDocument is one priced document inside the results blob.
type ResultDocument struct {
	Label                string   `json:"label"`
	Filename             *string  `json:"filename"`
	DocumentType         *string  `json:"document_type"`
	Pages                float64  `json:"pages"`
	UnitRate             float64  `json:"unit_rate"`
	ComplexityMultiplier float64  `json:"complexity_multiplier"`
	LanguageMultiplier   float64  `json:"language_multiplier"`
	AverageConfidence    float64  `json:"average_confidence"`
	CertificationAmount  *float64 `json:"certification_amount,omitempty"`
	LineTotal            float64  `json:"line_total"`
}

// ReferenceFile is a client-supplied supporting file recorded on the blob.
type ReferenceFile struct {
	Path     string  `json:"path"`
	Filename string  `json:"filename"`
	URL      *string `json:"url"`
}

// ResultsBlob is the denormalized JSON attached to a quote result. The
// pricing pass owns Documents, BaseRate, TaxRate and Currency; the remaining
// fields are ancillary metadata written by other flows and must survive a
// recompute untouched.
type ResultsBlob struct {
	Documents []ResultDocument `json:"documents"`
	BaseRate  float64          `json:"base_rate"`
	TaxRate   float64          `json:"tax_rate"`
	Currency  string           `json:"currency"`

	DocumentTypeID    *int64          `json:"document_type_id,omitempty"`
	DocumentTypeOther string          `json:"document_type_other,omitempty"`
	ReferenceNotes    string          `json:"reference_notes,omitempty"`
	ReferenceFiles    []ReferenceFile `json:"reference_files,omitempty"`
	CountryOfIssue    string          `json:"country_of_issue,omitempty"`
}

// DecodeResultsBlob parses raw results_json. A nil or empty payload decodes
// to an empty blob rather than an error so callers can merge into it.
func DecodeResultsBlob(raw json.RawMessage) (*ResultsBlob, error) {
	blob := &ResultsBlob{}
	if len(raw) == 0 {
		return blob, nil
	}
	if err := json.Unmarshal(raw, blob); err != nil {
		return nil, fmt.Errorf("decoding results_json: %w", err)
	}
	return blob, nil
}

// Encode serializes the blob back to results_json.
func (b *ResultsBlob) Encode() (json.RawMessage, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding results_json: %w", err)
	}
	return raw, nil
}

// MergePricing overwrites the pricing-owned fields, leaving ancillary
// metadata from other flows in place.
func (b *ResultsBlob) MergePricing(docs []ResultDocument, baseRate, taxRate float64, currency string) {
	b.Documents = docs
	b.BaseRate = baseRate
	b.TaxRate = taxRate
	b.Currency = currency
}
