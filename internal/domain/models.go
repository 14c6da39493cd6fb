package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuoteSubmission is the master record for a quote, created on first contact
// and mutated incrementally as the intake wizard steps complete.
type QuoteSubmission struct {
	QuoteID        uuid.UUID   `db:"quote_id" json:"quote_id"`
	CustomerID     *uuid.UUID  `db:"customer_id" json:"customer_id"`
	ClientName     string      `db:"client_name" json:"client_name"`
	ClientEmail    string      `db:"client_email" json:"client_email"`
	Phone          *string     `db:"phone" json:"phone"`
	SourceLang     string      `db:"source_lang" json:"source_lang"`
	TargetLang     string      `db:"target_lang" json:"target_lang"`
	SourceCode     *string     `db:"source_code" json:"source_code"`
	TargetCode     *string     `db:"target_code" json:"target_code"`
	IntendedUse    *string     `db:"intended_use" json:"intended_use"`
	IntendedUseID  *int64      `db:"intended_use_id" json:"intended_use_id"`
	CountryOfIssue *string     `db:"country_of_issue" json:"country_of_issue"`
	CountryCode    *string     `db:"country_code" json:"country_code"`
	TierName       *string     `db:"tier_name" json:"tier_name"`
	TierMultiplier *float64    `db:"tier_multiplier" json:"tier_multiplier"`
	CertTypeName   *string     `db:"cert_type_name" json:"cert_type_name"`
	CertTypeCode   *string     `db:"cert_type_code" json:"cert_type_code"`
	CertTypeRate   *float64    `db:"cert_type_rate" json:"cert_type_rate"`
	Status         QuoteStatus `db:"status" json:"status"`
	HITLRequested  bool        `db:"hitl_requested" json:"hitl_requested"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// Customer is a client identified by email, shared across quotes.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// QuoteFile is an uploaded source document attached to a quote.
type QuoteFile struct {
	ID               int64      `db:"id" json:"id"`
	QuoteID          uuid.UUID  `db:"quote_id" json:"quote_id"`
	Filename         *string    `db:"filename" json:"filename"`
	StorageKey       string     `db:"storage_key" json:"storage_key"`
	FileURL          *string    `db:"file_url" json:"file_url"`
	FileURLExpiresAt *time.Time `db:"file_url_expires_at" json:"file_url_expires_at"`
	ContentType      *string    `db:"content_type" json:"content_type"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// QuoteResult is the denormalized pricing record for a quote. ResultsJSON
// holds the authoritative ResultsBlob; subtotal/tax/total are duplicated as
// columns for querying.
type QuoteResult struct {
	QuoteID     uuid.UUID       `db:"quote_id" json:"quote_id"`
	ResultsJSON json.RawMessage `db:"results_json" json:"results_json"`
	Subtotal    float64         `db:"subtotal" json:"subtotal"`
	Tax         float64         `db:"tax" json:"tax"`
	Total       float64         `db:"total" json:"total"`
	Currency    string          `db:"currency" json:"currency"`
	ComputedAt  *time.Time      `db:"computed_at" json:"computed_at"`
}

// SubOrder is one normalized line item per priced document. Rows are owned
// exclusively by the reconciliation path and are always fully replaced from
// the results blob, never edited incrementally.
type SubOrder struct {
	ID                     int64     `db:"id" json:"id"`
	QuoteID                uuid.UUID `db:"quote_id" json:"quote_id"`
	DocumentLabel          string    `db:"document_label" json:"document_label"`
	BillablePages          float64   `db:"billable_pages" json:"billable_pages"`
	LanguageTierMultiplier *float64  `db:"language_tier_multiplier" json:"language_tier_multiplier"`
	LanguageMultiplier     *float64  `db:"language_multiplier" json:"language_multiplier"`
	UnitRate               float64   `db:"unit_rate" json:"unit_rate"`
	AmountPages            float64   `db:"amount_pages" json:"amount_pages"`
	CertificationTypeCode  *string   `db:"certification_type_code" json:"certification_type_code"`
	CertificationTypeName  *string   `db:"certification_type_name" json:"certification_type_name"`
	CertificationAmount    float64   `db:"certification_amount" json:"certification_amount"`
	LineTotal              float64   `db:"line_total" json:"line_total"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// TierResolution is a resolved language tier.
type TierResolution struct {
	Name       string   `json:"name"`
	Multiplier *float64 `json:"multiplier"`
}

// CertResolution is a resolved certification type. Rate stays nil when the
// reference row carries no usable fee column; callers must treat that as
// insufficient data, never substitute a guess.
type CertResolution struct {
	Name string   `json:"name"`
	Code *string  `json:"code"`
	Rate *float64 `json:"rate"`
}

// LanguageRow mirrors the reference languages table. The table has drifted
// across deployments, so every column the lookup may touch is optional.
type LanguageRow struct {
	ID         int64    `db:"id"`
	Code       *string  `db:"code"`
	ISOCode    *string  `db:"iso_code"`
	LangCode   *string  `db:"lang_code"`
	Name       *string  `db:"name"`
	Label      *string  `db:"label"`
	Language   *string  `db:"language"`
	Title      *string  `db:"title"`
	TierID     *int64   `db:"tier_id"`
	TierName   *string  `db:"tier_name"`
	Tier       *string  `db:"tier"`
	Multiplier *float64 `db:"multiplier"`
}

// TierRow mirrors the tiers reference table.
type TierRow struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Multiplier float64 `db:"multiplier"`
}

// IntendedUseRow mirrors the intended_uses reference table.
type IntendedUseRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// CertTypeRow mirrors the cert_types reference table. The fee has lived in
// three differently named columns over time; FirstFloat picks rate, then
// amount, then multiplier.
type CertTypeRow struct {
	ID          int64    `db:"id"`
	Name        string   `db:"name"`
	Code        *string  `db:"code"`
	PricingType *string  `db:"pricing_type"`
	Rate        *float64 `db:"rate"`
	Amount      *float64 `db:"amount"`
	Multiplier  *float64 `db:"multiplier"`
}

// CertMapRow mirrors the intended_use -> cert_type mapping table. The FK has
// been both numeric and a name string across schema versions.
type CertMapRow struct {
	IntendedUseID int64   `db:"intended_use_id"`
	CertTypeID    *int64  `db:"cert_type_id"`
	CertTypeName  *string `db:"cert_type_name"`
	CertTypeCode  *string `db:"cert_type_code"`
}

// AppSettings is the read-only configuration row. Nil fields fall back to
// the configured defaults.
type AppSettings struct {
	BaseRate       *float64 `db:"base_rate"`
	TaxRate        *float64 `db:"tax_rate"`
	RoundIncrement *float64 `db:"round_increment"`
	Currency       *string  `db:"currency"`
}

// DeliveryOption mirrors the delivery_options reference table.
type DeliveryOption struct {
	ID               int64   `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	FeeType          FeeType `db:"fee_type" json:"fee_type"`
	FeeAmount        float64 `db:"fee_amount" json:"fee_amount"`
	BaseBusinessDays int     `db:"base_business_days" json:"base_business_days"`
	AddlBusinessDays int     `db:"addl_business_days" json:"addl_business_days"`
	IsSameDay        bool    `db:"is_same_day" json:"is_same_day"`
	Active           bool    `db:"active" json:"active"`
	DisplayOrder     int     `db:"display_order" json:"display_order"`
}

// SameDayQualifier marks a document type + country combination eligible for
// same-day delivery.
type SameDayQualifier struct {
	ID      int64  `db:"id"`
	DocType string `db:"doc_type"`
	Country string `db:"country"`
	Active  bool   `db:"active"`
}
