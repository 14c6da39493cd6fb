package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"certiquote/internal/config"
	"certiquote/internal/domain"
	"certiquote/internal/port"
	"certiquote/internal/pricing"
)

// QuoteSummary is the client-facing view of a priced quote.
type QuoteSummary struct {
	QuoteID     uuid.UUID          `json:"quote_id"`
	Status      domain.QuoteStatus `json:"status"`
	ClientName  string             `json:"client_name"`
	SourceLang  string             `json:"source_lang"`
	TargetLang  string             `json:"target_lang"`
	IntendedUse *string            `json:"intended_use"`
	LineItems   []domain.SubOrder  `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	TaxRate     float64            `json:"tax_rate"`
	Tax         float64            `json:"tax"`
	Total       float64            `json:"total"`
	Currency    string             `json:"currency"`
	ComputedAt  *time.Time         `json:"computed_at"`
}

// SummaryService serves the priced summary for a quote. Summaries are only
// visible once pricing has fully succeeded; earlier statuses yield a
// NotReadyError so clients keep polling.
type SummaryService interface {
	GetSummary(ctx context.Context, quoteID uuid.UUID) (*QuoteSummary, error)
}

type summaryService struct {
	quoteRepo  port.QuoteRepository
	resultRepo port.ResultRepository
	cfg        config.PricingConfig
}

// NewSummaryService creates a new SummaryService implementation.
func NewSummaryService(quoteRepo port.QuoteRepository, resultRepo port.ResultRepository, cfg config.PricingConfig) SummaryService {
	return &summaryService{quoteRepo: quoteRepo, resultRepo: resultRepo, cfg: cfg}
}

func (s *summaryService) GetSummary(ctx context.Context, quoteID uuid.UUID) (*QuoteSummary, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Status.SummaryVisible() {
		return nil, &domain.NotReadyError{Status: quote.Status}
	}

	result, err := s.resultRepo.GetResult(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrMissingData
	}

	blob, err := domain.DecodeResultsBlob(result.ResultsJSON)
	if err != nil {
		return nil, err
	}
	taxRate := blob.TaxRate
	if taxRate <= 0 {
		taxRate = s.cfg.TaxRate
	}

	items, err := s.resultRepo.ListSubOrders(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// Older quotes priced before sub-order rows existed only carry the
		// blob. Derive line items from it and backfill the table; a failed
		// backfill still serves the derived summary.
		derived := s.deriveFromBlob(quote, blob)
		items = derived
		if len(derived) > 0 {
			if err := s.resultRepo.InsertSubOrders(ctx, quoteID, derived); err != nil {
				log.Printf("summaryService.GetSummary: sub-order backfill for %s failed: %v", quoteID, err)
			}
		}
	}

	subtotal, tax, total := result.Subtotal, result.Tax, result.Total
	if subtotal == 0 && len(items) > 0 {
		// Quotes priced before the totals columns existed carry zeros;
		// rebuild from the line items.
		for _, it := range items {
			subtotal += it.LineTotal
		}
		subtotal = pricing.Round2(subtotal)
		tax = pricing.Round2(subtotal * taxRate)
		total = pricing.Round2(subtotal + tax)
	}

	return &QuoteSummary{
		QuoteID:     quoteID,
		Status:      quote.Status,
		ClientName:  quote.ClientName,
		SourceLang:  quote.SourceLang,
		TargetLang:  quote.TargetLang,
		IntendedUse: quote.IntendedUse,
		LineItems:   items,
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		Tax:         tax,
		Total:       total,
		Currency:    result.Currency,
		ComputedAt:  result.ComputedAt,
	}, nil
}

// deriveFromBlob rebuilds sub-order rows from the results blob. Stored
// per-document figures win; only documents missing a line total are repriced
// from pages and unit rate.
func (s *summaryService) deriveFromBlob(quote *domain.QuoteSubmission, blob *domain.ResultsBlob) []domain.SubOrder {
	var items []domain.SubOrder
	for _, doc := range blob.Documents {
		certFee := 0.0
		switch {
		case doc.CertificationAmount != nil:
			certFee = *doc.CertificationAmount
		case quote.CertTypeRate != nil:
			certFee = *quote.CertTypeRate
		}
		amountPages := pricing.Round2(doc.Pages * doc.UnitRate)
		lineTotal := doc.LineTotal
		if lineTotal <= 0 {
			lineTotal = pricing.Round2(amountPages + certFee)
		}

		lm := doc.LanguageMultiplier
		so := domain.SubOrder{
			QuoteID:               quote.QuoteID,
			DocumentLabel:         doc.Label,
			BillablePages:         doc.Pages,
			LanguageMultiplier:    &lm,
			UnitRate:              doc.UnitRate,
			AmountPages:           amountPages,
			CertificationTypeCode: quote.CertTypeCode,
			CertificationTypeName: quote.CertTypeName,
			CertificationAmount:   pricing.Round2(certFee),
			LineTotal:             lineTotal,
		}
		if quote.TierMultiplier != nil {
			so.LanguageTierMultiplier = quote.TierMultiplier
		}
		items = append(items, so)
	}
	return items
}
