package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"certiquote/internal/config"
	"certiquote/internal/domain"
	"certiquote/internal/port"
	"certiquote/internal/pricing"
)

// IngestInput is the DTO for an OCR pipeline results callback. The pipeline
// posts either pre-split page and line CSV sections or one combined raw blob.
type IngestInput struct {
	QuoteID       string `json:"quote_id" binding:"required"`
	PagesCSV      string `json:"pages_csv"`
	LinesCSV      string `json:"lines_csv"`
	Raw           string `json:"raw"`
	PipelineError string `json:"pipeline_error"`
}

// IngestOutcome reports what a pricing pass produced, including the priced
// line item for every document.
type IngestOutcome struct {
	QuoteID   uuid.UUID          `json:"quote_id"`
	Status    domain.QuoteStatus `json:"status"`
	Documents []pricing.LineItem `json:"documents"`
	Subtotal  float64            `json:"subtotal"`
	Tax       float64            `json:"tax"`
	Total     float64            `json:"total"`
	Currency  string             `json:"currency"`
}

// IngestService turns raw OCR output into priced line items and keeps the
// results blob and the sub-order rows in sync.
type IngestService interface {
	Ingest(ctx context.Context, input *IngestInput) (*IngestOutcome, error)
	// Reprice recomputes pricing for a quote from its stored results blob,
	// for when reference data or settings changed after ingestion.
	Reprice(ctx context.Context, quoteID uuid.UUID) (*IngestOutcome, error)
}

type ingestService struct {
	quoteRepo    port.QuoteRepository
	resultRepo   port.ResultRepository
	settingsRepo port.SettingsRepository
	resolver     ResolverService
	notifier     port.Notifier
	email        port.EmailSender
	cfg          config.PricingConfig
	frontendURL  string
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	quoteRepo port.QuoteRepository,
	resultRepo port.ResultRepository,
	settingsRepo port.SettingsRepository,
	resolver ResolverService,
	notifier port.Notifier,
	email port.EmailSender,
	cfg config.PricingConfig,
	frontendURL string,
) IngestService {
	return &ingestService{
		quoteRepo:    quoteRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
		resolver:     resolver,
		notifier:     notifier,
		email:        email,
		cfg:          cfg,
		frontendURL:  frontendURL,
	}
}

// pricingParams are the effective rate parameters for one pricing pass:
// the app_settings row when present, the configured defaults otherwise.
type pricingParams struct {
	BaseRate       float64
	TaxRate        float64
	RoundIncrement float64
	Currency       string
}

func (s *ingestService) Ingest(ctx context.Context, input *IngestInput) (*IngestOutcome, error) {
	quoteID, err := uuid.Parse(input.QuoteID)
	if err != nil {
		return nil, domain.ErrInvalidQuoteID
	}
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status == domain.StatusPaid || quote.Status == domain.StatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	if input.PipelineError != "" {
		log.Printf("ingestService.Ingest: pipeline reported failure for %s: %s", quoteID, input.PipelineError)
		if err := s.quoteRepo.UpdateStatus(ctx, quoteID, domain.StatusFailed); err != nil {
			return nil, err
		}
		return &IngestOutcome{QuoteID: quoteID, Status: domain.StatusFailed}, nil
	}

	pagesCSV, linesCSV := input.PagesCSV, input.LinesCSV
	if pagesCSV == "" && linesCSV == "" {
		pagesCSV, linesCSV = pricing.SplitRaw(input.Raw)
	}
	pageRows := pricing.ParseCSV(pagesCSV)
	lineRows := pricing.ParseCSV(linesCSV)
	if len(pageRows) == 0 && len(lineRows) == 0 {
		return nil, domain.ErrMissingData
	}

	byDoc := pricing.Aggregate(pageRows, lineRows)
	return s.price(ctx, quote, byDoc)
}

func (s *ingestService) Reprice(ctx context.Context, quoteID uuid.UUID) (*IngestOutcome, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status == domain.StatusPaid || quote.Status == domain.StatusCompleted {
		return nil, domain.ErrInvalidTransition
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
	if len(blob.Documents) == 0 {
		return nil, domain.ErrMissingData
	}

	byDoc := make(map[string]*pricing.DocumentAggregate, len(blob.Documents))
	for _, d := range blob.Documents {
		agg := &pricing.DocumentAggregate{
			Key:                  d.Label,
			Pages:                d.Pages,
			AvgConfidence:        d.AverageConfidence,
			ComplexityMultiplier: d.ComplexityMultiplier,
			LanguageMultiplier:   d.LanguageMultiplier,
		}
		if d.Filename != nil {
			agg.Filename = *d.Filename
		}
		if d.DocumentType != nil {
			agg.DocType = *d.DocumentType
		}
		byDoc[d.Label] = agg
	}
	return s.price(ctx, quote, byDoc)
}

// price runs one full pricing pass: resolve tier and certification, price
// every aggregated document, merge the blob, and replace the sub-order rows.
// Calling it twice with the same input leaves the same observable state.
func (s *ingestService) price(ctx context.Context, quote *domain.QuoteSubmission, byDoc map[string]*pricing.DocumentAggregate) (*IngestOutcome, error) {
	quoteID := quote.QuoteID
	params, err := s.loadParams(ctx)
	if err != nil {
		return nil, err
	}

	tier, cert, err := s.resolveWithRetry(ctx, quote)
	if err != nil {
		return nil, err
	}

	tierMult := 1.0
	if tier != nil && tier.Multiplier != nil {
		tierMult = *tier.Multiplier
	}
	certFee := 0.0
	if cert != nil && cert.Rate != nil {
		certFee = *cert.Rate
	}

	var items []pricing.LineItem
	var subOrders []domain.SubOrder
	var docs []domain.ResultDocument
	for _, key := range pricing.SortedKeys(byDoc) {
		agg := byDoc[key]
		item := pricing.PriceDocument(agg.Label(), agg.Pages, tierMult, params.BaseRate, params.RoundIncrement, certFee)
		items = append(items, item)

		so := domain.SubOrder{
			DocumentLabel:          item.DocumentLabel,
			BillablePages:          item.BillablePages,
			LanguageTierMultiplier: &item.TierMultiplier,
			LanguageMultiplier:     &agg.LanguageMultiplier,
			UnitRate:               item.UnitRate,
			AmountPages:            item.AmountPages,
			CertificationAmount:    item.CertificationAmount,
			LineTotal:              item.LineTotal,
		}
		if cert != nil {
			so.CertificationTypeCode = cert.Code
			name := cert.Name
			so.CertificationTypeName = &name
		}
		subOrders = append(subOrders, so)

		doc := domain.ResultDocument{
			Label:                item.DocumentLabel,
			Pages:                item.BillablePages,
			UnitRate:             item.UnitRate,
			ComplexityMultiplier: agg.ComplexityMultiplier,
			LanguageMultiplier:   agg.LanguageMultiplier,
			AverageConfidence:    agg.AvgConfidence,
			CertificationAmount:  &item.CertificationAmount,
			LineTotal:            item.LineTotal,
		}
		if agg.Filename != "" {
			fn := agg.Filename
			doc.Filename = &fn
		}
		if agg.DocType != "" {
			dt := agg.DocType
			doc.DocumentType = &dt
		}
		docs = append(docs, doc)
	}
	totals := pricing.ComputeTotals(items, params.TaxRate)

	// Merge into the existing blob so ancillary metadata written by the
	// intake flows survives the recompute.
	existing, err := s.resultRepo.GetResult(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	blob := &domain.ResultsBlob{}
	if existing != nil {
		if blob, err = domain.DecodeResultsBlob(existing.ResultsJSON); err != nil {
			return nil, err
		}
	}
	blob.MergePricing(docs, params.BaseRate, params.TaxRate, params.Currency)
	raw, err := blob.Encode()
	if err != nil {
		return nil, err
	}

	if err := s.resultRepo.PersistResults(ctx, quoteID, raw, totals, params.Currency, subOrders); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.UpdateResolved(ctx, quoteID, tier, cert); err != nil {
		return nil, err
	}

	status, err := s.finishStatus(ctx, quote, tier, cert)
	if err != nil {
		return nil, err
	}

	return &IngestOutcome{
		QuoteID:   quoteID,
		Status:    status,
		Documents: items,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Currency:  params.Currency,
	}, nil
}

// finishStatus moves the quote to ready when both resolutions landed, or to
// hitl when anything stayed unknown. Notifications are best effort.
func (s *ingestService) finishStatus(ctx context.Context, quote *domain.QuoteSubmission, tier *domain.TierResolution, cert *domain.CertResolution) (domain.QuoteStatus, error) {
	quoteID := quote.QuoteID
	resolved := tier != nil && tier.Multiplier != nil && cert != nil && cert.Rate != nil

	if !resolved {
		log.Printf("ingestService.finishStatus: quote %s needs review (tier resolved=%t cert resolved=%t)",
			quoteID, tier != nil && tier.Multiplier != nil, cert != nil && cert.Rate != nil)
		if err := s.quoteRepo.SetHITL(ctx, quoteID, true); err != nil {
			return "", err
		}
		if err := s.email.SendReviewNeededEmail(ctx, quote.ClientEmail, quote.ClientName, quoteID.String()); err != nil {
			log.Printf("ingestService.finishStatus: review email for %s failed: %v", quoteID, err)
		}
		return domain.StatusHITL, nil
	}

	// Submitted survives a recompute; everything earlier lands on ready.
	status := domain.StatusReady
	if quote.Status == domain.StatusSubmitted {
		status = domain.StatusSubmitted
	}
	if quote.Status == domain.StatusPending {
		// Step through priced so the transition ladder stays honest.
		if err := s.quoteRepo.UpdateStatus(ctx, quoteID, domain.StatusPriced); err != nil {
			return "", err
		}
	}
	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, status); err != nil {
		return "", err
	}
	if status == domain.StatusReady {
		if err := s.notifier.Notify(ctx, "quote_ready", map[string]interface{}{
			"quote_id": quoteID.String(),
		}); err != nil {
			log.Printf("ingestService.finishStatus: quote_ready webhook for %s failed: %v", quoteID, err)
		}
		quoteURL := fmt.Sprintf("%s/quote/%s", s.frontendURL, quoteID)
		if err := s.email.SendQuoteReadyEmail(ctx, quote.ClientEmail, quote.ClientName, quoteURL); err != nil {
			log.Printf("ingestService.finishStatus: ready email for %s failed: %v", quoteID, err)
		}
	}
	return status, nil
}

// resolveWithRetry retries the reference lookups a bounded number of times.
// Ingestion can race the intake wizard writing the quote's intended use, so a
// miss shortly after the callback often resolves a couple of seconds later.
func (s *ingestService) resolveWithRetry(ctx context.Context, quote *domain.QuoteSubmission) (*domain.TierResolution, *domain.CertResolution, error) {
	attempts := s.cfg.ResolveAttempts
	if attempts < 1 {
		attempts = 1
	}

	var tier *domain.TierResolution
	var cert *domain.CertResolution
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(s.cfg.ResolveRetryDelay):
			}
			fresh, err := s.quoteRepo.GetByID(ctx, quote.QuoteID)
			if err != nil && !errors.Is(err, domain.ErrQuoteNotFound) {
				return nil, nil, err
			}
			if fresh != nil {
				quote = fresh
			}
		}

		var err error
		if tier == nil || tier.Multiplier == nil {
			if tier, err = s.resolver.ResolveTier(ctx, quote); err != nil {
				return nil, nil, err
			}
		}
		if cert == nil || cert.Rate == nil {
			if cert, err = s.resolver.ResolveCert(ctx, quote); err != nil {
				return nil, nil, err
			}
		}
		if tier != nil && tier.Multiplier != nil && cert != nil && cert.Rate != nil {
			break
		}
	}
	return tier, cert, nil
}

func (s *ingestService) loadParams(ctx context.Context) (pricingParams, error) {
	params := pricingParams{
		BaseRate:       s.cfg.BaseRate,
		TaxRate:        s.cfg.TaxRate,
		RoundIncrement: s.cfg.RoundIncrement,
		Currency:       s.cfg.Currency,
	}
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return params, err
	}
	if settings == nil {
		return params, nil
	}
	if settings.BaseRate != nil {
		params.BaseRate = *settings.BaseRate
	}
	if settings.TaxRate != nil {
		params.TaxRate = *settings.TaxRate
	}
	if settings.RoundIncrement != nil {
		params.RoundIncrement = *settings.RoundIncrement
	}
	if settings.Currency != nil {
		params.Currency = *settings.Currency
	}
	return params, nil
}
