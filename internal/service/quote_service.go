package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"certiquote/internal/domain"
	"certiquote/internal/notify"
	"certiquote/internal/port"
)

// CreateQuoteInput is the DTO for opening a new quote.
type CreateQuoteInput struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
}

// UpdateClientInput is the DTO for the intake wizard's client step. All
// pointer fields are optional; absent fields leave the stored value alone.
type UpdateClientInput struct {
	ClientName     string  `json:"client_name"`
	ClientEmail    string  `json:"client_email"`
	Phone          *string `json:"phone"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
	SourceCode     *string `json:"source_code"`
	TargetCode     *string `json:"target_code"`
	IntendedUse    *string `json:"intended_use"`
	IntendedUseID  *int64  `json:"intended_use_id"`
	CountryOfIssue *string `json:"country_of_issue"`
	CountryCode    *string `json:"country_code"`
}

// UpdateMetadataInput is the DTO for attaching ancillary metadata to the
// results blob without touching pricing.
type UpdateMetadataInput struct {
	DocumentTypeID    *int64                 `json:"document_type_id"`
	DocumentTypeOther string                 `json:"document_type_other"`
	ReferenceNotes    string                 `json:"reference_notes"`
	ReferenceFiles    []domain.ReferenceFile `json:"reference_files"`
	CountryOfIssue    string                 `json:"country_of_issue"`
}

// QuoteStatusView is the polling payload for the intake progress UI.
type QuoteStatusView struct {
	QuoteID       uuid.UUID          `json:"quote_id"`
	Status        domain.QuoteStatus `json:"status"`
	Stage         string             `json:"stage"`
	HITLRequested bool               `json:"hitl_requested"`
}

// QuoteService manages the quote lifecycle outside of pricing: creation,
// intake updates, acceptance, review requests and payment.
type QuoteService interface {
	Create(ctx context.Context, input *CreateQuoteInput) (*domain.QuoteSubmission, error)
	Get(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error)
	UpdateClient(ctx context.Context, quoteID uuid.UUID, input *UpdateClientInput) (*domain.QuoteSubmission, error)
	// Accept moves a ready quote to submitted.
	Accept(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error)
	// RequestHITL flags the quote for human review.
	RequestHITL(ctx context.Context, quoteID uuid.UUID) error
	UpdateMetadata(ctx context.Context, quoteID uuid.UUID, input *UpdateMetadataInput) error
	Status(ctx context.Context, quoteID uuid.UUID) (*QuoteStatusView, error)
	// MarkPaid records a payment confirmation from the payment webhook.
	MarkPaid(ctx context.Context, quoteID uuid.UUID, reference string) error
}

type quoteService struct {
	quoteRepo    port.QuoteRepository
	customerRepo port.CustomerRepository
	refRepo      port.ReferenceRepository
	resultRepo   port.ResultRepository
	notifier     port.Notifier
}

// NewQuoteService creates a new QuoteService implementation.
func NewQuoteService(
	quoteRepo port.QuoteRepository,
	customerRepo port.CustomerRepository,
	refRepo port.ReferenceRepository,
	resultRepo port.ResultRepository,
	notifier port.Notifier,
) QuoteService {
	return &quoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		refRepo:      refRepo,
		resultRepo:   resultRepo,
		notifier:     notifier,
	}
}

func (s *quoteService) Create(ctx context.Context, input *CreateQuoteInput) (*domain.QuoteSubmission, error) {
	quote := &domain.QuoteSubmission{
		QuoteID:     uuid.New(),
		ClientName:  strings.TrimSpace(input.ClientName),
		ClientEmail: strings.ToLower(strings.TrimSpace(input.ClientEmail)),
		Status:      domain.StatusPending,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Get(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	return s.quoteRepo.GetByID(ctx, quoteID)
}

func (s *quoteService) UpdateClient(ctx context.Context, quoteID uuid.UUID, input *UpdateClientInput) (*domain.QuoteSubmission, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if input.ClientName != "" {
		quote.ClientName = strings.TrimSpace(input.ClientName)
	}
	if input.ClientEmail != "" {
		quote.ClientEmail = strings.ToLower(strings.TrimSpace(input.ClientEmail))
	}
	if input.Phone != nil {
		quote.Phone = input.Phone
	}
	if input.SourceLang != "" {
		quote.SourceLang = input.SourceLang
	}
	if input.TargetLang != "" {
		quote.TargetLang = input.TargetLang
	}
	if input.SourceCode != nil {
		quote.SourceCode = input.SourceCode
	}
	if input.TargetCode != nil {
		quote.TargetCode = input.TargetCode
	}
	if input.CountryOfIssue != nil {
		quote.CountryOfIssue = input.CountryOfIssue
	}
	if input.CountryCode != nil {
		quote.CountryCode = input.CountryCode
	}

	if err := s.applyIntendedUse(ctx, quote, input); err != nil {
		return nil, err
	}
	if quote.ClientEmail != "" {
		if err := s.attachCustomer(ctx, quote); err != nil {
			return nil, err
		}
	}
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	// The automation side wants the current tier/cert snapshot with every
	// update; the fields stay null until pricing resolves them.
	if err := s.notifier.Notify(ctx, "quote_updated", map[string]interface{}{
		"quote_id":        quoteID.String(),
		"job_id":          notify.JobIDFromQuote(quoteID.String()),
		"tier_name":       quote.TierName,
		"tier_multiplier": quote.TierMultiplier,
		"cert_type_name":  quote.CertTypeName,
		"cert_type_code":  quote.CertTypeCode,
		"cert_type_rate":  quote.CertTypeRate,
	}); err != nil {
		log.Printf("quoteService.UpdateClient: quote_updated webhook for %s failed: %v", quoteID, err)
	}
	return quote, nil
}

// applyIntendedUse reconciles the id and name forms of the intended use. An
// id that resolves wins and refreshes the stored name; a bare name is kept
// as supplied for the cert resolver's name fallbacks.
func (s *quoteService) applyIntendedUse(ctx context.Context, quote *domain.QuoteSubmission, input *UpdateClientInput) error {
	if input.IntendedUseID != nil {
		quote.IntendedUseID = input.IntendedUseID
		use, err := s.refRepo.GetIntendedUse(ctx, *input.IntendedUseID)
		if err != nil {
			return err
		}
		if use != nil {
			quote.IntendedUse = &use.Name
			return nil
		}
	}
	if input.IntendedUse != nil {
		quote.IntendedUse = input.IntendedUse
	}
	return nil
}

// attachCustomer finds or creates the customer record for the quote's email.
func (s *quoteService) attachCustomer(ctx context.Context, quote *domain.QuoteSubmission) error {
	customer, err := s.customerRepo.FindByEmail(ctx, quote.ClientEmail)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if customer == nil {
		customer = &domain.Customer{
			ID:    uuid.New(),
			Name:  quote.ClientName,
			Email: quote.ClientEmail,
			Phone: quote.Phone,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return err
		}
	}
	quote.CustomerID = &customer.ID
	return nil
}

func (s *quoteService) Accept(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransition(domain.StatusSubmitted) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, domain.StatusSubmitted); err != nil {
		return nil, err
	}
	quote.Status = domain.StatusSubmitted

	if err := s.notifier.Notify(ctx, "quote_accepted", map[string]interface{}{
		"quote_id": quoteID.String(),
		"job_id":   notify.JobIDFromQuote(quoteID.String()),
	}); err != nil {
		log.Printf("quoteService.Accept: quote_accepted webhook for %s failed: %v", quoteID, err)
	}
	return quote, nil
}

func (s *quoteService) RequestHITL(ctx context.Context, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if !quote.Status.CanTransition(domain.StatusHITL) {
		return domain.ErrInvalidTransition
	}
	if err := s.quoteRepo.SetHITL(ctx, quoteID, true); err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, "hitl_requested", map[string]interface{}{
		"quote_id": quoteID.String(),
	}); err != nil {
		log.Printf("quoteService.RequestHITL: hitl webhook for %s failed: %v", quoteID, err)
	}
	return nil
}

func (s *quoteService) UpdateMetadata(ctx context.Context, quoteID uuid.UUID, input *UpdateMetadataInput) error {
	if _, err := s.quoteRepo.GetByID(ctx, quoteID); err != nil {
		return err
	}
	result, err := s.resultRepo.GetResult(ctx, quoteID)
	if err != nil {
		return err
	}

	blob := &domain.ResultsBlob{}
	if result != nil {
		if blob, err = domain.DecodeResultsBlob(result.ResultsJSON); err != nil {
			return err
		}
	}
	if input.DocumentTypeID != nil {
		blob.DocumentTypeID = input.DocumentTypeID
	}
	if input.DocumentTypeOther != "" {
		blob.DocumentTypeOther = input.DocumentTypeOther
	}
	if input.ReferenceNotes != "" {
		blob.ReferenceNotes = input.ReferenceNotes
	}
	if len(input.ReferenceFiles) > 0 {
		blob.ReferenceFiles = input.ReferenceFiles
	}
	if input.CountryOfIssue != "" {
		blob.CountryOfIssue = input.CountryOfIssue
	}

	raw, err := blob.Encode()
	if err != nil {
		return err
	}
	return s.resultRepo.UpsertBlob(ctx, quoteID, raw)
}

func (s *quoteService) Status(ctx context.Context, quoteID uuid.UUID) (*QuoteStatusView, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return &QuoteStatusView{
		QuoteID:       quoteID,
		Status:        quote.Status,
		Stage:         quote.Status.Stage(),
		HITLRequested: quote.HITLRequested,
	}, nil
}

func (s *quoteService) MarkPaid(ctx context.Context, quoteID uuid.UUID, reference string) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if !quote.Status.CanTransition(domain.StatusPaid) {
		return domain.ErrInvalidTransition
	}
	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, domain.StatusPaid); err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, "quote_paid", map[string]interface{}{
		"quote_id":  quoteID.String(),
		"job_id":    notify.JobIDFromQuote(quoteID.String()),
		"reference": reference,
	}); err != nil {
		log.Printf("quoteService.MarkPaid: quote_paid webhook for %s failed: %v", quoteID, err)
	}
	return nil
}
