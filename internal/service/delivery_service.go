package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"certiquote/internal/domain"
	"certiquote/internal/port"
	"certiquote/internal/pricing"
)

// sameDayCutoffHour is the local hour after which same-day delivery can no
// longer be offered.
const sameDayCutoffHour = 12

// DeliveryQuote is one delivery option priced against a specific quote.
type DeliveryQuote struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Fee           float64 `json:"fee"`
	IsSameDay     bool    `json:"is_same_day"`
	BusinessDays  int     `json:"business_days"`
	EstimatedDate string  `json:"estimated_date"`
}

// DeliveryService prices the active delivery options for a quote. Percent
// fees apply to the order subtotal; turnaround grows with document count.
type DeliveryService interface {
	ListOptions(ctx context.Context, quoteID uuid.UUID) ([]DeliveryQuote, error)
}

type deliveryService struct {
	quoteRepo  port.QuoteRepository
	resultRepo port.ResultRepository
	refRepo    port.ReferenceRepository
	now        func() time.Time
}

// NewDeliveryService creates a new DeliveryService implementation.
func NewDeliveryService(quoteRepo port.QuoteRepository, resultRepo port.ResultRepository, refRepo port.ReferenceRepository) DeliveryService {
	return &deliveryService{
		quoteRepo:  quoteRepo,
		resultRepo: resultRepo,
		refRepo:    refRepo,
		now:        time.Now,
	}
}

func (s *deliveryService) ListOptions(ctx context.Context, quoteID uuid.UUID) ([]DeliveryQuote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	result, err := s.resultRepo.GetResult(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	items, err := s.resultRepo.ListSubOrders(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	if result != nil {
		subtotal = result.Subtotal
	}
	var totalPages float64
	for _, it := range items {
		totalPages += it.BillablePages
	}

	options, err := s.refRepo.ListDeliveryOptions(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []DeliveryQuote
	for _, opt := range options {
		if opt.IsSameDay {
			ok, err := s.sameDayEligible(ctx, quote, items, totalPages, now)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		fee := opt.FeeAmount
		if opt.FeeType == domain.FeeTypePercent {
			fee = pricing.Round2(subtotal * opt.FeeAmount / 100)
		}
		days := opt.BaseBusinessDays
		if extra := len(items) - 1; extra > 0 {
			days += opt.AddlBusinessDays * extra
		}
		if opt.IsSameDay {
			days = 0
		}

		out = append(out, DeliveryQuote{
			ID:            opt.ID,
			Name:          opt.Name,
			Fee:           pricing.Round2(fee),
			IsSameDay:     opt.IsSameDay,
			BusinessDays:  days,
			EstimatedDate: addBusinessDays(now, days).Format("2006-01-02"),
		})
	}
	return out, nil
}

// sameDayEligible gates the same-day option: a single billable page, an
// order placed before the cutoff, and a document type and country combination
// the qualifier table approves.
func (s *deliveryService) sameDayEligible(ctx context.Context, quote *domain.QuoteSubmission, items []domain.SubOrder, totalPages float64, now time.Time) (bool, error) {
	if totalPages > 1 || len(items) == 0 {
		return false, nil
	}
	if now.Hour() >= sameDayCutoffHour {
		return false, nil
	}
	if quote.CountryOfIssue == nil {
		return false, nil
	}
	q, err := s.refRepo.GetSameDayQualifier(ctx, items[0].DocumentLabel, *quote.CountryOfIssue)
	if err != nil {
		return false, err
	}
	return q != nil, nil
}

// addBusinessDays advances the date by n weekdays, pushing any weekend start
// to the following Monday first.
func addBusinessDays(from time.Time, n int) time.Time {
	t := from
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	for i := 0; i < n; {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() != time.Saturday && t.Weekday() != time.Sunday {
			i++
		}
	}
	return t
}
