package domain

// QuoteStatus represents the pricing lifecycle of a quote.
type QuoteStatus string

const (
	// StatusPending is the initial state after quote creation.
	StatusPending QuoteStatus = "pending"
	// StatusPriced means documents were aggregated and line items computed.
	StatusPriced QuoteStatus = "priced"
	// StatusReady means a full pricing pass succeeded and the quote can be shown.
	StatusReady QuoteStatus = "ready"
	// StatusSubmitted means the client accepted the quote.
	StatusSubmitted QuoteStatus = "submitted"
	// StatusPaid means payment was received.
	StatusPaid QuoteStatus = "paid"
	// StatusCompleted means the order was fulfilled.
	StatusCompleted QuoteStatus = "completed"
	// StatusHITL means automated pricing stalled and a person must finish the quote.
	StatusHITL QuoteStatus = "hitl"
	// StatusFailed means the external pipeline reported a hard failure.
	StatusFailed QuoteStatus = "failed"
)

// transitions defines the allowed status moves. HITL is handled separately:
// it is reachable from every state before paid.
var transitions = map[QuoteStatus][]QuoteStatus{
	StatusPending:   {StatusPriced},
	StatusPriced:    {StatusReady},
	StatusReady:     {StatusSubmitted},
	StatusSubmitted: {StatusPaid},
	StatusPaid:      {StatusCompleted},
	StatusHITL:      {StatusPriced, StatusReady},
	StatusFailed:    {},
	StatusCompleted: {},
}

// CanTransition reports whether a quote may move from s to next.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	if next == StatusHITL {
		return s != StatusPaid && s != StatusCompleted
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SummaryVisible reports whether the quote summary may be served in this status.
func (s QuoteStatus) SummaryVisible() bool {
	return s == StatusReady || s == StatusCompleted
}

// pollStages is the set of stages the client progress UI understands.
var pollStages = map[QuoteStatus]bool{
	StatusReady:  true,
	StatusHITL:   true,
	StatusFailed: true,
}

// Stage maps a status to the coarse polling stage reported to clients.
// Anything before the pipeline has reported progress shows as "ocr".
func (s QuoteStatus) Stage() string {
	switch {
	case pollStages[s]:
		return string(s)
	case s == StatusPriced:
		return "pricing"
	default:
		return "ocr"
	}
}

// FeeType distinguishes how a delivery option fee is computed.
type FeeType string

const (
	FeeTypeFlat    FeeType = "flat"
	FeeTypePercent FeeType = "percent"
)
