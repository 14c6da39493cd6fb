package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrMissingData       = errors.New("no parseable ingestion data provided")
	ErrInvalidTransition = errors.New("invalid quote status transition")
	ErrLinkTokenInvalid  = errors.New("quote link token is invalid or expired")
	ErrUnauthorized      = errors.New("unauthorized")
)

// NotReadyError is returned when a summary is requested before the quote
// reaches a visible status. It carries the current status so the caller can
// keep polling.
type NotReadyError struct {
	Status QuoteStatus
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("quote not ready: status %s", e.Status)
}
