package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"certiquote/internal/config"
	"certiquote/internal/domain"
	"certiquote/internal/port"
)

// LinkClaims are the signed claims inside a quote resume token.
type LinkClaims struct {
	jwt.RegisteredClaims
	QuoteID uuid.UUID `json:"quote_id"`
}

// LinkService issues and redeems signed resume links so a client can return
// to an in-progress quote from an email without an account.
type LinkService interface {
	// SendResumeLink emails the client a signed link back into their quote.
	SendResumeLink(ctx context.Context, quoteID uuid.UUID) error
	// Redeem validates a token and returns the quote it references.
	Redeem(ctx context.Context, token string) (*domain.QuoteSubmission, error)
}

type linkService struct {
	quoteRepo port.QuoteRepository
	email     port.EmailSender
	cfg       config.LinkConfig
}

// NewLinkService creates a new LinkService implementation.
func NewLinkService(quoteRepo port.QuoteRepository, email port.EmailSender, cfg config.LinkConfig) LinkService {
	return &linkService{
		quoteRepo: quoteRepo,
		email:     email,
		cfg:       cfg,
	}
}

func (s *linkService) SendResumeLink(ctx context.Context, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	token, err := s.sign(quoteID)
	if err != nil {
		return err
	}
	resumeURL := fmt.Sprintf("%s/quote/resume?token=%s", s.cfg.FrontendURL, token)
	return s.email.SendQuoteLinkEmail(ctx, quote.ClientEmail, quote.ClientName, resumeURL)
}

func (s *linkService) Redeem(ctx context.Context, tokenString string) (*domain.QuoteSubmission, error) {
	claims := &LinkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil || !token.Valid || claims.QuoteID == uuid.Nil {
		return nil, domain.ErrLinkTokenInvalid
	}
	return s.quoteRepo.GetByID(ctx, claims.QuoteID)
}

func (s *linkService) sign(quoteID uuid.UUID) (string, error) {
	now := time.Now()
	claims := LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
			Subject:   quoteID.String(),
		},
		QuoteID: quoteID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("linkService.sign: %w", err)
	}
	return signed, nil
}
