package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"certiquote/internal/domain"
	"certiquote/internal/port"
	"certiquote/internal/pricing"
)

// ResolverService resolves a quote's language pair and intended use against
// the reference tables. Lookups return nil when nothing matches; the caller
// decides whether a miss stalls the quote.
type ResolverService interface {
	// ResolveTier resolves the pricing tier for the quote's language pair.
	// Both sides are resolved independently and the higher multiplier wins;
	// on a tie the source side is kept.
	ResolveTier(ctx context.Context, q *domain.QuoteSubmission) (*domain.TierResolution, error)
	// ResolveCert resolves the certification type implied by the quote's
	// intended use. A resolution with a nil Rate means the fee could not be
	// determined and pricing must not guess one.
	ResolveCert(ctx context.Context, q *domain.QuoteSubmission) (*domain.CertResolution, error)
}

type resolverService struct {
	refRepo port.ReferenceRepository
}

// NewResolverService creates a new ResolverService implementation.
func NewResolverService(refRepo port.ReferenceRepository) ResolverService {
	return &resolverService{refRepo: refRepo}
}

func (s *resolverService) ResolveTier(ctx context.Context, q *domain.QuoteSubmission) (*domain.TierResolution, error) {
	source, err := s.resolveSide(ctx, deref(q.SourceCode), q.SourceLang)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveSide(ctx, deref(q.TargetCode), q.TargetLang)
	if err != nil {
		return nil, err
	}

	switch {
	case source == nil:
		return target, nil
	case target == nil:
		return source, nil
	case multiplierOf(target) > multiplierOf(source):
		return target, nil
	default:
		return source, nil
	}
}

// resolveSide resolves one language of the pair to a tier. The language row
// may carry the tier directly as a multiplier, as a tier_id, or as a tier
// name; each is tried in that order.
func (s *resolverService) resolveSide(ctx context.Context, code, name string) (*domain.TierResolution, error) {
	if code == "" && strings.TrimSpace(name) == "" {
		return nil, nil
	}
	lang, err := s.refRepo.FindLanguage(ctx, code, name)
	if err != nil {
		return nil, fmt.Errorf("resolver.resolveSide: %w", err)
	}
	if lang == nil {
		return nil, nil
	}

	tierName := pricing.FirstString(lang.TierName, lang.Tier)
	if lang.Multiplier != nil {
		res := &domain.TierResolution{Multiplier: lang.Multiplier}
		if tierName != nil {
			res.Name = *tierName
		}
		return res, nil
	}
	if lang.TierID != nil {
		tier, err := s.refRepo.GetTierByID(ctx, *lang.TierID)
		if err != nil {
			return nil, fmt.Errorf("resolver.resolveSide: %w", err)
		}
		if tier != nil {
			return &domain.TierResolution{Name: tier.Name, Multiplier: &tier.Multiplier}, nil
		}
	}
	if tierName != nil {
		tier, err := s.refRepo.GetTierByName(ctx, *tierName)
		if err != nil {
			return nil, fmt.Errorf("resolver.resolveSide: %w", err)
		}
		if tier != nil {
			return &domain.TierResolution{Name: tier.Name, Multiplier: &tier.Multiplier}, nil
		}
		// A named tier with no matching row still identifies the tier; the
		// multiplier stays unknown.
		return &domain.TierResolution{Name: *tierName}, nil
	}
	return nil, nil
}

func (s *resolverService) ResolveCert(ctx context.Context, q *domain.QuoteSubmission) (*domain.CertResolution, error) {
	row, err := s.certFromMapping(ctx, q)
	if err != nil {
		return nil, err
	}
	if row == nil && q.IntendedUse != nil {
		row, err = s.certByName(ctx, *q.IntendedUse)
		if err != nil {
			return nil, err
		}
	}
	if row == nil {
		// Last resort: any certification type whose name mentions
		// certification at all. The schema has shipped with a single
		// "Certified Translation" row more than once.
		row, err = s.refRepo.SearchCertType(ctx, "cert")
		if err != nil {
			return nil, fmt.Errorf("resolver.ResolveCert: %w", err)
		}
	}
	if row == nil {
		return nil, nil
	}
	return &domain.CertResolution{
		Name: row.Name,
		Code: row.Code,
		Rate: pricing.FirstFloat(row.Rate, row.Amount, row.Multiplier),
	}, nil
}

// certFromMapping follows the intended_use -> cert_type mapping table. The
// foreign key has been both a numeric id and a name string across schema
// versions, so both shapes are honored.
func (s *resolverService) certFromMapping(ctx context.Context, q *domain.QuoteSubmission) (*domain.CertTypeRow, error) {
	if q.IntendedUseID == nil {
		return nil, nil
	}
	m, err := s.refRepo.GetCertMap(ctx, *q.IntendedUseID)
	if err != nil {
		return nil, fmt.Errorf("resolver.certFromMapping: %w", err)
	}
	if m == nil {
		return nil, nil
	}
	if m.CertTypeID != nil {
		row, err := s.refRepo.GetCertTypeByID(ctx, *m.CertTypeID)
		if err != nil {
			return nil, fmt.Errorf("resolver.certFromMapping: %w", err)
		}
		if row != nil {
			return row, nil
		}
	}
	if name := pricing.FirstString(m.CertTypeName, m.CertTypeCode); name != nil {
		row, err := s.certByName(ctx, *name)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
		log.Printf("resolver.certFromMapping: mapped cert type %q has no cert_types row", *name)
	}
	return nil, nil
}

// certByName tries an exact case-insensitive match, then a substring match.
func (s *resolverService) certByName(ctx context.Context, name string) (*domain.CertTypeRow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	row, err := s.refRepo.GetCertTypeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolver.certByName: %w", err)
	}
	if row != nil {
		return row, nil
	}
	row, err = s.refRepo.SearchCertType(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolver.certByName: %w", err)
	}
	return row, nil
}

func multiplierOf(t *domain.TierResolution) float64 {
	if t == nil || t.Multiplier == nil {
		return 0
	}
	return *t.Multiplier
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
