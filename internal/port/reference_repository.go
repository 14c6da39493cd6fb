package port

import (
	"context"

	"certiquote/internal/domain"
)

// ReferenceRepository reads the pricing reference tables (languages, tiers,
// intended uses, certification types, delivery options). All tables are
// read-only from this service's perspective. Lookup methods return nil, nil
// when no row matches: a miss is a normal resolver outcome, not an error.
type ReferenceRepository interface {
	// FindLanguage matches code against any of the known code columns and
	// name against any of the known name columns, case-insensitively.
	FindLanguage(ctx context.Context, code, name string) (*domain.LanguageRow, error)
	GetTierByID(ctx context.Context, id int64) (*domain.TierRow, error)
	GetTierByName(ctx context.Context, name string) (*domain.TierRow, error)

	GetIntendedUse(ctx context.Context, id int64) (*domain.IntendedUseRow, error)
	GetCertMap(ctx context.Context, intendedUseID int64) (*domain.CertMapRow, error)
	GetCertTypeByID(ctx context.Context, id int64) (*domain.CertTypeRow, error)
	// GetCertTypeByName is a case-insensitive exact match.
	GetCertTypeByName(ctx context.Context, name string) (*domain.CertTypeRow, error)
	// SearchCertType is a case-insensitive substring match returning the
	// first hit.
	SearchCertType(ctx context.Context, term string) (*domain.CertTypeRow, error)

	ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error)
	GetSameDayQualifier(ctx context.Context, docType, country string) (*domain.SameDayQualifier, error)
}

// SettingsRepository reads the app_settings row. Returns nil, nil when the
// row is absent; callers fall back to configured defaults.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.AppSettings, error)
}
