package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certiquote/internal/domain"
	"certiquote/internal/service"
	"certiquote/mocks"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func i64p(i int64) *int64     { return &i }

func quoteWithLangs(src, dst string) *domain.QuoteSubmission {
	return &domain.QuoteSubmission{SourceLang: src, TargetLang: dst}
}

func TestResolveTier_HigherMultiplierWins(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "Portuguese").
		Return(&domain.LanguageRow{Multiplier: f64p(1.0), TierName: strp("Standard")}, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "Icelandic").
		Return(&domain.LanguageRow{Multiplier: f64p(1.4), TierName: strp("Rare")}, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("Portuguese", "Icelandic"))

	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, "Rare", tier.Name)
	assert.Equal(t, 1.4, *tier.Multiplier)
}

func TestResolveTier_TieKeepsSourceSide(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "French").
		Return(&domain.LanguageRow{Multiplier: f64p(1.2), TierName: strp("SourceTier")}, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "German").
		Return(&domain.LanguageRow{Multiplier: f64p(1.2), TierName: strp("TargetTier")}, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("French", "German"))

	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, "SourceTier", tier.Name)
}

func TestResolveTier_ViaTierID(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "Japanese").
		Return(&domain.LanguageRow{TierID: i64p(3)}, nil)
	refRepo.On("GetTierByID", mock.Anything, int64(3)).
		Return(&domain.TierRow{ID: 3, Name: "Asian Languages", Multiplier: 1.3}, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "English").Return(nil, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("Japanese", "English"))

	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, "Asian Languages", tier.Name)
	assert.Equal(t, 1.3, *tier.Multiplier)
}

func TestResolveTier_ViaTierName(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "Dutch").
		Return(&domain.LanguageRow{TierName: strp("European")}, nil)
	refRepo.On("GetTierByName", mock.Anything, "European").
		Return(&domain.TierRow{ID: 1, Name: "European", Multiplier: 1.1}, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "English").Return(nil, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("Dutch", "English"))

	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, 1.1, *tier.Multiplier)
}

func TestResolveTier_NamedTierWithoutRowKeepsNilMultiplier(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "Basque").
		Return(&domain.LanguageRow{TierName: strp("Mystery")}, nil)
	refRepo.On("GetTierByName", mock.Anything, "Mystery").Return(nil, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "English").Return(nil, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("Basque", "English"))

	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, "Mystery", tier.Name)
	assert.Nil(t, tier.Multiplier)
}

func TestResolveTier_NothingResolves(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("FindLanguage", mock.Anything, "", "Klingon").Return(nil, nil)
	refRepo.On("FindLanguage", mock.Anything, "", "Elvish").Return(nil, nil)

	tier, err := svc.ResolveTier(context.Background(), quoteWithLangs("Klingon", "Elvish"))

	require.NoError(t, err)
	assert.Nil(t, tier)
}

func TestResolveCert_ViaMappingID(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("GetCertMap", mock.Anything, int64(2)).
		Return(&domain.CertMapRow{IntendedUseID: 2, CertTypeID: i64p(5)}, nil)
	refRepo.On("GetCertTypeByID", mock.Anything, int64(5)).
		Return(&domain.CertTypeRow{ID: 5, Name: "Certified Translation", Code: strp("CERT"), Rate: f64p(10)}, nil)

	cert, err := svc.ResolveCert(context.Background(), &domain.QuoteSubmission{IntendedUseID: i64p(2)})

	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, "Certified Translation", cert.Name)
	assert.Equal(t, "CERT", *cert.Code)
	assert.Equal(t, 10.0, *cert.Rate)
}

func TestResolveCert_MappingNameFallback(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("GetCertMap", mock.Anything, int64(2)).
		Return(&domain.CertMapRow{IntendedUseID: 2, CertTypeName: strp("Notarized")}, nil)
	refRepo.On("GetCertTypeByName", mock.Anything, "Notarized").
		Return(&domain.CertTypeRow{ID: 9, Name: "Notarized", Amount: f64p(25)}, nil)

	cert, err := svc.ResolveCert(context.Background(), &domain.QuoteSubmission{IntendedUseID: i64p(2)})

	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, 25.0, *cert.Rate)
}

func TestResolveCert_GenericFallback(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("GetCertMap", mock.Anything, int64(8)).Return(nil, nil)
	refRepo.On("GetCertTypeByName", mock.Anything, "Immigration").Return(nil, nil)
	refRepo.On("SearchCertType", mock.Anything, "Immigration").Return(nil, nil)
	refRepo.On("SearchCertType", mock.Anything, "cert").
		Return(&domain.CertTypeRow{ID: 1, Name: "Certified Translation", Rate: f64p(10)}, nil)

	cert, err := svc.ResolveCert(context.Background(), &domain.QuoteSubmission{
		IntendedUseID: i64p(8),
		IntendedUse:   strp("Immigration"),
	})

	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, "Certified Translation", cert.Name)
}

func TestResolveCert_NoUsableFeeStaysNil(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("GetCertMap", mock.Anything, int64(2)).
		Return(&domain.CertMapRow{IntendedUseID: 2, CertTypeID: i64p(5)}, nil)
	refRepo.On("GetCertTypeByID", mock.Anything, int64(5)).
		Return(&domain.CertTypeRow{ID: 5, Name: "Sworn"}, nil)

	cert, err := svc.ResolveCert(context.Background(), &domain.QuoteSubmission{IntendedUseID: i64p(2)})

	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Nil(t, cert.Rate)
}

func TestResolveCert_NothingMatches(t *testing.T) {
	refRepo := new(mocks.MockReferenceRepo)
	svc := service.NewResolverService(refRepo)

	refRepo.On("SearchCertType", mock.Anything, "cert").Return(nil, nil)

	cert, err := svc.ResolveCert(context.Background(), &domain.QuoteSubmission{})

	require.NoError(t, err)
	assert.Nil(t, cert)
}
