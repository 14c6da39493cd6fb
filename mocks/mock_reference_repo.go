package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockReferenceRepo is a mock implementation of port.ReferenceRepository.
type MockReferenceRepo struct {
	mock.Mock
}

func (m *MockReferenceRepo) FindLanguage(ctx context.Context, code, name string) (*domain.LanguageRow, error) {
	args := m.Called(ctx, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LanguageRow), args.Error(1)
}

func (m *MockReferenceRepo) GetTierByID(ctx context.Context, id int64) (*domain.TierRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TierRow), args.Error(1)
}

func (m *MockReferenceRepo) GetTierByName(ctx context.Context, name string) (*domain.TierRow, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TierRow), args.Error(1)
}

func (m *MockReferenceRepo) GetIntendedUse(ctx context.Context, id int64) (*domain.IntendedUseRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntendedUseRow), args.Error(1)
}

func (m *MockReferenceRepo) GetCertMap(ctx context.Context, intendedUseID int64) (*domain.CertMapRow, error) {
	args := m.Called(ctx, intendedUseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertMapRow), args.Error(1)
}

func (m *MockReferenceRepo) GetCertTypeByID(ctx context.Context, id int64) (*domain.CertTypeRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertTypeRow), args.Error(1)
}

func (m *MockReferenceRepo) GetCertTypeByName(ctx context.Context, name string) (*domain.CertTypeRow, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertTypeRow), args.Error(1)
}

func (m *MockReferenceRepo) SearchCertType(ctx context.Context, term string) (*domain.CertTypeRow, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertTypeRow), args.Error(1)
}

func (m *MockReferenceRepo) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryOption), args.Error(1)
}

func (m *MockReferenceRepo) GetSameDayQualifier(ctx context.Context, docType, country string) (*domain.SameDayQualifier, error) {
	args := m.Called(ctx, docType, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SameDayQualifier), args.Error(1)
}
