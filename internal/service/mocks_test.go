package service

import (
	"context"

	"roadmap-checkup/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockSheetSource ---
type MockSheetSource struct {
	mock.Mock
}

func (m *MockSheetSource) FetchPrices(ctx context.Context) (*domain.PriceTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceTable), args.Error(1)
}

func (m *MockSheetSource) FetchClinics(ctx context.Context) (*domain.ClinicDirectory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClinicDirectory), args.Error(1)
}

func (m *MockSheetSource) FetchPrograms(ctx context.Context) ([]domain.ProgramDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgramDescriptor), args.Error(1)
}

// --- MockLeadNotifier ---
type MockLeadNotifier struct {
	mock.Mock
}

func (m *MockLeadNotifier) SendLead(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

// --- staticCatalog ---
// staticCatalog serves a fixed catalog to services under test.
type staticCatalog struct {
	catalog *domain.Catalog
}

func newStaticCatalog(prices *domain.PriceTable) *staticCatalog {
	return &staticCatalog{catalog: &domain.Catalog{
		Prices:  prices,
		Clinics: domain.DemoClinicDirectory(),
		Status:  domain.StatusSuccess,
	}}
}

func (c *staticCatalog) Reload(context.Context) *domain.Catalog { return c.catalog }

func (c *staticCatalog) Current() *domain.Catalog { return c.catalog }

func (c *staticCatalog) ProgramDetails(code string, limit int) (domain.ProgramDetails, bool) {
	program, ok := domain.FindProgram(c.catalog.Programs, code)
	if !ok {
		return domain.ProgramDetails{}, false
	}
	return program.Details(limit), true
}
