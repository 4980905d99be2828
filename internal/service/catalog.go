package service

import (
	"context"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/logger"
	"roadmap-checkup/internal/metrics"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogService owns the price, clinic and program data loaded from the
// spreadsheet. Readers get an immutable snapshot.
type CatalogService interface {
	Reload(ctx context.Context) *domain.Catalog
	Current() *domain.Catalog
	ProgramDetails(code string, limit int) (domain.ProgramDetails, bool)
}

type catalogServiceImpl struct {
	source  domain.SheetSource
	metrics *metrics.QuizMetrics
	now     func() time.Time

	mu      sync.RWMutex
	current *domain.Catalog
}

// NewCatalogService creates a catalog in the loading state. Call Reload to
// populate it.
func NewCatalogService(source domain.SheetSource, m *metrics.QuizMetrics) CatalogService {
	return &catalogServiceImpl{
		source:  source,
		metrics: m,
		now:     time.Now,
		current: &domain.Catalog{
			Clinics: domain.DemoClinicDirectory(),
			Status:  domain.StatusLoading,
		},
	}
}

// Reload fetches all three sheets concurrently and waits for every fetch to
// settle. Prices and clinics must both load for a live catalog; otherwise the
// demo tables are used. A failed program sheet leaves the list empty.
func (s *catalogServiceImpl) Reload(ctx context.Context) *domain.Catalog {
	var (
		g           errgroup.Group
		prices      *domain.PriceTable
		clinics     *domain.ClinicDirectory
		programs    []domain.ProgramDescriptor
		pricesErr   error
		clinicsErr  error
		programsErr error
	)

	g.Go(func() error {
		prices, pricesErr = s.source.FetchPrices(ctx)
		return nil
	})
	g.Go(func() error {
		clinics, clinicsErr = s.source.FetchClinics(ctx)
		return nil
	})
	g.Go(func() error {
		programs, programsErr = s.source.FetchPrograms(ctx)
		return nil
	})
	_ = g.Wait()

	catalog := &domain.Catalog{
		Prices:   prices,
		Clinics:  clinics,
		Programs: programs,
		Status:   domain.StatusSuccess,
		LoadedAt: s.now(),
	}

	if pricesErr != nil || clinicsErr != nil {
		logger.Get().Warn("Sheet data unavailable, using demo data",
			zap.NamedError("prices_error", pricesErr),
			zap.NamedError("clinics_error", clinicsErr))
		catalog.Status = domain.StatusDemo
		catalog.Prices = domain.DemoPriceTable()
		if clinicsErr != nil {
			catalog.Clinics = domain.DemoClinicDirectory()
		}
	}
	if programsErr != nil {
		logger.Get().Warn("Program descriptions unavailable", zap.Error(programsErr))
		catalog.Programs = nil
	}

	s.mu.Lock()
	s.current = catalog
	s.mu.Unlock()

	s.metrics.ObserveCatalogLoad(string(catalog.Status))
	logger.Get().Info("Catalog loaded",
		zap.String("status", string(catalog.Status)),
		zap.Int("priced_programs", catalog.Prices.ProgramCount()),
		zap.Int("programs", len(catalog.Programs)))
	return catalog
}

func (s *catalogServiceImpl) Current() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ProgramDetails looks up a program description by code.
func (s *catalogServiceImpl) ProgramDetails(code string, limit int) (domain.ProgramDetails, bool) {
	program, ok := domain.FindProgram(s.Current().Programs, code)
	if !ok {
		return domain.ProgramDetails{}, false
	}
	return program.Details(limit), true
}
