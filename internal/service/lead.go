package service

import (
	"context"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/logger"
	"roadmap-checkup/internal/metrics"
	"roadmap-checkup/internal/validation"
	"time"

	"go.uber.org/zap"
)

// Lead submission outcomes reported to metrics.
const (
	leadSuccess  = "success"
	leadError    = "error"
	leadRejected = "rejected"
)

// LeadService sends the completed quiz to the clinic's chat.
type LeadService interface {
	Submit(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error)
}

type leadServiceImpl struct {
	store      SessionStore
	catalog    CatalogService
	notifier   domain.LeadNotifier
	validator  *validation.Validator
	metrics    *metrics.QuizMetrics
	source     string
	resetDelay time.Duration
	location   *time.Location
	now        func() time.Time
	afterFunc  func(d time.Duration, f func())
}

// NewLeadService creates a LeadService from the quiz config.
func NewLeadService(store SessionStore, catalog CatalogService, notifier domain.LeadNotifier, m *metrics.QuizMetrics, cfg config.QuizConfig) LeadService {
	return &leadServiceImpl{
		store:      store,
		catalog:    catalog,
		notifier:   notifier,
		validator:  validation.NewValidator(),
		metrics:    m,
		source:     cfg.LeadSource,
		resetDelay: cfg.ResetDelay,
		location:   cfg.Location(),
		now:        time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Submit validates the contact form, then posts the lead report once. Only
// one submission per session may be in flight. On success the session is
// reset after the configured delay; on failure the answers are kept so the
// user can retry.
func (s *leadServiceImpl) Submit(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepResults {
		return nil, domain.NewInvalidStepError("submit", session.Step)
	}
	if session.SubmitStatus == domain.SubmitSuccess {
		return nil, domain.NewSubmissionInProgressError()
	}

	now := s.now().In(s.location)
	if errs := s.validator.ValidateLeadSubmission(session.Answers, now); len(errs) > 0 {
		s.metrics.ObserveLeadSubmission(leadRejected, 0)
		return nil, errs
	}

	acquired, err := s.store.AcquireSubmitLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.NewSubmissionInProgressError()
	}

	lead := domain.NewLead(session, now, s.source)
	started := time.Now()
	sendErr := s.notifier.SendLead(ctx, lead.Message())
	elapsed := time.Since(started).Seconds()

	if sendErr != nil {
		s.metrics.ObserveLeadSubmission(leadError, elapsed)
		session.SubmitStatus = domain.SubmitError
		session.UpdatedAt = s.now()
		if err := s.store.Save(ctx, session); err != nil {
			logger.Get().Error("Failed to save session after lead failure", zap.String("session_id", sessionID), zap.Error(err))
		}
		if err := s.store.ReleaseSubmitLock(ctx, sessionID); err != nil {
			logger.Get().Error("Failed to release submit lock", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, domain.NewLeadDeliveryError(sendErr)
	}

	s.metrics.ObserveLeadSubmission(leadSuccess, elapsed)
	logger.Get().Info("Lead submitted",
		zap.String("session_id", sessionID),
		zap.String("program", lead.ProgramType),
		zap.Bool("send_to_clinic", lead.SendToClinic))

	// The lead is delivered, so the answer is success even if the status
	// cannot be stored. The lock then stays until its TTL to block a resend.
	session.SubmitStatus = domain.SubmitSuccess
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, session); err != nil {
		logger.Get().Error("Failed to save session after lead success", zap.String("session_id", sessionID), zap.Error(err))
	} else if err := s.store.ReleaseSubmitLock(ctx, sessionID); err != nil {
		logger.Get().Error("Failed to release submit lock", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.afterFunc(s.resetDelay, func() { s.resetAfterSubmit(sessionID) })

	return buildQuizView(session, s.catalog.Current()), nil
}

// resetAfterSubmit clears a successfully submitted session. Sessions
// restarted in the meantime are left alone.
func (s *leadServiceImpl) resetAfterSubmit(sessionID string) {
	ctx := context.Background()
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logger.Get().Debug("Session gone before reset", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if session.SubmitStatus != domain.SubmitSuccess {
		return
	}
	session.Reset()
	if err := s.store.Save(ctx, session); err != nil {
		logger.Get().Error("Failed to reset session after submit", zap.String("session_id", sessionID), zap.Error(err))
	}
}
