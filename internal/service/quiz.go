package service

import (
	"context"
	"errors"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/logger"
	"roadmap-checkup/internal/metrics"
	"roadmap-checkup/internal/util"
	"roadmap-checkup/internal/validation"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Comparison outcomes reported to metrics.
const (
	comparisonOK         = "ok"
	comparisonIndividual = "individual"
	comparisonNoPrice    = "price_not_found"
	comparisonNoCatalog  = "prices_not_loaded"
)

// QuizService drives a session through the profile, exam choice and results
// steps.
type QuizService interface {
	Start(ctx context.Context) (*dto.QuizStateResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error)
	SubmitProfile(ctx context.Context, sessionID string, req dto.ProfileRequest) (*dto.QuizStateResponse, error)
	ChooseExam(ctx context.Context, sessionID string, req dto.ExamChoiceRequest) (*dto.QuizStateResponse, error)
	Back(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error)
	UpdateContact(ctx context.Context, sessionID string, req dto.ContactRequest) (*dto.QuizStateResponse, error)
	Restart(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error)
}

type quizServiceImpl struct {
	store     SessionStore
	catalog   CatalogService
	validator *validation.Validator
	metrics   *metrics.QuizMetrics
	location  *time.Location
	newID     func() string
	now       func() time.Time
}

// NewQuizService creates a QuizService. Dates on the contact form are checked
// against the current day in loc.
func NewQuizService(store SessionStore, catalog CatalogService, m *metrics.QuizMetrics, loc *time.Location) QuizService {
	if loc == nil {
		loc = time.UTC
	}
	return &quizServiceImpl{
		store:     store,
		catalog:   catalog,
		validator: validation.NewValidator(),
		metrics:   m,
		location:  loc,
		newID:     util.NewULID,
		now:       time.Now,
	}
}

func (s *quizServiceImpl) view(session *domain.QuizSession) *dto.QuizStateResponse {
	return buildQuizView(session, s.catalog.Current())
}

// Start creates a fresh session on the profile step.
func (s *quizServiceImpl) Start(ctx context.Context) (*dto.QuizStateResponse, error) {
	session := domain.NewQuizSession(s.newID())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.ObserveSessionStarted()
	logger.Get().Debug("Quiz session started", zap.String("session_id", session.ID))
	return s.view(session), nil
}

func (s *quizServiceImpl) Get(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// SubmitProfile records gender and age and moves to the exam choice.
func (s *quizServiceImpl) SubmitProfile(ctx context.Context, sessionID string, req dto.ProfileRequest) (*dto.QuizStateResponse, error) {
	gender := domain.Gender(strings.TrimSpace(req.Gender))
	if errs := s.validator.ValidateProfile(gender, req.Age); len(errs) > 0 {
		return nil, errs
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SetProfile(gender, req.Age); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// ChooseExam records the exam type. Full and regular exams are priced at
// both clinics first; a failed comparison leaves the session where it was.
// Individual consultations go straight to the results step.
func (s *quizServiceImpl) ChooseExam(ctx context.Context, sessionID string, req dto.ExamChoiceRequest) (*dto.QuizStateResponse, error) {
	examType := domain.ExamType(strings.TrimSpace(req.ExamType))
	if errs := s.validator.ValidateExamType(examType); len(errs) > 0 {
		return nil, errs
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepExamChoice {
		return nil, domain.NewInvalidStepError("exam", session.Step)
	}

	var result *domain.ComparisonResult
	if examType.Priced() {
		answers := session.Answers
		answers.ExamType = examType
		result, err = domain.Compare(answers, s.catalog.Current().Prices)
		if err != nil {
			s.observeComparisonFailure(sessionID, err)
			return nil, err
		}
		s.metrics.ObserveComparison(comparisonOK)
	} else {
		s.metrics.ObserveComparison(comparisonIndividual)
	}

	if err := session.ChooseExam(examType, result); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *quizServiceImpl) observeComparisonFailure(sessionID string, err error) {
	outcome := comparisonNoPrice
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodePricesNotLoaded {
		outcome = comparisonNoCatalog
	}
	s.metrics.ObserveComparison(outcome)
	logger.Get().Warn("Price comparison failed",
		zap.String("session_id", sessionID),
		zap.String("outcome", outcome),
		zap.Error(err))
}

func (s *quizServiceImpl) Back(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// UpdateContact merges the given contact fields into the session. Values are
// checked for shape only; required fields are enforced on submission.
func (s *quizServiceImpl) UpdateContact(ctx context.Context, sessionID string, req dto.ContactRequest) (*dto.QuizStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepResults {
		return nil, domain.NewInvalidStepError("contact", session.Step)
	}

	answers := session.Answers
	applyContact(&answers, req)
	if errs := s.validator.ValidateContact(answers, s.now().In(s.location)); len(errs) > 0 {
		return nil, errs
	}

	session.Answers = answers
	if session.SubmitStatus == domain.SubmitError {
		session.SubmitStatus = domain.SubmitIdle
	}
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func applyContact(a *domain.QuizAnswers, req dto.ContactRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Name, req.Name)
	set(&a.Phone, req.Phone)
	set(&a.Email, req.Email)
	set(&a.PreferredDate1, req.PreferredDate1)
	set(&a.PreferredDate2, req.PreferredDate2)
	set(&a.SpecialistType, req.SpecialistType)
	if req.Comments != nil {
		a.Comments = *req.Comments
	}
	if req.PreferredClinic != nil {
		a.PreferredClinic = domain.ClinicID(strings.TrimSpace(*req.PreferredClinic))
	}
	if req.RequestType != nil {
		a.RequestType = domain.RequestType(strings.TrimSpace(*req.RequestType))
	}
}

// Restart clears the session back to an empty profile step.
func (s *quizServiceImpl) Restart(ctx context.Context, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}
