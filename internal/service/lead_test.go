package service

import (
	"context"
	"errors"
	"roadmap-checkup/internal/adapter"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type leadFixture struct {
	svc      *leadServiceImpl
	store    SessionStore
	notifier *MockLeadNotifier
	delays   []time.Duration
	pending  []func()
}

func newLeadFixture(t *testing.T) *leadFixture {
	t.Helper()
	f := &leadFixture{notifier: new(MockLeadNotifier)}
	f.store = NewSessionStore(adapter.NewMemoryCacheAdapter(), time.Hour, 30*time.Second)

	cfg := config.QuizConfig{ResetDelay: 3 * time.Second, LeadSource: "roadmap.check-up.in.ua"}
	f.svc = NewLeadService(f.store, newStaticCatalog(domain.DemoPriceTable()), f.notifier, nil, cfg).(*leadServiceImpl)
	f.svc.location = time.FixedZone("EEST", 3*60*60)
	f.svc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	f.svc.afterFunc = func(d time.Duration, fn func()) {
		f.delays = append(f.delays, d)
		f.pending = append(f.pending, fn)
	}
	return f
}

// resultsSession stores a female 35 full-exam session on the results step.
func (f *leadFixture) resultsSession(t *testing.T, mutate func(a *domain.QuizAnswers)) *domain.QuizSession {
	t.Helper()
	session := domain.NewQuizSession(testSessionID)
	require.NoError(t, session.SetProfile(domain.GenderFemale, 35))
	answers := session.Answers
	answers.ExamType = domain.ExamFull
	result, err := domain.Compare(answers, domain.DemoPriceTable())
	require.NoError(t, err)
	require.NoError(t, session.ChooseExam(domain.ExamFull, result))

	session.Answers.Name = "Олена"
	session.Answers.Phone = "+380501234567"
	session.Answers.PreferredClinic = domain.ClinicOnClinic
	session.Answers.RequestType = domain.RequestStandard
	if mutate != nil {
		mutate(&session.Answers)
	}
	require.NoError(t, f.store.Save(context.Background(), session))
	return session
}

func TestLeadService_Submit_Success(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)

	var sent string
	f.notifier.On("SendLead", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(1) }).
		Return(nil).Once()

	view, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitSuccess, view.SubmitStatus)
	assert.False(t, view.Results.CanSubmit)

	assert.True(t, strings.HasPrefix(sent, "🎯 НОВА ЗАЯВКА З ROADMAP"))
	assert.Contains(t, sent, "📋 Програма: Повне обстеження для жінок 30-40 років")
	assert.Contains(t, sent, "👤 Олена (Жінка, 35 років)")
	assert.Contains(t, sent, "🏥 Клініка: OnClinic Одеса")
	assert.Contains(t, sent, "💰 Ціни: OnClinic 9585 ₴ | SanaVita 9250 ₴")
	assert.Contains(t, sent, "📧 Не вказано")
	assert.Contains(t, sent, "✅ ВІДПРАВЛЕНО В КЛІНІКУ")
	assert.Contains(t, sent, "🕐 16.10.2026, 12:00:00 | 🌐 roadmap.check-up.in.ua")

	// The lock is free once the status is stored; the success status alone
	// rejects a second submit before the reset.
	ok, err := f.store.AcquireSubmitLock(ctx, testSessionID)
	require.NoError(t, err)
	assert.True(t, ok, "submit lock released after success")
	require.NoError(t, f.store.ReleaseSubmitLock(ctx, testSessionID))

	_, err = f.svc.Submit(ctx, testSessionID)
	assertCode(t, err, domain.CodeSubmissionInProgress)
	f.notifier.AssertNumberOfCalls(t, "SendLead", 1)

	require.Len(t, f.pending, 1)
	assert.Equal(t, 3*time.Second, f.delays[0])
	f.pending[0]()

	loaded, err := f.store.Get(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfile, loaded.Step)
	assert.Equal(t, domain.NewQuizAnswers(), loaded.Answers)
	assert.Equal(t, domain.SubmitIdle, loaded.SubmitStatus)
}

func TestLeadService_Submit_ValidationBeforeNetwork(t *testing.T) {
	f := newLeadFixture(t)
	f.resultsSession(t, func(a *domain.QuizAnswers) {
		a.Name = "   "
		a.PreferredClinic = domain.ClinicUnset
	})

	_, err := f.svc.Submit(context.Background(), testSessionID)
	errs, ok := err.(domain.ValidationErrors)
	require.True(t, ok, "expected validation errors, got %v", err)
	assert.True(t, errs.HasField("name"))
	assert.True(t, errs.HasField("preferred_clinic"))
	f.notifier.AssertNotCalled(t, "SendLead", mock.Anything, mock.Anything)
}

func TestLeadService_Submit_IndividualNeedsNoClinic(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()

	session := domain.NewQuizSession(testSessionID)
	require.NoError(t, session.SetProfile(domain.GenderMale, 41))
	require.NoError(t, session.ChooseExam(domain.ExamIndividual, nil))
	session.Answers.Name = "Петро"
	session.Answers.Phone = "0501234567"
	session.Answers.RequestType = domain.RequestSpecialist
	session.Answers.SpecialistType = "кардіолог"
	require.NoError(t, f.store.Save(ctx, session))

	var sent string
	f.notifier.On("SendLead", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(1) }).
		Return(nil)

	_, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Contains(t, sent, "📋 Програма: Консультація спеціаліста: кардіолог")
	assert.Contains(t, sent, "🏥 Клініка: Не обрано")
	assert.Contains(t, sent, "💰 Ціни: OnClinic Індивідуально ₴ | SanaVita Індивідуально ₴")
	assert.Contains(t, sent, "⚠️ ПОТРЕБУЄ ОБРОБКИ МЕНЕДЖЕРА")
}

func TestLeadService_Submit_DeliveryFailure(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)

	f.notifier.On("SendLead", mock.Anything, mock.Anything).Return(errors.New("status 502")).Once()

	_, err := f.svc.Submit(ctx, testSessionID)
	assertCode(t, err, domain.CodeLeadDeliveryFailed)
	assert.Empty(t, f.pending, "no reset after a failure")

	loaded, err := f.store.Get(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitError, loaded.SubmitStatus)
	assert.Equal(t, domain.StepResults, loaded.Step)
	assert.Equal(t, "Олена", loaded.Answers.Name, "answers are preserved")

	// The user may retry once the failed attempt released the lock.
	f.notifier.On("SendLead", mock.Anything, mock.Anything).Return(nil).Once()
	view, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitSuccess, view.SubmitStatus)
}

func TestLeadService_Submit_InFlight(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)

	ok, err := f.store.AcquireSubmitLock(ctx, testSessionID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Submit(ctx, testSessionID)
	assertCode(t, err, domain.CodeSubmissionInProgress)
	f.notifier.AssertNotCalled(t, "SendLead", mock.Anything, mock.Anything)
}

func TestLeadService_Submit_WrongStep(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, domain.NewQuizSession(testSessionID)))

	_, err := f.svc.Submit(ctx, testSessionID)
	assertCode(t, err, domain.CodeInvalidStep)
}

func TestLeadService_ResetSkipsRestartedSession(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)
	f.notifier.On("SendLead", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)

	// The user restarts and fills in a new profile before the reset fires.
	session, err := f.store.Get(ctx, testSessionID)
	require.NoError(t, err)
	session.Reset()
	require.NoError(t, session.SetProfile(domain.GenderMale, 60))
	require.NoError(t, f.store.Save(ctx, session))

	require.Len(t, f.pending, 1)
	f.pending[0]()

	loaded, err := f.store.Get(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepExamChoice, loaded.Step)
	assert.Equal(t, 60, loaded.Answers.Age)
}

func TestLeadService_ResubmitAfterRestartBeforeReset(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)
	f.notifier.On("SendLead", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)

	// Restart and a fresh lead while the first reset is still pending.
	f.resultsSession(t, func(a *domain.QuizAnswers) { a.Name = "Ірина" })

	view, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitSuccess, view.SubmitStatus)
	f.notifier.AssertNumberOfCalls(t, "SendLead", 2)

	// Neither pending reset may break the lock of a later submission.
	held, err := f.store.AcquireSubmitLock(ctx, testSessionID)
	require.NoError(t, err)
	require.True(t, held)
	for _, reset := range f.pending {
		reset()
	}
	again, err := f.store.AcquireSubmitLock(ctx, testSessionID)
	require.NoError(t, err)
	assert.False(t, again, "reset left the lock alone")
}

// failingSaveStore delivers reads and locks but fails every save.
type failingSaveStore struct {
	SessionStore
}

func (s failingSaveStore) Save(context.Context, *domain.QuizSession) error {
	return errors.New("redis: connection refused")
}

func TestLeadService_Submit_SaveFailsAfterDelivery(t *testing.T) {
	f := newLeadFixture(t)
	ctx := context.Background()
	f.resultsSession(t, nil)
	f.svc.store = failingSaveStore{SessionStore: f.store}
	f.notifier.On("SendLead", mock.Anything, mock.Anything).Return(nil).Once()

	view, err := f.svc.Submit(ctx, testSessionID)
	require.NoError(t, err, "a delivered lead is reported as sent")
	assert.Equal(t, domain.SubmitSuccess, view.SubmitStatus)
	assert.Len(t, f.pending, 1, "reset still scheduled")

	// The lock is kept so a retry cannot send the lead twice.
	_, err = f.svc.Submit(ctx, testSessionID)
	assertCode(t, err, domain.CodeSubmissionInProgress)
	f.notifier.AssertNumberOfCalls(t, "SendLead", 1)
}
