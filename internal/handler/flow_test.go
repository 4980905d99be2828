package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"roadmap-checkup/internal/adapter"
	"roadmap-checkup/internal/adapter/sheets"
	"roadmap-checkup/internal/adapter/telegram"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/handler"
	"roadmap-checkup/internal/metrics"
	"roadmap-checkup/internal/middleware"
	"roadmap-checkup/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type telegramRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *telegramRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}
	_ = json.NewDecoder(req.Body).Decode(&payload)
	r.mu.Lock()
	r.messages = append(r.messages, payload.Text)
	r.mu.Unlock()
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (r *telegramRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

// newFlowApp wires the real services against an unreachable spreadsheet, so
// the catalog falls back to the built-in demo data.
func newFlowApp(t *testing.T) (*fiber.App, *telegramRecorder) {
	t.Helper()

	sheetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(sheetServer.Close)

	recorder := &telegramRecorder{}
	telegramServer := httptest.NewServer(recorder)
	t.Cleanup(telegramServer.Close)

	quizCfg := config.QuizConfig{
		SessionTTL:    time.Hour,
		ResetDelay:    time.Hour,
		SubmitLockTTL: time.Minute,
		LeadSource:    "roadmap.check-up.in.ua",
		TimeZone:      "Europe/Kyiv",
	}
	m := metrics.NewQuizMetrics(prometheus.NewRegistry())

	sheetClient := sheets.NewClient(config.SheetsConfig{
		BaseURL:       sheetServer.URL,
		SheetID:       "sheet-id",
		PricesSheet:   "API_Export",
		ClinicsSheet:  "Clinics",
		ProgramsSheet: "Programs",
	}, sheetServer.Client())
	notifier := telegram.NewNotifier(config.TelegramConfig{
		BaseURL:  telegramServer.URL,
		BotToken: "test-token",
		ChatID:   "42",
	}, telegramServer.Client())

	catalogService := service.NewCatalogService(sheetClient, m)
	catalog := catalogService.Reload(context.Background())
	require.Equal(t, domain.StatusDemo, catalog.Status)

	store := service.NewSessionStore(adapter.NewMemoryCacheAdapter(), quizCfg.SessionTTL, quizCfg.SubmitLockTTL)
	quizService := service.NewQuizService(store, catalogService, m, quizCfg.Location())
	leadService := service.NewLeadService(store, catalogService, notifier, m, quizCfg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	handler.RegisterRoutes(app.Group("/api"),
		handler.NewQuizHandler(quizService, leadService),
		handler.NewCatalogHandler(catalogService), "")
	return app, recorder
}

func TestQuizFlow_DemoCatalogToLead(t *testing.T) {
	app, recorder := newFlowApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/quiz", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var state dto.QuizStateResponse
	decode(t, resp, &state)
	require.NotEmpty(t, state.SessionID)
	assert.Equal(t, domain.StepProfile, state.Step)
	assert.Equal(t, domain.StatusDemo, state.APIStatus)
	base := "/api/quiz/" + state.SessionID

	resp = doRequest(t, app, http.MethodPost, base+"/exam", dto.ExamChoiceRequest{ExamType: "full"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "exam before profile")

	resp = doRequest(t, app, http.MethodPost, base+"/profile", dto.ProfileRequest{Gender: "female", Age: 35})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.Equal(t, domain.StepExamChoice, state.Step)

	resp = doRequest(t, app, http.MethodPost, base+"/exam", dto.ExamChoiceRequest{ExamType: "full"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	require.Equal(t, domain.StepResults, state.Step)
	require.NotNil(t, state.Results)
	require.NotNil(t, state.Results.Comparison)
	assert.Equal(t, "FF30", state.Results.Comparison.Program)
	assert.Equal(t, 9585, state.Results.Comparison.OnClinic)
	assert.Equal(t, 9250, state.Results.Comparison.SanaVita)
	assert.False(t, state.Results.CanSubmit)

	resp = doRequest(t, app, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "submit without contact details")

	resp = doRequest(t, app, http.MethodPatch, base+"/contact",
		`{"name":"Олена","phone":"+380501234567","preferred_clinic":"sanavita"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.True(t, state.Results.CanSubmit)

	resp = doRequest(t, app, http.MethodPost, base+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.Equal(t, domain.SubmitSuccess, state.SubmitStatus)

	text := recorder.last()
	assert.True(t, strings.Contains(text, "Олена"), text)
	assert.True(t, strings.Contains(text, "9585"), text)
	assert.True(t, strings.Contains(text, "9250"), text)

	resp = doRequest(t, app, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "second submit while the first is shown")
}

func TestQuizFlow_UnknownSession(t *testing.T) {
	app, _ := newFlowApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/quiz/"+testSessionID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
