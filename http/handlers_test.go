package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"investment-calculator/domain"
	"investment-calculator/events"
	"investment-calculator/repository"
	"investment-calculator/service"
)

func newTestRouter(t *testing.T, capacity int) *mux.Router {
	t.Helper()
	logger := zap.NewNop()

	projectionService := service.NewProjectionService(
		repository.NewProjectionRepositoryMemory(),
		repository.NewMemoryCache(0),
		events.NewNoopPublisher(),
		logger,
	)
	formatter, err := service.NewFormatter("en-US", "USD")
	require.NoError(t, err)

	scenarioService := service.NewScenarioService(2)
	t.Cleanup(scenarioService.Stop)

	goalService := service.NewGoalService(projectionService, service.NewAIService("", "", "", logger))

	return NewRouter(
		NewRateLimiter(capacity, time.Minute),
		NewProjectionHandler(projectionService, formatter, logger),
		NewScenarioHandler(scenarioService, logger),
		NewGoalHandler(goalService, logger),
	)
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculateProjection_OK(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postJSON(router, "/investment/project", `{
		"initialInvestment": 10000,
		"annualInvestment": 1200,
		"expectedReturn": 6,
		"duration": 3
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Snapshots, 3)
	assert.InDelta(t, 15730.48, result.FinalValue, 1e-9)
	assert.Equal(t, 3, result.Snapshots[2].Year)
}

func TestCalculateProjection_InvalidDuration(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postJSON(router, "/investment/project", `{"initialInvestment": 100, "duration": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateProjection_BadRequest(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postJSON(router, "/investment/project", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/investment/project", `{"amount": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateProjection_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/investment/project", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestProject_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodDelete, "/investment/project", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes_WrongMethodIsNotAllowed(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/investment/project"},
		{http.MethodGet, "/investment/compare"},
		{http.MethodGet, "/investment/goal"},
		{http.MethodPost, "/investment/history"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", tc.method, tc.path)
	}

	req := httptest.NewRequest(http.MethodGet, "/investment/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectFromQuery_Defaults(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/investment/project?duration=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 10000.0, result.Config.InitialInvestment)
	assert.Equal(t, 1200.0, result.Config.AnnualInvestment)
	assert.Equal(t, 6.0, result.Config.ExpectedReturn)
	assert.Equal(t, 2, result.Config.Duration)
	assert.Len(t, result.Snapshots, 2)
}

func TestProjectFromQuery_Table(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/investment/project?duration=1&format=table", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var table tableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "$ 11,800.00", table.Rows[0].InvestmentValue)
	assert.Equal(t, "$ 600.00", table.Rows[0].InterestYear)
}

func TestProjectFromQuery_Errors(t *testing.T) {
	router := newTestRouter(t, 100)

	for _, target := range []string{
		"/investment/project?bogus=1",
		"/investment/project?expectedReturn=abc",
		"/investment/project?duration=0",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestHistory(t *testing.T) {
	router := newTestRouter(t, 100)

	postJSON(router, "/investment/project", `{"initialInvestment": 100, "expectedReturn": 5, "duration": 1}`)
	postJSON(router, "/investment/project", `{"initialInvestment": 200, "expectedReturn": 5, "duration": 1}`)

	req := httptest.NewRequest(http.MethodGet, "/investment/history?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var records []domain.ProjectionRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 200.0, records[0].Config.InitialInvestment)

	req = httptest.NewRequest(http.MethodGet, "/investment/history?limit=x", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompare(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postJSON(router, "/investment/compare", `{"scenarios": [
		{"initialInvestment": 1000, "annualInvestment": 0, "expectedReturn": 5, "duration": 1},
		{"initialInvestment": 1000, "annualInvestment": 0, "expectedReturn": 10, "duration": 1}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var results []domain.ScenarioResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.InDelta(t, 1050, results[0].FinalValue, 1e-9)
	assert.InDelta(t, 1100, results[1].FinalValue, 1e-9)

	w = postJSON(router, "/investment/compare", `{"scenarios": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoal(t *testing.T) {
	router := newTestRouter(t, 100)

	w := postJSON(router, "/investment/goal", `{
		"config": {"initialInvestment": 0, "annualInvestment": 1000, "expectedReturn": 0, "duration": 5},
		"targetValue": 3000
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.GoalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Reached)
	assert.Equal(t, 3, result.Year)
	assert.NotEmpty(t, result.Explanation)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/investment/project?duration=1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "health is not rate limited")
}
