package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.SetupTestDB(t)
	require.NoError(t, st.SeedDemoCases(context.Background()))

	h := New(nil, &st, "bot.example.com", observability.NewLogger())

	router := gin.New()
	router.GET("/api/phone/fraud/answer", h.HandleAnswerCall)
	router.GET("/api/cases", h.HandleListCases)
	router.GET("/api/results", h.HandleListResults)
	router.POST("/api/cases", h.HandleCreateCase)
	return router, &st
}

func TestListCasesHidesSecurityAnswers(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "TechWorld Electronics")
	assert.NotContains(t, body, "security_answer")
	assert.NotContains(t, body, "security_question")
	// The step-1 identifier is a verification secret too.
	assert.NotContains(t, body, "security_identifier")
	assert.NotContains(t, body, "4471")
}

func TestCreateCaseValidation(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(`{"customer_name":"Pat Lee"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestCreateCase(t *testing.T) {
	router, st := setupRouter(t)

	payload := `{
		"customer_name": "Pat Lee",
		"security_identifier": "2210",
		"security_question_1": "What is your favorite color?",
		"security_answer_1": "green",
		"merchant": "Corner Cafe",
		"txn_time": "today at 9:15 AM",
		"amount": 42.50,
		"card_ending": "1044"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	cases, err := st.ListFraudCases(context.Background())
	require.NoError(t, err)

	var found bool
	for _, fc := range cases {
		if fc.CustomerName == "Pat Lee" {
			found = true
			assert.Equal(t, store.CaseStatusPendingReview, fc.Status)
		}
	}
	assert.True(t, found)
}

func TestListResultsEmptyBeforeAnyResolution(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestAnswerCallReturnsStreamTwiML(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/phone/fraud/answer", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "wss://bot.example.com/api/phone/fraud/media-stream")
	assert.Contains(t, w.Body.String(), "<Connect>")
}