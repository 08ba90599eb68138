package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/mocks"
)

func setupRunRouter(svc *mocks.MockInvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRunHandler(svc)
	r.POST("/api/v1/runs", h.Generate)
	r.GET("/api/v1/runs", h.List)
	r.GET("/api/v1/runs/:id", h.GetByID)
	return r
}

func TestGenerateRun(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	run := &domain.InvoiceRun{
		ID:     uuid.New(),
		Period: "January-2025",
		Status: domain.RunStatusCompleted,
	}
	expectedDate := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	svc.On("GenerateMonth", mock.Anything, "January-2025", expectedDate).Return(run, nil)

	body, _ := json.Marshal(GenerateRunInput{Period: "January-2025", InvoiceDate: "31-01-2025"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestGenerateRunRejectsBadDate(t *testing.T) {
	svc := new(mocks.MockInvoiceService)

	body, _ := json.Marshal(GenerateRunInput{Period: "January-2025", InvoiceDate: "2025-01-31"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GenerateMonth")
}

func TestGenerateRunMapsInvalidPeriod(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("GenerateMonth", mock.Anything, "Jan 2025", mock.Anything).
		Return(nil, domain.ErrInvalidPeriod)

	body, _ := json.Marshal(GenerateRunInput{Period: "Jan 2025", InvoiceDate: "31-01-2025"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PERIOD", resp.Error.Code)
}

func TestGetRunNotFound(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	id := uuid.New()
	svc.On("GetRun", mock.Anything, id).Return(nil, domain.ErrRunNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+id.String(), nil)
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRunRejectsBadID(t *testing.T) {
	svc := new(mocks.MockInvoiceService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetRun")
}

func TestListRuns(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	svc.On("ListRuns", mock.Anything, 5).Return([]domain.InvoiceRun{
		{ID: uuid.New(), Period: "January-2025", Status: domain.RunStatusCompleted},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=5", nil)
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	svc := new(mocks.MockInvoiceService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=-1", nil)
	w := httptest.NewRecorder()
	setupRunRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListRuns")
}
