package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lifelink/bloodlink/donor-community-service/internal/adapters/handler"
	"github.com/lifelink/bloodlink/donor-community-service/test/mocks"
)

func TestHealthHandler_Health(t *testing.T) {
	h := handler.NewHealthHandler(nil, mocks.NewMockRedisClient())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp handler.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "UP" {
		t.Errorf("status = %q, want UP", resp.Status)
	}
	if resp.Checks["process"].Status != "UP" {
		t.Errorf("process check = %+v, want UP", resp.Checks["process"])
	}
}

func TestHealthHandler_HealthRejectsNonGet(t *testing.T) {
	h := handler.NewHealthHandler(nil, mocks.NewMockRedisClient())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHealthHandler_ReadyReportsDependencyFailures(t *testing.T) {
	// nil database means the service cannot accept traffic yet.
	redisMock := mocks.NewMockRedisClient()
	h := handler.NewHealthHandler(nil, redisMock)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var resp struct {
		Status string                   `json:"status"`
		Checks map[string]handler.Check `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "DOWN" {
		t.Errorf("status = %q, want DOWN", resp.Status)
	}
	if resp.Checks["database"].Status != "DOWN" {
		t.Errorf("database check = %+v, want DOWN", resp.Checks["database"])
	}
	if resp.Checks["redis"].Status != "UP" {
		t.Errorf("redis check = %+v, want UP", resp.Checks["redis"])
	}
}

func TestHealthHandler_ReadyReportsRedisFailure(t *testing.T) {
	redisMock := mocks.NewMockRedisClient()
	redisMock.PingError = errors.New("connection refused")
	h := handler.NewHealthHandler(nil, redisMock)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var resp struct {
		Checks map[string]handler.Check `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Checks["redis"].Status != "DOWN" {
		t.Errorf("redis check = %+v, want DOWN", resp.Checks["redis"])
	}
}
