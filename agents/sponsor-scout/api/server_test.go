package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sponsor-scout/agents/sponsor-scout/transcript"
	"sponsor-scout/internal/models"
	"sponsor-scout/shared/monitoring"
)

type fakeService struct {
	monitor  *monitoring.Monitor
	report   *models.PitchReport
	err      error
	lastURLs []string
	lastOpts transcript.Options
}

func (f *fakeService) GeneratePitch(ctx context.Context, urls []string, opts transcript.Options) (*models.PitchReport, error) {
	f.lastURLs = urls
	f.lastOpts = opts
	return f.report, f.err
}

func (f *fakeService) Monitor() *monitoring.Monitor {
	return f.monitor
}

func newFakeService() *fakeService {
	return &fakeService{
		monitor: monitoring.NewMonitor(),
		report: &models.PitchReport{
			GeneratedAt: time.Now(),
			Pitch:       "## Creator Profile\ngreat fit",
			Videos: []*models.VideoResult{
				{URL: "https://youtu.be/dQw4w9WgXcQ", VideoID: "dQw4w9WgXcQ", Strategy: "direct", CharCount: 42},
			},
			Succeeded: 1,
		},
	}
}

func TestHandlePitch(t *testing.T) {
	service := newFakeService()
	server := NewServer(service)

	body := `{"urls": ["https://youtu.be/dQw4w9WgXcQ"], "use_cookies": true}`
	req := httptest.NewRequest("POST", "/api/pitch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if !service.lastOpts.UseCookies {
		t.Error("use_cookies flag not passed through")
	}
	if len(service.lastURLs) != 1 {
		t.Fatalf("service received %d URLs, want 1", len(service.lastURLs))
	}

	var report models.PitchReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if report.Pitch != service.report.Pitch {
		t.Errorf("Pitch = %q", report.Pitch)
	}
	if len(report.Videos) != 1 || report.Videos[0].VideoID != "dQw4w9WgXcQ" {
		t.Error("per-video results missing from response")
	}
}

func TestHandlePitchBadRequests(t *testing.T) {
	server := NewServer(newFakeService())

	tests := []struct {
		name string
		body string
	}{
		{"InvalidJSON", `{"urls": [`},
		{"NoURLs", `{"urls": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/pitch", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandlePitchAllVideosFailed(t *testing.T) {
	service := newFakeService()
	service.report = &models.PitchReport{
		Videos: []*models.VideoResult{{URL: "https://youtu.be/dQw4w9WgXcQ", Error: "blocked"}},
		Failed: 1,
	}
	service.err = errors.New("no transcripts could be fetched for any of the 1 URLs")
	server := NewServer(service)

	req := httptest.NewRequest("POST", "/api/pitch", strings.NewReader(`{"urls": ["https://youtu.be/dQw4w9WgXcQ"]}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error message missing from response")
	}
}

func TestHandlePitchUpstreamFailure(t *testing.T) {
	service := newFakeService()
	service.err = errors.New("model unavailable")
	server := NewServer(service)

	req := httptest.NewRequest("POST", "/api/pitch", strings.NewReader(`{"urls": ["https://youtu.be/dQw4w9WgXcQ"]}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	service := newFakeService()
	server := NewServer(service)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}

	service.monitor.RecordCriticalFailure(errors.New("boom"), time.Second)

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/health status after failure = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/status status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed") {
		t.Errorf("/status body = %q, want failure summary", rec.Body.String())
	}
}
