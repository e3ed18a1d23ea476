package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"econoshorts/config"
	"econoshorts/pipeline"

	"github.com/gin-gonic/gin"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.Temp = filepath.Join(dir, "temp")
	cfg.Paths.Output = filepath.Join(dir, "out")

	runner, err := pipeline.NewRunner(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return NewServer(cfg, runner)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body %q", w.Body.String())
	}
}

func TestCreateJobRejectsBadDuration(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"topic":"금리","script":"대본.","target_duration":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", body)
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestCreateJobRejectsBadJSON(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/deadbeef", nil)
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestJobTracking(t *testing.T) {
	srv := testServer(t)
	id := srv.track(&pipeline.JobResult{Topic: "금리"})
	if id == "" {
		t.Fatal("empty job id")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+id, nil)
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "금리") {
		t.Errorf("body %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), id) {
		t.Errorf("list missing job %s: %q", id, w.Body.String())
	}
}
