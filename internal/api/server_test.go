package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/awerner3/mathscribe/internal/config"
	"github.com/awerner3/mathscribe/internal/pipeline"
	"github.com/awerner3/mathscribe/internal/store"
	"github.com/awerner3/mathscribe/internal/transcribe"
)

const testAPIKey = "test-key"

// newTestServer wires a server around an idle orchestrator: jobs queue
// but no workers run, so submitted jobs stay inspectable.
func newTestServer(t *testing.T) (*Server, *pipeline.Orchestrator, *store.Store) {
	t.Helper()
	cfg := config.Config{
		APIKey:         testAPIKey,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
	artifacts, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	vlm := transcribe.NewClient("unused", "test-model")
	orch := pipeline.NewOrchestrator(cfg, vlm, artifacts, testLogger())
	return NewServer(orch, vlm, artifacts, testLogger(), cfg), orch, artifacts
}

func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func multipartPDF(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 fake content"))
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthIsPublic(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSubmitAcceptsPDF(t *testing.T) {
	srv, orch, _ := newTestServer(t)

	body, contentType := multipartPDF(t, "homework.pdf")
	req := authedRequest(http.MethodPost, "/api/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body: %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	jobID, _ := resp["job_id"].(string)
	if len(jobID) != 26 {
		t.Errorf("job_id = %q, want 26-char ULID", jobID)
	}
	if !strings.HasSuffix(resp["poll_url"].(string), jobID+"/status") {
		t.Errorf("poll_url = %v", resp["poll_url"])
	}
	if orch.GetJob(jobID) == nil {
		t.Error("job not registered with orchestrator")
	}
}

func TestSubmitRejectsNonPDF(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body, contentType := multipartPDF(t, "notes.docx")
	req := authedRequest(http.MethodPost, "/api/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStatusUnknownJob(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/transcriptions/nope/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTranscriptFormats(t *testing.T) {
	srv, orch, artifacts := newTestServer(t)

	job := &pipeline.Job{ID: pipeline.NewID(), Status: pipeline.StatusCompleted}
	orch.Submit(job)
	if err := artifacts.SaveTranscript(job.ID, "# Problem 1\n\nLet $x > 0$."); err != nil {
		t.Fatalf("SaveTranscript: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/transcriptions/"+job.ID+"/transcript", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Problem 1") {
		t.Errorf("markdown body = %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/transcriptions/"+job.ID+"/transcript?format=html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("html status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Errorf("html body lacks heading: %q", rec.Body.String())
	}
}

func TestArtifactNotReady(t *testing.T) {
	srv, orch, _ := newTestServer(t)

	job := &pipeline.Job{ID: pipeline.NewID(), Status: pipeline.StatusQueued}
	orch.Submit(job)

	for _, artifact := range []string{"transcript", "outline", "tex", "pdf"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/transcriptions/"+job.ID+"/"+artifact, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", artifact, rec.Code)
		}
	}
}

func TestVLMStats(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/stats/vlm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["model"] != "test-model" {
		t.Errorf("model = %v", resp["model"])
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"homework.pdf", "homework.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/hw.pdf", "hw.pdf"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
