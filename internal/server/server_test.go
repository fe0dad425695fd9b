package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/internal/config"
	"github.com/fintab/fintab/internal/home"
	"github.com/fintab/fintab/internal/server/endpoints"
	"github.com/fintab/fintab/internal/testutil"
)

// fakeUpstream is a stand-in model API whose response can be swapped
// between subtests.
type fakeUpstream struct {
	mu     sync.Mutex
	status int
	body   map[string]any
}

func (f *fakeUpstream) Set(status int, body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

func (f *fakeUpstream) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func completedResponse(outputText string) map[string]any {
	return map[string]any{
		"id":         "resp_test",
		"object":     "response",
		"created_at": 1700000000,
		"status":     "completed",
		"model":      "gpt-4o",
		"output": []any{
			map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"status": "completed",
				"role":   "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": outputText, "annotations": []any{}},
				},
			},
		},
		"usage": map[string]any{"input_tokens": 100, "output_tokens": 50, "total_tokens": 150},
	}
}

func refusalResponse(message string) map[string]any {
	body := completedResponse("")
	body["output"] = []any{
		map[string]any{
			"type":   "message",
			"id":     "msg_1",
			"status": "completed",
			"role":   "assistant",
			"content": []any{
				map[string]any{"type": "refusal", "refusal": message},
			},
		},
	}
	return body
}

const alignedPayload = `{"tables":[{"name":"Income_Statement","columns":[{"name":"Year","values":["2022","2023"]},{"name":"Revenue","values":[100,120]}]}]}`

// newTestServer starts a full server against a fake upstream and returns
// the base URL plus handles for the subtests.
func newTestServer(t *testing.T, ctx context.Context) (string, *Server, *fakeUpstream) {
	t.Helper()

	upstream := &fakeUpstream{status: http.StatusOK, body: completedResponse(alignedPayload)}
	fake := httptest.NewServer(http.HandlerFunc(upstream.handler))
	t.Cleanup(fake.Close)

	cfg := testutil.NewServerConfig(t)
	configYAML := fmt.Sprintf(`server:
  host: %s
  port: %s
extractor:
  api_key: test-key
  base_url: %s
  model: gpt-4o
  timeout_seconds: 10
storage:
  public_dir: %s
history:
  limit: 50
`, cfg.Host, cfg.Port, fake.URL, cfg.PublicDir)
	if err := os.WriteFile(cfg.ConfigFile, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mgr, err := config.NewManager(cfg.ConfigFile)
	if err != nil {
		t.Fatalf("failed to create config manager: %v", err)
	}

	h, err := home.New(cfg.HomePath)
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}

	srv, err := New(Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		ConfigManager: mgr,
		Home:          h,
		Logger:        cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(serverCtx)
	}()
	starter := &testutil.StartServer{Cancel: cancel, Done: done}
	t.Cleanup(starter.Stop)

	if err := testutil.WaitForServer(ctx, cfg.URL(), 15*time.Second); err != nil {
		t.Fatalf("server did not start: %v", err)
	}

	return cfg.URL(), srv, upstream
}

func TestServer_FullLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	baseURL, srv, upstream := newTestServer(t, ctx)
	client := api.NewClient(baseURL)
	pdfData := []byte("%PDF-1.4 fake document body")

	t.Run("health_endpoint", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(baseURL + "/health")
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want ok", health.Status)
		}
	})

	t.Run("status_endpoint", func(t *testing.T) {
		var status endpoints.StatusResponse
		if err := client.Get(ctx, "/api/status", &status); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if status.Server != "running" {
			t.Errorf("Server = %q, want running", status.Server)
		}
		if status.Model != "gpt-4o" {
			t.Errorf("Model = %q, want gpt-4o", status.Model)
		}
		if status.Version == "" {
			t.Error("expected a version string")
		}
	})

	t.Run("index_page", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(baseURL + "/")
		if err != nil {
			t.Fatalf("index fetch failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("index status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "Fintab") {
			t.Error("index page missing application title")
		}
	})

	t.Run("swagger_json", func(t *testing.T) {
		var spec map[string]any
		if err := client.Get(ctx, "/swagger.json", &spec); err != nil {
			t.Fatalf("swagger fetch failed: %v", err)
		}
		if spec["swagger"] != "2.0" {
			t.Errorf("swagger version = %v, want 2.0", spec["swagger"])
		}
	})

	t.Run("extract_rejects_non_pdf", func(t *testing.T) {
		var resp endpoints.ExtractResponse
		err := client.Upload(ctx, "/api/extract", "file", "pic.png", "image/png", bytes.NewReader(pdfData), &resp)
		if err == nil {
			t.Fatal("expected upload to be rejected")
		}
		if !strings.Contains(err.Error(), "Invalid file type. Only PDFs are accepted.") {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(err.Error(), "(400)") {
			t.Errorf("expected 400 status, got: %v", err)
		}
	})

	t.Run("extract_success", func(t *testing.T) {
		var resp endpoints.ExtractResponse
		err := client.Upload(ctx, "/api/extract", "file", "deck.pdf", "application/pdf", bytes.NewReader(pdfData), &resp)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}

		if resp.Status != "completed" {
			t.Errorf("Status = %q, want completed", resp.Status)
		}
		if len(resp.TablesHTML) != 1 {
			t.Fatalf("expected 1 HTML fragment, got %d", len(resp.TablesHTML))
		}
		if !strings.Contains(resp.TablesHTML[0], "<h3>Income Statement</h3>") {
			t.Errorf("fragment missing heading: %s", resp.TablesHTML[0])
		}
		if resp.SpreadsheetURL == nil {
			t.Fatal("expected a spreadsheet URL")
		}
		if *resp.SpreadsheetURL != "/public/financial_tables_deck.xlsx" {
			t.Errorf("SpreadsheetURL = %q", *resp.SpreadsheetURL)
		}

		// Artifact is served back over HTTP
		artifact, err := testutil.HTTPClient().Get(baseURL + *resp.SpreadsheetURL)
		if err != nil {
			t.Fatalf("artifact fetch failed: %v", err)
		}
		defer artifact.Body.Close()
		if artifact.StatusCode != http.StatusOK {
			t.Errorf("artifact status = %d, want %d", artifact.StatusCode, http.StatusOK)
		}
		data, _ := io.ReadAll(artifact.Body)
		if len(data) == 0 {
			t.Error("artifact is empty")
		}
	})

	t.Run("extract_refusal_maps_to_400", func(t *testing.T) {
		upstream.Set(http.StatusOK, refusalResponse("I cannot process this document."))
		defer upstream.Set(http.StatusOK, completedResponse(alignedPayload))

		var resp endpoints.ExtractResponse
		err := client.Upload(ctx, "/api/extract", "file", "deck.pdf", "application/pdf", bytes.NewReader(pdfData), &resp)
		if err == nil {
			t.Fatal("expected refusal error")
		}
		if !strings.Contains(err.Error(), "(400)") {
			t.Errorf("expected 400 status, got: %v", err)
		}
		if !strings.Contains(err.Error(), "cannot process this document") {
			t.Errorf("expected refusal text surfaced, got: %v", err)
		}
	})

	t.Run("extract_upstream_error_maps_to_502", func(t *testing.T) {
		upstream.Set(http.StatusServiceUnavailable, map[string]any{
			"error": map[string]any{"message": "overloaded", "type": "server_error"},
		})
		defer upstream.Set(http.StatusOK, completedResponse(alignedPayload))

		var resp endpoints.ExtractResponse
		err := client.Upload(ctx, "/api/extract", "file", "deck.pdf", "application/pdf", bytes.NewReader(pdfData), &resp)
		if err == nil {
			t.Fatal("expected upstream error")
		}
		if !strings.Contains(err.Error(), "(502)") {
			t.Errorf("expected 502 status, got: %v", err)
		}
	})

	t.Run("extractions_history", func(t *testing.T) {
		var list endpoints.ExtractionsResponse
		if err := client.Get(ctx, "/api/extractions", &list); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		// One completed, one refused, one failed from the subtests above;
		// the invalid-type upload never reached the pipeline.
		if list.Count != 3 {
			t.Fatalf("Count = %d, want 3", list.Count)
		}
		completed := 0
		for _, rec := range list.Extractions {
			if rec.Status == "completed" {
				completed++
			}
		}
		if completed != 1 {
			t.Errorf("completed records = %d, want 1", completed)
		}

		// Fetch one record by ID
		id := list.Extractions[0].ID
		var rec map[string]any
		if err := client.Get(ctx, "/api/extractions/"+id, &rec); err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if rec["id"] != id {
			t.Errorf("record id = %v, want %s", rec["id"], id)
		}

		// Unknown ID is a 404
		err := client.Get(ctx, "/api/extractions/no-such-id", &rec)
		if err == nil || !strings.Contains(err.Error(), "(404)") {
			t.Errorf("expected 404 for unknown id, got: %v", err)
		}

		// Limit parameter caps the list
		if err := client.Get(ctx, "/api/extractions?limit=1", &list); err != nil {
			t.Fatalf("limited list failed: %v", err)
		}
		if list.Count != 1 {
			t.Errorf("limited Count = %d, want 1", list.Count)
		}
	})

	t.Run("artifact_missing_is_404", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(baseURL + "/public/no-such-file.xlsx")
		if err != nil {
			t.Fatalf("artifact fetch failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("artifact_listing_blocked", func(t *testing.T) {
		resp, err := testutil.HTTPClient().Get(baseURL + "/public/")
		if err != nil {
			t.Fatalf("artifact fetch failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("config_file_not_reachable_via_public", func(t *testing.T) {
		// Path traversal attempts resolve outside the artifact handler;
		// the config file must never be served.
		resp, err := testutil.HTTPClient().Get(baseURL + "/public/../config.yaml")
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), "api_key") {
			t.Error("config file leaked through public route")
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})
}

func TestServer_DoubleStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	_, srv, _ := newTestServer(t, ctx)

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start() should return error")
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	upstream := &fakeUpstream{status: http.StatusOK, body: completedResponse(alignedPayload)}
	fake := httptest.NewServer(http.HandlerFunc(upstream.handler))
	t.Cleanup(fake.Close)

	cfg := testutil.NewServerConfig(t)
	configYAML := fmt.Sprintf("extractor:\n  api_key: test-key\n  base_url: %s\nstorage:\n  public_dir: %s\n", fake.URL, cfg.PublicDir)
	if err := os.WriteFile(cfg.ConfigFile, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr, err := config.NewManager(cfg.ConfigFile)
	if err != nil {
		t.Fatalf("failed to create config manager: %v", err)
	}
	h, err := home.New(cfg.HomePath)
	if err != nil {
		t.Fatalf("failed to create home: %v", err)
	}

	srv, err := New(Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		ConfigManager: mgr,
		Home:          h,
		Logger:        cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	serverCtx, serverCancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(serverCtx)
	}()

	if err := testutil.WaitForServer(ctx, cfg.URL(), 15*time.Second); err != nil {
		t.Fatalf("server did not start: %v", err)
	}

	serverCancel()
	if err := testutil.WaitForShutdown(done, 30*time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown, want false")
	}
}

func TestServer_RecoversPanic(t *testing.T) {
	s := &Server{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h := s.withRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("got empty error message, want non-empty")
	}
}
