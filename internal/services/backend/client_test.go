package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"museo/internal/logging"
	"museo/internal/services"
	"museo/internal/services/backend"
	"museo/internal/testsupport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...backend.Option) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := backend.NewClient(srv.URL+"/api/", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestGetSendsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotPath, gotAccept, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}, backend.WithRequestIDs(func() string { return "fixed-id" }))

	var out struct {
		Status string `json:"status"`
	}
	if err := client.Get(context.Background(), backend.Bearer(" tok "), "/generation/health", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Status != "ok" {
		t.Fatalf("unexpected body: %+v", out)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotPath != "/api/generation/health" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("accept = %q", gotAccept)
	}
	if gotRequestID != "fixed-id" {
		t.Fatalf("request id = %q", gotRequestID)
	}
}

func TestAnonymousOmitsAuthorization(t *testing.T) {
	var present bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	})
	if err := client.Get(context.Background(), backend.Anonymous(), "/generation/health", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if present {
		t.Fatal("expected no Authorization header for anonymous credentials")
	}
}

func TestRequestIDFromContextIsForwarded(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
	})
	ctx := services.WithRequestID(context.Background(), "ctx-id")
	if err := client.Get(ctx, backend.Anonymous(), "/x", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "ctx-id" {
		t.Fatalf("request id = %q", got)
	}
}

func TestPostEncodesBodyAndQueryIsPreserved(t *testing.T) {
	var gotBody map[string]any
	var gotQuery, gotMethod, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"id":"p1"}`)
	})

	var out map[string]any
	err := client.Post(context.Background(), backend.Bearer("t"), "/projects?page=2&per_page=5", map[string]string{"name": "n"}, &out)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s", gotMethod)
	}
	if gotQuery != "page=2&per_page=5" {
		t.Fatalf("query = %q", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotBody["name"] != "n" {
		t.Fatalf("body = %v", gotBody)
	}
	if out["id"] != "p1" {
		t.Fatalf("out = %v", out)
	}
}

func TestEscapedPathSegmentsSurvive(t *testing.T) {
	var gotRaw string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.EscapedPath()
	})
	if err := client.Delete(context.Background(), backend.Anonymous(), "/projects/a%2Fb", nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotRaw != "/api/projects/a%2Fb" {
		t.Fatalf("escaped path = %q", gotRaw)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	cases := []struct {
		status int
		marker error
	}{
		{http.StatusUnauthorized, services.ErrUnauthorized},
		{http.StatusForbidden, services.ErrUnauthorized},
		{http.StatusNotFound, services.ErrNotFound},
		{http.StatusUnprocessableEntity, services.ErrValidation},
		{http.StatusInternalServerError, services.ErrAPI},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, `{"detail":"nope"}`)
		})
		err := client.Get(context.Background(), backend.Anonymous(), "/projects/1", nil)
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if !errors.Is(err, tc.marker) {
			t.Fatalf("status %d: expected marker %v, got %v", tc.status, tc.marker, err)
		}
		var statusErr *backend.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: expected StatusError, got %T", tc.status, err)
		}
		if statusErr.StatusCode != tc.status || statusErr.Method != http.MethodGet || statusErr.Path != "/projects/1" {
			t.Fatalf("unexpected status error: %+v", statusErr)
		}
		if statusErr.Message() != "nope" {
			t.Fatalf("message = %q", statusErr.Message())
		}
	}
}

func TestStatusErrorMessageFallsBackToBody(t *testing.T) {
	err := &backend.StatusError{Method: "GET", Path: "/x", StatusCode: 500, Body: "plain failure"}
	if err.Message() != "plain failure" {
		t.Fatalf("message = %q", err.Message())
	}
	if !strings.Contains(err.Error(), "GET /x returned 500") {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestTransportFailureIsTagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := backend.NewClient(url)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	err = client.Get(context.Background(), backend.Anonymous(), "/generation", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker, got %v", err)
	}
}

func TestInvalidJSONResponseIsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	})
	var out map[string]any
	err := client.Get(context.Background(), backend.Anonymous(), "/generation", &out)
	if !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected api marker, got %v", err)
	}
}

func TestRawMessageReceivesBodyVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[1, 2]`)
	})
	var raw json.RawMessage
	if err := client.Get(context.Background(), backend.Anonymous(), "/presets/list", &raw); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `[1, 2]` {
		t.Fatalf("raw = %q", raw)
	}
}

func TestNewClientRejectsInvalidBase(t *testing.T) {
	for _, base := range []string{"  ", "127.0.0.1:8000/api", "localhost/api", "ftp://example.com", "http://", "/api"} {
		if _, err := backend.NewClient(base); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("NewClient(%q): expected configuration marker, got %v", base, err)
		}
	}
	client, err := backend.NewClient("https://studio.example.com/api/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.BaseURL() != "https://studio.example.com/api" {
		t.Fatalf("base url = %q", client.BaseURL())
	}
}

func TestNewFromConfigAppliesUserAgentAndLogs(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(srv.URL))
	cfg.API.UserAgent = "museo-test/1"
	cfg.API.RequestsPerSecond = 100
	cfg.API.Burst = 5

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	client, err := backend.NewFromConfig(cfg, logger)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if err := client.Get(context.Background(), backend.Anonymous(), "/generation/health", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAgent != "museo-test/1" {
		t.Fatalf("user agent = %q", gotAgent)
	}
	out := logs.String()
	if !strings.Contains(out, "backend: request completed") || !strings.Contains(out, "status=200") {
		t.Fatalf("expected debug request log, got %q", out)
	}
}
