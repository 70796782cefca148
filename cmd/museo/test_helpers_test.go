package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// fakeBackend serves canned JSON per "METHOD /path" and records requests.
type fakeBackend struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]cannedResponse
	requests  []recordedRequest
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{responses: map[string]cannedResponse{}}
	fb.server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) handle(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.EscapedPath(), "/api")

	fb.mu.Lock()
	fb.requests = append(fb.requests, recordedRequest{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(data),
	})
	resp, ok := fb.responses[r.Method+" "+path]
	fb.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"no such route"}`)
		return
	}
	if resp.status != 0 {
		w.WriteHeader(resp.status)
	}
	_, _ = io.WriteString(w, resp.body)
}

func (fb *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.requests) == 0 {
		t.Fatal("expected at least one backend request")
	}
	return fb.requests[len(fb.requests)-1]
}

func (fb *fakeBackend) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

type cliTestEnv struct {
	backend    *fakeBackend
	configPath string
	stateDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("MUSEO_API_URL", "")
	t.Setenv("MUSEO_TOKEN", "")
	t.Chdir(base)

	fb := newFakeBackend(t)
	stateDir := filepath.Join(base, "state")
	configPath := filepath.Join(base, "museo.toml")
	content := fmt.Sprintf("[api]\nbase_url = %q\n\n[auth]\nstore = \"file\"\nstate_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		fb.server.URL+"/api", stateDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{backend: fb, configPath: configPath, stateDir: stateDir}
}

func (env *cliTestEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// signIn stores a token directly so commands run authenticated.
func (env *cliTestEnv) signIn(t *testing.T, token string) {
	t.Helper()
	path := filepath.Join(env.stateDir, "credentials.json")
	if err := os.MkdirAll(env.stateDir, 0o700); err != nil {
		t.Fatalf("mkdir state: %v", err)
	}
	data, _ := json.Marshal(map[string]string{"token": token})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
}

func (env *cliTestEnv) storedToken(t *testing.T) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(env.stateDir, "credentials.json"))
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatalf("read credentials: %v", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("decode credentials: %v", err)
	}
	token, ok := values["token"]
	return token, ok
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
