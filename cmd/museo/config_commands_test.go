package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "museo.toml")

	cmd := newRootCommand()
	var stdout strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout.String(), "Wrote sample configuration")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[api]")

	cmd = newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}

	if err := os.WriteFile(target, []byte("# edited\n"), 0o644); err != nil {
		t.Fatalf("edit sample: %v", err)
	}
	stdout.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target, "--overwrite"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, stdout.String(), "http://127.0.0.1:8000/api")
	requireContains(t, stdout.String(), "Token store")
	data, err = os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if strings.Contains(string(data), "# edited") {
		t.Fatal("--overwrite should replace the existing file")
	}
}

func TestConfigValidateReportsSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := env.run(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, env.backend.server.URL+"/api")
	requireContains(t, out, "Configuration valid")
}

func TestAPIURLFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := env.run(t, "", "--api-url", "https://studio.example.com/api/", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "https://studio.example.com/api")

	if _, _, err := env.run(t, "", "--api-url", "ftp://nope", "config", "validate"); err == nil {
		t.Fatal("expected invalid --api-url to fail")
	}
}
