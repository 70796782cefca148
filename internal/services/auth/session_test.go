package auth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"museo/internal/services"
	"museo/internal/services/auth"
	"museo/internal/testsupport"
)

func TestSessionSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := auth.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	session := auth.NewSession(store, "", "")
	if session.Key() != auth.DefaultTokenKey {
		t.Fatalf("key = %q", session.Key())
	}

	cred, err := session.Credentials(ctx)
	if err != nil {
		t.Fatalf("Credentials: %v", err)
	}
	if cred.Authorized() {
		t.Fatal("expected anonymous credentials before login")
	}
	if _, err := session.RequireCredentials(ctx); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if err := session.Save(ctx, "  tok  "); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, source, err := session.Token(ctx)
	if err != nil || token != "tok" || source != auth.SourceStore {
		t.Fatalf("Token = %q %q %v", token, source, err)
	}
	value, ok, _ := store.Get(ctx, "token")
	if !ok || value != "tok" {
		t.Fatalf("stored value = %q ok:%v", value, ok)
	}

	if err := session.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if token, source, _ := session.Token(ctx); token != "" || source != auth.SourceNone {
		t.Fatalf("after clear Token = %q %q", token, source)
	}
}

func TestSessionRejectsEmptyToken(t *testing.T) {
	session := auth.NewSession(auth.NewFileStore(filepath.Join(t.TempDir(), "c.json")), "", "")
	if err := session.Save(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSessionOverrideShadowsStore(t *testing.T) {
	ctx := context.Background()
	cfg := testsupport.NewConfig(t, testsupport.WithToken("from-env"))
	cfg.Auth.TokenKey = "museo-token"
	store := auth.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	if err := store.Set(ctx, "museo-token", "from-store"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	session := auth.NewSessionFromConfig(cfg, store)
	token, source, err := session.Token(ctx)
	if err != nil || token != "from-env" || source != auth.SourceEnvironment {
		t.Fatalf("Token = %q %q %v", token, source, err)
	}
	cred, err := session.RequireCredentials(ctx)
	if err != nil || cred.AccessToken != "from-env" {
		t.Fatalf("RequireCredentials = %+v %v", cred, err)
	}
	if err := session.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "museo-token"); ok {
		t.Fatal("expected stored token removed")
	}
}
