package auth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"museo/internal/config"
	"museo/internal/services/auth"
	"museo/internal/testsupport"
)

func exerciseStore(t *testing.T, store auth.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("empty store Get = ok:%v err:%v", ok, err)
	}
	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete on empty store: %v", err)
	}
	if err := store.Set(ctx, "token", "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "token", "second"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := store.Set(ctx, "other", "kept"); err != nil {
		t.Fatalf("Set other: %v", err)
	}
	value, ok, err := store.Get(ctx, "token")
	if err != nil || !ok || value != "second" {
		t.Fatalf("Get = %q ok:%v err:%v", value, ok, err)
	}
	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := store.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("Get after delete = ok:%v err:%v", ok, err)
	}
	if value, ok, _ := store.Get(ctx, "other"); !ok || value != "kept" {
		t.Fatalf("unrelated key lost: %q ok:%v", value, ok)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "credentials.json")
	store := auth.NewFileStore(path)
	exerciseStore(t, store)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat credentials: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("credentials mode = %o", perm)
	}
}

func TestFileStoreRemovesFileWhenEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := auth.NewFileStore(path)
	if err := store.Set(ctx, "token", "t"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected credentials file removed, stat err = %v", err)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := auth.NewFileStore(path).Get(context.Background(), "token"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := auth.OpenSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.db")
	first, err := auth.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	if err := first.Set(ctx, "token", "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := auth.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	value, ok, err := second.Get(ctx, "token")
	if err != nil || !ok || value != "persisted" {
		t.Fatalf("Get = %q ok:%v err:%v", value, ok, err)
	}
}

func TestOpenStoreSelectsBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := auth.OpenStore(cfg)
	if err != nil {
		t.Fatalf("OpenStore(file): %v", err)
	}
	if fs, ok := store.(*auth.FileStore); !ok || fs.Path() != cfg.TokenFilePath() {
		t.Fatalf("expected file store at %s, got %T", cfg.TokenFilePath(), store)
	}

	cfg.Auth.Store = config.StoreSQLite
	store, err = auth.OpenStore(cfg)
	if err != nil {
		t.Fatalf("OpenStore(sqlite): %v", err)
	}
	defer store.Close()
	if ss, ok := store.(*auth.SQLiteStore); !ok || ss.Path() != cfg.TokenDBPath() {
		t.Fatalf("expected sqlite store at %s, got %T", cfg.TokenDBPath(), store)
	}

	cfg.Auth.Store = "keychain"
	if _, err := auth.OpenStore(cfg); err == nil {
		t.Fatal("expected error for unknown store")
	}
}
