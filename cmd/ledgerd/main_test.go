package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ledger/internal/config"
	"ledger/internal/logging"
	"ledger/internal/services"
	"ledger/internal/testsupport"
)

func TestBuildDaemonServesAPI(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := buildDaemon(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("buildDaemon: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	w := httptest.NewRecorder()
	d.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", w.Code)
	}
}

func TestBuildDaemonRejectsUnknownBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Storage.Backend = "ftp"
	_, err := buildDaemon(cfg, logging.NewNop())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(testsupport.BaseDir(cfg), "ledger.toml")
	body := "[paths]\n" +
		"data_dir = '" + cfg.Paths.DataDir + "'\n" +
		"output_dir = '" + cfg.Paths.OutputDir + "'\n" +
		"log_dir = '" + cfg.Paths.LogDir + "'\n" +
		"api_bind = '127.0.0.1:0'\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, path) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	loaded, _, exists, err := config.Load(path)
	if err != nil || !exists || loaded.Paths.APIBind != "127.0.0.1:0" {
		t.Fatalf("config round trip failed: exists=%v err=%v", exists, err)
	}
}
