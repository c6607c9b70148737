package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ledger/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "ledger")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "ledger.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Paths.APIBind != "127.0.0.1:7420" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Label.BarcodePrefix != "6820253043" {
		t.Fatalf("unexpected barcode prefix: %q", cfg.Label.BarcodePrefix)
	}
	if cfg.Render.PageWidthMM != 80 || cfg.Render.PageHeightMM != 200 || cfg.Render.MarginMM != 5 {
		t.Fatalf("unexpected page geometry: %+v", cfg.Render)
	}
	if cfg.Storage.Backend != config.StorageLocal {
		t.Fatalf("expected local storage backend, got %q", cfg.Storage.Backend)
	}
	if got := cfg.CaptionText(); got != "Scan QR code or visit https://adf.eagur.com to fill form" {
		t.Fatalf("unexpected caption: %q", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "ledger.toml")
	body := `
[paths]
data_dir = "~/ledger-data"
output_dir = "~/out"

[label]
product_prefix = "Acme"
qr_url = "https://example.test/form"

[render]
qr_error_correction = "h"
workers = 4

[logging]
format = "JSON"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "ledger-data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Label.ProductPrefix != "Acme" {
		t.Fatalf("unexpected product prefix: %q", cfg.Label.ProductPrefix)
	}
	if cfg.Render.QRErrorCorrection != "H" {
		t.Fatalf("expected QR level to be upper-cased, got %q", cfg.Render.QRErrorCorrection)
	}
	if cfg.Render.Workers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.Render.Workers)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if cfg.Label.Title != config.Default().Label.Title {
		t.Fatalf("expected default title to survive partial config, got %q", cfg.Label.Title)
	}
}

func TestMinioCredentialsFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LEDGER_MINIO_ACCESS_KEY", "access")
	t.Setenv("LEDGER_MINIO_SECRET_KEY", "secret")

	configPath := filepath.Join(t.TempDir(), "ledger.toml")
	body := `
[storage]
backend = "MinIO"

[storage.minio]
endpoint = "minio.local:9000"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != config.StorageMinio {
		t.Fatalf("unexpected backend: %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Minio.AccessKey != "access" || cfg.Storage.Minio.SecretKey != "secret" {
		t.Fatalf("expected credentials from env, got %+v", cfg.Storage.Minio)
	}
	if cfg.Storage.Minio.Bucket != "labels" {
		t.Fatalf("expected default bucket, got %q", cfg.Storage.Minio.Bucket)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "barcode_prefix") {
		t.Fatalf("sample config missing barcode prefix: %s", contents)
	}

	cfg := config.Default()
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Label.QRURL != "https://adf.eagur.com" {
		t.Fatalf("unexpected sample QR url: %q", cfg.Label.QRURL)
	}
	if !strings.Contains(cfg.Paths.DataDir, "ledger") {
		t.Fatalf("expected data dir to contain ledger, got %q", cfg.Paths.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"short barcode prefix", func(c *config.Config) { c.Label.BarcodePrefix = "123" }},
		{"non-digit barcode prefix", func(c *config.Config) { c.Label.BarcodePrefix = "68202530AB" }},
		{"missing qr url", func(c *config.Config) { c.Label.QRURL = "" }},
		{"zero page width", func(c *config.Config) { c.Render.PageWidthMM = 0 }},
		{"margin too large", func(c *config.Config) { c.Render.MarginMM = 40 }},
		{"bad qr level", func(c *config.Config) { c.Render.QRErrorCorrection = "X" }},
		{"zero workers", func(c *config.Config) { c.Render.Workers = 0 }},
		{"unknown backend", func(c *config.Config) { c.Storage.Backend = "ftp" }},
		{"minio without endpoint", func(c *config.Config) {
			c.Storage.Backend = config.StorageMinio
			c.Storage.Minio.AccessKey = "a"
			c.Storage.Minio.SecretKey = "b"
		}},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
