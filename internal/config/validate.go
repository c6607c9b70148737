package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLabel(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLabel() error {
	if c.Label.ProductPrefix == "" {
		return errors.New("label.product_prefix must be set")
	}
	if c.Label.QRURL == "" {
		return errors.New("label.qr_url must be set")
	}
	prefix := c.Label.BarcodePrefix
	if len(prefix) != 10 || strings.Trim(prefix, "0123456789") != "" {
		return fmt.Errorf("label.barcode_prefix must be exactly 10 digits, got %q", prefix)
	}
	return nil
}

func (c *Config) validateRender() error {
	if err := ensurePositiveMap(map[string]float64{
		"render.page_width_mm":  c.Render.PageWidthMM,
		"render.page_height_mm": c.Render.PageHeightMM,
	}); err != nil {
		return err
	}
	if c.Render.MarginMM < 0 {
		return errors.New("render.margin_mm must be >= 0")
	}
	if 2*c.Render.MarginMM >= c.Render.PageWidthMM || 2*c.Render.MarginMM >= c.Render.PageHeightMM {
		return errors.New("render.margin_mm leaves no printable area")
	}
	switch c.Render.QRErrorCorrection {
	case "L", "M", "Q", "H":
	default:
		return fmt.Errorf("render.qr_error_correction must be one of L, M, Q, H, got %q", c.Render.QRErrorCorrection)
	}
	if c.Render.QRScale <= 0 {
		return errors.New("render.qr_scale must be positive")
	}
	if c.Render.Workers < 1 {
		return errors.New("render.workers must be >= 1")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case StorageLocal:
		return nil
	case StorageMinio:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", StorageLocal, StorageMinio, c.Storage.Backend)
	}
	m := c.Storage.Minio
	if m.Endpoint == "" {
		return errors.New("storage.minio.endpoint must be set when storage.backend is minio")
	}
	if m.AccessKey == "" || m.SecretKey == "" {
		return errors.New("storage.minio.access_key and secret_key must be set when storage.backend is minio (or set LEDGER_MINIO_ACCESS_KEY / LEDGER_MINIO_SECRET_KEY)")
	}
	if m.Bucket == "" {
		return errors.New("storage.minio.bucket must be set when storage.backend is minio")
	}
	if m.PresignExpiryHours <= 0 {
		return errors.New("storage.minio.presign_expiry_hours must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
