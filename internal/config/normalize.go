package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLabel()
	c.normalizeRender()
	c.normalizeStorage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeLabel() {
	c.Label.ProductPrefix = strings.TrimSpace(c.Label.ProductPrefix)
	c.Label.Title = strings.TrimSpace(c.Label.Title)
	c.Label.QRURL = strings.TrimSpace(c.Label.QRURL)
	c.Label.BarcodePrefix = strings.TrimSpace(c.Label.BarcodePrefix)
	if c.Label.AddressSeparator == "" {
		c.Label.AddressSeparator = defaultAddressSeparator
	}
}

func (c *Config) normalizeRender() {
	c.Render.QRErrorCorrection = strings.ToUpper(strings.TrimSpace(c.Render.QRErrorCorrection))
	if c.Render.QRErrorCorrection == "" {
		c.Render.QRErrorCorrection = defaultQRErrorCorrection
	}
	if c.Render.Workers == 0 {
		c.Render.Workers = defaultRenderWorkers
	}
}

func (c *Config) normalizeStorage() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageLocal
	}
	m := &c.Storage.Minio
	m.Endpoint = strings.TrimSpace(m.Endpoint)
	m.Bucket = strings.TrimSpace(m.Bucket)
	if m.AccessKey == "" {
		if value, ok := os.LookupEnv("LEDGER_MINIO_ACCESS_KEY"); ok {
			m.AccessKey = strings.TrimSpace(value)
		}
	}
	if m.SecretKey == "" {
		if value, ok := os.LookupEnv("LEDGER_MINIO_SECRET_KEY"); ok {
			m.SecretKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
