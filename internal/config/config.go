package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	APIBind   string `toml:"api_bind"`
}

// Label contains the printed content of every shipment label.
type Label struct {
	ProductPrefix    string `toml:"product_prefix"`
	Title            string `toml:"title"`
	QRURL            string `toml:"qr_url"`
	Caption          string `toml:"caption"`
	BarcodePrefix    string `toml:"barcode_prefix"`
	AddressSeparator string `toml:"address_separator"`
}

// Render contains page geometry and image synthesis settings.
type Render struct {
	PageWidthMM       float64 `toml:"page_width_mm"`
	PageHeightMM      float64 `toml:"page_height_mm"`
	MarginMM          float64 `toml:"margin_mm"`
	QRErrorCorrection string  `toml:"qr_error_correction"`
	QRScale           int     `toml:"qr_scale"`
	Workers           int     `toml:"workers"`
}

// Minio contains object storage credentials for the minio delivery backend.
type Minio struct {
	Endpoint           string `toml:"endpoint"`
	AccessKey          string `toml:"access_key"`
	SecretKey          string `toml:"secret_key"`
	Bucket             string `toml:"bucket"`
	UseSSL             bool   `toml:"use_ssl"`
	PresignExpiryHours int    `toml:"presign_expiry_hours"`
}

// Storage selects where generated label documents are delivered.
type Storage struct {
	Backend string `toml:"backend"`
	Minio   Minio  `toml:"minio"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Ledger.
//
// Configuration sections by subsystem:
//   - Paths: database, output and log directories plus the API bind address
//   - Label: printed title, QR link, caption and barcode prefix
//   - Render: page geometry and barcode/QR synthesis
//   - Storage: delivery backend for generated documents
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Label   Label   `toml:"label"`
	Render  Render  `toml:"render"`
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ledger.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for CLI and daemon operation.
// The output directory is only needed by the local delivery backend.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Storage.Backend == StorageLocal {
		if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", c.Paths.OutputDir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the shipment database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "ledger.db")
}

// LockPath returns the location of the daemon single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "ledgerd.lock")
}

// CaptionText returns the caption printed under the QR code with the QR URL substituted.
func (c *Config) CaptionText() string {
	return strings.ReplaceAll(c.Label.Caption, "{url}", c.Label.QRURL)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
