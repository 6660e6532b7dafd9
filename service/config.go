package service

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config configures the document-processing service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DBPath is the SQLite job-registry path (":memory:" for ephemeral).
	DBPath string `yaml:"db_path"`

	// UploadDir holds submitted files while their job runs.
	UploadDir string `yaml:"upload_dir"`

	// MaxUploadSize caps a single submission, in bytes.
	MaxUploadSize int64 `yaml:"max_upload_size"`

	// Workers bounds how many jobs run concurrently.
	Workers int `yaml:"workers"`

	// PageWorkers bounds per-document page parallelism.
	PageWorkers int `yaml:"page_workers"`

	// OCRLanguage is passed to the recognizer ("eng" by default).
	OCRLanguage string `yaml:"ocr_language"`

	// FlushTrailingRow enables evaluating the final open table row.
	FlushTrailingRow bool `yaml:"flush_trailing_row"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.DBPath == "" {
		c.DBPath = "jobs.db"
	}
	if c.UploadDir == "" {
		c.UploadDir = os.TempDir()
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = 50 * 1024 * 1024
	}
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.PageWorkers <= 0 {
		c.PageWorkers = 1
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = "eng"
	}
}

// LoadConfig reads a YAML config file (optional; empty path skips it),
// applies environment overrides, and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("FOLIO_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("FOLIO_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FOLIO_UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("FOLIO_MAX_UPLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxUploadSize = n
		}
	}
	if v := os.Getenv("FOLIO_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("FOLIO_OCR_LANGUAGE"); v != "" {
		c.OCRLanguage = v
	}

	c.defaults()
	return &c, nil
}
