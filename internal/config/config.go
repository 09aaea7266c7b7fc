package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Notes struct {
		Root       string   `yaml:"root"`
		Extensions []string `yaml:"extensions"`
		Ignored    []string `yaml:"ignored"`
	} `yaml:"notes"`
	Lint struct {
		Disabled     []string `yaml:"disabled"`       // issue kinds to suppress, e.g. "trailing whitespace"
		FailOnIssues bool     `yaml:"fail_on_issues"` // non-zero exit when any issue remains
	} `yaml:"lint"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config (optional)
	var cfg Config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("NOTELINT_ROOT"); root != "" {
		cfg.Notes.Root = root
	}
	if db := os.Getenv("NOTELINT_DB"); db != "" {
		cfg.Storage.DBPath = db
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Notes.Root == "" {
		c.Notes.Root = "."
	}
	if len(c.Notes.Extensions) == 0 {
		c.Notes.Extensions = []string{".md"}
	}
	if len(c.Notes.Ignored) == 0 {
		c.Notes.Ignored = []string{".git", "vendor", "node_modules", "testdata"}
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = "notelint.db"
	}
}
