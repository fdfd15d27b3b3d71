package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScanPaths  []string `toml:"scan_paths"`
	IndentUnit int      `toml:"indent_unit"` // spaces per indentation level
	ReportPath string   `toml:"report_path"`
	Exclude    Exclude  `toml:"exclude"`
	LLM        LLM      `toml:"llm"`
	Editor     Editor   `toml:"editor"`
	History    History  `toml:"history"`
	Watch      Watch    `toml:"watch"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type LLM struct {
	BaseURL   string        `toml:"base_url"`
	Model     string        `toml:"model"`
	APIKeyEnv string        `toml:"api_key_env"`
	Timeout   time.Duration `toml:"timeout"`
}

type Editor struct {
	Command string `toml:"command"` // overrides $EDITOR when set
}

type History struct {
	Path string `toml:"path"` // sqlite file; empty disables snapshots
}

type Watch struct {
	Debounce    time.Duration `toml:"debounce"`
	MetricsAddr string        `toml:"metrics_addr"` // empty disables /metrics
	RescanPerS  float64       `toml:"rescans_per_second"`
}

// Load reads the TOML config at path. A missing file yields the defaults
// so the tool works out of the box.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}
	if cfg.IndentUnit <= 0 {
		cfg.IndentUnit = 4
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", ".venv", "venv", "__pycache__", "node_modules"}
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://127.0.0.1:11434/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "phi3:mini"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescanPerS <= 0 {
		cfg.Watch.RescanPerS = 2
	}
}
