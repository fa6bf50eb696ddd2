package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/spionic/pkg/spionic"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr        string `yaml:"addr"`
	LexiconsDir string `yaml:"lexicons_dir"`
	SourcesDB   string `yaml:"sources_db"`
	OutputForm  string `yaml:"output_form"`
	LogLevel    string `yaml:"log_level"`
	// SourceCheckInterval enables periodic HEAD checks of imported URLs.
	SourceCheckInterval time.Duration `yaml:"source_check_interval"`
}

func defaultConfig() config {
	return config{
		Addr:        ":8420",
		LexiconsDir: "lexicons",
		OutputForm:  "nfc",
		LogLevel:    "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error;
// found reports whether it existed.
func loadConfig(path string) (cfg config, found bool, err error) {
	cfg = defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.fill()
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fill()
	if _, err := cfg.form(); err != nil {
		return cfg, true, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := cfg.level(); err != nil {
		return cfg, true, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, true, nil
}

func (c *config) fill() {
	if c.SourcesDB == "" {
		c.SourcesDB = filepath.Join(c.LexiconsDir, "sources.db")
	}
}

func (c config) form() (spionic.Form, error) {
	return spionic.ParseForm(c.OutputForm)
}

func (c config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setup loads the config at path and returns it with a logger on stderr.
func setup(path string) (config, *slog.Logger, error) {
	cfg, found, err := loadConfig(path)
	if err != nil {
		return cfg, nil, err
	}
	lvl, _ := cfg.level()
	logger := newLogger(os.Stderr, lvl)
	slog.SetDefault(logger)
	if !found {
		logger.Info("no config file, using defaults", "path", path)
	}
	return cfg, logger, nil
}
