package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yumosx/anchor/internal/env"
	"github.com/yumosx/anchor/internal/fsext"
	"github.com/yumosx/anchor/internal/layout"
	"github.com/yumosx/anchor/internal/log"
)

// Default returns a configuration populated with the stock values.
func Default() *Config {
	return &Config{
		Options: &Options{
			Layout: layout.DefaultOptions(),
			TUI: &TUIOptions{
				EstimatedRows: defaultEstimatedRows,
				Gap:           defaultGap,
			},
		},
	}
}

// LoadReader config via io.Reader.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	config := Default()
	if len(data) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Load loads the configuration from the default paths and sets up logging.
func Load(workingDir string, debug bool) (*Config, error) {
	cfg, err := load(workingDir, debug, env.New())
	if err != nil {
		return nil, err
	}

	log.Setup(cfg.LogFile(), cfg.Options.Debug)
	slog.Debug("Configuration loaded", "working_dir", workingDir, "data_dir", cfg.Options.DataDirectory)
	return cfg, nil
}

func load(workingDir string, debug bool, environ env.Env) (*Config, error) {
	configPaths := []string{
		globalConfig(),
		GlobalConfigData(),
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	}
	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}

	cfg.applyEnv(environ)
	if cfg.Options.DataDirectory != "" {
		dir, err := fsext.Expand(cfg.Options.DataDirectory, environ.Get)
		if err != nil {
			return nil, fmt.Errorf("invalid data_directory %q: %w", cfg.Options.DataDirectory, err)
		}
		cfg.Options.DataDirectory = dir
	}
	cfg.setDefaults(workingDir)

	if debug {
		cfg.Options.Debug = true
	}
	if _, err := cfg.Options.TUI.Interval(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(environ env.Env) {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if v, ok := env.Bool(environ, "ANCHOR_DEBUG"); ok {
		c.Options.Debug = v
	}
	if dir := environ.Get("ANCHOR_DATA_DIR"); dir != "" {
		c.Options.DataDirectory = dir
	}
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return Default(), nil
	}

	merged, err := Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(merged)
}
