package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kalbasit/seqcdc"
)

// configEnv names the environment variable consulted when --config is not
// given.
const configEnv = "SEQCDC_CONFIG"

// fileConfig is the layout of the optional YAML configuration file:
//
//	chunking:
//	  seq_threshold: 5
//	  min_block_size: 4096
//	  max_block_size: 16384
//	  mode: increasing
//	  jump_trigger: 50
//	  jump_size: 256
//	log_level: info
type fileConfig struct {
	Chunking seqcdc.Params `yaml:"chunking"`
	LogLevel string        `yaml:"log_level"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Chunking: seqcdc.DefaultParams(),
		LogLevel: "info",
	}
}

// loadConfig reads path on top of the defaults. Unknown keys are rejected
// so that typos do not silently fall back to defaults. An empty path
// returns the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}
