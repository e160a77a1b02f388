package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	wirebind "github.com/reoring/wirebind"
)

type fileConfig struct {
	LogLevel string `toml:"log_level"`
	Language string `toml:"language"`
	Driver   string `toml:"driver"`
	Parse    struct {
		DuplicateKeys string `toml:"duplicate_keys"`
		MaxDepth      int    `toml:"max_depth"`
		MaxBytes      int64  `toml:"max_bytes"`
		FailFast      bool   `toml:"fail_fast"`
		Numbers       string `toml:"numbers"`
	} `toml:"parse"`
	Output struct {
		Indent string `toml:"indent"`
	} `toml:"output"`
}

type config struct {
	LogLevel   zerolog.Level
	Language   string
	Driver     string
	Parse      wirebind.ParseOpt
	NumberMode wirebind.NumberMode
	Indent     string
}

func defaultConfig() config {
	return config{
		LogLevel:   zerolog.InfoLevel,
		Language:   "en",
		Driver:     "go-json",
		NumberMode: wirebind.NumberJSONNumber,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load wirebind config: %w", err)
	}

	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("language") {
		if lang := strings.TrimSpace(raw.Language); lang != "" {
			cfg.Language = lang
		}
	}

	if meta.IsDefined("driver") {
		name := strings.TrimSpace(raw.Driver)
		if _, ok := wirebind.JSONDriverByName(name); !ok {
			return config{}, fmt.Errorf("unknown driver %q", name)
		}
		cfg.Driver = name
	}

	if meta.IsDefined("parse", "duplicate_keys") {
		sev, err := parseSeverity(raw.Parse.DuplicateKeys)
		if err != nil {
			return config{}, err
		}
		cfg.Parse.Strictness.OnDuplicateKey = sev
	}

	if meta.IsDefined("parse", "max_depth") {
		if raw.Parse.MaxDepth < 0 {
			return config{}, fmt.Errorf("parse.max_depth must not be negative")
		}
		cfg.Parse.MaxDepth = raw.Parse.MaxDepth
	}

	if meta.IsDefined("parse", "max_bytes") {
		if raw.Parse.MaxBytes < 0 {
			return config{}, fmt.Errorf("parse.max_bytes must not be negative")
		}
		cfg.Parse.MaxBytes = raw.Parse.MaxBytes
	}

	if meta.IsDefined("parse", "fail_fast") {
		cfg.Parse.FailFast = raw.Parse.FailFast
	}

	if meta.IsDefined("parse", "numbers") {
		mode, err := parseNumberMode(raw.Parse.Numbers)
		if err != nil {
			return config{}, err
		}
		cfg.NumberMode = mode
	}

	if meta.IsDefined("output", "indent") {
		cfg.Indent = raw.Output.Indent
	}

	return cfg, nil
}

func parseSeverity(s string) (wirebind.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return wirebind.Ignore, nil
	case "warn":
		return wirebind.Warn, nil
	case "error":
		return wirebind.Error, nil
	default:
		return wirebind.Ignore, fmt.Errorf("parse duplicate_keys: unknown severity %q", s)
	}
}

func parseNumberMode(s string) (wirebind.NumberMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json-number":
		return wirebind.NumberJSONNumber, nil
	case "float64":
		return wirebind.NumberFloat64, nil
	default:
		return wirebind.NumberJSONNumber, fmt.Errorf("parse numbers: unknown mode %q", s)
	}
}
