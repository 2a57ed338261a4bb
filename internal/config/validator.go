package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var validLogFormats = map[string]struct{}{
	"text": {},
	"json": {},
}

// Validate checks cfg for semantic correctness and returns all validation errors
// found. An empty slice means the config is valid.
//
// Checks performed:
//   - version must be 1
//   - log.level must be one of: debug, info, warn, error (case-insensitive)
//   - log.format must be one of: text, json (case-insensitive)
//
// All errors are collected before returning; Validate never stops at the first error.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{fmt.Errorf("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("version: unsupported value %d; must be 1", cfg.Version))
	}
	if _, ok := validLogLevels[strings.ToLower(cfg.Log.Level)]; !ok {
		errs = append(errs, fmt.Errorf("log.level: invalid value %q; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	if _, ok := validLogFormats[strings.ToLower(cfg.Log.Format)]; !ok {
		errs = append(errs, fmt.Errorf("log.format: invalid value %q; valid values: text, json", cfg.Log.Format))
	}

	return errs
}
