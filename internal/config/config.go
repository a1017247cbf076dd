// Package config implements the optional .fpcc.json project defaults
// layer (SPEC_FULL.md ss6 NEW): shared -n/-w/-m values so cmd/sig and
// cmd/map do not need to repeat flags on every invocation. Modeled on the
// teacher's JWCC config loader (config.go), trimmed to fpcc's one file,
// one directory, no global/XDG layer.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// FileName is the default config file name, searched for in the working
// directory (spec.md carries no config file at all; this is additive).
const FileName = ".fpcc.json"

// Defaults are the spec's built-in flag defaults (spec.md ss6).
const (
	DefaultNToken    = 5
	DefaultWindow    = 4
	DefaultMinRegion = 4
)

// Config holds the three shared parameters a project may pin in
// .fpcc.json. A zero value for any field means "not set": callers apply
// built-in defaults, then file values, then CLI overrides, in that order.
type Config struct {
	NToken    int `json:"n_token,omitempty"`    //nolint:tagliatelle
	Window    int `json:"window,omitempty"`     //nolint:tagliatelle
	MinRegion int `json:"min_region,omitempty"` //nolint:tagliatelle
}

// ErrInvalid wraps any problem with a found config file: a read error,
// unparsable JWCC, or a negative field value (zero means "not set").
var ErrInvalid = errors.New("config: invalid .fpcc.json")

// Load looks for FileName in dir and returns its contents, or a zero
// Config if the file does not exist. A present-but-malformed file is a
// fatal error (fpcc has no other source of ambient defaults to fall back
// to, unlike the teacher's global+project layering).
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("%w: reading %s: %w", ErrInvalid, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.NToken < 0 || cfg.Window < 0 || cfg.MinRegion < 0 {
		return errors.New("fields must not be negative")
	}

	return nil
}

// ResolveInt returns cliValue if the flag was explicitly set (changed),
// else cfgValue if the config file set it (nonzero), else fallback.
func ResolveInt(changed bool, cliValue, cfgValue, fallback int) int {
	if changed {
		return cliValue
	}

	if cfgValue != 0 {
		return cfgValue
	}

	return fallback
}
