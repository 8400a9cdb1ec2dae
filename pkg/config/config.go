// Package config loads tracker settings from JSON or YAML files so hosts can
// ship exclusion markers, the unload warning, and editor priority alongside
// their page templates.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdirty/pkg/dirty"
	"github.com/goliatone/go-formdirty/pkg/editors"
)

// ErrEmpty is returned for blank configuration files.
var ErrEmpty = errors.New("config: file is empty")

// Config mirrors the on-disk format:
//
//	excludeClasses: [dirtyignore, no-track]
//	warning: "You have unsaved changes."
//	editors: [tinymce, ckeditor]
//	resetOnCancel: true
type Config struct {
	ExcludeClasses []string `json:"excludeClasses" yaml:"excludeClasses"`
	Warning        string   `json:"warning" yaml:"warning"`
	Editors        []string `json:"editors" yaml:"editors"`
	ResetOnCancel  *bool    `json:"resetOnCancel" yaml:"resetOnCancel"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	reset := true
	return Config{
		ExcludeClasses: []string{dirty.DefaultExcludeClass},
		Warning:        dirty.DefaultWarning,
		Editors:        []string{editors.TinyMCE, editors.CKEditor},
		ResetOnCancel:  &reset,
	}
}

// Load reads a configuration file from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a configuration file from fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, fmt.Errorf("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes JSON or YAML and fills unset keys from Default. source is
// only used in error messages.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var raw Config
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = Config{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}
	return normalise(raw), nil
}

func normalise(raw Config) Config {
	cfg := Default()
	if raw.ExcludeClasses != nil {
		cfg.ExcludeClasses = trimAll(raw.ExcludeClasses)
	}
	if warning := strings.TrimSpace(raw.Warning); warning != "" {
		cfg.Warning = warning
	}
	if raw.Editors != nil {
		cfg.Editors = nil
		for _, name := range trimAll(raw.Editors) {
			cfg.Editors = append(cfg.Editors, strings.ToLower(name))
		}
	}
	if raw.ResetOnCancel != nil {
		reset := *raw.ResetOnCancel
		cfg.ResetOnCancel = &reset
	}
	return cfg
}

// TrackerOptions converts the configuration into tracker options. The editor
// registry is built by the host from Editors and passed in; nil skips editor
// integration.
func (c Config) TrackerOptions(registry *editors.Registry) []dirty.Option {
	options := []dirty.Option{
		dirty.WithExcludeClasses(c.ExcludeClasses...),
		dirty.WithWarning(c.Warning),
	}
	if c.ResetOnCancel != nil {
		options = append(options, dirty.WithResetOnCancel(*c.ResetOnCancel))
	}
	if registry != nil {
		options = append(options, dirty.WithEditors(registry))
	}
	return options
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
