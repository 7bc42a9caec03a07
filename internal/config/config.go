/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneralConfig holds window-wide preferences.
type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// CanvasConfig is the initial window size.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LabelDefaults pre-fill the label dialog for shapes without a label.
// FontFile optionally replaces the embedded label font with a TrueType file.
type LabelDefaults struct {
	Text     string `yaml:"text"`
	Shape    string `yaml:"shape"` // "rect" | "oval"
	Color    string `yaml:"color"`
	FontSize int    `yaml:"font_size"`
	FontFile string `yaml:"font_file"`
}

// ExportConfig sets where the File menu starts and the PNG resolution.
type ExportConfig struct {
	Dir   string  `yaml:"dir"`
	Scale float64 `yaml:"scale"`
}

// LoggingConfig mirrors the options of the log package.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Labels        LabelDefaults `yaml:"labels"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system"},
		Canvas:        CanvasConfig{Width: 800, Height: 600},
		Labels:        LabelDefaults{Text: "Hi", Shape: "oval", Color: "yellow", FontSize: 12},
		Export:        ExportConfig{Dir: "", Scale: 1},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTheme       = "WFE_THEME"
	EnvExportDir   = "WFE_EXPORT_DIR"
	EnvExportScale = "WFE_EXPORT_SCALE"
	EnvLabelFont   = "WFE_LABEL_FONT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "WFE_LOG_LEVEL"
	EnvLogFormat = "WFE_LOG_FORMAT"
	EnvLogSource = "WFE_LOG_SOURCE"
	EnvLogFile   = "WFE_LOG_FILE"
)

// ErrInvalidConfig wraps validation failures of a loaded file.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "WorkflowEditor")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "WorkflowEditor")
	default: // linux and others
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "workfloweditor")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "workfloweditor")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file yields the defaults;
// a malformed one is reported, with defaults plus env overrides still returned.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	case !errors.Is(err, os.ErrNotExist):
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if loadErr == nil {
		loadErr = cfg.Validate()
	}
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path, creating parent directories.
func SaveTo(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the values the editor relies on.
func (c AppConfig) Validate() error {
	var errs []error
	switch c.General.Theme {
	case "system", "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("general.theme %q must be system, light or dark", c.General.Theme))
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	switch c.Labels.Shape {
	case "rect", "oval":
	default:
		errs = append(errs, fmt.Errorf("labels.shape %q must be rect or oval", c.Labels.Shape))
	}
	if c.Labels.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("labels.font_size %d must be positive", c.Labels.FontSize))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Errorf("export.scale %g must be positive", c.Export.Scale))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = strings.ToLower(strings.TrimSpace(src.General.Theme))
	}
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	// labels
	if src.Labels.Text != "" {
		dst.Labels.Text = src.Labels.Text
	}
	if strings.TrimSpace(src.Labels.Shape) != "" {
		dst.Labels.Shape = strings.ToLower(strings.TrimSpace(src.Labels.Shape))
	}
	if strings.TrimSpace(src.Labels.Color) != "" {
		dst.Labels.Color = strings.ToLower(strings.TrimSpace(src.Labels.Color))
	}
	if src.Labels.FontSize != 0 {
		dst.Labels.FontSize = src.Labels.FontSize
	}
	if strings.TrimSpace(src.Labels.FontFile) != "" {
		dst.Labels.FontFile = strings.TrimSpace(src.Labels.FontFile)
	}
	// export
	if strings.TrimSpace(src.Export.Dir) != "" {
		dst.Export.Dir = strings.TrimSpace(src.Export.Dir)
	}
	if src.Export.Scale != 0 {
		dst.Export.Scale = src.Export.Scale
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLabelFont)); v != "" {
		cfg.Labels.FontFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		cfg.Export.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Export.Scale = f
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"general.theme":    EnvTheme,
	"labels.font_file": EnvLabelFont,
	"export.dir":       EnvExportDir,
	"export.scale":     EnvExportScale,
	"logging.level":    EnvLogLevel,
	"logging.format":   EnvLogFormat,
	"logging.source":   EnvLogSource,
	"logging.file":     EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
