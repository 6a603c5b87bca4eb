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

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type GeneralConfig struct {
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
}

// CanvasConfig sizes the page area. Components may still be placed outside it.
type CanvasConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type ExportConfig struct {
	Dir              string `yaml:"dir"`
	DPI              int    `yaml:"dpi"`
	IncludeSelection bool   `yaml:"include_selection"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system", TelemetryOptIn: false},
		Canvas:        CanvasConfig{Width: 800, Height: 600},
		Export:        ExportConfig{Dir: defaultExportDir(), DPI: 72, IncludeSelection: false},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Upper bounds for page size and export resolution. Larger values are clamped
// so a raster export stays allocatable.
const (
	MaxCanvasSide float32 = 10000
	MaxExportDPI          = 1200
)

// Env var names used as overrides.
const (
	EnvConfigPath     = "PB_CONFIG"
	EnvTheme          = "PB_THEME"
	EnvTelemetryOptIn = "PB_TELEMETRY_OPT_IN"
	EnvCanvasWidth    = "PB_CANVAS_WIDTH"
	EnvCanvasHeight   = "PB_CANVAS_HEIGHT"
	EnvExportDir      = "PB_EXPORT_DIR"
	EnvExportDPI      = "PB_EXPORT_DPI"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PB_LOG_LEVEL"
	EnvLogFormat = "PB_LOG_FORMAT"
	EnvLogSource = "PB_LOG_SOURCE"
	EnvLogFile   = "PB_LOG_FILE"
)

// ConfigPath returns the per-user config file path. PB_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "PageBuilder")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "PageBuilder")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "pagebuilder")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "pagebuilder")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

func defaultExportDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "PageBuilder", "exports")
	}
	return filepath.Join(os.TempDir(), "pagebuilder-exports")
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if uerr := yaml.Unmarshal(data, &fileCfg); uerr != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, uerr)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile is Save for an explicit path.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.Theme) != "" {
		dst.General.Theme = strings.ToLower(strings.TrimSpace(src.General.Theme))
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = min(src.Canvas.Width, MaxCanvasSide)
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = min(src.Canvas.Height, MaxCanvasSide)
	}
	if strings.TrimSpace(src.Export.Dir) != "" {
		dst.Export.Dir = strings.TrimSpace(src.Export.Dir)
	}
	if src.Export.DPI > 0 {
		dst.Export.DPI = min(src.Export.DPI, MaxExportDPI)
	}
	dst.Export.IncludeSelection = src.Export.IncludeSelection
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

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Canvas.Width = min(float32(f), MaxCanvasSide)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Canvas.Height = min(float32(f), MaxCanvasSide)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		cfg.Export.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDPI)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.DPI = min(n, MaxExportDPI)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// envKeys maps dotted config keys to their override variables.
var envKeys = map[string]string{
	"general.theme":            EnvTheme,
	"general.telemetry_opt_in": EnvTelemetryOptIn,
	"canvas.width":             EnvCanvasWidth,
	"canvas.height":            EnvCanvasHeight,
	"export.dir":               EnvExportDir,
	"export.dpi":               EnvExportDPI,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// Keys lists the dotted keys known to EnvOverrideFor, in display order.
func Keys() []string {
	return []string{
		"general.theme", "general.telemetry_opt_in",
		"canvas.width", "canvas.height",
		"export.dir", "export.dpi", "export.include_selection",
		"logging.level", "logging.format", "logging.source", "logging.file",
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok {
		return "", false
	}
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}

// Value renders the value of a dotted key for display.
func (c AppConfig) Value(key string) string {
	switch key {
	case "general.theme":
		return c.General.Theme
	case "general.telemetry_opt_in":
		return strconv.FormatBool(c.General.TelemetryOptIn)
	case "canvas.width":
		return strconv.FormatFloat(float64(c.Canvas.Width), 'f', -1, 32)
	case "canvas.height":
		return strconv.FormatFloat(float64(c.Canvas.Height), 'f', -1, 32)
	case "export.dir":
		return c.Export.Dir
	case "export.dpi":
		return strconv.Itoa(c.Export.DPI)
	case "export.include_selection":
		return strconv.FormatBool(c.Export.IncludeSelection)
	case "logging.level":
		return c.Logging.Level
	case "logging.format":
		return c.Logging.Format
	case "logging.source":
		return strconv.FormatBool(c.Logging.Source)
	case "logging.file":
		return c.Logging.File
	}
	return ""
}
