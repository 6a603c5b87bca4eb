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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points PB_CONFIG at a temp file so tests never touch the user's config.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def := Defaults()
	if cfg.Canvas != def.Canvas || cfg.General != def.General {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, def)
	}
}

func TestEnvOverridesCanvas(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasWidth, "1024")
	t.Setenv(EnvCanvasHeight, "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 1024 {
		t.Fatalf("Canvas.Width = %v, want 1024", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != Defaults().Canvas.Height {
		t.Fatalf("invalid height override should be ignored, got %v", cfg.Canvas.Height)
	}
}

func TestOversizedValuesAreClamped(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas:\n  width: 1e9\n  height: 20000\nexport:\n  dpi: 1000000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != MaxCanvasSide || cfg.Canvas.Height != MaxCanvasSide || cfg.Export.DPI != MaxExportDPI {
		t.Fatalf("file values not clamped: canvas=%+v dpi=%d", cfg.Canvas, cfg.Export.DPI)
	}

	t.Setenv(EnvCanvasWidth, "99999999")
	t.Setenv(EnvExportDPI, "50000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != MaxCanvasSide || cfg.Export.DPI != MaxExportDPI {
		t.Fatalf("env values not clamped: canvas=%+v dpi=%d", cfg.Canvas, cfg.Export.DPI)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTelemetryOptIn, "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = " DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/pb.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/pb.log" {
		t.Fatalf("logging not merged: %+v", dst.Logging)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := isolate(t)
	cfg := Defaults()
	cfg.General.Theme = "dark"
	cfg.Canvas.Width = 1280
	cfg.Export.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Export.IncludeSelection = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.General.Theme != "dark" || got.Canvas.Width != 1280 || got.Export.Dir != cfg.Export.Dir || !got.Export.IncludeSelection {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadMalformedFileReportsError(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Canvas != Defaults().Canvas {
		t.Fatalf("defaults should still be returned on error, got %+v", cfg.Canvas)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	isolate(t)
	t.Setenv(EnvExportDPI, "")
	if _, ok := EnvOverrideFor("export.dpi"); ok {
		t.Fatalf("export.dpi should not be overridden")
	}
	t.Setenv(EnvExportDPI, "300")
	name, ok := EnvOverrideFor("export.dpi")
	if !ok || name != EnvExportDPI {
		t.Fatalf("EnvOverrideFor(export.dpi) = %q,%v", name, ok)
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatalf("unknown key reported as overridden")
	}
	cfg, _ := Load()
	if got := cfg.Value("export.dpi"); got != "300" {
		t.Fatalf("Value(export.dpi) = %q", got)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := isolate(t)
	if err := SaveFile(path, Defaults()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan AppConfig, 4)
	if err := Watch(ctx, path, func(c AppConfig) { got <- c }); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	next := Defaults()
	next.General.Theme = "light"
	if err := SaveFile(path, next); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.General.Theme != "light" {
			t.Fatalf("reloaded theme = %q, want light", c.General.Theme)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload observed")
	}
}
