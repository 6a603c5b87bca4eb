//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/config"
	"pagebuilder/internal/crash"
	"pagebuilder/internal/dnd"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/export"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/telemetry"
	"pagebuilder/internal/version"
)

// Run starts the desktop page builder and blocks until the window closes.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	editor := builder.NewEditor(builder.WithMeasurer(fyneMeasurer{}))
	defer crash.Recover(editor)

	tel := telemetry.Default()
	tel.SetOptIn(cfg.General.TelemetryOptIn)
	defer tel.Flush(context.Background())

	fyneApp := app.NewWithID("io.pagebuilder")
	fyneApp.Settings().SetTheme(themeFor(cfg.General.Theme))
	w := fyneApp.NewWindow("Page Builder")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	cv := NewBuilderCanvas(editor, cfg.Canvas.Width, cfg.Canvas.Height)
	session := dnd.NewSession(cv)
	palette := NewPalette(session)
	props := NewPropertyPanel(editor)
	status := widget.NewLabel("Ready")
	editor.Subscribe(func(st builder.State) { status.SetText(statusText(st)) })

	cv.OnDropped = func(c domain.Component) {
		l.Info("component dropped", slog.String("id", c.ID.String()), slog.String("archetype", string(c.Archetype)))
		tel.ComponentDropped(string(c.Archetype))
	}
	cv.OnSelected = func(c domain.Component) {
		l.Debug("component selected", slog.String("id", c.ID.String()))
		tel.ComponentSelected(string(c.Archetype))
	}

	cancelDragOnEscape(w.Canvas(), session, func() { status.SetText("Drag cancelled") })

	cur := cfg
	exportAs := func(f export.Format) {
		st := editor.Snapshot()
		path, err := export.ToFile(cur.Export.Dir, f, st.Components, exportOptions(cur, st))
		if err != nil {
			l.Error("export failed", slog.String("format", string(f)), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		l.Info("page exported", slog.String("path", path), slog.Int("components", len(st.Components)))
		tel.PageExported(string(f), len(st.Components))
		status.SetText("Exported to " + path)
	}
	exportPreset := func(p export.PresetName) {
		st := editor.Snapshot()
		paths, err := export.Batch(cur.Export.Dir, p, st.Components, exportOptions(cur, st))
		if err != nil {
			l.Error("preset export failed", slog.String("preset", string(p)), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		for _, path := range paths {
			tel.PageExported(strings.TrimPrefix(filepath.Ext(path), "."), len(st.Components))
		}
		dialog.ShowInformation("Export", fmt.Sprintf("Wrote %d files:\n%s", len(paths), strings.Join(paths, "\n")), w)
	}

	var fileItems []*fyne.MenuItem
	for _, f := range export.Formats() {
		fileItems = append(fileItems, fyne.NewMenuItem("Export "+strings.ToUpper(string(f)), func() { exportAs(f) }))
	}
	fileItems = append(fileItems, fyne.NewMenuItemSeparator())
	for _, p := range export.Presets() {
		fileItems = append(fileItems, fyne.NewMenuItem("Export "+presetTitle(p)+" preset", func() { exportPreset(p) }))
	}
	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About", "Page Builder "+version.String(), w)
	})
	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", fileItems...),
		fyne.NewMenu("Help", aboutItem),
	))

	header := container.NewVBox(
		widget.NewLabelWithStyle("Page Builder", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
	)
	work := container.NewHSplit(NewCanvasArea(cv), props)
	work.Offset = 0.75
	root := container.NewBorder(header, status, container.NewPadded(palette), nil, work)
	w.SetContent(root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if path, err := config.ConfigPath(); err == nil {
		if err := config.Watch(ctx, path, func(nc config.AppConfig) {
			fyne.Do(func() {
				cur = nc
				applog.SetLevel(nc.Logging.Level)
				fyneApp.Settings().SetTheme(themeFor(nc.General.Theme))
				tel.SetOptIn(nc.General.TelemetryOptIn)
				cv.SetPageSize(nc.Canvas.Width, nc.Canvas.Height)
				status.SetText("Configuration reloaded")
			})
		}); err != nil {
			l.Warn("config watch unavailable", slog.Any("err", err))
		}
	}

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		cv.Close()
		props.Close()
		w.Close()
	})

	w.ShowAndRun()
	return nil
}
