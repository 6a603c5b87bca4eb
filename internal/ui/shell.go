//go:build fyne

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
	"fmt"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/config"
	"pagebuilder/internal/export"
)

// statusText summarizes the page for the status bar.
func statusText(st builder.State) string {
	n := len(st.Components)
	noun := "components"
	if n == 1 {
		noun = "component"
	}
	if c, ok := st.Selection(); ok {
		return fmt.Sprintf("%d %s, selected: %s", n, noun, c.Archetype)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// exportOptions derives exporter options from the config and the page state.
func exportOptions(cfg config.AppConfig, st builder.State) export.Options {
	return export.Options{
		Width:            cfg.Canvas.Width,
		Height:           cfg.Canvas.Height,
		DPI:              cfg.Export.DPI,
		Selected:         st.Selected,
		IncludeSelection: cfg.Export.IncludeSelection,
	}
}

func presetTitle(p export.PresetName) string {
	switch p {
	case export.PresetWeb:
		return "Web"
	case export.PresetPrint:
		return "Print"
	}
	return string(p)
}
