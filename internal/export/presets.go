/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"

	"pagebuilder/internal/domain"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// Presets lists the presets in menu order.
func Presets() []PresetName { return []PresetName{PresetWeb, PresetPrint} }

// printDPI is the raster resolution used by the print preset.
const printDPI = 300

// Batch exports the page in every format of preset p into dir/<preset>/ and
// returns the written paths. Print output never carries the selection outline.
func Batch(dir string, p PresetName, comps []domain.Component, opt Options) ([]string, error) {
	formats := presetDefaultFormats(p)
	switch p {
	case PresetPrint:
		opt.DPI = printDPI
		opt.IncludeSelection = false
	case PresetWeb:
		opt.DPI = defaultDPI
	}
	name := string(p)
	if name == "" {
		name = "default"
	}
	out := filepath.Join(dir, name)
	var paths []string
	for _, f := range formats {
		path, err := ToFile(out, f, comps, opt)
		if err != nil {
			return paths, fmt.Errorf("%s preset %s: %w", name, f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func presetDefaultFormats(p PresetName) []Format {
	switch p {
	case PresetWeb:
		return []Format{FormatPNG, FormatSVG}
	case PresetPrint:
		return []Format{FormatPDF, FormatPNG}
	default:
		return []Format{FormatPDF}
	}
}
