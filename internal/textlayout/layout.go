/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement for component labels. The canvas model sizes hit boxes
// through a Measurer so the headless model, the Fyne canvas and the exporters
// can each plug in their own font engine.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"pagebuilder/internal/vector"
)

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider supplies the face labels are drawn with.
type Provider interface {
	Resolve() (font.Face, Metrics)
}

// Measurer sizes a label as it will be drawn.
type Measurer interface {
	Measure(text string) vector.Size
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic output.
type BasicProvider struct{}

func (BasicProvider) Resolve() (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// FaceMeasurer measures with a face resolved from Provider. Lines split on '\n';
// the width is the widest line.
type FaceMeasurer struct {
	Provider Provider
}

// Basic is the deterministic measurer used by the model and by PNG export.
var Basic Measurer = FaceMeasurer{Provider: BasicProvider{}}

func (m FaceMeasurer) Measure(text string) vector.Size {
	p := m.Provider
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve()
	d := &font.Drawer{Face: face}
	lines := strings.Split(text, "\n")
	var w float32
	for _, ln := range lines {
		w = max(w, advance(d, ln))
	}
	h := met.Ascent + met.Descent + float32(len(lines)-1)*met.LineHeight()
	return vector.Size{W: w, H: h}
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s).Ceil())
}
