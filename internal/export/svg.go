/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/domain"
)

// lineHeight matches the 7x13 face used for layout.
const lineHeight = 13.0

// SVG writes the page as a standalone SVG document. The viewBox is in canvas
// units; width and height carry the DPI-scaled pixel size.
func SVG(w io.Writer, comps []domain.Component, opt Options) error {
	pg := prepare(comps, opt)
	pxW := int(math.Round(pg.w * pg.scale))
	pxH := int(math.Round(pg.h * pg.scale))

	var buf bytes.Buffer
	wf := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, pg.w, pg.h)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", pg.w, pg.h, svgColor(colPaper))

	for _, it := range pg.items {
		r := it.Bounds
		if it.Archetype == domain.Image {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"/>\n", r.X, r.Y, r.W, r.H, svgColor(colImageBox))
		}
		if it.Selected {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\"/>\n", r.X-1, r.Y-1, r.W+2, r.H+2, svgColor(colSelection))
		}
		x := float64(r.X + builder.LabelPadding)
		y := float64(r.Y+builder.LabelPadding) + 11
		wf("  <text x=\"%g\" y=\"%g\" font-family=\"monospace\" font-size=\"13\" fill=\"%s\">", x, y, svgColor(colInk))
		for i, ln := range lines(it.Label) {
			dy := 0.0
			if i > 0 {
				dy = lineHeight
			}
			wf("<tspan x=\"%g\" dy=\"%g\">%s</tspan>", x, dy, escText(ln))
		}
		wf("</text>\n")
	}
	wf("</svg>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escText(s string) string { return textEscaper.Replace(s) }
