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
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/version"
)

// pdfFontSize keeps Helvetica labels close to the 7x13 layout boxes.
const pdfFontSize = 10

// PDF writes a single-page PDF. One canvas unit maps to one point regardless
// of DPI; the built-in Helvetica keeps text vector without embedding.
func PDF(w io.Writer, comps []domain.Component, opt Options) error {
	pg := prepare(comps, opt)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pg.w, Ht: pg.h},
	})
	pdf.SetTitle("Page", false)
	pdf.SetCreator("pagebuilder "+version.String(), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", pdfFontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, it := range pg.items {
		r := it.Bounds
		x, y := float64(r.X), float64(r.Y)
		if it.Archetype == domain.Image {
			setDrawColor(pdf, colImageBox)
			pdf.SetLineWidth(1)
			pdf.Rect(x, y, float64(r.W), float64(r.H), "D")
		}
		if it.Selected {
			setDrawColor(pdf, colSelection)
			pdf.SetLineWidth(1.5)
			pdf.Rect(x-1, y-1, float64(r.W)+2, float64(r.H)+2, "D")
		}
		pdf.SetTextColor(int(colInk.R), int(colInk.G), int(colInk.B))
		cx := x + float64(builder.LabelPadding)
		cy := y + float64(builder.LabelPadding) + 10
		for _, ln := range lines(it.Label) {
			pdf.Text(cx, cy, tr(ln))
			cy += lineHeight
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
