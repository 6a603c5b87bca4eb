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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/domain"
)

// maxRasterSide bounds the PNG width and height.
const maxRasterSide = 16384

// PNG rasterizes the page. Labels are drawn with basicfont at 72 DPI and
// scaled with the rest of the page, so print output keeps its proportions.
// The raster is capped at maxRasterSide pixels per side by lowering the scale.
func PNG(w io.Writer, comps []domain.Component, opt Options) error {
	pg := prepare(comps, opt)
	if side := max(pg.w, pg.h) * pg.scale; side > maxRasterSide {
		pg.scale = maxRasterSide / max(pg.w, pg.h)
	}
	pixW := int(math.Round(pg.w * pg.scale))
	pixH := int(math.Round(pg.h * pg.scale))
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colPaper}, image.Point{}, draw.Src)

	pad := int(math.Round(float64(builder.LabelPadding) * pg.scale))
	for _, it := range pg.items {
		x0, y0, x1, y1 := pixelBox(it, pg.scale)
		if it.Archetype == domain.Image {
			strokeRect(img, x0, y0, x1, y1, colImageBox)
		}
		if it.Selected {
			strokeRect(img, x0-1, y0-1, x1+1, y1+1, colSelection)
		}
		drawLabel(img, it, image.Pt(x0+pad, y0+pad), pg.scale)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// drawLabel draws the label of it with its top-left at at. Above 72 DPI the
// label is rendered once at 1x and scaled up nearest-neighbour.
func drawLabel(dst *image.RGBA, it builder.Item, at image.Point, scale float64) {
	face := basicfont.Face7x13
	if scale <= 1 {
		renderLines(dst, face, at, it.Label)
		return
	}
	lw := int(math.Ceil(float64(it.Bounds.W))) - 2*int(builder.LabelPadding)
	lh := int(math.Ceil(float64(it.Bounds.H))) - 2*int(builder.LabelPadding)
	if lw <= 0 || lh <= 0 {
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, lw, lh))
	renderLines(src, face, image.Point{}, it.Label)
	r := image.Rect(at.X, at.Y,
		at.X+int(math.Round(float64(lw)*scale)),
		at.Y+int(math.Round(float64(lh)*scale)))
	xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Over, nil)
}

func renderLines(dst draw.Image, face *basicfont.Face, at image.Point, label string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(colInk), Face: face}
	baseline := at.Y + face.Ascent
	for _, ln := range lines(label) {
		d.Dot = fixed.P(at.X, baseline)
		d.DrawString(ln)
		baseline += face.Height
	}
}

func pixelBox(it builder.Item, scale float64) (x0, y0, x1, y1 int) {
	r := it.Bounds
	x0 = int(math.Round(float64(r.X) * scale))
	y0 = int(math.Round(float64(r.Y) * scale))
	x1 = x0 + int(math.Round(float64(r.W)*scale)) - 1
	y1 = y0 + int(math.Round(float64(r.H)*scale)) - 1
	return
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
// Pixels outside the image are dropped by SetRGBA.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}
