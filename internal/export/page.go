/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders the current canvas to PNG, SVG and PDF. The output is
// a picture of the page; it is never read back.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/textlayout"
)

// Format names an output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats in menu order.
func Formats() []Format { return []Format{FormatPNG, FormatSVG, FormatPDF} }

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Options controls all exporters.
// Width and Height are the page size in canvas units; DPI scales raster and
// SVG pixel sizes, where 72 maps one canvas unit to one pixel.
type Options struct {
	Width            float32
	Height           float32
	DPI              int
	Selected         domain.ID
	IncludeSelection bool
}

const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultDPI    = 72
)

var (
	colPaper     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colInk       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colImageBox  = color.RGBA{R: 136, G: 136, B: 136, A: 255}
	colSelection = color.RGBA{R: 30, G: 120, B: 220, A: 255}
)

// page is the resolved drawing input shared by the exporters.
type page struct {
	w, h  float64
	scale float64
	items []builder.Item
}

func prepare(comps []domain.Component, opt Options) page {
	w, h := float64(opt.Width), float64(opt.Height)
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	st := builder.State{Components: comps}
	if opt.IncludeSelection {
		st.Selected = opt.Selected
	}
	return page{w: w, h: h, scale: float64(dpi) / 72.0, items: builder.Layout(st, textlayout.Basic)}
}

// lines splits a label into its rendered lines.
func lines(label string) []string { return strings.Split(label, "\n") }

// Write renders comps in format f to w.
func Write(w io.Writer, f Format, comps []domain.Component, opt Options) error {
	switch f {
	case FormatPNG:
		return PNG(w, comps, opt)
	case FormatSVG:
		return SVG(w, comps, opt)
	case FormatPDF:
		return PDF(w, comps, opt)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// FileName is the timestamped output name for format f.
func FileName(f Format, at time.Time) string {
	return fmt.Sprintf("page-%s.%s", at.Format("20060102-150405"), f)
}

// maxNameTries bounds the suffixes tried for one timestamp.
const maxNameTries = 1000

// createUnique opens a file for f under dir that did not exist before.
// Names that are taken get a -2, -3, ... suffix.
func createUnique(dir string, f Format, at time.Time) (*os.File, string, error) {
	base := strings.TrimSuffix(FileName(f, at), "."+string(f))
	for i := 1; i <= maxNameTries; i++ {
		name := base + "." + string(f)
		if i > 1 {
			name = fmt.Sprintf("%s-%d.%s", base, i, f)
		}
		path := filepath.Join(dir, name)
		out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return out, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free name for %s in %s", base, dir)
}

// ToFile renders comps into a new file under dir and returns its path.
// dir is created when missing. An existing file is never overwritten.
func ToFile(dir string, f Format, comps []domain.Component, opt Options) (string, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	out, path, err := createUnique(dir, f, time.Now())
	if err != nil {
		return "", fmt.Errorf("create %s: %w", f, err)
	}
	if err := Write(out, f, comps, opt); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", f, err)
	}
	return path, nil
}
