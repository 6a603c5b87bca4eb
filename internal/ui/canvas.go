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
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/dnd"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/textlayout"
	"pagebuilder/internal/vector"
)

var (
	colDesk      = color.RGBA{R: 30, G: 30, B: 34, A: 255}
	colPage      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colInk       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colImageBox  = color.RGBA{R: 136, G: 136, B: 136, A: 255}
	colSelection = color.RGBA{R: 0, G: 170, B: 255, A: 255}
)

// fyneMeasurer sizes labels with the current theme text, one canvas.Text per
// line, so hit boxes match what the canvas paints.
type fyneMeasurer struct{}

func (fyneMeasurer) Measure(s string) vector.Size {
	if fyne.CurrentApp() == nil {
		return textlayout.Basic.Measure(s)
	}
	size := theme.Size(theme.SizeNameText)
	var w, h float32
	for _, ln := range strings.Split(s, "\n") {
		m := fyne.MeasureText(ln, size, fyne.TextStyle{})
		w = max(w, m.Width)
		h += m.Height
	}
	return vector.Size{W: w, H: h}
}

// BuilderCanvas is the drop target and renders every component at its stored
// canvas-local position. The page rectangle marks the configured size;
// components outside it are still drawn and hit-tested.
type BuilderCanvas struct {
	widget.BaseWidget

	editor   *builder.Editor
	measurer textlayout.Measurer
	pageW    float32
	pageH    float32
	items    []builder.Item
	unsub    func()
	viewport *container.Scroll

	// OnDropped runs after a drop appended a component.
	OnDropped func(domain.Component)
	// OnSelected runs after a tap selected a component.
	OnSelected func(domain.Component)
}

var _ dnd.Target = (*BuilderCanvas)(nil)

// NewBuilderCanvas binds a canvas to editor. Call Close to unsubscribe.
func NewBuilderCanvas(editor *builder.Editor, pageW, pageH float32) *BuilderCanvas {
	c := &BuilderCanvas{editor: editor, measurer: fyneMeasurer{}, pageW: pageW, pageH: pageH}
	c.ExtendBaseWidget(c)
	c.items = builder.Layout(editor.Snapshot(), c.measurer)
	c.unsub = editor.Subscribe(func(st builder.State) {
		c.items = builder.Layout(st, c.measurer)
		c.Refresh()
	})
	return c
}

// NewCanvasArea wraps c in a scroll container that clips it to the space the
// layout gives it. Drops onto the part scrolled out of view are ignored.
func NewCanvasArea(c *BuilderCanvas) *container.Scroll {
	s := container.NewScroll(c)
	c.viewport = s
	return s
}

// inView reports whether the canvas-local point is visible in the viewport.
// A canvas without a viewport is fully visible.
func (c *BuilderCanvas) inView(local vector.Pt) bool {
	if c.viewport == nil {
		return true
	}
	off, sz := c.viewport.Offset, c.viewport.Size()
	return vector.R(off.X, off.Y, sz.Width, sz.Height).Contains(local)
}

// Close detaches the canvas from its editor.
func (c *BuilderCanvas) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// SetPageSize changes the page rectangle, e.g. after a config reload.
func (c *BuilderCanvas) SetPageSize(w, h float32) {
	if w <= 0 || h <= 0 || (w == c.pageW && h == c.pageH) {
		return
	}
	c.pageW, c.pageH = w, h
	c.Refresh()
	if c.viewport != nil {
		c.viewport.Refresh()
	}
}

// Accepts takes every known archetype.
func (c *BuilderCanvas) Accepts(a domain.Archetype) bool { return a.Valid() }

// Bounds measures the canvas in window coordinates now. A canvas that has not
// been laid out inside a window reports false.
func (c *BuilderCanvas) Bounds() (vector.Rect, bool) {
	sz := c.Size()
	if sz.Width <= 0 || sz.Height <= 0 || !c.Visible() {
		return vector.Rect{}, false
	}
	a := fyne.CurrentApp()
	if a == nil || a.Driver().CanvasForObject(c) == nil {
		return vector.Rect{}, false
	}
	pos := a.Driver().AbsolutePositionForObject(c)
	return vector.R(pos.X, pos.Y, sz.Width, sz.Height), true
}

// Drop appends a component of the dragged archetype at local. Points hidden
// behind the viewport edge drop nothing.
func (c *BuilderCanvas) Drop(p dnd.Payload, local vector.Pt) {
	if !c.inView(local) {
		return
	}
	comp := c.editor.Drop(p.Archetype, local)
	if comp.ID != domain.NoID && c.OnDropped != nil {
		c.OnDropped(comp)
	}
}

// Tapped selects the top-most component under the pointer. A miss keeps
// the current selection.
func (c *BuilderCanvas) Tapped(e *fyne.PointEvent) {
	comp, ok := c.editor.SelectAt(vector.Pt{X: e.Position.X, Y: e.Position.Y})
	if ok && c.OnSelected != nil {
		c.OnSelected(comp)
	}
}

// Items returns the render items of the last refresh.
func (c *BuilderCanvas) Items() []builder.Item { return c.items }

func (c *BuilderCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(colDesk)
	page := canvas.NewRectangle(colPage)
	page.StrokeColor = colInk
	page.StrokeWidth = 1
	r := &builderCanvasRenderer{c: c, bg: bg, page: page}
	r.rebuild()
	return r
}

// builderCanvasRenderer positions page and component visuals manually.
type builderCanvasRenderer struct {
	c        *BuilderCanvas
	bg, page *canvas.Rectangle
	objects  []fyne.CanvasObject
}

func (r *builderCanvasRenderer) Destroy()                     {}
func (r *builderCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

// MinSize is the page, so a viewport scrolls to every part of it.
func (r *builderCanvasRenderer) MinSize() fyne.Size { return fyne.NewSize(r.c.pageW, r.c.pageH) }

func (r *builderCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.page.Resize(fyne.NewSize(r.c.pageW, r.c.pageH))
	r.page.Move(fyne.NewPos(0, 0))
}

func (r *builderCanvasRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}

// rebuild recreates component visuals in paint order.
func (r *builderCanvasRenderer) rebuild() {
	objs := []fyne.CanvasObject{r.bg, r.page}
	textSize := theme.Size(theme.SizeNameText)
	for _, it := range r.c.items {
		b := it.Bounds
		if it.Archetype == domain.Image {
			box := canvas.NewRectangle(color.Transparent)
			box.StrokeColor = colImageBox
			box.StrokeWidth = 1
			box.Move(fyne.NewPos(b.X, b.Y))
			box.Resize(fyne.NewSize(b.W, b.H))
			objs = append(objs, box)
		}
		y := b.Y + builder.LabelPadding
		for _, ln := range strings.Split(it.Label, "\n") {
			t := canvas.NewText(ln, colInk)
			t.TextSize = textSize
			ms := t.MinSize()
			t.Move(fyne.NewPos(b.X+builder.LabelPadding, y))
			t.Resize(ms)
			objs = append(objs, t)
			y += ms.Height
		}
		if it.Selected {
			sel := canvas.NewRectangle(color.Transparent)
			sel.StrokeColor = colSelection
			sel.StrokeWidth = 2
			sel.Move(fyne.NewPos(b.X-1, b.Y-1))
			sel.Resize(fyne.NewSize(b.W+2, b.H+2))
			objs = append(objs, sel)
		}
	}
	r.objects = objs
}
