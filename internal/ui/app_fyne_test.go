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

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"pagebuilder/internal/builder"
	"pagebuilder/internal/config"
	"pagebuilder/internal/dnd"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/vector"
)

type page struct {
	editor  *builder.Editor
	canvas  *BuilderCanvas
	session *dnd.Session
	text    *PaletteItem
	image   *PaletteItem
	props   *PropertyPanel
	window  fyne.Window
}

// mount lays the palette handles at the window origin and the canvas at (50,100).
func mount(t *testing.T) *page {
	t.Helper()
	test.NewTempApp(t)
	e := builder.NewEditor(builder.WithMeasurer(fyneMeasurer{}))
	cv := NewBuilderCanvas(e, 800, 600)
	s := dnd.NewSession(cv)
	pg := &page{
		editor:  e,
		canvas:  cv,
		session: s,
		text:    NewPaletteItem(domain.Text, s),
		image:   NewPaletteItem(domain.Image, s),
		props:   NewPropertyPanel(e),
	}
	pg.text.Move(fyne.NewPos(0, 0))
	pg.text.Resize(fyne.NewSize(40, 30))
	pg.image.Move(fyne.NewPos(0, 40))
	pg.image.Resize(fyne.NewSize(40, 30))
	cv.Move(fyne.NewPos(50, 100))
	cv.Resize(fyne.NewSize(800, 600))

	w := test.NewWindow(container.NewWithoutLayout(pg.text, pg.image, cv))
	w.Resize(fyne.NewSize(1000, 800))
	t.Cleanup(w.Close)
	pg.window = w
	return pg
}

// dragTo drags item so that the pointer is released at local inside the canvas.
func (pg *page) dragTo(item *PaletteItem, local fyne.Position) {
	drv := fyne.CurrentApp().Driver()
	abs := drv.AbsolutePositionForObject(pg.canvas).Add(local)
	rel := abs.Subtract(drv.AbsolutePositionForObject(item))
	item.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: rel}})
	item.DragEnd()
}

func TestPaletteDragDropsAtCanvasLocalPosition(t *testing.T) {
	pg := mount(t)
	var dropped []domain.Component
	pg.canvas.OnDropped = func(c domain.Component) { dropped = append(dropped, c) }

	pg.dragTo(pg.text, fyne.NewPos(100, 100))
	pg.dragTo(pg.image, fyne.NewPos(300, 20))

	st := pg.editor.Snapshot()
	if len(st.Components) != 2 || len(dropped) != 2 {
		t.Fatalf("components = %d, callbacks = %d", len(st.Components), len(dropped))
	}
	if c := st.Components[0]; c.Archetype != domain.Text || c.Position != (domain.Position{X: 100, Y: 100}) || c.Content != "New text" {
		t.Fatalf("text component = %+v", c)
	}
	if c := st.Components[1]; c.Archetype != domain.Image || c.Position != (domain.Position{X: 300, Y: 20}) {
		t.Fatalf("image component = %+v", c)
	}
	if _, ok := pg.session.Active(); ok {
		t.Fatalf("session still active after drop")
	}
	if got := len(pg.canvas.Items()); got != 2 {
		t.Fatalf("canvas items = %d", got)
	}
}

func TestDropOutsideCanvasIsIgnored(t *testing.T) {
	pg := mount(t)
	pg.text.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(5, 5)}})
	pg.text.DragEnd()
	if n := pg.editor.Len(); n != 0 {
		t.Fatalf("drop on the palette appended %d components", n)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	pg := mount(t)
	cancelled := 0
	cancelDragOnEscape(pg.window.Canvas(), pg.session, func() { cancelled++ })
	press := func(k fyne.KeyName) { pg.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: k}) }

	press(fyne.KeyEscape)
	if cancelled != 0 {
		t.Fatalf("escape without a drag reported a cancel")
	}

	drv := fyne.CurrentApp().Driver()
	abs := drv.AbsolutePositionForObject(pg.canvas).Add(fyne.NewPos(200, 200))
	rel := abs.Subtract(drv.AbsolutePositionForObject(pg.text))
	pg.text.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: rel}})
	press(fyne.KeyReturn)
	if _, ok := pg.session.Active(); !ok {
		t.Fatalf("other keys must not cancel the drag")
	}
	press(fyne.KeyEscape)
	pg.text.DragEnd()
	if n := pg.editor.Len(); n != 0 || cancelled != 1 {
		t.Fatalf("after escape: components = %d, cancels = %d", n, cancelled)
	}
	if _, ok := pg.session.Active(); ok {
		t.Fatalf("session still active after escape")
	}
}

func TestCanvasAreaClipsAndScrolls(t *testing.T) {
	test.NewTempApp(t)
	e := builder.NewEditor(builder.WithMeasurer(fyneMeasurer{}))
	cv := NewBuilderCanvas(e, 800, 600)
	area := NewCanvasArea(cv)
	s := dnd.NewSession(cv)
	w := test.NewWindow(area)
	t.Cleanup(w.Close)
	w.Resize(fyne.NewSize(300, 200))
	area.ScrollToOffset(fyne.NewPos(0, 100))

	b, ok := cv.Bounds()
	if !ok {
		t.Fatalf("scrolled canvas not measurable")
	}
	if cv.Size().Width < 800 || cv.Size().Height < 600 {
		t.Fatalf("canvas shrunk below the page: %v", cv.Size())
	}
	drop := func(local vector.Pt) bool {
		if err := s.BeginPayload(dnd.Payload{Archetype: domain.Text}); err != nil {
			t.Fatal(err)
		}
		return s.Drop(b.Min().Add(local))
	}

	drop(vector.Pt{X: 20, Y: 150})
	st := e.Snapshot()
	if len(st.Components) != 1 || st.Components[0].Position != (domain.Position{X: 20, Y: 150}) {
		t.Fatalf("visible drop = %+v", st.Components)
	}
	// scrolled above the viewport
	drop(vector.Pt{X: 20, Y: 50})
	// right of the viewport, under whatever sits beside the area
	drop(vector.Pt{X: 700, Y: 150})
	if n := e.Len(); n != 1 {
		t.Fatalf("hidden drops appended components: %d", n)
	}
}

func TestUnsizedCanvasIsNotMeasurable(t *testing.T) {
	test.NewTempApp(t)
	cv := NewBuilderCanvas(builder.NewEditor(), 800, 600)
	if _, ok := cv.Bounds(); ok {
		t.Fatalf("canvas without size reported bounds")
	}
	s := dnd.NewSession(cv)
	if err := s.BeginPayload(dnd.Payload{Archetype: domain.Text}); err != nil {
		t.Fatal(err)
	}
	if s.Drop(vector.Pt{X: 10, Y: 10}) {
		t.Fatalf("drop delivered to an unmeasurable canvas")
	}
}

func TestTapSelectsAndPanelEdits(t *testing.T) {
	pg := mount(t)
	pg.dragTo(pg.text, fyne.NewPos(100, 100))

	if pg.props.Title() != "" {
		t.Fatalf("panel shows %q without selection", pg.props.Title())
	}
	test.TapAt(pg.canvas, fyne.NewPos(105, 105))
	if pg.props.Title() != "Text editing" {
		t.Fatalf("panel title = %q", pg.props.Title())
	}
	entry := pg.props.Entry(builder.KeyContent)
	if entry.Text != "New text" {
		t.Fatalf("entry = %q", entry.Text)
	}

	entry.SetText("")
	test.Type(entry, "Hello")
	c := pg.editor.Snapshot().Components[0]
	if c.Content != "Hello" || c.Position != (domain.Position{X: 100, Y: 100}) {
		t.Fatalf("component = %+v", c)
	}
	if it := pg.canvas.Items()[0]; it.Label != "Hello" || !it.Selected {
		t.Fatalf("canvas item = %+v", it)
	}
}

func TestImagePanelAndMissKeepsSelection(t *testing.T) {
	pg := mount(t)
	pg.dragTo(pg.image, fyne.NewPos(10, 10))
	test.TapAt(pg.canvas, fyne.NewPos(15, 15))

	if pg.props.Title() != "Image editing" {
		t.Fatalf("panel title = %q", pg.props.Title())
	}
	src := pg.props.Entry(builder.KeySource)
	if src.PlaceHolder != "Enter image URL" || src.Text != "" {
		t.Fatalf("src entry = %q placeholder %q", src.Text, src.PlaceHolder)
	}
	if pg.props.fields[builder.KeyContent].row.Visible() {
		t.Fatalf("text field visible for an image")
	}

	test.TapAt(pg.canvas, fyne.NewPos(700, 500))
	if pg.props.Title() != "Image editing" {
		t.Fatalf("miss changed the panel to %q", pg.props.Title())
	}
}

func TestStatusTextAndExportOptions(t *testing.T) {
	e := builder.NewEditor()
	if got := statusText(e.Snapshot()); got != "0 components" {
		t.Fatalf("status = %q", got)
	}
	c := e.Drop(domain.Image, vector.Pt{})
	e.Select(c.ID)
	if got := statusText(e.Snapshot()); got != "1 component, selected: image" {
		t.Fatalf("status = %q", got)
	}

	cfg := config.Defaults()
	cfg.Export.IncludeSelection = true
	opt := exportOptions(cfg, e.Snapshot())
	if opt.Width != 800 || opt.Height != 600 || opt.DPI != 72 || opt.Selected != c.ID || !opt.IncludeSelection {
		t.Fatalf("options = %+v", opt)
	}
}

func TestThemeFor(t *testing.T) {
	def := theme.DefaultTheme()
	dark := themeFor("Dark")
	if dark.Color(theme.ColorNameBackground, theme.VariantLight) != def.Color(theme.ColorNameBackground, theme.VariantDark) {
		t.Fatalf("dark theme does not pin the dark variant")
	}
	light := themeFor("light")
	if light.Color(theme.ColorNameBackground, theme.VariantDark) != def.Color(theme.ColorNameBackground, theme.VariantLight) {
		t.Fatalf("light theme does not pin the light variant")
	}
	if _, pinned := themeFor("system").(variantTheme); pinned {
		t.Fatalf("system should follow the OS variant")
	}
}
