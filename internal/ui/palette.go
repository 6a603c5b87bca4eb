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
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pagebuilder/internal/dnd"
	"pagebuilder/internal/domain"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/vector"
)

// paletteLabel is the caption of a palette handle.
func paletteLabel(a domain.Archetype) string {
	switch a {
	case domain.Text:
		return "Text component"
	case domain.Image:
		return "Image component"
	}
	return string(a)
}

// PaletteItem is a draggable handle for one archetype. Dragging it starts a
// drag session; releasing it drops at the pointer.
type PaletteItem struct {
	widget.BaseWidget
	Archetype domain.Archetype

	session  *dnd.Session
	log      *slog.Logger
	dragging bool
	lastAbs  fyne.Position
}

// NewPaletteItem creates a handle bound to session.
func NewPaletteItem(a domain.Archetype, session *dnd.Session) *PaletteItem {
	p := &PaletteItem{Archetype: a, session: session, log: applog.WithComponent("palette")}
	p.ExtendBaseWidget(p)
	return p
}

// NewPalette stacks one handle per archetype under a heading.
func NewPalette(session *dnd.Session) *fyne.Container {
	objs := []fyne.CanvasObject{widget.NewLabelWithStyle("Components", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), widget.NewSeparator()}
	for _, a := range domain.Archetypes() {
		objs = append(objs, NewPaletteItem(a, session))
	}
	return container.NewVBox(objs...)
}

func (p *PaletteItem) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	bg.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	bg.StrokeWidth = 1
	bg.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	txt := canvas.NewText(paletteLabel(p.Archetype), theme.Color(theme.ColorNameForeground))
	return &paletteItemRenderer{item: p, bg: bg, txt: txt, objects: []fyne.CanvasObject{bg, txt}}
}

// Dragged begins the session on the first movement and tracks the pointer.
func (p *PaletteItem) Dragged(e *fyne.DragEvent) {
	if !p.dragging {
		if err := p.session.BeginPayload(dnd.Payload{Archetype: p.Archetype}); err != nil {
			p.log.Error("begin drag failed", slog.Any("err", err))
			return
		}
		p.dragging = true
		p.Refresh()
	}
	p.lastAbs = absolutePosition(p).Add(e.Position)
}

// DragEnd drops at the last pointer position. A cancelled session makes this a no-op.
func (p *PaletteItem) DragEnd() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.Refresh()
	if !p.session.Drop(vector.Pt{X: p.lastAbs.X, Y: p.lastAbs.Y}) {
		p.log.Debug("drag ended without a drop", slog.String("archetype", string(p.Archetype)))
	}
}

// Cursor hints that the handle can be picked up.
func (p *PaletteItem) Cursor() desktop.Cursor { return desktop.PointerCursor }

type paletteItemRenderer struct {
	item    *PaletteItem
	bg      *canvas.Rectangle
	txt     *canvas.Text
	objects []fyne.CanvasObject
}

func (r *paletteItemRenderer) Destroy()                     {}
func (r *paletteItemRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *paletteItemRenderer) MinSize() fyne.Size {
	pad := theme.Size(theme.SizeNameInnerPadding)
	ts := r.txt.MinSize()
	return fyne.NewSize(ts.Width+2*pad, ts.Height+2*pad)
}

func (r *paletteItemRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	ts := r.txt.MinSize()
	r.txt.Move(fyne.NewPos((size.Width-ts.Width)/2, (size.Height-ts.Height)/2))
	r.txt.Resize(ts)
}

func (r *paletteItemRenderer) Refresh() {
	if r.item.dragging {
		r.bg.FillColor = theme.Color(theme.ColorNamePressed)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}
	r.txt.Color = theme.Color(theme.ColorNameForeground)
	r.bg.Refresh()
	r.txt.Refresh()
}

// absolutePosition is the object's position in window coordinates, or the
// origin when no app is running.
func absolutePosition(o fyne.CanvasObject) fyne.Position {
	a := fyne.CurrentApp()
	if a == nil {
		return fyne.Position{}
	}
	return a.Driver().AbsolutePositionForObject(o)
}

// cancelDragOnEscape makes Escape on c abort the active drag of s. onCancel
// runs after a drag was aborted; the release that follows drops nothing.
func cancelDragOnEscape(c fyne.Canvas, s *dnd.Session, onCancel func()) {
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyEscape {
			return
		}
		if _, ok := s.Active(); !ok {
			return
		}
		s.Cancel()
		if onCancel != nil {
			onCancel()
		}
	})
}
