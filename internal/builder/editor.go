/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package builder owns the page state: the ordered component sequence and the
// selection. Views read immutable State snapshots and mutate only through the
// Editor, which notifies subscribers after every change.
package builder

import (
	"log/slog"

	"github.com/google/uuid"

	"pagebuilder/internal/domain"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/textlayout"
	"pagebuilder/internal/vector"
)

// State is a read-only snapshot of the page.
// Components is in paint order: later entries draw over earlier ones.
type State struct {
	Components []domain.Component
	Selected   domain.ID
}

// Selection resolves the selected identity against the snapshot's components.
func (s State) Selection() (domain.Component, bool) {
	if s.Selected == domain.NoID {
		return domain.Component{}, false
	}
	for _, c := range s.Components {
		if c.ID == s.Selected {
			return c, true
		}
	}
	return domain.Component{}, false
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDSource replaces the identity generator; it must never repeat.
func WithIDSource(next func() domain.ID) Option { return func(e *Editor) { e.newID = next } }

// WithMeasurer sets the measurer used to size hit boxes for SelectAt.
func WithMeasurer(m textlayout.Measurer) Option { return func(e *Editor) { e.measurer = m } }

// Editor is the single controller of page state. It is driven from the UI
// event goroutine and is not safe for concurrent use.
type Editor struct {
	components []domain.Component
	selected   domain.ID

	newID    func() domain.ID
	measurer textlayout.Measurer
	log      *slog.Logger

	listeners map[int]func(State)
	nextSub   int
}

// NewEditor returns an editor with no components and no selection.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		newID:     newTimeOrderedID,
		measurer:  textlayout.Basic,
		log:       applog.WithComponent("builder"),
		listeners: make(map[int]func(State)),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// newTimeOrderedID prefers UUIDv7 so identities sort by creation time.
func newTimeOrderedID() domain.ID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}

// Snapshot returns the current state. The component slice is a copy.
func (e *Editor) Snapshot() State {
	return State{Components: append([]domain.Component(nil), e.components...), Selected: e.selected}
}

// Subscribe registers fn to run synchronously after every change. Listeners
// run in subscription order. The returned func removes fn.
func (e *Editor) Subscribe(fn func(State)) (cancel func()) {
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

func (e *Editor) notify() {
	st := e.Snapshot()
	for i := 0; i < e.nextSub; i++ {
		if fn, ok := e.listeners[i]; ok {
			fn(st)
		}
	}
}

// Drop appends a new component of archetype a at the canvas-local position pos.
// Positions are stored as given; components may sit outside the visible area.
// The selection is not changed. An unknown archetype appends nothing and
// returns the zero component, whose ID is domain.NoID.
func (e *Editor) Drop(a domain.Archetype, pos vector.Pt) domain.Component {
	if !a.Valid() {
		e.log.Warn("drop of unknown archetype ignored", slog.String("archetype", string(a)))
		return domain.Component{}
	}
	c := domain.NewComponent(e.newID(), a, domain.Position{X: pos.X, Y: pos.Y})
	next := make([]domain.Component, len(e.components), len(e.components)+1)
	copy(next, e.components)
	e.components = append(next, c)
	e.log.Debug("component dropped",
		slog.String("id", c.ID.String()),
		slog.String("archetype", string(a)),
		slog.Float64("x", float64(pos.X)),
		slog.Float64("y", float64(pos.Y)))
	e.notify()
	return c
}

// Select makes id the selection. Unknown identities are ignored.
func (e *Editor) Select(id domain.ID) bool {
	if e.index(id) < 0 {
		return false
	}
	if e.selected != id {
		e.selected = id
		e.log.Debug("component selected", slog.String("id", id.String()))
		e.notify()
	}
	return true
}

// SelectAt selects the top-most component whose label box contains pt.
// A miss leaves the selection as it was.
func (e *Editor) SelectAt(pt vector.Pt) (domain.Component, bool) {
	it, ok := HitTest(Layout(e.Snapshot(), e.measurer), pt)
	if !ok {
		return domain.Component{}, false
	}
	e.Select(it.ID)
	return e.components[e.index(it.ID)], true
}

// EditSelected overwrites the content of the selected component: the text of a
// text component, the source reference of an image.
func (e *Editor) EditSelected(value string) bool {
	i := e.index(e.selected)
	if i < 0 {
		return false
	}
	c := e.components[i]
	c.Content = value
	return e.Update(c)
}

// Update replaces the component with the same identity. Identity and archetype
// are fixed for a component's lifetime; content and position are taken from c.
// The sequence is rebuilt so earlier snapshots keep their values.
func (e *Editor) Update(c domain.Component) bool {
	i := e.index(c.ID)
	if i < 0 {
		return false
	}
	cur := e.components[i]
	c.Archetype = cur.Archetype
	if c == cur {
		return true
	}
	next := make([]domain.Component, len(e.components))
	copy(next, e.components)
	next[i] = c
	e.components = next
	e.log.Debug("component updated", slog.String("id", c.ID.String()))
	e.notify()
	return true
}

// Len reports the number of components on the page.
func (e *Editor) Len() int { return len(e.components) }

func (e *Editor) index(id domain.ID) int {
	if id == domain.NoID {
		return -1
	}
	for i, c := range e.components {
		if c.ID == id {
			return i
		}
	}
	return -1
}
