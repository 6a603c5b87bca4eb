/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package dnd implements the two-phase drag-and-drop protocol between the
// palette and the canvas. A source begins a drag by declaring its payload;
// a target declares the archetypes it accepts and receives the payload plus
// the drop position resolved into its own coordinates.
package dnd

import (
	"fmt"
	"log/slog"

	"pagebuilder/internal/domain"
	applog "pagebuilder/internal/log"
	"pagebuilder/internal/vector"
)

// Target is a drop zone.
//
// Bounds returns the target's bounding box in absolute (window) coordinates,
// measured at call time. ok is false when the target cannot be measured,
// for example before it is mounted.
type Target interface {
	Accepts(a domain.Archetype) bool
	Bounds() (r vector.Rect, ok bool)
	Drop(p Payload, local vector.Pt)
}

// Session tracks at most one drag at a time. It is owned by the UI root and
// shared with sources and targets; it is not safe for concurrent use.
type Session struct {
	targets []Target
	active  *Payload
	log     *slog.Logger
}

// NewSession creates a session with the given drop targets, in priority order.
func NewSession(targets ...Target) *Session {
	return &Session{targets: append([]Target(nil), targets...), log: applog.WithComponent("dnd")}
}

// Register adds a drop target after the existing ones.
func (s *Session) Register(t Target) { s.targets = append(s.targets, t) }

// Begin starts a drag with the wire payload declared by the source. A drag that
// is still active is replaced.
func (s *Session) Begin(raw []byte) error {
	p, err := DecodePayload(raw)
	if err != nil {
		return fmt.Errorf("begin drag: %w", err)
	}
	s.active = &p
	s.log.Debug("drag started", slog.String("archetype", string(p.Archetype)))
	return nil
}

// BeginPayload is Begin for an already typed payload.
func (s *Session) BeginPayload(p Payload) error {
	raw, err := EncodePayload(p)
	if err != nil {
		return fmt.Errorf("begin drag: %w", err)
	}
	return s.Begin(raw)
}

// Active returns the payload of the drag in progress.
func (s *Session) Active() (Payload, bool) {
	if s.active == nil {
		return Payload{}, false
	}
	return *s.active, true
}

// Cancel ends the drag without dropping.
func (s *Session) Cancel() { s.active = nil }

// Drop ends the drag at the absolute pointer position abs. Target bounds are
// measured now, never cached. The first measurable target containing abs that
// accepts the archetype receives the drop at abs minus its top-left corner.
// Drop reports whether a target took the payload; the drag ends either way.
func (s *Session) Drop(abs vector.Pt) bool {
	if s.active == nil {
		return false
	}
	p := *s.active
	s.active = nil

	for _, t := range s.targets {
		if !t.Accepts(p.Archetype) {
			continue
		}
		r, ok := t.Bounds()
		if !ok {
			s.log.Debug("drop target not measurable; skipped", slog.String("archetype", string(p.Archetype)))
			continue
		}
		if !r.Contains(abs) {
			continue
		}
		local := abs.Sub(r.Min())
		t.Drop(p, local)
		return true
	}
	s.log.Debug("drop outside any target", slog.Float64("x", float64(abs.X)), slog.Float64("y", float64(abs.Y)))
	return false
}
