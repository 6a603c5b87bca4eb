/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package builder

import (
	"pagebuilder/internal/domain"
	"pagebuilder/internal/textlayout"
	"pagebuilder/internal/vector"
)

// LabelPadding surrounds each label inside its box, horizontally and vertically.
const LabelPadding float32 = 4

// Item is one component prepared for painting. Bounds are in canvas-local
// coordinates with the top-left corner at the stored position.
type Item struct {
	ID        domain.ID
	Archetype domain.Archetype
	Pos       vector.Pt
	Label     string
	Bounds    vector.Rect
	Selected  bool
}

// Layout returns the render items of s in paint order.
func Layout(s State, m textlayout.Measurer) []Item {
	if m == nil {
		m = textlayout.Basic
	}
	items := make([]Item, 0, len(s.Components))
	for _, c := range s.Components {
		label := c.Label()
		sz := m.Measure(label)
		pos := vector.Pt{X: c.Position.X, Y: c.Position.Y}
		items = append(items, Item{
			ID:        c.ID,
			Archetype: c.Archetype,
			Pos:       pos,
			Label:     label,
			Bounds:    vector.RectAt(pos, vector.Size{W: sz.W + 2*LabelPadding, H: sz.H + 2*LabelPadding}),
			Selected:  s.Selected != domain.NoID && c.ID == s.Selected,
		})
	}
	return items
}

// HitTest returns the top-most item containing pt. Later items paint over
// earlier ones, so the search runs back to front.
func HitTest(items []Item, pt vector.Pt) (Item, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Bounds.Contains(pt) {
			return items[i], true
		}
	}
	return Item{}, false
}

// Extent is the union of all item bounds, or the zero rect when empty.
func Extent(items []Item) vector.Rect {
	var r vector.Rect
	for i, it := range items {
		if i == 0 {
			r = it.Bounds
			continue
		}
		r = r.Union(it.Bounds)
	}
	return r
}
