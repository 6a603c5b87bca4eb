/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package builder

import "pagebuilder/internal/domain"

// Field keys.
const (
	KeyContent = "content"
	KeySource  = "src"
)

// Field is one editable property of the selected component.
type Field struct {
	Key         string
	Label       string
	Value       string
	Placeholder string
}

// Panel describes the property editor for the current selection.
type Panel struct {
	Title     string
	Archetype domain.Archetype
	Target    domain.ID
	Fields    []Field
}

// Properties derives the editor panel from s. It reports false, with no
// fields, when nothing is selected.
func Properties(s State) (Panel, bool) {
	c, ok := s.Selection()
	if !ok {
		return Panel{}, false
	}
	p := Panel{Archetype: c.Archetype, Target: c.ID}
	switch c.Archetype {
	case domain.Text:
		p.Title = "Text editing"
		p.Fields = []Field{{Key: KeyContent, Label: "Text", Value: c.Content}}
	case domain.Image:
		p.Title = "Image editing"
		p.Fields = []Field{{Key: KeySource, Label: "Image URL", Value: c.Content, Placeholder: "Enter image URL"}}
	default:
		return Panel{}, false
	}
	return p, true
}
