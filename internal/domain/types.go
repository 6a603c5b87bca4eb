/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany..
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the data model of the page builder: the archetypes the
// palette offers and the component records placed on the canvas.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Archetype is a kind of component the palette offers.
type Archetype string

const (
	Text  Archetype = "text"
	Image Archetype = "image"
)

// Default content and labels for new and rendered components.
const (
	DefaultText   = "New text"
	EmptyTextName = "Text"
	ImageLabel    = "Image"
)

// Archetypes returns the archetypes in palette order.
func Archetypes() []Archetype { return []Archetype{Text, Image} }

// ParseArchetype maps a tag to its archetype.
func ParseArchetype(tag string) (Archetype, error) {
	switch Archetype(strings.ToLower(strings.TrimSpace(tag))) {
	case Text:
		return Text, nil
	case Image:
		return Image, nil
	}
	return "", fmt.Errorf("unknown archetype %q", tag)
}

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool { return a == Text || a == Image }

// DefaultContent is the content a freshly dropped component starts with.
func (a Archetype) DefaultContent() string {
	if a == Text {
		return DefaultText
	}
	return ""
}

// ID identifies a component for the lifetime of the canvas.
type ID = uuid.UUID

// NoID is the zero identity; it never names a component.
var NoID = uuid.Nil

// Position is a point in canvas-local coordinates.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Component is one placed instance on the canvas.
// Content is the text of a text component and the source reference of an image.
type Component struct {
	ID        ID        `json:"id"`
	Archetype Archetype `json:"archetype"`
	Position  Position  `json:"position"`
	Content   string    `json:"content"`
}

// NewComponent builds a component with the archetype's default content.
func NewComponent(id ID, a Archetype, pos Position) Component {
	return Component{ID: id, Archetype: a, Position: pos, Content: a.DefaultContent()}
}

// Label is what the canvas shows for the component. Images show a fixed label;
// the source reference is not rendered.
func (c Component) Label() string {
	if c.Archetype == Image {
		return ImageLabel
	}
	if c.Content == "" {
		return EmptyTextName
	}
	return c.Content
}
