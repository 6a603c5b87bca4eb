package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseArchetype(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Archetype
		ok   bool
	}{
		{"text", Text, true},
		{" Image ", Image, true},
		{"video", "", false},
		{"", "", false},
	} {
		got, err := ParseArchetype(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("ParseArchetype(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestNewComponentDefaults(t *testing.T) {
	id := uuid.New()
	txt := NewComponent(id, Text, Position{X: 1, Y: 2})
	if txt.Content != DefaultText || txt.ID != id || txt.Position != (Position{X: 1, Y: 2}) {
		t.Fatalf("unexpected text component: %+v", txt)
	}
	img := NewComponent(uuid.New(), Image, Position{})
	if img.Content != "" {
		t.Fatalf("image should start with empty source, got %q", img.Content)
	}
}

func TestLabel(t *testing.T) {
	if got := (Component{Archetype: Text, Content: "Hello"}).Label(); got != "Hello" {
		t.Fatalf("text label = %q", got)
	}
	if got := (Component{Archetype: Text}).Label(); got != EmptyTextName {
		t.Fatalf("empty text label = %q", got)
	}
	if got := (Component{Archetype: Image, Content: "https://example.test/a.png"}).Label(); got != ImageLabel {
		t.Fatalf("image label = %q, source must not be rendered", got)
	}
}

func TestArchetypesOrder(t *testing.T) {
	as := Archetypes()
	if len(as) != 2 || as[0] != Text || as[1] != Image {
		t.Fatalf("Archetypes() = %v", as)
	}
	for _, a := range as {
		if !a.Valid() {
			t.Fatalf("%q should be valid", a)
		}
	}
	if Archetype("video").Valid() {
		t.Fatalf("unknown archetype reported valid")
	}
}
