package dnd

import (
	"testing"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/vector"
)

type fakeTarget struct {
	accepts  map[domain.Archetype]bool
	bounds   vector.Rect
	mounted  bool
	measured int
	drops    []vector.Pt
	payloads []Payload
}

func (f *fakeTarget) Accepts(a domain.Archetype) bool { return f.accepts[a] }
func (f *fakeTarget) Bounds() (vector.Rect, bool) {
	f.measured++
	return f.bounds, f.mounted
}
func (f *fakeTarget) Drop(p Payload, local vector.Pt) {
	f.payloads = append(f.payloads, p)
	f.drops = append(f.drops, local)
}

func canvasTarget() *fakeTarget {
	return &fakeTarget{
		accepts: map[domain.Archetype]bool{domain.Text: true, domain.Image: true},
		bounds:  vector.R(50, 100, 600, 400),
		mounted: true,
	}
}

func TestDropResolvesLocalCoordinates(t *testing.T) {
	tg := canvasTarget()
	s := NewSession(tg)
	if err := s.BeginPayload(Payload{Archetype: domain.Text}); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if !s.Drop(vector.Pt{X: 150, Y: 200}) {
		t.Fatalf("drop was not delivered")
	}
	if len(tg.drops) != 1 || tg.drops[0] != (vector.Pt{X: 100, Y: 100}) {
		t.Fatalf("local drop = %+v, want (100,100)", tg.drops)
	}
	if tg.payloads[0].Archetype != domain.Text {
		t.Fatalf("payload = %+v", tg.payloads[0])
	}
	if _, ok := s.Active(); ok {
		t.Fatalf("drag should end after drop")
	}
}

func TestDropRemeasuresEveryTime(t *testing.T) {
	tg := canvasTarget()
	s := NewSession(tg)
	_ = s.BeginPayload(Payload{Archetype: domain.Image})
	s.Drop(vector.Pt{X: 60, Y: 110})

	// the canvas moved, e.g. after scrolling
	tg.bounds = vector.R(0, 0, 600, 400)
	_ = s.BeginPayload(Payload{Archetype: domain.Image})
	s.Drop(vector.Pt{X: 60, Y: 110})

	if tg.measured != 2 {
		t.Fatalf("expected bounds measured per drop, got %d", tg.measured)
	}
	if tg.drops[0] != (vector.Pt{X: 10, Y: 10}) || tg.drops[1] != (vector.Pt{X: 60, Y: 110}) {
		t.Fatalf("unexpected drops: %+v", tg.drops)
	}
}

func TestDropSkipsUnmountedTarget(t *testing.T) {
	tg := canvasTarget()
	tg.mounted = false
	s := NewSession(tg)
	_ = s.BeginPayload(Payload{Archetype: domain.Text})
	if s.Drop(vector.Pt{X: 150, Y: 200}) {
		t.Fatalf("drop onto unmeasurable target should be skipped")
	}
	if len(tg.drops) != 0 {
		t.Fatalf("unexpected drops: %+v", tg.drops)
	}
	if _, ok := s.Active(); ok {
		t.Fatalf("drag should end even when skipped")
	}
}

func TestDropHonoursAcceptsAndBounds(t *testing.T) {
	textOnly := canvasTarget()
	textOnly.accepts = map[domain.Archetype]bool{domain.Text: true}
	wide := canvasTarget()
	wide.bounds = vector.R(0, 0, 2000, 2000)
	s := NewSession(textOnly)
	s.Register(wide)

	_ = s.BeginPayload(Payload{Archetype: domain.Image})
	s.Drop(vector.Pt{X: 150, Y: 200})
	if len(textOnly.drops) != 0 || len(wide.drops) != 1 {
		t.Fatalf("image should skip the text-only target: %d/%d", len(textOnly.drops), len(wide.drops))
	}

	_ = s.BeginPayload(Payload{Archetype: domain.Text})
	s.Drop(vector.Pt{X: 1500, Y: 1500})
	if len(textOnly.drops) != 0 || len(wide.drops) != 2 {
		t.Fatalf("pointer outside the first target should fall through: %d/%d", len(textOnly.drops), len(wide.drops))
	}
}

func TestDropWithoutDragIsNoop(t *testing.T) {
	tg := canvasTarget()
	s := NewSession(tg)
	if s.Drop(vector.Pt{X: 100, Y: 150}) {
		t.Fatalf("drop without an active drag should do nothing")
	}
	_ = s.BeginPayload(Payload{Archetype: domain.Text})
	s.Cancel()
	if s.Drop(vector.Pt{X: 100, Y: 150}) || len(tg.drops) != 0 {
		t.Fatalf("cancelled drag should not drop")
	}
}

func TestBeginRejectsInvalidPayload(t *testing.T) {
	s := NewSession()
	if err := s.Begin([]byte(`{"archetype":"video"}`)); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
	if _, ok := s.Active(); ok {
		t.Fatalf("invalid payload must not start a drag")
	}
}
