package interaction

import (
	"image"
	"testing"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/pkg/geometry"
)

type fakeCommitter struct{ calls int }

func (f *fakeCommitter) CommitPending() bool {
	f.calls++
	return true
}

// setup returns a controller over a 400x300 image shown at 800x600.
func setup(t *testing.T) (*Controller, *annotation.Store, geometry.Size) {
	t.Helper()
	s := annotation.NewStore()
	c := New(s)
	if !c.LoadImage(image.NewRGBA(image.Rect(0, 0, 400, 300))) {
		t.Fatal("LoadImage failed")
	}
	return c, s, geometry.NewSize(800, 600)
}

func TestModeTransitions(t *testing.T) {
	s := annotation.NewStore()
	c := New(s)
	if c.Mode() != ModeIdle {
		t.Errorf("expected idle, got %s", c.Mode())
	}
	if c.Start() {
		t.Error("Start must be rejected without an image")
	}

	c.LoadImage(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if c.Mode() != ModeViewing {
		t.Errorf("expected viewing, got %s", c.Mode())
	}
	c.Start()
	if c.Mode() != ModeDrawing {
		t.Errorf("expected drawing, got %s", c.Mode())
	}
	c.Key(KeyEscape)
	if c.Mode() != ModeViewing {
		t.Errorf("expected viewing after escape, got %s", c.Mode())
	}

	c.Start()
	c.LoadImage(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if c.Mode() != ModeViewing {
		t.Errorf("loading an image must re-enter viewing, got %s", c.Mode())
	}
}

func TestClickMapsToImageSpace(t *testing.T) {
	c, s, disp := setup(t)
	c.Start()
	c.Click(geometry.NewPoint2D(200, 100), disp)

	snap := s.Snapshot()
	if len(snap.Current) != 1 {
		t.Fatalf("expected 1 point, got %d", len(snap.Current))
	}
	if got := snap.Current[0]; got != geometry.NewPoint2D(100, 50) {
		t.Errorf("expected (100,50) in image space, got %v", got)
	}
}

func TestClickPerAxisScale(t *testing.T) {
	got, ok := ToImage(geometry.NewPoint2D(50, 50), geometry.NewSize(100, 200), geometry.NewSize(400, 300))
	if !ok {
		t.Fatal("expected mapping to succeed")
	}
	want := geometry.NewPoint2D(200, 75)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestClickUnmappableIgnored(t *testing.T) {
	c, s, _ := setup(t)
	c.Start()
	if c.Click(geometry.NewPoint2D(1, 1), geometry.NewSize(0, 600)) {
		t.Error("expected click on an empty surface to be ignored")
	}
	if len(s.Snapshot().Current) != 0 {
		t.Error("no point must be added")
	}
}

func TestClickSelectsWhenViewing(t *testing.T) {
	c, s, disp := setup(t)
	c.Start()
	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 200}, {X: 0, Y: 200}} {
		c.Click(p, disp)
	}
	c.Finish()
	id := s.Snapshot().Polygons[0].ID

	c.Click(geometry.NewPoint2D(100, 100), disp)
	if s.Snapshot().SelectedID != id {
		t.Error("expected click inside outline to select it")
	}
	c.Click(geometry.NewPoint2D(700, 500), disp)
	if s.Snapshot().SelectedID != "" {
		t.Error("expected click outside to clear selection")
	}
}

func TestMoveOnlyWhileDrawing(t *testing.T) {
	c, s, disp := setup(t)
	if c.Move(geometry.NewPoint2D(10, 10), disp) {
		t.Error("hover must not be tracked outside drawing mode")
	}
	c.Start()
	c.Move(geometry.NewPoint2D(10, 20), disp)
	h := s.Snapshot().Hover
	if h == nil || *h != geometry.NewPoint2D(5, 10) {
		t.Errorf("expected hover (5,10), got %v", h)
	}
	c.Leave()
	if s.Snapshot().Hover != nil {
		t.Error("expected Leave to clear hover")
	}
}

func TestKeys(t *testing.T) {
	c, s, disp := setup(t)
	fc := &fakeCommitter{}
	c.SetCommitter(fc)

	c.Start()
	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}} {
		c.Click(p, disp)
	}
	c.Finish()
	c.Click(geometry.NewPoint2D(80, 20), disp)
	if s.Snapshot().SelectedID == "" {
		t.Fatal("expected a selection")
	}

	c.Key(KeyEnter)
	if fc.calls != 1 {
		t.Errorf("expected Enter to commit once, got %d", fc.calls)
	}

	c.Key(KeyBackspace)
	if n := len(s.Snapshot().Polygons); n != 0 {
		t.Errorf("expected backspace to delete selection, %d left", n)
	}
	if c.Key(KeyDelete) {
		t.Error("delete without selection must be a no-op")
	}
	if c.Key(KeyNone) {
		t.Error("unknown key must be ignored")
	}
}

func TestFinishNotDrawing(t *testing.T) {
	c, _, _ := setup(t)
	if c.Finish() {
		t.Error("Finish outside drawing mode must be a no-op")
	}
	if c.Cancel() {
		t.Error("Cancel outside drawing mode must be a no-op")
	}
}

func TestClearAllNeedsImage(t *testing.T) {
	c := New(annotation.NewStore())
	if c.ClearAll() {
		t.Error("ClearAll without an image must be a no-op")
	}
}
