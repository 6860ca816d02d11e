package app

import (
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"floorplan-annotator/internal/interaction"
	"floorplan-annotator/internal/render"
	"floorplan-annotator/pkg/geometry"
)

func writePlan(t *testing.T, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, goimage.NewRGBA(goimage.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func newEditor(t *testing.T) *Editor {
	t.Helper()
	e, err := NewEditor(render.DefaultOptions())
	if err != nil {
		t.Fatalf("NewEditor failed: %v", err)
	}
	return e
}

func TestLoadPlan(t *testing.T) {
	e := newEditor(t)
	if e.Frame() != nil {
		t.Error("expected no frame before a plan is loaded")
	}

	frames := 0
	e.OnFrame(func(*goimage.RGBA) { frames++ })

	if err := e.LoadPlan(writePlan(t, "level-2.png", 60, 40)); err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if frames != 1 {
		t.Errorf("expected one frame after load, got %d", frames)
	}
	if b := e.Frame().Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Errorf("expected 60x40 frame, got %v", b)
	}
	if e.Controller.Mode() != interaction.ModeViewing {
		t.Errorf("expected viewing mode, got %s", e.Controller.Mode())
	}
	if v := e.Panel.View(); v.PlanName != "level-2" {
		t.Errorf("expected plan name level-2, got %q", v.PlanName)
	}
}

func TestLoadPlanErrorKeepsSession(t *testing.T) {
	e := newEditor(t)
	if err := e.LoadPlan(writePlan(t, "a.png", 10, 10)); err != nil {
		t.Fatal(err)
	}
	e.Controller.Start()

	if err := e.LoadPlan(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if e.Controller.Mode() != interaction.ModeDrawing {
		t.Error("failed load must not reset the session")
	}
	if e.Plan().Name != "a" {
		t.Errorf("expected previous plan kept, got %q", e.Plan().Name)
	}
}

func TestEnterCommitsThroughPanel(t *testing.T) {
	e := newEditor(t)
	if err := e.LoadPlan(writePlan(t, "p.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	disp := geometry.NewSize(100, 100)
	e.Controller.Start()
	for _, p := range []geometry.Point2D{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}} {
		e.Controller.Click(p, disp)
	}
	e.Controller.Finish()
	e.Controller.Click(geometry.NewPoint2D(50, 50), disp)

	e.Panel.SetEditingNumber("301")
	e.Controller.Key(interaction.KeyEnter)

	sel, ok := e.Store.Snapshot().Selected()
	if !ok || sel.Number != "301" {
		t.Errorf("expected Enter to rename to 301, got %q (ok=%v)", sel.Number, ok)
	}
}

func TestFrameFollowsStore(t *testing.T) {
	e := newEditor(t)
	if err := e.LoadPlan(writePlan(t, "p.png", 50, 50)); err != nil {
		t.Fatal(err)
	}
	var last *goimage.RGBA
	e.OnFrame(func(f *goimage.RGBA) { last = f })

	e.Controller.Start()
	e.Controller.Click(geometry.NewPoint2D(25, 25), geometry.NewSize(50, 50))
	if last == nil {
		t.Fatal("expected a frame after a click")
	}
	if c := last.RGBAAt(25, 25); c.B < 200 {
		t.Errorf("expected vertex marker in frame, got %v", c)
	}
}
