package panels

import (
	"image"
	"testing"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/internal/app"
	"floorplan-annotator/internal/render"
	"floorplan-annotator/pkg/geometry"

	"fyne.io/fyne/v2/test"
)

func newEditorWithOutline(t *testing.T) *app.Editor {
	t.Helper()
	e, err := app.NewEditor(render.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	e.Controller.LoadImage(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	disp := geometry.NewSize(100, 100)
	e.Controller.Start()
	for _, p := range []geometry.Point2D{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}} {
		e.Controller.Click(p, disp)
	}
	e.Controller.Finish()
	return e
}

func TestApartmentPanelSelection(t *testing.T) {
	test.NewApp()
	e := newEditorWithOutline(t)
	ap := NewApartmentPanel(e.Panel)

	if ap.selectionBox.Visible() {
		t.Error("selection editor must be hidden without a selection")
	}
	if ap.countLabel.Text != "All apartments (1)" {
		t.Errorf("unexpected count label %q", ap.countLabel.Text)
	}

	e.Controller.Click(geometry.NewPoint2D(80, 20), geometry.NewSize(100, 100))
	if !ap.selectionBox.Visible() {
		t.Fatal("selection editor must be shown after a canvas pick")
	}
	if ap.numberEntry.Text != "Apt. 1" {
		t.Errorf("expected number field Apt. 1, got %q", ap.numberEntry.Text)
	}

	ap.numberEntry.SetText("")
	test.Type(ap.numberEntry, "12B")
	test.Tap(ap.commitButton)
	sel, _ := e.Store.Snapshot().Selected()
	if sel.Number != "12B" {
		t.Errorf("expected rename through the commit button, got %q", sel.Number)
	}

	test.Tap(ap.statusButtons[annotation.StatusSold])
	sel, _ = e.Store.Snapshot().Selected()
	if sel.Status != annotation.StatusSold {
		t.Errorf("expected sold, got %s", sel.Status)
	}

	test.Tap(ap.deleteButton)
	if n := len(e.Store.Snapshot().Polygons); n != 0 {
		t.Errorf("expected outline deleted, %d left", n)
	}
	if ap.selectionBox.Visible() {
		t.Error("selection editor must hide after delete")
	}
}

func TestApartmentPanelListPick(t *testing.T) {
	test.NewApp()
	e := newEditorWithOutline(t)
	ap := NewApartmentPanel(e.Panel)

	ap.list.Select(0)
	if _, ok := e.Store.Snapshot().Selected(); !ok {
		t.Fatal("expected list pick to select the outline")
	}

	// Picking the same row again drops the unsaved number.
	ap.numberEntry.SetText("")
	test.Type(ap.numberEntry, "7C")
	if v := e.Panel.View(); v.EditingNumber != "7C" {
		t.Fatalf("expected staged number 7C, got %q", v.EditingNumber)
	}
	ap.list.Select(0)
	if v := e.Panel.View(); v.EditingNumber != "Apt. 1" {
		t.Errorf("expected re-pick to reset the staged number, got %q", v.EditingNumber)
	}
	if ap.numberEntry.Text != "Apt. 1" {
		t.Errorf("expected number field reset, got %q", ap.numberEntry.Text)
	}
	sel, _ := e.Store.Snapshot().Selected()
	if sel.Number != "Apt. 1" {
		t.Errorf("re-pick must not rename, got %q", sel.Number)
	}
}

func TestDrawingToolbar(t *testing.T) {
	test.NewApp()
	e := newEditorWithOutline(t)
	clears := 0
	tb := NewDrawingToolbar(e.Controller, e.Panel, func() {
		clears++
		e.Controller.ClearAll()
	})

	if tb.countLabel.Text != "Apartments: 1" {
		t.Errorf("unexpected count label %q", tb.countLabel.Text)
	}
	if tb.finishButton.Visible() {
		t.Error("finish must be hidden while not drawing")
	}

	test.Tap(tb.startButton)
	if !e.Store.Drawing() {
		t.Fatal("expected drawing mode")
	}
	e.Controller.Click(geometry.NewPoint2D(5, 5), geometry.NewSize(100, 100))
	if tb.pointsLabel.Text != "Points: 1" {
		t.Errorf("unexpected points label %q", tb.pointsLabel.Text)
	}

	test.Tap(tb.finishButton)
	if e.Store.Drawing() {
		t.Error("expected drawing to end")
	}
	if n := len(e.Store.Snapshot().Polygons); n != 1 {
		t.Errorf("one-point outline must be discarded, have %d outlines", n)
	}

	test.Tap(tb.clearButton)
	if clears != 1 {
		t.Errorf("expected clear callback once, got %d", clears)
	}
	if n := len(e.Store.Snapshot().Polygons); n != 0 {
		t.Errorf("expected clear all, have %d outlines", n)
	}
	if !tb.clearButton.Disabled() {
		t.Error("clear must be disabled with nothing to clear")
	}
}
