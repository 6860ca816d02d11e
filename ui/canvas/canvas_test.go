package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"floorplan-annotator/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestTapReportsDisplayedPosition(t *testing.T) {
	test.NewApp()
	pc := NewPlanCanvas()
	pc.SetFrame(solidFrame(200, 100, color.RGBA{A: 255}))
	pc.SetZoom(2)

	var gotPos geometry.Point2D
	var gotSize geometry.Size
	calls := 0
	pc.OnClick(func(p geometry.Point2D, s geometry.Size) {
		gotPos, gotSize = p, s
		calls++
	})

	test.TapAt(pc.content, fyne.NewPos(100, 50))
	if calls != 1 {
		t.Fatalf("expected one click, got %d", calls)
	}
	if gotPos != geometry.NewPoint2D(100, 50) {
		t.Errorf("expected position (100,50), got %v", gotPos)
	}
	if gotSize != geometry.NewSize(400, 200) {
		t.Errorf("expected displayed size 400x200, got %v", gotSize)
	}

	test.TapAt(pc.content, fyne.NewPos(-5, 10))
	if calls != 1 {
		t.Error("taps outside the plan must be ignored")
	}
}

func TestHoverCallbacks(t *testing.T) {
	test.NewApp()
	pc := NewPlanCanvas()
	pc.SetFrame(solidFrame(50, 50, color.RGBA{A: 255}))

	var moved []geometry.Point2D
	left := false
	pc.OnMove(func(p geometry.Point2D, _ geometry.Size) { moved = append(moved, p) })
	pc.OnLeave(func() { left = true })

	ev := &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 20)}}
	pc.content.MouseIn(ev)
	ev.Position = fyne.NewPos(12, 22)
	pc.content.MouseMoved(ev)
	pc.content.MouseOut()

	if len(moved) != 2 || moved[1] != geometry.NewPoint2D(12, 22) {
		t.Errorf("unexpected moves %v", moved)
	}
	if !left {
		t.Error("expected leave callback")
	}
}

func TestZoomClamped(t *testing.T) {
	test.NewApp()
	pc := NewPlanCanvas()
	var reported float64
	pc.OnZoomChange(func(z float64) { reported = z })

	pc.SetZoom(100)
	if pc.Zoom() != maxZoom || reported != maxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", maxZoom, pc.Zoom())
	}
	pc.SetZoom(0)
	if pc.Zoom() != minZoom {
		t.Errorf("expected zoom clamped to %v, got %v", minZoom, pc.Zoom())
	}
	pc.SetZoom(1)
	pc.ZoomIn()
	if pc.Zoom() != zoomStep {
		t.Errorf("expected zoom %v, got %v", zoomStep, pc.Zoom())
	}
}

func TestDisplayedSizeFollowsFrame(t *testing.T) {
	test.NewApp()
	pc := NewPlanCanvas()
	pc.SetFrame(solidFrame(300, 120, color.RGBA{A: 255}))
	pc.SetZoom(0.5)
	if got := pc.DisplayedSize(); got != fyne.NewSize(150, 60) {
		t.Errorf("expected 150x60, got %v", got)
	}
	pc.SetFrame(nil)
	if w, h := pc.FrameSize(); w != 0 || h != 0 {
		t.Errorf("expected empty frame, got %dx%d", w, h)
	}
}

func TestDrawScalesFrame(t *testing.T) {
	test.NewApp()
	pc := NewPlanCanvas()
	red := color.RGBA{R: 255, A: 255}
	src := solidFrame(10, 10, red)
	pc.SetFrame(src)

	// Later writes by the caller must not leak into the canvas copy.
	draw.Draw(src, src.Bounds(), image.Black, image.Point{}, draw.Src)

	out := pc.draw(20, 20).(*image.RGBA)
	if got := out.RGBAAt(15, 15); got != red {
		t.Errorf("expected scaled red pixel, got %v", got)
	}
}
