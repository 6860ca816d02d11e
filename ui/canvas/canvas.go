// Package canvas provides the floor-plan surface: a zoomable raster of the
// rendered session that reports pointer input in displayed coordinates.
package canvas

import (
	"image"
	"sync"

	"floorplan-annotator/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// PointerFunc receives a pointer position relative to the displayed plan
// together with the plan's displayed size.
type PointerFunc func(pos geometry.Point2D, displayed geometry.Size)

// PlanCanvas shows the rendered plan with zoom and scrolling.
type PlanCanvas struct {
	widget.BaseWidget

	mu    sync.Mutex
	frame *image.RGBA

	raster  *fynecanvas.Raster
	zoom    float64
	scroll  *zoomScroll
	content *planContent
	imgSize fyne.Size // Current image display size

	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
	onClick      PointerFunc
	onMove       PointerFunc
	onLeave      func()
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PlanCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PlanCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// planContent wraps the raster to receive pointer events.
type planContent struct {
	widget.BaseWidget
	canvas *PlanCanvas
	raster *fynecanvas.Raster
}

var (
	_ fyne.Tappable     = (*planContent)(nil)
	_ desktop.Hoverable = (*planContent)(nil)
)

func newPlanContent(pc *PlanCanvas, raster *fynecanvas.Raster) *planContent {
	c := &planContent{canvas: pc, raster: raster}
	c.ExtendBaseWidget(c)
	return c
}

func (c *planContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *planContent) MinSize() fyne.Size {
	return c.raster.MinSize()
}

func (c *planContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.ZoomOut()
	}
}

// inside rejects events outside the widget bounds, which fyne can deliver
// while the pointer is captured.
func (c *planContent) inside(pos fyne.Position) bool {
	size := c.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

func (c *planContent) dispatch(fn PointerFunc, pos fyne.Position) {
	if fn == nil || !c.inside(pos) {
		return
	}
	size := c.Size()
	fn(geometry.NewPoint2D(float64(pos.X), float64(pos.Y)),
		geometry.NewSize(float64(size.Width), float64(size.Height)))
}

// Tapped handles left-click events.
func (c *planContent) Tapped(ev *fyne.PointEvent) {
	c.dispatch(c.canvas.onClick, ev.Position)
}

func (c *planContent) MouseIn(ev *desktop.MouseEvent) {
	c.dispatch(c.canvas.onMove, ev.Position)
}

func (c *planContent) MouseMoved(ev *desktop.MouseEvent) {
	c.dispatch(c.canvas.onMove, ev.Position)
}

func (c *planContent) MouseOut() {
	if c.canvas.onLeave != nil {
		c.canvas.onLeave()
	}
}

// NewPlanCanvas creates an empty plan canvas.
func NewPlanCanvas() *PlanCanvas {
	pc := &PlanCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.content = newPlanContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// SetFrame replaces the displayed frame. The pixels are copied, so the
// caller may keep drawing into frame. nil clears the canvas.
func (pc *PlanCanvas) SetFrame(frame *image.RGBA) {
	pc.mu.Lock()
	sizeChanged := false
	switch {
	case frame == nil:
		sizeChanged = pc.frame != nil
		pc.frame = nil
	default:
		if pc.frame == nil || pc.frame.Rect != frame.Rect {
			pc.frame = image.NewRGBA(frame.Rect)
			sizeChanged = true
		}
		copy(pc.frame.Pix, frame.Pix)
	}
	pc.mu.Unlock()

	if sizeChanged {
		pc.updateContentSize()
		if pc.fitToWindow {
			pc.FitToWindow()
		}
		return
	}
	pc.raster.Refresh()
}

// FrameSize returns the native size of the displayed frame.
func (pc *PlanCanvas) FrameSize() (width, height int) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.frame == nil {
		return 0, 0
	}
	return pc.frame.Rect.Dx(), pc.frame.Rect.Dy()
}

// OnClick sets the callback for primary clicks.
func (pc *PlanCanvas) OnClick(fn PointerFunc) { pc.onClick = fn }

// OnMove sets the callback for pointer motion over the plan.
func (pc *PlanCanvas) OnMove(fn PointerFunc) { pc.onMove = fn }

// OnLeave sets the callback for the pointer leaving the plan.
func (pc *PlanCanvas) OnLeave(fn func()) { pc.onLeave = fn }

// OnZoomChange sets the callback for zoom changes.
func (pc *PlanCanvas) OnZoomChange(fn func(zoom float64)) { pc.onZoomChange = fn }

// SetZoom sets the zoom level.
func (pc *PlanCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PlanCanvas) Zoom() float64 {
	return pc.zoom
}

// ZoomIn increases the zoom level.
func (pc *PlanCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (pc *PlanCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the plan in the visible area.
func (pc *PlanCanvas) FitToWindow() {
	w, h := pc.FrameSize()
	if w == 0 || h == 0 {
		return
	}
	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoom := float64(viewSize.Width) / float64(w)
	if zy := float64(viewSize.Height) / float64(h); zy < zoom {
		zoom = zy
	}
	pc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (pc *PlanCanvas) SetFitToWindow(fit bool) {
	pc.fitToWindow = fit
	if fit {
		pc.FitToWindow()
	}
}

// FitsToWindow reports whether auto-fit is enabled.
func (pc *PlanCanvas) FitsToWindow() bool {
	return pc.fitToWindow
}

// checkResize refits the plan when the viewport size changes.
func (pc *PlanCanvas) checkResize(size fyne.Size) {
	if !pc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != pc.lastScrollSize {
		pc.lastScrollSize = size
		pc.FitToWindow()
	}
}

// DisplayedSize returns the size the plan currently occupies on screen.
func (pc *PlanCanvas) DisplayedSize() fyne.Size {
	return pc.imgSize
}

// Refresh redraws the raster.
func (pc *PlanCanvas) Refresh() {
	pc.raster.Refresh()
}

func (pc *PlanCanvas) updateContentSize() {
	w, h := pc.FrameSize()
	if w == 0 || h == 0 {
		pc.imgSize = fyne.NewSize(400, 300)
	} else {
		pc.imgSize = fyne.NewSize(float32(float64(w)*pc.zoom), float32(float64(h)*pc.zoom))
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// draw scales the frame to the raster's pixel size.
func (pc *PlanCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.frame == nil || w == 0 || h == 0 {
		return out
	}
	scaler := xdraw.Interpolator(xdraw.NearestNeighbor)
	if w < pc.frame.Rect.Dx() {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(out, out.Rect, pc.frame, pc.frame.Rect, xdraw.Src, nil)
	return out
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &planCanvasRenderer{canvas: pc}
}

type planCanvasRenderer struct {
	canvas *PlanCanvas
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
	r.canvas.checkResize(size)
}

func (r *planCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *planCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *planCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *planCanvasRenderer) Destroy() {}
