// Package interaction translates pointer and keyboard input from the host
// surface into annotation store operations.
package interaction

import (
	"image"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/internal/logging"
	"floorplan-annotator/pkg/geometry"
)

// Mode is the editor state derived from the store.
type Mode int

const (
	// ModeIdle means no background image is loaded.
	ModeIdle Mode = iota
	// ModeViewing means an image is loaded and clicks select outlines.
	ModeViewing
	// ModeDrawing means clicks append vertices to the in-progress outline.
	ModeDrawing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeViewing:
		return "viewing"
	case ModeDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Key is a keyboard accelerator understood by the controller.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyEnter
)

// NumberCommitter applies a pending number edit to the selected outline.
type NumberCommitter interface {
	CommitPending() bool
}

// Controller is the interaction state machine. It keeps no state of its own:
// the mode is always read back from the store.
type Controller struct {
	store     *annotation.Store
	committer NumberCommitter
}

// New creates a controller driving store.
func New(store *annotation.Store) *Controller {
	return &Controller{store: store}
}

// SetCommitter installs the target of the Enter key.
func (c *Controller) SetCommitter(nc NumberCommitter) {
	c.committer = nc
}

// Mode returns the current editor state.
func (c *Controller) Mode() Mode {
	switch {
	case !c.store.HasImage():
		return ModeIdle
	case c.store.Drawing():
		return ModeDrawing
	default:
		return ModeViewing
	}
}

// ToImage maps a point in displayed pixels onto the image's native pixel
// space. It fails when either size is empty.
func ToImage(p geometry.Point2D, displayed, native geometry.Size) (geometry.Point2D, bool) {
	if native.Empty() {
		return geometry.Point2D{}, false
	}
	t, ok := geometry.Rescale(displayed, native)
	if !ok {
		return geometry.Point2D{}, false
	}
	return t.Apply(p), true
}

func (c *Controller) toImage(p geometry.Point2D, displayed geometry.Size) (geometry.Point2D, bool) {
	return ToImage(p, displayed, c.store.ImageSize())
}

// Click handles a primary-button press at p on a surface showing the image at
// the displayed size.
func (c *Controller) Click(p geometry.Point2D, displayed geometry.Size) bool {
	if c.Mode() == ModeIdle {
		return false
	}
	ip, ok := c.toImage(p, displayed)
	if !ok {
		logging.Logger().Debug("click ignored: unmappable surface", "width", displayed.Width, "height", displayed.Height)
		return false
	}
	if c.store.Drawing() {
		return c.store.AddPoint(ip)
	}
	return c.store.SelectAt(ip)
}

// Move tracks the pointer for the rubber-band segment. Only used while
// drawing.
func (c *Controller) Move(p geometry.Point2D, displayed geometry.Size) bool {
	if c.Mode() != ModeDrawing {
		return false
	}
	ip, ok := c.toImage(p, displayed)
	if !ok {
		return false
	}
	return c.store.SetHover(&ip)
}

// Leave clears the hover position when the pointer exits the surface.
func (c *Controller) Leave() bool {
	return c.store.SetHover(nil)
}

// Key dispatches a keyboard accelerator.
func (c *Controller) Key(k Key) bool {
	switch k {
	case KeyEscape:
		return c.store.CancelDrawing()
	case KeyDelete, KeyBackspace:
		return c.store.DeleteSelected()
	case KeyEnter:
		if c.committer == nil {
			return false
		}
		return c.committer.CommitPending()
	default:
		return false
	}
}

// Start begins a new outline.
func (c *Controller) Start() bool { return c.store.BeginPolygon() }

// Finish commits or discards the in-progress outline.
func (c *Controller) Finish() bool {
	if !c.store.Drawing() {
		return false
	}
	c.store.FinishPolygon()
	return true
}

// Cancel discards the in-progress outline.
func (c *Controller) Cancel() bool { return c.store.CancelDrawing() }

// ClearAll removes every outline, keeping the image.
func (c *Controller) ClearAll() bool {
	if !c.store.HasImage() {
		return false
	}
	return c.store.ClearAll()
}

// LoadImage starts a fresh session on img.
func (c *Controller) LoadImage(img image.Image) bool {
	return c.store.LoadImage(img)
}
