// Package render draws a session snapshot into an image of the floor plan's
// native size. Every call repaints the whole frame from the snapshot alone.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/pkg/colorutil"
	"floorplan-annotator/pkg/geometry"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options controls stroke and label metrics, in image pixels.
type Options struct {
	LineWidth     float64
	VertexRadius  float64
	LabelSize     float64
	LabelBaseline float64
}

// DefaultOptions returns the metrics of the editor overlay.
func DefaultOptions() Options {
	return Options{
		LineWidth:     2,
		VertexRadius:  5,
		LabelSize:     20,
		LabelBaseline: 5,
	}
}

// Renderer rasterizes snapshots. It is not safe for concurrent use.
type Renderer struct {
	opts Options
	face font.Face
	z    *vector.Rasterizer
}

// New creates a renderer. Non-positive option values fall back to defaults.
func New(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.VertexRadius <= 0 {
		opts.VertexRadius = def.VertexRadius
	}
	if opts.LabelSize <= 0 {
		opts.LabelSize = def.LabelSize
	}

	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    opts.LabelSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})

	return &Renderer{
		opts: opts,
		face: face,
		z:    vector.NewRasterizer(0, 0),
	}, nil
}

// Render draws snap into a newly allocated image. It returns nil when no
// background image is loaded.
func (r *Renderer) Render(snap annotation.Snapshot) *image.RGBA {
	return r.RenderInto(nil, snap)
}

// RenderInto draws snap into dst when dst already has the image's size, and
// into a new image otherwise. The returned image is the one drawn into.
func (r *Renderer) RenderInto(dst *image.RGBA, snap annotation.Snapshot) *image.RGBA {
	if snap.Image == nil {
		return nil
	}
	w, h := snap.ImageSize()
	if dst == nil || dst.Rect != image.Rect(0, 0, w, h) {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	draw.Draw(dst, dst.Rect, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Rect, snap.Image, snap.Image.Bounds().Min, draw.Over)

	for _, p := range snap.Polygons {
		r.drawPolygon(dst, p, snap.IsSelected(p.ID))
	}
	r.drawDraft(dst, snap.Current, snap.Hover)
	return dst
}

// PaintFor returns the colours of an outline.
func PaintFor(st annotation.Status, selected bool) colorutil.Paint {
	if selected {
		return colorutil.Selected
	}
	switch st {
	case annotation.StatusReserved:
		return colorutil.Reserved
	case annotation.StatusSold:
		return colorutil.Sold
	default:
		return colorutil.Available
	}
}

func (r *Renderer) drawPolygon(dst *image.RGBA, p annotation.Polygon, selected bool) {
	paint := PaintFor(p.Status, selected)

	// Outlines entirely off the frame skip the rasterizer. Their label can
	// still overhang into view.
	box := geometry.BoundingBox(p.Points).Expand(r.opts.LineWidth)
	if box.Intersects(frameRect(dst)) {
		r.begin(dst)
		addFill(r.z, p.Points)
		r.z.Draw(dst, dst.Rect, image.NewUniform(paint.Fill), image.Point{})

		r.begin(dst)
		addStroke(r.z, p.Points, r.opts.LineWidth, true)
		r.z.Draw(dst, dst.Rect, image.NewUniform(paint.Stroke), image.Point{})
	}

	if len(p.Points) > 0 {
		r.drawLabel(dst, p.Number, p.Centroid(), paint.Stroke)
	}
}

func (r *Renderer) drawDraft(dst *image.RGBA, pts []geometry.Point2D, hover *geometry.Point2D) {
	if len(pts) == 0 {
		return
	}
	path := pts
	if hover != nil {
		path = append(append([]geometry.Point2D(nil), pts...), *hover)
	}

	r.begin(dst)
	addStroke(r.z, path, r.opts.LineWidth, false)
	r.z.Draw(dst, dst.Rect, image.NewUniform(colorutil.DraftLine), image.Point{})

	frame := frameRect(dst).Expand(r.opts.VertexRadius)
	r.begin(dst)
	for _, p := range pts {
		if frame.Contains(p) {
			addShape(r.z, circle(p, r.opts.VertexRadius))
		}
	}
	r.z.Draw(dst, dst.Rect, image.NewUniform(colorutil.DraftVertex), image.Point{})
}

func (r *Renderer) drawLabel(dst *image.RGBA, text string, at geometry.Point2D, c color.NRGBA) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: toFixed(at.X) - width/2,
		Y: toFixed(at.Y + r.opts.LabelBaseline),
	}
	d.DrawString(text)
}

func frameRect(dst *image.RGBA) geometry.Rect {
	b := dst.Rect
	return geometry.Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

func (r *Renderer) begin(dst *image.RGBA) {
	b := dst.Rect
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
