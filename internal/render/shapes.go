package render

import (
	"math"

	"floorplan-annotator/pkg/geometry"

	"golang.org/x/image/vector"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 32

// addShape appends a closed sub-path to z. All sub-paths are emitted with the
// same orientation: the rasterizer accumulates signed coverage, so shapes of
// opposite winding that overlap would cancel instead of merging.
func addShape(z *vector.Rasterizer, pts []geometry.Point2D) {
	if len(pts) < 3 {
		return
	}
	if geometry.SignedArea(pts) > 0 {
		pts = geometry.Reversed(pts)
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// addFill appends the interior of a polygon exactly as given.
func addFill(z *vector.Rasterizer, pts []geometry.Point2D) {
	if len(pts) < 3 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

func circle(c geometry.Point2D, r float64) []geometry.Point2D {
	pts := make([]geometry.Point2D, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = geometry.Point2D{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// addStroke appends a round-joined stroke of the given width along pts.
func addStroke(z *vector.Rasterizer, pts []geometry.Point2D, width float64, closed bool) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	half := width / 2
	n := len(pts)
	segs := n - 1
	if closed && n > 2 {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		d := b.Sub(a)
		l := math.Hypot(d.X, d.Y)
		if l == 0 {
			continue
		}
		off := geometry.Point2D{X: -d.Y / l * half, Y: d.X / l * half}
		addShape(z, []geometry.Point2D{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
	}
	for _, p := range pts {
		addShape(z, circle(p, half))
	}
}
