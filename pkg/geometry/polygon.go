package geometry

// PointInPolygon tests if a point is inside a polygon using the even-odd
// (ray casting) rule. The polygon is implicitly closed. Comparisons are exact:
// points on an edge resolve however the rule resolves them, and
// self-intersecting outlines are not special-cased.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	inside := false
	n := len(polygon)

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]

		// Edge straddles the horizontal line through p and crosses it to the right of p.
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}

	return inside
}

// SignedArea returns the shoelace area of the closed outline. The sign is
// positive for counter-clockwise order in a y-up frame, which is clockwise on
// screen.
func SignedArea(polygon []Point2D) float64 {
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Reversed returns a copy of the points in reverse order.
func Reversed(points []Point2D) []Point2D {
	out := make([]Point2D, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}
