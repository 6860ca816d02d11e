// Package annotation owns the floor-plan session: the background image, the
// committed apartment outlines, the outline being traced and the selection.
package annotation

import (
	"fmt"

	"floorplan-annotator/pkg/geometry"
)

// MinPoints is the smallest vertex count admitted into the canonical list.
const MinPoints = 3

// Status is the sale status attached to an apartment outline.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusReserved, StatusSold}
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusReserved, StatusSold:
		return st, nil
	}
	return "", fmt.Errorf("unknown apartment status %q", s)
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Label returns the human-readable name shown on status buttons.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	case StatusSold:
		return "Sold"
	default:
		return "Unknown"
	}
}

// Polygon is a committed apartment outline. Points are stored open: the last
// point implicitly connects back to the first.
type Polygon struct {
	ID     string             `json:"id"`
	Points []geometry.Point2D `json:"points"`
	Number string             `json:"number"`
	Status Status             `json:"status"`
}

// Contains reports whether p falls inside the outline under the even-odd rule.
func (p Polygon) Contains(pt geometry.Point2D) bool {
	return geometry.PointInPolygon(pt, p.Points)
}

// Centroid returns the label anchor of the outline.
func (p Polygon) Centroid() geometry.Point2D {
	return geometry.Centroid(p.Points)
}

// clone returns a deep copy so snapshots never alias store memory.
func (p Polygon) clone() Polygon {
	p.Points = clonePoints(p.Points)
	return p
}

func clonePoints(pts []geometry.Point2D) []geometry.Point2D {
	if pts == nil {
		return nil
	}
	out := make([]geometry.Point2D, len(pts))
	copy(out, pts)
	return out
}

// numberFor formats the generated display number of the n-th created outline.
func numberFor(n int) string {
	return fmt.Sprintf("Apt. %d", n)
}
