package annotation

import (
	"image"

	"floorplan-annotator/pkg/geometry"
)

// Snapshot is a read-only copy of the session handed to observers. It shares
// no slices with the store, so holding one across later mutations is safe.
type Snapshot struct {
	Image      image.Image
	Polygons   []Polygon
	Current    []geometry.Point2D
	Drawing    bool
	SelectedID string
	Hover      *geometry.Point2D
	Counter    int
}

// Selected returns the selected outline, if any.
func (s Snapshot) Selected() (Polygon, bool) {
	return s.Polygon(s.SelectedID)
}

// Polygon looks up an outline by id.
func (s Snapshot) Polygon(id string) (Polygon, bool) {
	if id == "" {
		return Polygon{}, false
	}
	for _, p := range s.Polygons {
		if p.ID == id {
			return p, true
		}
	}
	return Polygon{}, false
}

// IsSelected reports whether id is the current selection.
func (s Snapshot) IsSelected(id string) bool {
	return id != "" && id == s.SelectedID
}

// ImageSize returns the native pixel size of the background image.
func (s Snapshot) ImageSize() (width, height int) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}
