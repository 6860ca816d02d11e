package annotation

import (
	"image"

	"floorplan-annotator/internal/logging"
	"floorplan-annotator/pkg/geometry"

	"github.com/google/uuid"
)

// EventType identifies a kind of store change.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventPolygonsChanged
	EventSelectionChanged
	EventDrawingChanged
	EventHoverChanged
	// EventChanged follows every applied mutation, after the specific events.
	EventChanged
)

func (e EventType) String() string {
	switch e {
	case EventImageLoaded:
		return "image-loaded"
	case EventPolygonsChanged:
		return "polygons-changed"
	case EventSelectionChanged:
		return "selection-changed"
	case EventDrawingChanged:
		return "drawing-changed"
	case EventHoverChanged:
		return "hover-changed"
	case EventChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Listener is called with the snapshot taken after a mutation was applied.
type Listener func(snap Snapshot)

// Store is the single owner of the editing session. It is not safe for
// concurrent use: every operation is expected to run on the event loop that
// delivers pointer and keyboard input, and runs to completion before the next
// event is handled.
//
// Every mutating operation returns whether it was applied. A false result
// means the call was a precondition violation: no field changed and no event
// was emitted.
type Store struct {
	image      image.Image
	polygons   []Polygon
	current    []geometry.Point2D
	drawing    bool
	selectedID string
	hover      *geometry.Point2D
	counter    int

	newID     func() string
	listeners map[EventType][]Listener
}

// NewStore creates an empty session with no background image.
func NewStore() *Store {
	return &Store{
		newID:     uuid.NewString,
		listeners: make(map[EventType][]Listener),
	}
}

// On registers a listener for the specified event type.
func (s *Store) On(event EventType, l Listener) {
	s.listeners[event] = append(s.listeners[event], l)
}

// emit notifies listeners of each event in order and then EventChanged.
func (s *Store) emit(events ...EventType) {
	snap := s.Snapshot()
	log := logging.Logger()
	for _, ev := range append(events, EventChanged) {
		log.Debug("annotation event", "event", ev.String(), "polygons", len(snap.Polygons))
		for _, l := range s.listeners[ev] {
			l(snap)
		}
	}
}

// Snapshot returns a deep copy of the session.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Image:      s.image,
		Polygons:   make([]Polygon, len(s.polygons)),
		Current:    clonePoints(s.current),
		Drawing:    s.drawing,
		SelectedID: s.selectedID,
		Counter:    s.counter,
	}
	for i, p := range s.polygons {
		snap.Polygons[i] = p.clone()
	}
	if s.hover != nil {
		h := *s.hover
		snap.Hover = &h
	}
	return snap
}

// HasImage reports whether a background image is loaded.
func (s *Store) HasImage() bool { return s.image != nil }

// Drawing reports whether an outline is being traced.
func (s *Store) Drawing() bool { return s.drawing }

// ImageSize returns the native pixel size of the background image.
func (s *Store) ImageSize() geometry.Size {
	if s.image == nil {
		return geometry.Size{}
	}
	b := s.image.Bounds()
	return geometry.NewSize(float64(b.Dx()), float64(b.Dy()))
}

// LoadImage replaces the background image and resets the whole session.
func (s *Store) LoadImage(img image.Image) bool {
	if img == nil {
		return false
	}
	s.image = img
	s.reset()
	b := img.Bounds()
	logging.Logger().Info("floor plan loaded", "width", b.Dx(), "height", b.Dy())
	s.emit(EventImageLoaded, EventPolygonsChanged, EventSelectionChanged, EventDrawingChanged, EventHoverChanged)
	return true
}

// ClearAll discards every outline and the counter but keeps the image.
func (s *Store) ClearAll() bool {
	s.reset()
	s.emit(EventPolygonsChanged, EventSelectionChanged, EventDrawingChanged, EventHoverChanged)
	return true
}

func (s *Store) reset() {
	s.polygons = nil
	s.current = nil
	s.drawing = false
	s.selectedID = ""
	s.hover = nil
	s.counter = 0
}

// BeginPolygon enters drawing mode with an empty in-progress outline. Calling
// it while already drawing restarts the outline. Requires an image.
func (s *Store) BeginPolygon() bool {
	if s.image == nil {
		return false
	}
	s.drawing = true
	s.current = nil
	s.selectedID = ""
	s.hover = nil
	s.emit(EventDrawingChanged, EventSelectionChanged, EventHoverChanged)
	return true
}

// AddPoint appends a vertex to the in-progress outline. Every call adds a
// vertex; there is no deduplication.
func (s *Store) AddPoint(p geometry.Point2D) bool {
	if !s.drawing {
		return false
	}
	s.current = append(s.current, p)
	s.emit(EventDrawingChanged)
	return true
}

// FinishPolygon leaves drawing mode. When at least MinPoints vertices were
// captured it commits them as a new outline and returns it; otherwise the
// outline is discarded and ok is false.
func (s *Store) FinishPolygon() (p Polygon, ok bool) {
	if !s.drawing {
		return Polygon{}, false
	}

	events := []EventType{EventDrawingChanged, EventHoverChanged}
	if len(s.current) >= MinPoints {
		s.counter++
		p = Polygon{
			ID:     s.newID(),
			Points: s.current,
			Number: numberFor(s.counter),
			Status: StatusAvailable,
		}
		s.polygons = append(s.polygons, p)
		ok = true
		events = append(events, EventPolygonsChanged)
		logging.Logger().Info("apartment outline committed", "id", p.ID, "number", p.Number, "vertices", len(p.Points))
	} else {
		logging.Logger().Debug("outline discarded", "vertices", len(s.current))
	}

	s.drawing = false
	s.current = nil
	s.hover = nil
	s.emit(events...)
	return p.clone(), ok
}

// CancelDrawing leaves drawing mode without creating an outline.
func (s *Store) CancelDrawing() bool {
	if !s.drawing {
		return false
	}
	s.drawing = false
	s.current = nil
	s.hover = nil
	s.emit(EventDrawingChanged, EventHoverChanged)
	return true
}

// SelectAt selects the most recently created outline containing p, or clears
// the selection when none does. Ignored while drawing.
func (s *Store) SelectAt(p geometry.Point2D) bool {
	if s.drawing {
		return false
	}
	id := ""
	for i := len(s.polygons) - 1; i >= 0; i-- {
		if s.polygons[i].Contains(p) {
			id = s.polygons[i].ID
			break
		}
	}
	s.setSelection(id)
	return true
}

// SelectByID selects the outline with the given id.
func (s *Store) SelectByID(id string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.setSelection(id)
	return true
}

// ClearSelection deselects the current outline.
func (s *Store) ClearSelection() bool {
	if s.selectedID == "" {
		return false
	}
	s.setSelection("")
	return true
}

// setSelection always notifies, even when id is already selected, so that
// views staging edits of the selection can start over.
func (s *Store) setSelection(id string) {
	s.selectedID = id
	s.emit(EventSelectionChanged)
}

// RenameSelected replaces the number of the selected outline.
func (s *Store) RenameSelected(number string) bool {
	i := s.indexOf(s.selectedID)
	if i < 0 {
		return false
	}
	s.polygons[i].Number = number
	s.emit(EventPolygonsChanged)
	return true
}

// SetSelectedStatus replaces the status of the selected outline.
func (s *Store) SetSelectedStatus(st Status) bool {
	i := s.indexOf(s.selectedID)
	if i < 0 || !st.Valid() {
		return false
	}
	s.polygons[i].Status = st
	s.emit(EventPolygonsChanged)
	return true
}

// DeleteSelected removes the selected outline and clears the selection.
func (s *Store) DeleteSelected() bool {
	i := s.indexOf(s.selectedID)
	if i < 0 {
		return false
	}
	logging.Logger().Info("apartment outline deleted", "id", s.selectedID, "number", s.polygons[i].Number)
	s.polygons = append(s.polygons[:i:i], s.polygons[i+1:]...)
	s.selectedID = ""
	s.emit(EventPolygonsChanged, EventSelectionChanged)
	return true
}

// SetHover updates the live pointer position; nil clears it.
func (s *Store) SetHover(p *geometry.Point2D) bool {
	if p == nil {
		if s.hover == nil {
			return false
		}
		s.hover = nil
	} else {
		h := *p
		s.hover = &h
	}
	s.emit(EventHoverChanged)
	return true
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range s.polygons {
		if p.ID == id {
			return i
		}
	}
	return -1
}
