// Package panel projects the annotation store into the control-panel view:
// counts, the current selection and the pick list. Writes go straight to the
// store; the only state held here is the number being typed.
package panel

import (
	"image/color"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/internal/render"
)

// Item is one row of the pick list.
type Item struct {
	ID          string
	Number      string
	Status      annotation.Status
	StatusLabel string
	Swatch      color.NRGBA
	Selected    bool
}

// View is a read-only projection of the session for the control panel.
type View struct {
	PlanName   string
	HasImage   bool
	Count      int
	Drawing    bool
	PointCount int

	// Selected is nil when nothing is selected.
	Selected *Item
	// EditingNumber is the staged value of the number field and Editing
	// reports whether it differs from what was last loaded from the store.
	EditingNumber string
	Editing       bool

	Items []Item
}

// Panel is the control-panel view-model.
type Panel struct {
	store    *annotation.Store
	planName string

	editing string
	dirty   bool

	listeners []func(View)
}

// New creates a panel bound to store.
func New(store *annotation.Store) *Panel {
	p := &Panel{store: store}
	store.On(annotation.EventSelectionChanged, func(snap annotation.Snapshot) {
		p.resetEditing(snap)
	})
	store.On(annotation.EventPolygonsChanged, func(snap annotation.Snapshot) {
		if !p.dirty {
			p.resetEditing(snap)
		}
	})
	store.On(annotation.EventChanged, func(snap annotation.Snapshot) {
		p.notify(snap)
	})
	return p
}

// OnChange registers a callback invoked with the new view after every change.
func (p *Panel) OnChange(fn func(View)) {
	p.listeners = append(p.listeners, fn)
}

// View returns the current projection.
func (p *Panel) View() View {
	return p.project(p.store.Snapshot())
}

// SetPlanName sets the plan caption shown above the selection.
func (p *Panel) SetPlanName(name string) {
	p.planName = name
	p.notify(p.store.Snapshot())
}

// SetEditingNumber stages a new number for the selected outline.
func (p *Panel) SetEditingNumber(number string) {
	if number == p.editing {
		return
	}
	p.editing = number
	p.dirty = true
	p.notify(p.store.Snapshot())
}

// CommitNumber renames the selected outline to the staged number.
func (p *Panel) CommitNumber() bool {
	if _, ok := p.store.Snapshot().Selected(); !ok {
		return false
	}
	p.dirty = false
	return p.store.RenameSelected(p.editing)
}

// CommitPending renames the selected outline only when the number field was
// edited since it was last loaded.
func (p *Panel) CommitPending() bool {
	if !p.dirty {
		return false
	}
	return p.CommitNumber()
}

// SetStatus changes the status of the selected outline.
func (p *Panel) SetStatus(st annotation.Status) bool {
	return p.store.SetSelectedStatus(st)
}

// Delete removes the selected outline.
func (p *Panel) Delete() bool {
	return p.store.DeleteSelected()
}

// Pick selects an outline from the list. The staged number is reset even
// when the outline was already selected.
func (p *Panel) Pick(id string) bool {
	return p.store.SelectByID(id)
}

func (p *Panel) resetEditing(snap annotation.Snapshot) {
	p.dirty = false
	p.editing = ""
	if sel, ok := snap.Selected(); ok {
		p.editing = sel.Number
	}
}

func (p *Panel) notify(snap annotation.Snapshot) {
	if len(p.listeners) == 0 {
		return
	}
	v := p.project(snap)
	for _, fn := range p.listeners {
		fn(v)
	}
}

func (p *Panel) project(snap annotation.Snapshot) View {
	v := View{
		PlanName:      p.planName,
		HasImage:      snap.Image != nil,
		Count:         len(snap.Polygons),
		Drawing:       snap.Drawing,
		PointCount:    len(snap.Current),
		EditingNumber: p.editing,
		Editing:       p.dirty,
		Items:         make([]Item, 0, len(snap.Polygons)),
	}
	for _, poly := range snap.Polygons {
		it := Item{
			ID:          poly.ID,
			Number:      poly.Number,
			Status:      poly.Status,
			StatusLabel: poly.Status.Label(),
			Swatch:      render.PaintFor(poly.Status, false).Stroke,
			Selected:    snap.IsSelected(poly.ID),
		}
		v.Items = append(v.Items, it)
		if it.Selected {
			sel := it
			v.Selected = &sel
		}
	}
	return v
}
