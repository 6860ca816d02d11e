// Package app wires the annotation engine together: store, interaction
// controller, control-panel view-model and renderer.
package app

import (
	goimage "image"
	"log/slog"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/internal/image"
	"floorplan-annotator/internal/interaction"
	"floorplan-annotator/internal/logging"
	"floorplan-annotator/internal/panel"
	"floorplan-annotator/internal/render"
)

// SetLogger routes engine logging to l. nil silences it.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// FrameListener receives each newly rendered frame. The frame is reused by
// the next render and must not be retained.
type FrameListener func(frame *goimage.RGBA)

// Editor is one editing session and its observers.
type Editor struct {
	Store      *annotation.Store
	Controller *interaction.Controller
	Panel      *panel.Panel
	Renderer   *render.Renderer

	plan  *image.Layer
	frame *goimage.RGBA

	frameListeners []FrameListener
}

// NewEditor creates an empty session rendering with opts.
func NewEditor(opts render.Options) (*Editor, error) {
	r, err := render.New(opts)
	if err != nil {
		return nil, err
	}

	store := annotation.NewStore()
	e := &Editor{
		Store:      store,
		Controller: interaction.New(store),
		Panel:      panel.New(store),
		Renderer:   r,
	}
	e.Controller.SetCommitter(e.Panel)
	store.On(annotation.EventChanged, func(snap annotation.Snapshot) {
		e.redraw(snap)
	})
	return e, nil
}

// OnFrame registers a listener for rendered frames.
func (e *Editor) OnFrame(fn FrameListener) {
	e.frameListeners = append(e.frameListeners, fn)
}

// Frame returns the most recent frame, or nil before a plan is loaded.
func (e *Editor) Frame() *goimage.RGBA {
	return e.frame
}

// Plan returns the loaded plan, or nil.
func (e *Editor) Plan() *image.Layer {
	return e.plan
}

// LoadPlan decodes the image at path and starts a fresh session on it. On
// error the current session is left untouched.
func (e *Editor) LoadPlan(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	e.UsePlan(layer)
	return nil
}

// UsePlan starts a fresh session on an already decoded plan.
func (e *Editor) UsePlan(layer *image.Layer) {
	e.plan = layer
	e.Panel.SetPlanName(layer.Name)
	e.Controller.LoadImage(layer.Image)
	logging.Logger().Info("plan opened", "name", layer.Name, "format", layer.Format, "dpi", layer.DPI)
}

func (e *Editor) redraw(snap annotation.Snapshot) {
	e.frame = e.Renderer.RenderInto(e.frame, snap)
	if e.frame == nil {
		return
	}
	for _, fn := range e.frameListeners {
		fn(e.frame)
	}
}
