// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	goimage "image"
	"log"

	"floorplan-annotator/internal/app"
	planimage "floorplan-annotator/internal/image"
	"floorplan-annotator/internal/interaction"
	"floorplan-annotator/internal/panel"
	"floorplan-annotator/internal/version"
	"floorplan-annotator/pkg/geometry"
	"floorplan-annotator/ui/canvas"
	"floorplan-annotator/ui/panels"
	"floorplan-annotator/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	editor *app.Editor
	prefs  *prefs.Prefs

	canvas         *canvas.PlanCanvas
	apartmentPanel *panels.ApartmentPanel
	toolbar        *panels.DrawingToolbar
	statusBar      *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, editor *app.Editor, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		editor: editor,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPlanCanvas()
	mw.apartmentPanel = panels.NewApartmentPanel(mw.editor.Panel)
	mw.toolbar = panels.NewDrawingToolbar(mw.editor.Controller, mw.editor.Panel, mw.onClearAll)
	mw.statusBar = widget.NewLabel("Open a floor plan to start (File > Open Plan...)")

	canvasArea := container.NewBorder(
		container.NewHBox(mw.toolbar.Container(), widget.NewSeparator(), mw.createZoomBar()),
		nil,
		nil,
		nil,
		mw.canvas,
	)

	split := container.NewHSplit(canvasArea, mw.apartmentPanel.Container())
	split.SetOffset(0.75) // Apartment panel takes 25% of width

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1280, 800))
}

// createZoomBar creates the zoom controls.
func (mw *MainWindow) createZoomBar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onToggleFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Plan...", mw.onOpenPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Start Outline", func() { mw.editor.Controller.Start() }),
		fyne.NewMenuItem("Finish Outline", func() { mw.editor.Controller.Finish() }),
		fyne.NewMenuItem("Cancel Outline", func() { mw.editor.Controller.Cancel() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rename Apartment", func() { mw.apartmentPanel.FocusNumber(mw.Canvas()) }),
		fyne.NewMenuItem("Delete Apartment", func() { mw.editor.Panel.Delete() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All", mw.onClearAll),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("Fit to Window", mw.onToggleFitToWindow)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers connects the canvas, keyboard and editor.
func (mw *MainWindow) setupEventHandlers() {
	ctrl := mw.editor.Controller

	mw.canvas.OnClick(func(p geometry.Point2D, displayed geometry.Size) {
		ctrl.Click(p, displayed)
	})
	mw.canvas.OnMove(func(p geometry.Point2D, displayed geometry.Size) {
		ctrl.Move(p, displayed)
	})
	mw.canvas.OnLeave(func() {
		ctrl.Leave()
	})
	mw.canvas.OnZoomChange(func(float64) {
		mw.updateStatus(mw.editor.Panel.View())
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if k := keyFor(ev.Name); k != interaction.KeyNone {
			ctrl.Key(k)
		}
	})

	mw.editor.OnFrame(func(frame *goimage.RGBA) {
		mw.canvas.SetFrame(frame)
	})
	mw.editor.Panel.OnChange(mw.updateStatus)

	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})
}

// keyFor maps fyne key names to editor accelerators.
func keyFor(name fyne.KeyName) interaction.Key {
	switch name {
	case fyne.KeyEscape:
		return interaction.KeyEscape
	case fyne.KeyDelete:
		return interaction.KeyDelete
	case fyne.KeyBackspace:
		return interaction.KeyBackspace
	case fyne.KeyReturn, fyne.KeyEnter:
		return interaction.KeyEnter
	default:
		return interaction.KeyNone
	}
}

// statusText describes the editor state for the status bar.
func statusText(v panel.View, zoom float64) string {
	switch {
	case !v.HasImage:
		return "Open a floor plan to start (File > Open Plan...)"
	case v.Drawing:
		return fmt.Sprintf("Drawing: %d points. Click to add a vertex, Finish to commit, Esc to cancel.", v.PointCount)
	case v.Selected != nil:
		return fmt.Sprintf("%s selected (%s) | %d apartments | zoom %.0f%%", v.Selected.Number, v.Selected.StatusLabel, v.Count, zoom*100)
	default:
		return fmt.Sprintf("%s | %d apartments | zoom %.0f%%", v.PlanName, v.Count, zoom*100)
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(v panel.View) {
	mw.statusBar.SetText(statusText(v, mw.canvas.Zoom()))
}

// RestoreSession applies saved view settings and reopens the last plan.
func (mw *MainWindow) RestoreSession() {
	mw.setFitToWindow(mw.prefs.Bool(prefs.KeyFitToWindow, true))

	path := mw.prefs.String(prefs.KeyLastPlan)
	if path == "" {
		return
	}
	if err := mw.openPlan(path); err != nil {
		log.Printf("Failed to reopen %s: %v", path, err)
	}
}

// SavePreferences persists the view settings.
func (mw *MainWindow) SavePreferences() {
	mw.prefs.SetBool(prefs.KeyFitToWindow, mw.canvas.FitsToWindow())
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

func (mw *MainWindow) openPlan(path string) error {
	if err := mw.editor.LoadPlan(path); err != nil {
		return err
	}
	mw.prefs.RememberPlan(path)
	mw.SetTitle(version.AppName + " - " + mw.editor.Plan().Name)
	return nil
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDirectory)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Menu action handlers

func (mw *MainWindow) onOpenPlan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		reader.Close()
		if err := mw.openPlan(reader.URI().Path()); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(planimage.SupportedFormats()))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onClearAll() {
	if mw.editor.Panel.View().Count == 0 {
		mw.editor.Controller.ClearAll()
		return
	}
	dialog.ShowConfirm("Clear all", "Remove every apartment outline from this plan?", func(ok bool) {
		if ok {
			mw.editor.Controller.ClearAll()
		}
	}, mw.Window)
}

func (mw *MainWindow) onZoomIn() {
	mw.setFitToWindow(false)
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.setFitToWindow(false)
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	mw.setFitToWindow(!mw.canvas.FitsToWindow())
}

func (mw *MainWindow) onActualSize() {
	mw.setFitToWindow(false)
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) setFitToWindow(enabled bool) {
	mw.canvas.SetFitToWindow(enabled)
	mw.fitToWindowItem.Checked = enabled
	if menu := mw.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.AppName,
		fmt.Sprintf("%s v%s\n\n"+
			"Trace apartment outlines on a floor plan and track\n"+
			"whether each apartment is available, reserved or sold.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.AppName, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
