package panels

import (
	"fmt"

	"floorplan-annotator/internal/interaction"
	"floorplan-annotator/internal/panel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DrawingToolbar holds the outline drawing actions shown above the plan.
type DrawingToolbar struct {
	controller *interaction.Controller
	container  fyne.CanvasObject

	startButton  *widget.Button
	finishButton *widget.Button
	clearButton  *widget.Button
	countLabel   *widget.Label
	pointsLabel  *widget.Label
}

// NewDrawingToolbar creates the toolbar driving controller and following
// model. onClear runs when "Clear all" is pressed, so the window can ask for
// confirmation first.
func NewDrawingToolbar(controller *interaction.Controller, model *panel.Panel, onClear func()) *DrawingToolbar {
	tb := &DrawingToolbar{controller: controller}

	tb.startButton = widget.NewButtonWithIcon("Start outline", theme.ContentAddIcon(), func() {
		tb.controller.Start()
	})
	tb.finishButton = widget.NewButtonWithIcon("Finish outline", theme.ConfirmIcon(), func() {
		tb.controller.Finish()
	})
	tb.finishButton.Importance = widget.HighImportance
	tb.clearButton = widget.NewButtonWithIcon("Clear all", theme.DeleteIcon(), onClear)
	tb.countLabel = widget.NewLabel("")
	tb.pointsLabel = widget.NewLabel("")

	tb.container = container.NewHBox(
		tb.startButton,
		tb.finishButton,
		tb.clearButton,
		widget.NewSeparator(),
		tb.countLabel,
		tb.pointsLabel,
	)

	model.OnChange(tb.update)
	tb.update(model.View())
	return tb
}

// Container returns the toolbar container.
func (tb *DrawingToolbar) Container() fyne.CanvasObject {
	return tb.container
}

func (tb *DrawingToolbar) update(v panel.View) {
	tb.countLabel.SetText(fmt.Sprintf("Apartments: %d", v.Count))

	if v.Drawing {
		tb.startButton.Hide()
		tb.finishButton.Show()
		tb.pointsLabel.SetText(fmt.Sprintf("Points: %d", v.PointCount))
		tb.pointsLabel.Show()
	} else {
		tb.startButton.Show()
		tb.finishButton.Hide()
		tb.pointsLabel.Hide()
	}

	if v.HasImage {
		tb.startButton.Enable()
	} else {
		tb.startButton.Disable()
	}
	if v.Count > 0 || v.Drawing {
		tb.clearButton.Enable()
	} else {
		tb.clearButton.Disable()
	}
}
