// Package panels provides the side panels of the editor window.
package panels

import (
	"fmt"

	"floorplan-annotator/internal/annotation"
	"floorplan-annotator/internal/panel"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ApartmentPanel shows the selected apartment's editor and the list of all
// apartments on the plan.
type ApartmentPanel struct {
	model     *panel.Panel
	view      panel.View
	container fyne.CanvasObject

	planLabel  *widget.Label
	countLabel *widget.Label

	selectionBox  *fyne.Container
	noSelection   *widget.Label
	numberEntry   *widget.Entry
	commitButton  *widget.Button
	statusButtons map[annotation.Status]*widget.Button
	deleteButton  *widget.Button

	list *widget.List

	// updating suppresses widget callbacks while the view is being applied.
	updating bool
}

// NewApartmentPanel creates the panel bound to model.
func NewApartmentPanel(model *panel.Panel) *ApartmentPanel {
	ap := &ApartmentPanel{
		model:         model,
		statusButtons: make(map[annotation.Status]*widget.Button),
	}

	ap.planLabel = widget.NewLabel("")
	ap.planLabel.TextStyle = fyne.TextStyle{Bold: true}
	ap.countLabel = widget.NewLabel("")

	ap.noSelection = widget.NewLabel("Click an apartment on the plan or in the list to edit it.")
	ap.noSelection.Wrapping = fyne.TextWrapWord

	ap.numberEntry = widget.NewEntry()
	ap.numberEntry.SetPlaceHolder("Apartment number")
	ap.numberEntry.OnChanged = func(s string) {
		if ap.updating {
			return
		}
		ap.model.SetEditingNumber(s)
	}
	ap.numberEntry.OnSubmitted = func(string) {
		ap.model.CommitNumber()
	}
	ap.commitButton = widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() {
		ap.model.CommitNumber()
	})

	statusRow := container.NewGridWithColumns(len(annotation.Statuses()))
	for _, st := range annotation.Statuses() {
		st := st
		btn := widget.NewButton(st.Label(), func() {
			ap.model.SetStatus(st)
		})
		ap.statusButtons[st] = btn
		statusRow.Add(btn)
	}

	ap.deleteButton = widget.NewButtonWithIcon("Delete apartment", theme.DeleteIcon(), func() {
		ap.model.Delete()
	})
	ap.deleteButton.Importance = widget.DangerImportance

	ap.selectionBox = container.NewVBox(
		widget.NewLabel("Number:"),
		container.NewBorder(nil, nil, nil, ap.commitButton, ap.numberEntry),
		widget.NewLabel("Status:"),
		statusRow,
		ap.deleteButton,
	)

	ap.list = widget.NewList(
		func() int {
			return len(ap.view.Items)
		},
		func() fyne.CanvasObject {
			swatch := fynecanvas.NewRectangle(theme.Color(theme.ColorNameDisabled))
			swatch.SetMinSize(fyne.NewSize(12, 12))
			return container.NewHBox(swatch, widget.NewLabel("Apt. 000"), layout.NewSpacer(), widget.NewLabel("Available"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ap.view.Items) {
				return
			}
			it := ap.view.Items[id]
			row := obj.(*fyne.Container)
			swatch := row.Objects[0].(*fynecanvas.Rectangle)
			swatch.FillColor = it.Swatch
			swatch.Refresh()
			number := row.Objects[1].(*widget.Label)
			number.TextStyle = fyne.TextStyle{Bold: it.Selected}
			number.SetText(it.Number)
			row.Objects[3].(*widget.Label).SetText(it.StatusLabel)
		},
	)
	// Rows never stay selected so that tapping the current apartment again
	// still picks it and drops an unsaved number. The selection is shown by
	// the bold row instead.
	ap.list.OnSelected = func(id widget.ListItemID) {
		if ap.updating || id >= len(ap.view.Items) {
			return
		}
		ap.model.Pick(ap.view.Items[id].ID)
		ap.list.Unselect(id)
	}

	header := container.NewVBox(
		widget.NewLabelWithStyle("Apartments", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ap.planLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Selected apartment", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ap.noSelection,
		ap.selectionBox,
		widget.NewSeparator(),
		ap.countLabel,
	)
	ap.container = container.NewBorder(header, nil, nil, nil, ap.list)

	model.OnChange(ap.update)
	ap.update(model.View())
	return ap
}

// Container returns the panel container.
func (ap *ApartmentPanel) Container() fyne.CanvasObject {
	return ap.container
}

// FocusNumber moves keyboard focus to the number field.
func (ap *ApartmentPanel) FocusNumber(c fyne.Canvas) {
	if c != nil && ap.view.Selected != nil {
		c.Focus(ap.numberEntry)
	}
}

func (ap *ApartmentPanel) update(v panel.View) {
	ap.updating = true
	defer func() { ap.updating = false }()
	ap.view = v

	if v.PlanName == "" {
		ap.planLabel.SetText("No plan loaded")
	} else {
		ap.planLabel.SetText("Current plan: " + v.PlanName)
	}
	ap.countLabel.SetText(fmt.Sprintf("All apartments (%d)", v.Count))

	if v.Selected == nil {
		ap.noSelection.Show()
		ap.selectionBox.Hide()
	} else {
		ap.noSelection.Hide()
		ap.selectionBox.Show()
		if ap.numberEntry.Text != v.EditingNumber {
			ap.numberEntry.SetText(v.EditingNumber)
		}
		for st, btn := range ap.statusButtons {
			if st == v.Selected.Status {
				btn.Importance = widget.HighImportance
			} else {
				btn.Importance = widget.MediumImportance
			}
			btn.Refresh()
		}
	}
	ap.list.Refresh()
}
