// Package main provides the entry point for the Floor Plan Annotator application.
package main

import (
	"log"
	"log/slog"
	"os"

	"floorplan-annotator/internal/app"
	"floorplan-annotator/internal/logging"
	"floorplan-annotator/internal/version"
	"floorplan-annotator/ui/mainwindow"
	"floorplan-annotator/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "com.floorplan.annotator"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", version.AppName, version.Version)

	appPrefs := prefs.Load()

	level := logging.ParseLevel(appPrefs.String(prefs.KeyLogLevel))
	app.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	editor, err := app.NewEditor(appPrefs.RenderOptions())
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.FloorPlanTheme{})

	win := mainwindow.New(fyneApp, editor, appPrefs)

	// A plan given on the command line takes precedence over the last one.
	if len(os.Args) > 1 {
		appPrefs.RememberPlan(os.Args[1])
	}
	win.RestoreSession()

	win.ShowAndRun()
	log.Printf("%s exited", version.AppName)
}
