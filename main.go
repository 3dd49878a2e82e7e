// Package main provides the entry point for the Circle Crop application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"circlecrop/internal/app"
	"circlecrop/internal/loader"
	"circlecrop/internal/version"
	"circlecrop/ui/mainwindow"
	"circlecrop/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Circle Crop v%s", version.Version)

	fyneApp := fyneapp.NewWithID("io.circlecrop.app")
	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open an image passed on the command line.
	if len(os.Args) > 1 {
		path := os.Args[1]
		if loader.IsSupported(path) {
			win.LoadImage(path)
		} else {
			log.Printf("unsupported image: %s", path)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(win.SavePreferences)
	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.BaselineTime().Format("15:04:05"))

	reloader.OnTick(win.SavePreferencesIfChanged)

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
	})

	reloader.Start()
}
