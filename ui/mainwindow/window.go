// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"circlecrop/internal/app"
	"circlecrop/internal/loader"
	"circlecrop/internal/render"
	"circlecrop/internal/version"
	"circlecrop/ui/cropcanvas"
	"circlecrop/ui/panels"
	"circlecrop/ui/prefs"
)

const (
	defaultWidth  = 900
	defaultHeight = 640
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *cropcanvas.CropCanvas
	panel     *panels.ControlPanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	w := &MainWindow{
		Window: fyneApp.NewWindow("Circle Crop"),
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	w.canvas = cropcanvas.New(state)
	w.panel = panels.New(state)
	w.statusBar = widget.NewLabel("Drop an image here or use File → Open…")

	content := container.NewBorder(
		nil,
		w.statusBar,
		nil,
		w.panel.Container(),
		w.canvas,
	)
	w.SetContent(content)
	w.SetMainMenu(w.buildMenu())

	w.Resize(fyne.NewSize(
		float32(appPrefs.Float(prefs.KeyWindowWidth, defaultWidth)),
		float32(appPrefs.Float(prefs.KeyWindowHeight, defaultHeight)),
	))

	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			if loader.IsSupported(uri.Path()) {
				w.LoadImage(uri.Path())
				return
			}
		}
		dialog.ShowInformation("Unsupported file",
			"None of the dropped files is a supported image.", w)
	})

	state.On(app.EventImageLoaded, func(data interface{}) {
		photo := data.(*loader.Photo)
		m := photo.Metrics()
		w.statusBar.SetText(fmt.Sprintf("%s — %.0f×%.0f",
			filepath.Base(photo.Path), m.NaturalWidth, m.NaturalHeight))
	})

	return w
}

func (w *MainWindow) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", w.openImage),
		fyne.NewMenuItem("Export PNG…", w.exportImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			w.SavePreferences()
			w.app.Quit()
		}),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("Circle Crop",
				fmt.Sprintf("Circle Crop v%s (%s, built %s)\nCircular photo crop and adjust tool.",
					version.Version, version.GitCommit, version.BuildTime), w)
		}),
	)
	return fyne.NewMainMenu(fileMenu, helpMenu)
}

// openImage shows the file-open dialog starting at the last used
// directory.
func (w *MainWindow) openImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		w.LoadImage(path)
	}, w)
	fd.SetFilter(storage.NewExtensionFileFilter(loader.SupportedExtensions()))

	if lastDir := w.prefs.String(prefs.KeyLastDir); lastDir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(lastDir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// LoadImage decodes the image in the background and hands the result to
// the application state. A decode failure never reaches the viewport
// core; it surfaces here as a dialog.
func (w *MainWindow) LoadImage(path string) {
	w.statusBar.SetText("Loading " + filepath.Base(path) + "…")
	loader.LoadAsync(path,
		func(photo *loader.Photo) {
			w.state.SetPhoto(photo)
			w.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
		},
		func(err error) {
			w.statusBar.SetText("Could not load " + filepath.Base(path))
			dialog.ShowError(fmt.Errorf("could not load image: %w", err), w)
		},
	)
}

// exportImage renders the circular crop at source resolution and writes
// it as a PNG.
func (w *MainWindow) exportImage() {
	if w.state.Photo() == nil {
		dialog.ShowInformation("Nothing to export", "Load an image first.", w)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		out, err := render.Export(w.state.Photo(), w.state.Frame(), w.state.Params())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := render.WritePNG(writer, out); err != nil {
			dialog.ShowError(err, w)
			return
		}
		log.Printf("exported crop to %s", writer.URI().Path())
		w.statusBar.SetText("Exported " + filepath.Base(writer.URI().Path()))
	}, w)
	fd.SetFileName("crop.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.Show()
}

// SavePreferences persists window geometry and the last directory.
func (w *MainWindow) SavePreferences() {
	size := w.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		w.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		w.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	if err := w.prefs.Save(); err != nil {
		log.Printf("failed to save preferences: %v", err)
	}
}

// SavePreferencesIfChanged persists preferences only when dirty; called
// periodically from the hot reload ticker.
func (w *MainWindow) SavePreferencesIfChanged() {
	if err := w.prefs.SaveIfDirty(); err != nil {
		log.Printf("failed to save preferences: %v", err)
	}
}
