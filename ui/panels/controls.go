// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"circlecrop/internal/adjust"
	"circlecrop/internal/app"
	"circlecrop/internal/viewport"
)

// adjustRange is the recognized range for every adjustment parameter.
const (
	adjustMin = 0.0
	adjustMax = 5.0
)

// ControlPanel holds the zoom slider and the eight adjustment sliders.
// Range enforcement lives here: the engine and the renderer accept
// whatever values arrive, the sliders are what keep them in range.
type ControlPanel struct {
	state *app.State
	box   *fyne.Container

	zoom    *widget.Slider
	sliders []*adjustSlider
}

// adjustSlider binds one slider row to one Params field.
type adjustSlider struct {
	name   string
	slider *widget.Slider
	value  *widget.Label
	get    func(adjust.Params) float64
	set    func(*adjust.Params, float64)
}

// New creates the control panel bound to the application state.
func New(state *app.State) *ControlPanel {
	cp := &ControlPanel{state: state}

	cp.zoom = widget.NewSlider(viewport.MinZoom, viewport.MaxZoom)
	cp.zoom.Step = 0.01
	cp.zoom.Value = state.Zoom()
	zoomValue := widget.NewLabel(formatValue(cp.zoom.Value))
	cp.zoom.OnChanged = func(v float64) {
		zoomValue.SetText(formatValue(v))
		state.SetZoom(v)
	}

	rows := []*adjustSlider{
		{name: "Gamma",
			get: func(p adjust.Params) float64 { return p.Gamma },
			set: func(p *adjust.Params, v float64) { p.Gamma = v }},
		{name: "Brightness",
			get: func(p adjust.Params) float64 { return p.Brightness },
			set: func(p *adjust.Params, v float64) { p.Brightness = v }},
		{name: "Saturation",
			get: func(p adjust.Params) float64 { return p.Saturation },
			set: func(p *adjust.Params, v float64) { p.Saturation = v }},
		{name: "Contrast",
			get: func(p adjust.Params) float64 { return p.Contrast },
			set: func(p *adjust.Params, v float64) { p.Contrast = v }},
		{name: "Red",
			get: func(p adjust.Params) float64 { return p.Red },
			set: func(p *adjust.Params, v float64) { p.Red = v }},
		{name: "Green",
			get: func(p adjust.Params) float64 { return p.Green },
			set: func(p *adjust.Params, v float64) { p.Green = v }},
		{name: "Blue",
			get: func(p adjust.Params) float64 { return p.Blue },
			set: func(p *adjust.Params, v float64) { p.Blue = v }},
		{name: "Alpha",
			get: func(p adjust.Params) float64 { return p.Alpha },
			set: func(p *adjust.Params, v float64) { p.Alpha = v }},
	}

	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Zoom", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, zoomValue, cp.zoom),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Adjustments", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	}

	for _, row := range rows {
		row := row
		row.slider = widget.NewSlider(adjustMin, adjustMax)
		row.slider.Step = 0.01
		row.slider.Value = row.get(state.Params())
		row.value = widget.NewLabel(formatValue(row.slider.Value))
		row.slider.OnChanged = func(v float64) {
			row.value.SetText(formatValue(v))
			params := state.Params()
			row.set(&params, v)
			state.SetParams(params)
		}
		cp.sliders = append(cp.sliders, row)

		items = append(items,
			widget.NewLabel(row.name),
			container.NewBorder(nil, nil, nil, row.value, row.slider),
		)
	}

	reset := widget.NewButton("Reset", cp.Reset)
	items = append(items, widget.NewSeparator(), reset)

	cp.box = container.NewVBox(items...)
	return cp
}

// Container returns the panel for embedding in layouts.
func (cp *ControlPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(cp.box)
}

// Reset restores the neutral zoom and adjustment values.
func (cp *ControlPanel) Reset() {
	cp.zoom.SetValue(viewport.MinZoom)
	defaults := adjust.Defaults()
	for _, row := range cp.sliders {
		row.slider.SetValue(row.get(defaults))
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
