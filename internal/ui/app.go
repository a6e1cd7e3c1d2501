package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewHostWindow lays out the pad with its toolbar, status bar and, when
// sharing, the link viewers open.
func NewHostWindow(a fyne.App, pad *PadWidget, shareLink string) fyne.Window {
	win := a.NewWindow("StrokePad")

	bottom := []fyne.CanvasObject{pad.Status()}
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		link.Disable()
		bottom = append(bottom, container.NewBorder(nil, nil, widget.NewLabel("Share:"), nil, link))
	}

	content := container.NewBorder(
		NewToolbar(pad, win),
		container.NewVBox(bottom...),
		nil, nil,
		container.NewCenter(pad),
	)
	win.SetContent(content)
	win.Resize(fyne.NewSize(pad.CanvasSize().Width+80, pad.CanvasSize().Height+160))
	return win
}

// NewViewerWindow shows what hosts share.
func NewViewerWindow(a fyne.App, viewer *ViewerWidget, status *widget.Label) fyne.Window {
	win := a.NewWindow("StrokePad Viewer")
	top := container.NewHBox(newGridButton(viewer))
	win.SetContent(container.NewBorder(top, status, nil, nil, container.NewCenter(viewer)))
	win.Resize(fyne.NewSize(viewer.size.Width+80, viewer.size.Height+120))
	return win
}

func newGridButton(viewer *ViewerWidget) *widget.Button {
	return widget.NewButtonWithIcon("Grid", theme.GridIcon(), viewer.ToggleGrid)
}
