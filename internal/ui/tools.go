package ui

import (
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"StrokePad/internal/sketch"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var penColors = []color.Color{
	sketch.DefaultStyle.Color,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 160, A: 255},
	color.NRGBA{B: 255, A: 255},
}

// saveDialog asks for a file and hands it to write.
func saveDialog(win fyne.Window, pad *PadWidget, what, name, ext string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Printf("[PAD] Save dialog: %v", err)
			pad.SetStatus(what + " failed")
			return
		}
		if writer == nil {
			return // cancelled
		}
		pad.writeTo(writer, what, write)
	}, win)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func openDialog(win fyne.Window, pad *PadWidget) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("[PAD] Open dialog: %v", err)
			pad.SetStatus("Error reading file")
			return
		}
		if reader == nil {
			return
		}
		pad.readFrom(reader)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// --- The Main Toolbar ---
func NewToolbar(pad *PadWidget, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), pad.Reset),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			saveDialog(win, pad, "Drawing", "drawing.json", ".json", pad.SaveTo)
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			openDialog(win, pad)
		}),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			saveDialog(win, pad, "PNG", "drawing.png", ".png", pad.ExportPNG)
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			saveDialog(win, pad, "PDF", "drawing.pdf", ".pdf", pad.ExportPDF)
		}),
	)

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		style := pad.Style()
		style.Color = c
		pad.SetStyle(style)
	}
	colorBox := container.NewHBox()
	for _, c := range penColors {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 20.0)
	strokeSlider.SetValue(pad.Style().Width)
	strokeSlider.OnChangeEnded = func(val float64) {
		style := pad.Style()
		style.Width = val
		pad.SetStyle(style)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
