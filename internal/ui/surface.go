package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"StrokePad/internal/sketch"
)

// lineSurface paints by collecting canvas.Line objects. The widget
// renderer hands them to Fyne on every refresh.
type lineSurface struct {
	style sketch.Style
	lines []fyne.CanvasObject
}

func newLineSurface(style sketch.Style) *lineSurface {
	return &lineSurface{style: style}
}

func (s *lineSurface) Clear() {
	s.lines = nil
}

func (s *lineSurface) Line(from, to sketch.Pos) {
	line := canvas.NewLine(s.style.Color)
	line.StrokeWidth = float32(s.style.Width)
	line.Position1 = fyne.NewPos(float32(from.X), float32(from.Y))
	line.Position2 = fyne.NewPos(float32(to.X), float32(to.Y))
	s.lines = append(s.lines, line)
}

func (s *lineSurface) Objects() []fyne.CanvasObject {
	return s.lines
}

func toPos(p fyne.Position) sketch.Pos {
	return sketch.Pos{X: float64(p.X), Y: float64(p.Y)}
}
