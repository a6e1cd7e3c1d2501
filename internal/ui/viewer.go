package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"StrokePad/internal/sketch"
	"StrokePad/internal/state"
)

// ViewerWidget replays the sessions shared by hosts. It never records.
type ViewerWidget struct {
	widget.BaseWidget

	board    *state.Board
	style    sketch.Style
	size     fyne.Size
	gridSize float32
	showGrid bool

	mu    sync.RWMutex
	lines []fyne.CanvasObject
}

var _ fyne.Widget = (*ViewerWidget)(nil)

func NewViewerWidget(width, height float32, style sketch.Style) *ViewerWidget {
	v := &ViewerWidget{
		board:    state.NewBoard(),
		style:    style,
		size:     fyne.NewSize(width, height),
		gridSize: 50,
		showGrid: true,
	}
	v.ExtendBaseWidget(v)
	return v
}

// Apply merges a snapshot received from a host and redraws if it was
// newer than what the viewer had.
func (v *ViewerWidget) Apply(snap state.Snapshot) bool {
	if !v.board.Apply(snap) {
		return false
	}
	v.rebuild()
	return true
}

// Clear drops every session and blanks the view.
func (v *ViewerWidget) Clear() {
	v.board.Clear()
	v.rebuild()
}

func (v *ViewerWidget) SessionCount() int { return v.board.Len() }

func (v *ViewerWidget) ToggleGrid() {
	v.showGrid = !v.showGrid
	v.Refresh()
}

// rebuild replays every session from the centre of the canvas it was
// drawn on.
func (v *ViewerWidget) rebuild() {
	var lines []fyne.CanvasObject
	for _, snap := range v.board.Snapshots() {
		surf := newLineSurface(v.style)
		w, h := snap.Width, snap.Height
		if w <= 0 || h <= 0 {
			w, h = float64(v.size.Width), float64(v.size.Height)
		}
		sketch.Render(snap.Strokes, surf, sketch.Center(w, h))
		lines = append(lines, surf.Objects()...)
	}

	v.mu.Lock()
	v.lines = lines
	v.mu.Unlock()
	v.Refresh()
}

func (v *ViewerWidget) createGrid() []fyne.CanvasObject {
	var lines []fyne.CanvasObject
	gridColor := color.NRGBA{R: 220, G: 220, B: 220, A: 100}

	for x := float32(0); x <= v.size.Width; x += v.gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, v.size.Height)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := float32(0); y <= v.size.Height; y += v.gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(v.size.Width, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

func (v *ViewerWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return &viewerRenderer{viewer: v, background: bg, grid: v.createGrid()}
}

type viewerRenderer struct {
	viewer     *ViewerWidget
	background *canvas.Rectangle
	grid       []fyne.CanvasObject
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	r.viewer.mu.RLock()
	defer r.viewer.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	if r.viewer.showGrid {
		objects = append(objects, r.grid...)
	}
	return append(objects, r.viewer.lines...)
}

func (r *viewerRenderer) Layout(size fyne.Size) { r.background.Resize(size) }

func (r *viewerRenderer) MinSize() fyne.Size { return r.viewer.size }

func (r *viewerRenderer) Refresh() { canvas.Refresh(r.viewer) }

func (r *viewerRenderer) Destroy() {}
