package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"StrokePad/internal/export"
	"StrokePad/internal/sketch"
)

var padBorder = color.NRGBA{R: 0xff, G: 0xbf, B: 0x7f, A: 0xff}

// PadWidget is the drawing surface. It owns one Recorder per drawing
// session and re-renders the whole sequence after every change.
type PadWidget struct {
	widget.BaseWidget

	recorder *sketch.Recorder
	surface  *lineSurface
	size     fyne.Size

	SessionID string
	OnStrokes func(seq sketch.Sequence)
	// Viewers, when set, reports how many viewers the drawing is shared with.
	Viewers   func() int
	statusBar *widget.Label
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)
var _ desktop.Hoverable = (*PadWidget)(nil)

// NewPadWidget creates a width x height pad drawing with style.
func NewPadWidget(width, height float32, style sketch.Style) *PadWidget {
	p := &PadWidget{
		surface:   newLineSurface(style),
		size:      fyne.NewSize(width, height),
		statusBar: widget.NewLabel("Ready"),
	}
	p.recorder = sketch.NewRecorder(p.surface, p.publish)
	p.ExtendBaseWidget(p)
	return p
}

func (p *PadWidget) publish(seq sketch.Sequence) {
	if p.OnStrokes != nil {
		p.OnStrokes(seq)
	}
}

// origin is the replay origin, the centre of the canvas.
func (p *PadWidget) origin() sketch.Pos {
	return sketch.Center(float64(p.size.Width), float64(p.size.Height))
}

// redraw replays the full sequence. Every mutating call ends with it.
func (p *PadWidget) redraw() {
	sketch.Render(p.recorder.Sequence(), p.surface, p.origin())
	p.Refresh()
}

// Sequence returns a copy of what has been drawn.
func (p *PadWidget) Sequence() sketch.Sequence { return p.recorder.Sequence() }

func (p *PadWidget) Drawing() bool { return p.recorder.State() == sketch.StrokeOpen }

func (p *PadWidget) CanvasSize() fyne.Size { return p.size }

func (p *PadWidget) Status() *widget.Label { return p.statusBar }

// SetStatus must be called on the UI goroutine.
func (p *PadWidget) SetStatus(text string) {
	p.statusBar.SetText(text)
}

// SetStyle changes the pen for the whole drawing.
func (p *PadWidget) SetStyle(style sketch.Style) {
	p.surface.style = style
	p.redraw()
}

func (p *PadWidget) Style() sketch.Style { return p.surface.style }

// Reset empties the pad and publishes the empty sequence.
func (p *PadWidget) Reset() {
	p.recorder.Reset()
	p.redraw()
	p.SetStatus("Cleared")
}

// LoadSequence replaces the drawing and publishes it.
func (p *PadWidget) LoadSequence(seq sketch.Sequence) {
	p.recorder.Load(seq)
	p.redraw()
}

// --- Pointer input ---

func (p *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.recorder.Begin(toPos(e.Position))
	p.redraw()
}

func (p *PadWidget) Dragged(e *fyne.DragEvent) {
	if !p.Drawing() {
		return
	}
	p.recorder.Extend(toPos(e.Position))
	p.redraw()
}

func (p *PadWidget) endStroke() {
	if !p.Drawing() {
		return
	}
	p.recorder.End()
	p.redraw()
	p.SetStatus(p.drawingStatus())
}

// drawingStatus summarises the drawing: strokes, points and the extent
// the replay covers.
func (p *PadWidget) drawingStatus() string {
	seq := p.recorder.Sequence()
	box := sketch.Bounds(seq, p.origin())
	text := fmt.Sprintf("%d strokes, %d points, %.0fx%.0f", seq.StrokeCount(), p.recorder.Len(), box.Width(), box.Height())
	if p.Viewers != nil {
		text += fmt.Sprintf(", %d viewers", p.Viewers())
	}
	return text
}

func (p *PadWidget) MouseUp(*desktop.MouseEvent) { p.endStroke() }
func (p *PadWidget) DragEnd() { p.endStroke() }
func (p *PadWidget) MouseOut() { p.endStroke() }
func (p *PadWidget) MouseIn(*desktop.MouseEvent) {}
func (p *PadWidget) MouseMoved(*desktop.MouseEvent) {}

// --- Files ---

// SaveTo writes the drawing as a JSON document.
func (p *PadWidget) SaveTo(w io.Writer) error {
	return export.Save(w, export.Document{
		Session: p.SessionID,
		Width:   float64(p.size.Width),
		Height:  float64(p.size.Height),
		Strokes: p.recorder.Sequence(),
	})
}

// LoadFrom replaces the drawing with a JSON document.
func (p *PadWidget) LoadFrom(r io.Reader) error {
	doc, err := export.Load(r)
	if err != nil {
		return err
	}
	p.LoadSequence(doc.Strokes)
	return nil
}

// ExportPNG rasterizes the drawing at canvas size.
func (p *PadWidget) ExportPNG(w io.Writer) error {
	return export.WritePNG(w, p.recorder.Sequence(), int(p.size.Width), int(p.size.Height), p.surface.style)
}

// ExportPDF writes the drawing as a one-page PDF.
func (p *PadWidget) ExportPDF(w io.Writer) error {
	return export.WritePDF(w, p.recorder.Sequence(), float64(p.size.Width), float64(p.size.Height), p.surface.style)
}

// writeTo runs write against a file picked in a dialog and reports the
// outcome in the status bar.
func (p *PadWidget) writeTo(writer fyne.URIWriteCloser, what string, write func(io.Writer) error) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[PAD] Error closing %s: %v", writer.URI(), err)
		}
	}()

	if err := write(writer); err != nil {
		log.Printf("[PAD] %s to %s failed: %v", what, writer.URI(), err)
		p.SetStatus(what + " failed")
		return
	}
	log.Printf("[PAD] %s written to %s", what, writer.URI())
	p.SetStatus(fmt.Sprintf("%s: %s", what, writer.URI().Name()))
}

func (p *PadWidget) readFrom(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("[PAD] Error closing %s: %v", reader.URI(), err)
		}
	}()

	if err := p.LoadFrom(reader); err != nil {
		log.Printf("[PAD] Loading %s failed: %v", reader.URI(), err)
		p.SetStatus("Error parsing file - invalid format")
		return
	}
	p.SetStatus(fmt.Sprintf("Loaded %s", reader.URI().Name()))
}

// --- Rendering ---

func (p *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	bg.StrokeColor = padBorder
	bg.StrokeWidth = 2
	return &padRenderer{pad: p, background: bg}
}

type padRenderer struct {
	pad        *PadWidget
	background *canvas.Rectangle
}

func (r *padRenderer) Objects() []fyne.CanvasObject {
	lines := r.pad.surface.Objects()
	objects := make([]fyne.CanvasObject, 0, len(lines)+1)
	objects = append(objects, r.background)
	return append(objects, lines...)
}

func (r *padRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *padRenderer) MinSize() fyne.Size {
	return r.pad.size
}

func (r *padRenderer) Refresh() {
	r.background.Refresh()
	canvas.Refresh(r.pad)
}

func (r *padRenderer) Destroy() {}
