package ui

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StrokePad/internal/sketch"
)

func press(p *PadWidget, x, y float32) {
	p.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func drag(p *PadWidget, x, y float32) {
	p.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func release(p *PadWidget) {
	p.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
}

func padLines(t *testing.T, p *PadWidget) []*canvas.Line {
	t.Helper()
	objs := test.WidgetRenderer(p).Objects()
	require.NotEmpty(t, objs)
	var lines []*canvas.Line
	for _, o := range objs[1:] {
		line, ok := o.(*canvas.Line)
		require.True(t, ok, "unexpected object %T", o)
		lines = append(lines, line)
	}
	return lines
}

func TestPadRecordsGesture(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)

	var published []sketch.Sequence
	pad.OnStrokes = func(seq sketch.Sequence) { published = append(published, seq) }

	press(pad, 100, 100)
	drag(pad, 110, 100)
	drag(pad, 110, 120)
	release(pad)
	pad.MouseOut() // pointer leaves after release

	want := sketch.Sequence{{0, 0, 1, 0, 0}, {10, 0, 1, 0, 0}, {0, 20, 1, 0, 0}, {0, 0, 0, 1, 0}}
	require.Len(t, published, 1)
	assert.Equal(t, want, published[0])
	assert.Equal(t, want, pad.Sequence())
	assert.False(t, pad.Drawing())
	assert.Equal(t, "1 strokes, 4 points, 10x20", pad.Status().Text)

	// The pad shows the replay from the canvas centre.
	lines := padLines(t, pad)
	require.Len(t, lines, 2)
	assert.Equal(t, fyne.NewPos(300, 200), lines[0].Position1)
	assert.Equal(t, fyne.NewPos(310, 200), lines[0].Position2)
	assert.Equal(t, fyne.NewPos(310, 220), lines[1].Position2)
	assert.Equal(t, float32(2), lines[0].StrokeWidth)
}

func TestPadIgnoresStrayEvents(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(200, 200, sketch.DefaultStyle)
	calls := 0
	pad.OnStrokes = func(sketch.Sequence) { calls++ }

	drag(pad, 5, 5)
	release(pad)
	pad.DragEnd()
	pad.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(1, 1)},
		Button:     desktop.MouseButtonSecondary,
	})

	assert.Empty(t, pad.Sequence())
	assert.Zero(t, calls)
	assert.Empty(t, padLines(t, pad))
}

func TestPadTwoStrokes(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)

	press(pad, 10, 10)
	drag(pad, 20, 10)
	pad.DragEnd()
	press(pad, 100, 100)
	drag(pad, 100, 130)
	pad.MouseOut()

	seq := pad.Sequence()
	require.Len(t, seq, 8)
	assert.Equal(t, sketch.StartMarker, seq[0])
	assert.Equal(t, sketch.StartMarker, seq[4])
	assert.Equal(t, 2, seq.StrokeCount())
}

func TestPadStatusReportsViewers(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)
	pad.Viewers = func() int { return 3 }

	press(pad, 50, 50)
	drag(pad, 20, 60)
	release(pad)

	assert.Equal(t, "1 strokes, 3 points, 30x10, 3 viewers", pad.Status().Text)
}

func TestPadReset(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)
	var last sketch.Sequence
	pad.OnStrokes = func(seq sketch.Sequence) { last = seq }

	press(pad, 10, 10)
	drag(pad, 30, 30)
	pad.Reset()

	assert.NotNil(t, last)
	assert.Empty(t, last)
	assert.Empty(t, pad.Sequence())
	assert.Empty(t, padLines(t, pad))
	assert.False(t, pad.Drawing())
}

func TestPadSetStyleRepaints(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(100, 100, sketch.DefaultStyle)
	press(pad, 0, 0)
	drag(pad, 5, 5)
	release(pad)

	red := color.NRGBA{R: 255, A: 255}
	pad.SetStyle(sketch.Style{Color: red, Width: 6})

	lines := padLines(t, pad)
	require.Len(t, lines, 1)
	assert.Equal(t, red, lines[0].StrokeColor)
	assert.Equal(t, float32(6), lines[0].StrokeWidth)
}

func TestPadSaveLoad(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)
	pad.SessionID = "session-1"
	press(pad, 10, 10)
	drag(pad, 40, 10)
	release(pad)

	var buf bytes.Buffer
	require.NoError(t, pad.SaveTo(&buf))

	other := NewPadWidget(600, 400, sketch.DefaultStyle)
	var got sketch.Sequence
	other.OnStrokes = func(seq sketch.Sequence) { got = seq }
	require.NoError(t, other.LoadFrom(&buf))

	assert.Equal(t, pad.Sequence(), other.Sequence())
	assert.Equal(t, pad.Sequence(), got)
	assert.Len(t, padLines(t, other), 1)

	assert.Error(t, other.LoadFrom(bytes.NewBufferString(`{"version":1,"strokes":[[5,5,1,0,0]]}`)))
	assert.Equal(t, pad.Sequence(), other.Sequence(), "failed load keeps the drawing")
}

func TestPadExport(t *testing.T) {
	test.NewTempApp(t)
	pad := NewPadWidget(120, 80, sketch.DefaultStyle)
	press(pad, 0, 0)
	drag(pad, 20, 20)
	release(pad)

	var img bytes.Buffer
	require.NoError(t, pad.ExportPNG(&img))
	decoded, err := png.Decode(&img)
	require.NoError(t, err)
	assert.Equal(t, 120, decoded.Bounds().Dx())

	var pdf bytes.Buffer
	require.NoError(t, pad.ExportPDF(&pdf))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))
}

func TestHostWindow(t *testing.T) {
	a := test.NewTempApp(t)
	pad := NewPadWidget(600, 400, sketch.DefaultStyle)

	win := NewHostWindow(a, pad, "strokepad://10.0.0.2:8888")
	defer win.Close()
	assert.NotNil(t, win.Content())
	assert.Equal(t, "StrokePad", win.Title())
}
