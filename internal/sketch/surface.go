package sketch

import "image/color"

// Pos is an absolute position in surface-local coordinates.
type Pos struct {
	X, Y float64
}

func (p Pos) Add(dx, dy float64) Pos { return Pos{p.X + dx, p.Y + dy} }

// Surface is a 2D paint target. The stroke style is fixed by the
// implementation, callers only say where to paint.
type Surface interface {
	Clear()
	Line(from, to Pos)
}

// Style is the pen used by surfaces.
type Style struct {
	Color color.Color
	Width float64
}

// DefaultStyle is a dark grey 2px round-capped pen.
var DefaultStyle = Style{
	Color: color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
	Width: 2,
}
