package sketch

// Segment is one painted line of a replay.
type Segment struct {
	From, To Pos
}

// Rect is an axis-aligned box in surface coordinates.
type Rect struct {
	Min, Max Pos
}

func (r Rect) Width() float64 { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center is the replay origin of a width x height canvas.
func Center(width, height float64) Pos {
	return Pos{X: width / 2, Y: height / 2}
}

// Replay reconstructs absolute positions from seq starting at origin and
// returns the segments to paint, in order.
//
// The first point and every pen-up point move the pen without painting.
// Every other pen-down point paints from the current position to the
// displaced one. pen_end is ignored. A point with both flags set counts
// as pen-up.
//
// Strokes after the first resume from where the previous one ended: the
// encoding carries no displacement between strokes, and replay keeps it
// that way so existing consumers see the same picture.
func Replay(seq Sequence, origin Pos) []Segment {
	segs := make([]Segment, 0, len(seq))
	pos := origin
	for i, p := range seq {
		switch {
		case i == 0 || p.PenUp():
			pos = pos.Add(p.DX(), p.DY())
		case p.PenDown():
			next := pos.Add(p.DX(), p.DY())
			segs = append(segs, Segment{From: pos, To: next})
			pos = next
		}
	}
	return segs
}

// Render clears surface and paints seq onto it from origin. It only
// reads seq, so calling it again with the same input paints the same
// picture.
func Render(seq Sequence, surface Surface, origin Pos) {
	if surface == nil {
		return
	}
	surface.Clear()
	for _, s := range Replay(seq, origin) {
		surface.Line(s.From, s.To)
	}
}

// Bounds returns the box covering every position the pen visits when seq
// is replayed from origin. An empty sequence yields a zero-size box at
// origin.
func Bounds(seq Sequence, origin Pos) Rect {
	r := Rect{Min: origin, Max: origin}
	pos := origin
	for i, p := range seq {
		if i != 0 && !p.PenUp() && !p.PenDown() {
			continue
		}
		pos = pos.Add(p.DX(), p.DY())
		r.Min.X = min(r.Min.X, pos.X)
		r.Min.Y = min(r.Min.Y, pos.Y)
		r.Max.X = max(r.Max.X, pos.X)
		r.Max.Y = max(r.Max.Y, pos.Y)
	}
	return r
}
