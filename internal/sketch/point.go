package sketch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Point is one entry of the relative pen-vector encoding:
// dx, dy, pen_down, pen_up, pen_end.
type Point [5]float64

const (
	idxDX = iota
	idxDY
	idxPenDown
	idxPenUp
	idxPenEnd
)

var (
	// StartMarker opens every stroke.
	StartMarker = Point{0, 0, 1, 0, 0}
	// EndMarker closes a stroke (pen lifted).
	EndMarker = Point{0, 0, 0, 1, 0}
)

// ErrInvalidSequence is returned by Validate.
var ErrInvalidSequence = errors.New("invalid stroke sequence")

// Delta is a mid-stroke displacement with the pen down.
func Delta(dx, dy float64) Point {
	return Point{dx, dy, 1, 0, 0}
}

func (p Point) DX() float64 { return p[idxDX] }
func (p Point) DY() float64 { return p[idxDY] }
func (p Point) PenDown() bool { return p[idxPenDown] != 0 }
func (p Point) PenUp() bool { return p[idxPenUp] != 0 }
func (p Point) PenEnd() bool { return p[idxPenEnd] != 0 }

// UnmarshalJSON accepts exactly five numbers. Decoding straight into the
// array would zero-fill short tuples and drop extra values.
func (p *Point) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSequence, err)
	}
	if len(values) != len(p) {
		return fmt.Errorf("%w: point has %d values, want %d", ErrInvalidSequence, len(values), len(p))
	}
	copy(p[:], values)
	return nil
}

// Sequence is the ordered record of one drawing session.
type Sequence []Point

// Clone returns a copy that shares nothing with s. A nil sequence clones
// to an empty, non-nil one so consumers always get a JSON array.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// StrokeCount returns the number of closed strokes.
func (s Sequence) StrokeCount() int {
	n := 0
	for _, p := range s {
		if p.PenUp() {
			n++
		}
	}
	return n
}

// Validate checks the structure the recorder produces. It is meant for
// sequences coming from files or peers; replay itself never validates.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return nil
	}
	if s[0] != StartMarker {
		return fmt.Errorf("%w: first point is %v, want %v", ErrInvalidSequence, s[0], StartMarker)
	}
	for i, p := range s[1:] {
		for j, v := range p[idxPenDown:] {
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: point %d flag %d is %v", ErrInvalidSequence, i+1, j, v)
			}
		}
		switch {
		case p.PenDown() && p.PenUp():
			return fmt.Errorf("%w: point %d has both pen_down and pen_up", ErrInvalidSequence, i+1)
		case p.PenUp():
			if p.DX() != 0 || p.DY() != 0 {
				return fmt.Errorf("%w: end marker %d carries a displacement", ErrInvalidSequence, i+1)
			}
		case !p.PenDown():
			return fmt.Errorf("%w: point %d has neither pen_down nor pen_up", ErrInvalidSequence, i+1)
		}
	}
	return nil
}
