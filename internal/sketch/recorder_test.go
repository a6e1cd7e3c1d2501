package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// traceSurface records every call made to it.
type traceSurface struct {
	clears int
	lines  []Segment
}

func (s *traceSurface) Clear() {
	s.clears++
	s.lines = nil
}

func (s *traceSurface) Line(from, to Pos) {
	s.lines = append(s.lines, Segment{From: from, To: to})
}

type consumerLog struct {
	calls []Sequence
}

func (c *consumerLog) consume(seq Sequence) {
	c.calls = append(c.calls, seq)
}

func TestRecorderSingleStroke(t *testing.T) {
	surf := &traceSurface{}
	log := &consumerLog{}
	r := NewRecorder(surf, log.consume)

	r.Begin(Pos{100, 100})
	r.Extend(Pos{110, 100})
	r.Extend(Pos{110, 120})
	r.End()

	want := Sequence{
		{0, 0, 1, 0, 0},
		{10, 0, 1, 0, 0},
		{0, 20, 1, 0, 0},
		{0, 0, 0, 1, 0},
	}
	assert.Equal(t, want, r.Sequence())
	assert.Equal(t, Idle, r.State())

	require.Len(t, log.calls, 1)
	assert.Equal(t, want, log.calls[0])

	// Incremental paint uses the raw pointer positions.
	assert.Equal(t, []Segment{
		{From: Pos{100, 100}, To: Pos{110, 100}},
		{From: Pos{110, 100}, To: Pos{110, 120}},
	}, surf.lines)
}

func TestRecorderDeltas(t *testing.T) {
	tests := []struct {
		name string
		pts  []Pos
	}{
		{"single point", []Pos{{5, 5}}},
		{"two points", []Pos{{0, 0}, {3, 4}}},
		{"fractional", []Pos{{1.5, 2.25}, {1.75, 2}, {-3, 10.5}}},
		{"backtrack", []Pos{{10, 10}, {20, 20}, {10, 10}, {10, 10}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRecorder(nil, nil)
			r.Begin(tc.pts[0])
			for _, p := range tc.pts[1:] {
				r.Extend(p)
			}
			r.End()

			seq := r.Sequence()
			require.Len(t, seq, len(tc.pts)+1)
			assert.Equal(t, StartMarker, seq[0])
			assert.Equal(t, EndMarker, seq[len(seq)-1])
			for i := 1; i < len(tc.pts); i++ {
				want := Delta(tc.pts[i].X-tc.pts[i-1].X, tc.pts[i].Y-tc.pts[i-1].Y)
				assert.Equal(t, want, seq[i], "point %d", i)
			}
		})
	}
}

func TestRecorderTwoStrokesConcatenate(t *testing.T) {
	r := NewRecorder(nil, nil)
	r.Begin(Pos{0, 0})
	r.Extend(Pos{1, 1})
	r.End()
	r.Begin(Pos{50, 50})
	r.Extend(Pos{55, 50})
	r.End()

	seq := r.Sequence()
	require.Len(t, seq, 8)
	assert.Equal(t, StartMarker, seq[0])
	assert.Equal(t, StartMarker, seq[4])
	assert.Equal(t, Delta(5, 0), seq[5])
	assert.Equal(t, 2, seq.StrokeCount())
	assert.NoError(t, seq.Validate())
}

func TestRecorderIgnoresOutOfOrderEvents(t *testing.T) {
	surf := &traceSurface{}
	log := &consumerLog{}
	r := NewRecorder(surf, log.consume)

	assert.NotPanics(t, func() {
		r.End()
		r.Extend(Pos{3, 3})
	})
	assert.Empty(t, r.Sequence())
	assert.Empty(t, log.calls)
	assert.Empty(t, surf.lines)

	r.Begin(Pos{1, 1})
	r.Begin(Pos{9, 9}) // already open
	r.Extend(Pos{2, 1})
	r.End()
	r.End() // pointer-leave after pointer-up

	assert.Equal(t, Sequence{StartMarker, Delta(1, 0), EndMarker}, r.Sequence())
	assert.Len(t, log.calls, 1)
}

func TestRecorderReset(t *testing.T) {
	surf := &traceSurface{}
	log := &consumerLog{}
	r := NewRecorder(surf, log.consume)

	r.Begin(Pos{0, 0})
	r.Extend(Pos{4, 4})
	r.Reset()

	assert.Empty(t, r.Sequence())
	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, surf.clears)
	assert.Empty(t, surf.lines)
	require.Len(t, log.calls, 1)
	assert.NotNil(t, log.calls[0])
	assert.Empty(t, log.calls[0])

	// The stroke closed by Reset must not leak into the next one.
	r.Extend(Pos{8, 8})
	assert.Empty(t, r.Sequence())

	r.Reset()
	assert.Empty(t, r.Sequence())
	assert.Len(t, log.calls, 2)
}

func TestRecorderConsumerGetsCopy(t *testing.T) {
	var got Sequence
	r := NewRecorder(nil, func(s Sequence) { got = s })
	r.Begin(Pos{0, 0})
	r.End()

	got[0][0] = 42
	assert.Equal(t, StartMarker, r.Sequence()[0])
}

func TestRecorderLoad(t *testing.T) {
	log := &consumerLog{}
	r := NewRecorder(nil, log.consume)
	r.Begin(Pos{0, 0})

	loaded := Sequence{StartMarker, Delta(2, 2), EndMarker}
	r.Load(loaded)

	assert.Equal(t, Idle, r.State())
	assert.Equal(t, loaded, r.Sequence())
	require.Len(t, log.calls, 1)

	r.Begin(Pos{0, 0})
	r.End()
	assert.Equal(t, 5, r.Len())
}
