package state

import (
	"sync/atomic"

	"github.com/google/uuid"

	"StrokePad/internal/sketch"
)

// Snapshot is the full stroke sequence of one session at one revision.
// It is what hosts publish and viewers merge.
type Snapshot struct {
	SessionID string          `json:"session_id"`
	Revision  uint64          `json:"revision"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Strokes   sketch.Sequence `json:"strokes"`
}

// Session identifies one drawing session and stamps its snapshots with a
// monotonically increasing revision.
type Session struct {
	id       string
	revision uint64
	width    float64
	height   float64
}

// NewSession starts a session for a width x height canvas.
func NewSession(width, height float64) *Session {
	return &Session{
		id:     uuid.NewString(),
		width:  width,
		height: height,
	}
}

func (s *Session) ID() string { return s.id }

// Revision is the last revision handed out.
func (s *Session) Revision() uint64 { return atomic.LoadUint64(&s.revision) }

// Snapshot stamps seq with the next revision.
func (s *Session) Snapshot(seq sketch.Sequence) Snapshot {
	return Snapshot{
		SessionID: s.id,
		Revision:  atomic.AddUint64(&s.revision, 1),
		Width:     s.width,
		Height:    s.height,
		Strokes:   seq.Clone(),
	}
}
