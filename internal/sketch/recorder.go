package sketch

// State of a Recorder.
type State int

const (
	Idle State = iota
	StrokeOpen
)

func (s State) String() string {
	if s == StrokeOpen {
		return "stroke-open"
	}
	return "idle"
}

// Consumer receives the complete sequence on every pen-up and reset.
type Consumer func(Sequence)

// Recorder turns pointer gestures into a Sequence. It is not safe for
// concurrent use; the owner drives it from the UI goroutine.
type Recorder struct {
	surface  Surface
	consumer Consumer

	seq   Sequence
	last  Pos
	state State
}

// NewRecorder creates an idle recorder with an empty sequence. Either
// argument may be nil.
func NewRecorder(surface Surface, consumer Consumer) *Recorder {
	return &Recorder{
		surface:  surface,
		consumer: consumer,
		seq:      Sequence{},
	}
}

// Begin opens a stroke at p. It does nothing while a stroke is open.
func (r *Recorder) Begin(p Pos) {
	if r.state == StrokeOpen {
		return
	}
	r.state = StrokeOpen
	r.last = p
	r.seq = append(r.seq, StartMarker)
}

// Extend records the displacement to p and paints it straight away.
// Stray moves while idle are ignored.
func (r *Recorder) Extend(p Pos) {
	if r.state != StrokeOpen {
		return
	}
	r.seq = append(r.seq, Delta(p.X-r.last.X, p.Y-r.last.Y))
	if r.surface != nil {
		r.surface.Line(r.last, p)
	}
	r.last = p
}

// End closes the open stroke and publishes the sequence. Duplicate end
// signals (pointer-leave followed by pointer-up) are ignored.
func (r *Recorder) End() {
	if r.state != StrokeOpen {
		return
	}
	r.seq = append(r.seq, EndMarker)
	r.state = Idle
	r.emit()
}

// Reset drops everything, clears the surface and publishes the empty
// sequence.
func (r *Recorder) Reset() {
	r.seq = Sequence{}
	r.state = Idle
	r.last = Pos{}
	if r.surface != nil {
		r.surface.Clear()
	}
	r.emit()
}

// Load replaces the sequence with seq, closing any open stroke, and
// publishes it.
func (r *Recorder) Load(seq Sequence) {
	r.seq = seq.Clone()
	r.state = Idle
	r.last = Pos{}
	r.emit()
}

// Sequence returns a copy of the recorded sequence.
func (r *Recorder) Sequence() Sequence { return r.seq.Clone() }

func (r *Recorder) State() State { return r.state }

func (r *Recorder) Len() int { return len(r.seq) }

func (r *Recorder) emit() {
	if r.consumer != nil {
		r.consumer(r.seq.Clone())
	}
}
