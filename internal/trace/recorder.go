package trace

// Recorder keeps every step in memory. Tests assert on it instead of
// scraping output.
type Recorder struct {
	Steps []Step
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record implements Sink.
func (r *Recorder) Record(step Step) {
	r.Steps = append(r.Steps, step)
}

// OfKind returns the recorded steps of the given kind, in order.
func (r *Recorder) OfKind(kind Kind) []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Reset forgets all recorded steps.
func (r *Recorder) Reset() {
	r.Steps = r.Steps[:0]
}
