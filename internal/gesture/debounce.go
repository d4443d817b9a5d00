package gesture

// DefaultDebounceCount is how many consecutive identical raw labels are
// needed before the reported label switches.
const DefaultDebounceCount = 3

// Debouncer stabilizes the per-frame classifier output. The raw label near a
// threshold boundary can flicker between neighbors; the debounced label only
// switches after N consecutive identical observations.
type Debouncer struct {
	required  int
	candidate Label
	streak    int
	current   Label
}

// NewDebouncer creates a Debouncer requiring n consecutive identical labels.
// Values below 1 fall back to DefaultDebounceCount; n = 1 disables
// debouncing.
func NewDebouncer(n int) *Debouncer {
	if n < 1 {
		n = DefaultDebounceCount
	}
	return &Debouncer{
		required:  n,
		candidate: LabelNone,
		current:   LabelNone,
	}
}

// Observe feeds one raw label and returns the debounced label plus whether
// it changed on this observation.
func (d *Debouncer) Observe(raw Label) (Label, bool) {
	if raw == d.candidate {
		d.streak++
	} else {
		d.candidate = raw
		d.streak = 1
	}

	if d.streak >= d.required && raw != d.current {
		d.current = raw
		return d.current, true
	}
	return d.current, false
}

// Current returns the debounced label without feeding an observation.
func (d *Debouncer) Current() Label {
	return d.current
}

// Reset returns the debouncer to its initial state reporting LabelNone.
func (d *Debouncer) Reset() {
	d.candidate = LabelNone
	d.streak = 0
	d.current = LabelNone
}
