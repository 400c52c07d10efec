package chunk

// Shift records a single column decision: the token at Line moved (or
// would move) from column From to column To.
type Shift struct {
	Line int    `json:"line"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text,omitempty"`
	Kind string `json:"kind,omitempty"`
}

// Recorder is an [Applier] that captures shifts without mutating the
// document. It backs dry-run and report surfaces: run the engine with a
// Recorder, inspect Shifts, and nothing in the document has moved.
//
// Only decisions that change a column are recorded. A token already at
// its target column is not a shift.
type Recorder struct {
	Shifts []Shift
}

// Apply records the decision for t. Satisfies [Applier].
func (r *Recorder) Apply(t *Token, col int) {
	if t.Column == col {
		return
	}
	r.Shifts = append(r.Shifts, Shift{
		Line: t.OrigLine,
		From: t.Column,
		To:   col,
		Text: t.Text,
		Kind: t.Kind.String(),
	})
}

// Pending reports whether any shifts were recorded.
func (r *Recorder) Pending() bool { return len(r.Shifts) > 0 }
