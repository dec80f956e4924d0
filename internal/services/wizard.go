package services

// Wizard is the linear position of an in-progress assessment: an explicit
// index into the catalog with two transitions (Advance, Retreat) and two
// boundaries (the first question, and advancing past the last question,
// which signals submission).
type Wizard struct {
	pos    int
	length int
}

// NewWizard starts at the first question of an n-question sequence.
func NewWizard(n int) *Wizard {
	return &Wizard{length: n}
}

// Pos is the zero-based index of the current question.
func (w *Wizard) Pos() int { return w.pos }

// Len is the number of questions in the sequence.
func (w *Wizard) Len() int { return w.length }

// AtFirst reports whether Retreat would be a no-op.
func (w *Wizard) AtFirst() bool { return w.pos == 0 }

// Done reports whether the wizard has advanced past the last question.
func (w *Wizard) Done() bool { return w.pos >= w.length }

// Advance moves to the next question. Advancing from the last question
// marks the wizard done and returns true; Advance on a done wizard is a
// no-op returning false.
func (w *Wizard) Advance() bool {
	if w.Done() {
		return false
	}
	w.pos++
	return true
}

// Retreat moves back one question, returning false at the first. A done
// wizard retreats onto its last question, reopening it.
func (w *Wizard) Retreat() bool {
	if w.pos == 0 {
		return false
	}
	w.pos--
	return true
}
