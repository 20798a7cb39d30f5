package duck

// ScoreLedger holds the running session score. It never goes negative.
type ScoreLedger struct {
	value int
}

// Add credits points. Negative amounts are ignored.
func (s *ScoreLedger) Add(points int) {
	if points <= 0 {
		return
	}
	s.value += points
}

// ResetToZero wipes the score.
func (s *ScoreLedger) ResetToZero() {
	s.value = 0
}

// Value returns the current score.
func (s *ScoreLedger) Value() int {
	return s.value
}
