package dispatch

// progressGate filters one dispatch's progress stream. It is used from the
// single goroutine delivering transport progress, so it carries no lock.
// Emitted values are strictly increasing, so the caller-visible stream is
// monotone and bounded at 100/threshold events.
type progressGate struct {
	threshold int
	last      int
}

func newProgressGate(threshold int) *progressGate {
	return &progressGate{threshold: threshold}
}

// ShouldEmit reports whether percent clears the threshold over the last
// emitted value and, when it does, records it as the new floor.
func (g *progressGate) ShouldEmit(percent int) bool {
	if percent <= g.last+g.threshold {
		return false
	}
	g.last = percent
	return true
}
