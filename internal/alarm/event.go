package alarm

// Event is a single-slot wake signal. Raising it while a wake is already
// pending is a no-op, so any number of causes between two consumptions
// collapse into one wake-up. The consumer's contract is "go re-check the
// shared flags", never "replay N occurrences", which is why no count is
// kept.
type Event struct {
	ch chan struct{}
}

func NewEvent() *Event {
	return &Event{ch: make(chan struct{}, 1)}
}

// Raise signals the event without blocking.
func (e *Event) Raise() {
	select {
	case e.ch <- struct{}{}:
	default:
	}
}

// C returns the wake channel. A receive consumes the pending signal.
func (e *Event) C() <-chan struct{} {
	return e.ch
}
