package replay

// Poster queues work on the goroutine that owns a Session.
// schedule.Loop satisfies it.
type Poster interface {
	Post(fn func()) bool
}

// Controls forwards user input from other goroutines onto the session's
// loop without waiting. Input posted after the loop closed is dropped.
type Controls struct {
	poster  Poster
	session *Session
}

// NewControls returns controls for s that post through p.
func NewControls(p Poster, s *Session) *Controls {
	return &Controls{poster: p, session: s}
}

// TogglePlay starts or pauses playback.
func (c *Controls) TogglePlay() {
	c.post("toggle", c.session.TogglePlay)
}

// Slide submits a scrub slider value.
func (c *Controls) Slide(fraction float64) {
	c.post("slide", func() { c.session.Slide(fraction) })
}

// SeekIndex moves to a record.
func (c *Controls) SeekIndex(index int) {
	c.post("seek", func() { c.session.SeekIndex(index) })
}

func (c *Controls) post(action string, fn func()) {
	if !c.poster.Post(fn) {
		c.session.logger.Debug("input dropped, loop closed", "action", action)
	}
}
