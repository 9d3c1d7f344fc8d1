package tween

// A Track drives one property through its queue of stages.
type Track struct {
	key           string
	queue         []*Stage
	current       int
	running       bool
	complete      bool
	totalDuration float64

	// origin is the value the first stage departed from, used by Restart.
	origin   float64
	captured bool
}

func newTrack(key string, queue []*Stage) *Track {
	tr := new(Track)
	tr.key = key
	tr.queue = queue
	tr.running = true
	for _, s := range queue {
		tr.totalDuration += s.duration
	}
	return tr
}

func (tr *Track) Key() string { return tr.key }

// Current is the index of the active stage.
func (tr *Track) Current() int { return tr.current }

func (tr *Track) Len() int              { return len(tr.queue) }
func (tr *Track) Stage(i int) *Stage    { return tr.queue[i] }
func (tr *Track) IsRunning() bool       { return tr.running }
func (tr *Track) IsComplete() bool      { return tr.complete }
func (tr *Track) TotalDuration() float64 { return tr.totalDuration }

// position is the time spent in the queue, ignoring replays.
func (tr *Track) position() float64 {
	if tr.complete {
		return tr.totalDuration
	}
	p := 0.0
	for i := 0; i < tr.current; i++ {
		p += tr.queue[i].duration
	}
	return p + tr.queue[tr.current].elapsed
}

// update advances the track by delta and writes the value to every target.
// onRepeat is invoked after a stage is rearmed for a replay.
func (tr *Track) update(delta float64, targets []Target, onRepeat func(key string) error) error {
	for tr.running {
		s := tr.queue[tr.current]
		if !s.active {
			tr.activate(s, targets)
		}

		delta = s.consumeDelay(delta)
		if s.waiting() {
			return nil
		}

		overshoot := s.advance(delta)
		broadcast(targets, tr.key, s.value())
		if !s.done() {
			return nil
		}

		switch {
		case s.yoyo && !s.backward:
			s.backward = true
			s.rearm()
			return nil
		case s.remaining != 0:
			if s.remaining > 0 {
				s.remaining--
			}
			s.backward = false
			s.rearm()
			if onRepeat != nil {
				return onRepeat(tr.key)
			}
			return nil
		}

		if tr.current == len(tr.queue)-1 {
			tr.complete = true
			tr.running = false
			return nil
		}

		// Carry the overshoot into the next stage so coarse ticks lose no time.
		tr.current++
		tr.activate(tr.queue[tr.current], targets)
		if overshoot <= 0 {
			return nil
		}
		delta = overshoot
	}
	return nil
}

func (tr *Track) activate(s *Stage, targets []Target) {
	v := read(targets, tr.key)
	if tr.current == 0 && !tr.captured {
		tr.origin = v
		tr.captured = true
	}
	s.activate(v)
}

// reset rewinds the track and puts the property back where it started.
func (tr *Track) reset(targets []Target) {
	if tr.captured {
		broadcast(targets, tr.key, tr.origin)
	}
	for _, s := range tr.queue {
		s.reset()
	}
	tr.current = 0
	tr.running = true
	tr.complete = false
	tr.captured = false
}

// read returns the property from the first target that has it.
func read(targets []Target, key string) float64 {
	for _, target := range targets {
		if v, ok := target.Get(key); ok {
			return v
		}
	}
	return 0
}

func broadcast(targets []Target, key string, v float64) {
	for _, target := range targets {
		target.Set(key, v)
	}
}
