package tween

import (
	"github.com/quasilyte/gmath"

	"github.com/matt-g-everett/ledtween/easing"
)

// minDuration stands in for zero or negative durations so that a stage
// completes on its first tick without dividing by zero.
const minDuration = 1e-6

// A Stage is one interpolation segment of a property.
type Stage struct {
	end      float64
	duration float64
	delay    float64
	ease     easing.Func
	yoyo     bool
	repeat   int // -1 is infinite

	start     float64
	elapsed   float64
	progress  float64
	wait      float64
	backward  bool
	remaining int
	active    bool
}

func newStage(end, duration, delay float64, fn easing.Func, yoyo bool, repeat int) *Stage {
	if duration <= 0 {
		duration = minDuration
	}
	if delay < 0 {
		delay = 0
	}
	if repeat < -1 {
		repeat = 0
	}
	return &Stage{
		end:       end,
		duration:  duration,
		delay:     delay,
		ease:      fn,
		yoyo:      yoyo,
		repeat:    repeat,
		remaining: repeat,
	}
}

// Start is the value captured when the stage activated.
func (s *Stage) Start() float64 { return s.start }

// End is the target value.
func (s *Stage) End() float64 { return s.end }

// Duration in milliseconds, or frames when the tween uses frames.
func (s *Stage) Duration() float64 { return s.duration }

func (s *Stage) Delay() float64 { return s.delay }
func (s *Stage) Yoyo() bool     { return s.yoyo }

// Repeat is the configured replay count; -1 repeats forever.
func (s *Stage) Repeat() int { return s.repeat }

func (s *Stage) Elapsed() float64 { return s.elapsed }

// Progress is elapsed/duration before easing.
func (s *Stage) Progress() float64 { return s.progress }

// Backward reports whether the stage is on the return leg of a yoyo.
func (s *Stage) Backward() bool { return s.backward }

// activate captures the departure value and arms the first pass.
func (s *Stage) activate(start float64) {
	s.start = start
	s.remaining = s.repeat
	s.backward = false
	s.active = true
	s.rearm()
}

// rearm zeroes the pass and restarts its delay.
func (s *Stage) rearm() {
	s.elapsed = 0
	s.progress = 0
	s.wait = s.delay
}

func (s *Stage) reset() {
	s.rearm()
	s.start = 0
	s.backward = false
	s.remaining = s.repeat
	s.active = false
}

// consumeDelay spends delta on the remaining delay and returns what is left.
func (s *Stage) consumeDelay(delta float64) float64 {
	if s.wait <= 0 {
		return delta
	}
	if delta < s.wait {
		s.wait -= delta
		return 0
	}
	delta -= s.wait
	s.wait = 0
	return delta
}

// waiting reports whether the stage is still inside its delay.
func (s *Stage) waiting() bool {
	return s.wait > 0
}

// advance adds delta to elapsed, clamped to duration, and returns the overshoot.
func (s *Stage) advance(delta float64) float64 {
	if delta < 0 {
		delta = 0
	}
	s.elapsed += delta
	overshoot := 0.0
	if s.elapsed >= s.duration {
		overshoot = s.elapsed - s.duration
		s.elapsed = s.duration
	}
	s.progress = s.elapsed / s.duration
	return overshoot
}

func (s *Stage) done() bool {
	return s.elapsed >= s.duration
}

// value interpolates at the current progress, swapping ends on a yoyo return.
func (s *Stage) value() float64 {
	from, to := s.start, s.end
	if s.backward {
		from, to = to, from
	}
	eased := s.ease(s.progress)
	if eased == 1 {
		return to
	}
	return gmath.Lerp(from, to, eased)
}
