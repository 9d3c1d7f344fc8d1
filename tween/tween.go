package tween

import (
	"github.com/matt-g-everett/ledtween/easing"
)

// A Tween animates properties on one or more targets. Each property has a
// Track holding a queue of stages that play in order; every tick the value of
// each running track is written to all targets.
//
// 	tw, err := tween.New(tween.Config{
// 		"targets":  strip,
// 		"duration": 2000,
// 		"ease":     "Sine.easeInOut",
// 		"props": tween.Props{
// 			{Key: "hue", Value: 240},
// 			{Key: "luminance", Value: []interface{}{
// 				map[string]interface{}{"value": 0.4},
// 				map[string]interface{}{"value": 0.05, "duration": 4000},
// 			}},
// 		},
// 	})
//
// A Tween is not safe for concurrent use; its owner drives it with Update.
type Tween struct {
	targets []Target
	tracks  []*Track
	byKey   map[string]*Track

	offset          float64
	onCompleteDelay float64
	useFrames       bool
	autoStart       bool

	running  bool
	paused   bool
	started  bool
	complete bool
	holding  bool
	hold     float64
	silent   bool

	progress      float64
	totalDuration float64

	callbacks     [numEvents]callback
	callbackScope interface{}
}

// New builds a Tween using the default ease registry.
func New(cfg Config) (*Tween, error) {
	return NewWithRegistry(cfg, easing.Default)
}

// NewWithRegistry builds a Tween, resolving ease names in reg. Any problem
// with the configuration is returned as a *ConfigError.
func NewWithRegistry(cfg Config, reg *easing.Registry) (*Tween, error) {
	targets, err := resolveTargets(cfg[keyTargets])
	if err != nil {
		return nil, err
	}
	d, err := cfg.readDefaults(reg)
	if err != nil {
		return nil, err
	}
	tracks, err := cfg.build(d, reg)
	if err != nil {
		return nil, err
	}

	t := new(Tween)
	t.targets = targets
	t.tracks = tracks
	t.byKey = make(map[string]*Track, len(tracks))
	for _, tr := range tracks {
		t.byKey[tr.key] = tr
		t.totalDuration += tr.totalDuration
	}

	if t.offset, err = resolveDuration(keyOffset, cfg[keyOffset], 0); err != nil {
		return nil, err
	}
	if t.onCompleteDelay, err = resolveDuration(keyOnCompleteDelay, cfg[keyOnCompleteDelay], 0); err != nil {
		return nil, err
	}
	if t.paused, err = resolveBool(keyPaused, cfg[keyPaused], false); err != nil {
		return nil, err
	}
	if t.useFrames, err = resolveBool(keyUseFrames, cfg[keyUseFrames], false); err != nil {
		return nil, err
	}
	if t.autoStart, err = resolveBool(keyAutoStart, cfg[keyAutoStart], true); err != nil {
		return nil, err
	}
	t.running = t.autoStart
	t.callbackScope = cfg[keyCallbackScope]

	return t, nil
}

// Update advances every running track by delta, which is milliseconds or
// frames depending on UseFrames. It does nothing while stopped or paused.
// Errors come only from callbacks.
func (t *Tween) Update(timestamp, delta float64) error {
	if !t.running || t.paused {
		return nil
	}
	if delta < 0 {
		delta = 0
	}

	if !t.started {
		t.started = true
		if err := t.fire(OnStart, ""); err != nil {
			return err
		}
	}

	if t.holding {
		t.hold -= delta
		if t.hold > 0 {
			return nil
		}
		return t.finish()
	}

	active := false
	for _, tr := range t.tracks {
		if !tr.running {
			continue
		}
		active = true
		if err := tr.update(delta, t.targets, t.repeated); err != nil {
			return err
		}
	}
	t.progress = t.measure()

	if active {
		if err := t.fire(OnUpdate, ""); err != nil {
			return err
		}
	}

	if t.silent || t.tracksRunning() {
		return nil
	}
	if t.onCompleteDelay > 0 {
		t.holding = true
		t.hold = t.onCompleteDelay
		return nil
	}
	return t.finish()
}

func (t *Tween) repeated(key string) error {
	return t.fire(OnRepeat, key)
}

func (t *Tween) finish() error {
	t.holding = false
	t.running = false
	t.complete = true
	return t.fire(OnComplete, "")
}

func (t *Tween) tracksRunning() bool {
	for _, tr := range t.tracks {
		if tr.running {
			return true
		}
	}
	return false
}

func (t *Tween) measure() float64 {
	if t.totalDuration <= 0 {
		return 0
	}
	pos := 0.0
	for _, tr := range t.tracks {
		pos += tr.position()
	}
	p := pos / t.totalDuration
	if p > 1 {
		p = 1
	}
	return p
}

func (t *Tween) fire(ev Event, key string) error {
	if t.silent {
		return nil
	}
	cb := t.callbacks[ev]
	if cb.fn == nil {
		return nil
	}
	scope := cb.scope
	if scope == nil {
		scope = t.callbackScope
	}
	return cb.fn(EventArgs{Type: ev, Tween: t, Key: key, Scope: scope, Params: cb.params})
}

// EventCallback registers fn for ev, replacing any earlier registration. A nil
// scope falls back to the callbackScope from the config. Passing a nil fn
// clears the slot.
func (t *Tween) EventCallback(ev Event, fn Callback, params []interface{}, scope interface{}) *Tween {
	if ev < 0 || ev >= numEvents {
		return t
	}
	t.callbacks[ev] = callback{fn: fn, params: params, scope: scope}
	return t
}

// Play starts a stopped tween, or restarts one that has completed.
func (t *Tween) Play() {
	if t.complete {
		t.Restart()
		return
	}
	t.running = true
	t.paused = false
}

// Pause freezes the tween; no time accumulates until Resume.
func (t *Tween) Pause() { t.paused = true }

func (t *Tween) Resume() { t.paused = false }

// Stop halts the tween where it is. Targets keep their current values.
func (t *Tween) Stop() { t.running = false }

// Restart rewinds every track, putting each property back to the value it
// had when the tween first touched it, and starts playing again.
func (t *Tween) Restart() {
	for _, tr := range t.tracks {
		tr.reset(t.targets)
	}
	t.started = false
	t.complete = false
	t.holding = false
	t.hold = 0
	t.progress = 0
	t.running = true
	t.paused = false
}

// Seek rewinds and fast-forwards by position without firing callbacks. A
// stopped tween stays stopped. Completion, if reached, is reported by the
// next Update.
func (t *Tween) Seek(position float64) {
	started, paused, running := t.started, t.paused, t.running
	t.Restart()
	t.silent = true
	_ = t.Update(0, position)
	t.silent = false
	t.started = started
	t.paused = paused
	t.running = running
}

// Progress is the aggregate position across all tracks in [0,1], ignoring
// replays.
func (t *Tween) Progress() float64 { return t.progress }

// TotalDuration sums every track's stage durations.
func (t *Tween) TotalDuration() float64 { return t.totalDuration }

func (t *Tween) Targets() []Target { return t.targets }

// Keys lists the animated properties in track order.
func (t *Tween) Keys() []string {
	keys := make([]string, len(t.tracks))
	for i, tr := range t.tracks {
		keys[i] = tr.key
	}
	return keys
}

// Track returns the track for key, or nil.
func (t *Tween) Track(key string) *Track { return t.byKey[key] }

func (t *Tween) IsRunning() bool  { return t.running }
func (t *Tween) IsPaused() bool   { return t.paused }
func (t *Tween) IsComplete() bool { return t.complete }
func (t *Tween) UseFrames() bool  { return t.useFrames }

// Offset is the start offset used when the tween is placed on a timeline.
func (t *Tween) Offset() float64 { return t.offset }

// Looping reports whether any stage repeats forever.
func (t *Tween) Looping() bool {
	for _, tr := range t.tracks {
		for _, s := range tr.queue {
			if s.repeat == -1 {
				return true
			}
		}
	}
	return false
}
