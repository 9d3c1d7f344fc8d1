package stream

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/ledtween/tween"
)

// TweenStatus is a snapshot of one running tween.
type TweenStatus struct {
	Keys     []string `json:"keys"`
	Targets  int      `json:"targets"`
	Duration float64  `json:"durationMs"`
	Progress float64  `json:"progress"`
	Running  bool     `json:"running"`
	Paused   bool     `json:"paused"`
	Looping  bool     `json:"looping"`
}

// Controller that manages tweens over a set of layers and renders frames.
// It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	log        zerolog.Logger
	manager    *tween.Manager
	layers     []Layer
	byName     map[string]Layer
	background colorful.Color
	numPixels  int

	runtimeMs int64
	started   bool
}

// NewController creates an instance of a Controller from config, building its
// layers and scheduling its tweens.
func NewController(config Config, logger zerolog.Logger) (*Controller, error) {
	c := new(Controller)
	c.log = logger
	c.manager = tween.NewManager(nil, logger)
	c.byName = make(map[string]Layer)
	c.numPixels = config.Pixels
	if c.numPixels <= 0 {
		c.numPixels = DefaultPixels
	}

	var err error
	if c.background, err = colorful.Hex(config.Background); err != nil {
		return nil, fmt.Errorf("background %q: %w", config.Background, err)
	}

	for _, lc := range config.Layers {
		var l Layer
		switch lc.Kind {
		case "strip", "":
			l = NewStrip(lc.Name, lc.Offset, lc.Length, lc.Hue, lc.Chroma, lc.Luminance)
		case "trail":
			g := NewGradientTrail(lc.Name, lc.Offset, lc.Length, lc.Gradient, lc.TrailLength)
			if lc.Chroma > 0 {
				g.Set("chroma", lc.Chroma)
			}
			if lc.Luminance > 0 {
				g.Set("luminance", lc.Luminance)
			}
			l = g
		default:
			return nil, fmt.Errorf("layer %q: unknown kind %q", lc.Name, lc.Kind)
		}
		if err := c.AddLayer(l); err != nil {
			return nil, err
		}
	}

	for i, def := range config.Tweens {
		if _, err := c.AddTween(def); err != nil {
			return nil, fmt.Errorf("tween %d: %w", i, err)
		}
	}

	return c, nil
}

// AddLayer registers a layer. Layers render in the order they are added.
func (c *Controller) AddLayer(l Layer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.byName[l.Name()]; dup {
		return fmt.Errorf("duplicate layer %q", l.Name())
	}
	c.layers = append(c.layers, l)
	c.byName[l.Name()] = l
	return nil
}

// AddTween schedules a tween decoded from YAML. Its targets are layer names.
func (c *Controller) AddTween(def yaml.MapSlice) (*tween.Tween, error) {
	cfg, err := tween.ConfigFromYAML(def)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	targets, err := c.resolveLayers(cfg["targets"])
	if err != nil {
		return nil, err
	}
	cfg["targets"] = targets

	t, err := c.manager.Add(cfg)
	if err != nil {
		return nil, err
	}
	t.EventCallback(tween.OnComplete, c.logComplete, nil, nil)
	return t, nil
}

func (c *Controller) logComplete(args tween.EventArgs) error {
	c.log.Info().Strs("keys", args.Tween.Keys()).Msg("tween finished")
	return nil
}

func (c *Controller) resolveLayers(v interface{}) ([]tween.Target, error) {
	var names []string
	switch n := v.(type) {
	case string:
		names = []string{n}
	case []interface{}:
		for _, item := range n {
			name, ok := item.(string)
			if !ok {
				return nil, &tween.ConfigError{Key: "targets", Reason: fmt.Sprintf("layer name %v is not a string", item)}
			}
			names = append(names, name)
		}
	case nil:
		return nil, &tween.ConfigError{Key: "targets", Reason: "no targets"}
	default:
		return nil, &tween.ConfigError{Key: "targets", Reason: fmt.Sprintf("expected layer names, got %T", v)}
	}

	targets := make([]tween.Target, 0, len(names))
	for _, name := range names {
		l, ok := c.byName[name]
		if !ok {
			return nil, &tween.ConfigError{Key: "targets", Reason: fmt.Sprintf("unknown layer %q", name)}
		}
		targets = append(targets, l)
	}
	return targets, nil
}

// CalculateFrame advances the tweens to runtimeMs and renders the layers.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := int64(0)
	if c.started {
		delta = runtimeMs - c.runtimeMs
	}
	if delta < 0 {
		delta = 0
	}
	c.runtimeMs = runtimeMs
	c.started = true

	if err := c.manager.Update(float64(runtimeMs), float64(delta)); err != nil {
		c.log.Warn().Err(err).Msg("tween update")
	}

	f := NewFrame(c.numPixels)
	f.Fill(c.background)
	for _, l := range c.layers {
		l.Render(f)
	}

	return f
}

// Layer returns the named layer, or nil.
func (c *Controller) Layer(name string) Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byName[name]
}

// Status lists the tweens still scheduled.
func (c *Controller) Status() []TweenStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	tweens := c.manager.Tweens()
	out := make([]TweenStatus, 0, len(tweens))
	for _, t := range tweens {
		out = append(out, TweenStatus{
			Keys:     t.Keys(),
			Targets:  len(t.Targets()),
			Duration: t.TotalDuration(),
			Progress: t.Progress(),
			Running:  t.IsRunning(),
			Paused:   t.IsPaused(),
			Looping:  t.Looping(),
		})
	}
	return out
}

// Pause pauses every scheduled tween.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.manager.Tweens() {
		t.Pause()
	}
}

// Resume resumes every scheduled tween.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.manager.Tweens() {
		t.Resume()
	}
}
