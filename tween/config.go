package tween

import (
	"math"
	"sort"
	"time"

	"github.com/matt-g-everett/ledtween/easing"
)

// Config describes a tween. Reserved keys configure the tween itself; every
// other key, or every key of the "props" map, names a property to animate.
//
// A property value is a number (the end value), a map with a "value" key and
// optional per-stage overrides, or a list of such maps played in order.
// Durations and delays are milliseconds, or frames when useFrames is set;
// time.Duration values and strings such as "1.5s" are also accepted.
type Config map[string]interface{}

const (
	keyTargets         = "targets"
	keyEase            = "ease"
	keyDuration        = "duration"
	keyYoyo            = "yoyo"
	keyRepeat          = "repeat"
	keyLoop            = "loop"
	keyPaused          = "paused"
	keyUseFrames       = "useFrames"
	keyOffset          = "offset"
	keyProps           = "props"
	keyDelay           = "delay"
	keyOnCompleteDelay = "onCompleteDelay"
	keyAutoStart       = "autoStart"
	keyCallbackScope   = "callbackScope"
	keyValue           = "value"
)

// Reserved lists the top-level keys that configure the tween.
var Reserved = []string{
	keyTargets, keyEase, keyDuration, keyYoyo, keyRepeat, keyLoop, keyPaused, keyUseFrames, keyOffset,
}

// settings are the non-property keys read from the top level.
var settings = map[string]bool{
	keyTargets: true, keyEase: true, keyDuration: true, keyYoyo: true, keyRepeat: true,
	keyLoop: true, keyPaused: true, keyUseFrames: true, keyOffset: true, keyProps: true,
	keyDelay: true, keyOnCompleteDelay: true, keyAutoStart: true, keyCallbackScope: true,
}

// defaults are the tween-level values every stage starts from.
type defaults struct {
	ease     easing.Func
	duration float64
	delay    float64
	yoyo     bool
	repeat   int
	loop     bool
}

// properties extracts the animated keys: the entries of "props" in their
// declared order followed by any other top-level keys, sorted by name since
// Go maps carry no order.
func (c Config) properties() ([]property, error) {
	var props []property
	seen := make(map[string]bool)
	if raw, ok := c[keyProps]; ok {
		entries, err := entriesOf(raw)
		if err != nil {
			return nil, &ConfigError{Key: keyProps, Reason: "bad props", Err: err}
		}
		for _, e := range entries {
			if settings[e.key] {
				return nil, configErrorf(e.key, "property name collides with a reserved key")
			}
			props = append(props, e)
			seen[e.key] = true
		}
	}

	var direct []property
	for key, value := range c {
		if settings[key] {
			if !opaque[key] && isPropertyShape(value) {
				return nil, configErrorf(key, "property name collides with a reserved key")
			}
			continue
		}
		if seen[key] {
			return nil, configErrorf(key, "property declared twice")
		}
		direct = append(direct, property{key, value})
	}
	sort.Slice(direct, func(i, j int) bool { return direct[i].key < direct[j].key })

	return append(props, direct...), nil
}

// opaque settings may hold lists or maps without being mistaken for properties.
var opaque = map[string]bool{keyTargets: true, keyProps: true, keyCallbackScope: true}

func isPropertyShape(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []map[string]interface{}, Props:
		return true
	}
	_, err := fieldsOf(v)
	return err == nil
}

// build normalises the config into tracks, applying the tween defaults.
func (c Config) build(d defaults, reg *easing.Registry) ([]*Track, error) {
	props, err := c.properties()
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, configErrorf("", "no properties to animate")
	}

	tracks := make([]*Track, 0, len(props))
	for _, p := range props {
		queue, err := buildQueue(p.key, p.value, d, reg)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, newTrack(p.key, queue))
	}
	return tracks, nil
}

func buildQueue(key string, value interface{}, d defaults, reg *easing.Registry) ([]*Stage, error) {
	if end, ok := toFloat(value); ok {
		return []*Stage{stageFromDefaults(end, d)}, nil
	}

	var items []interface{}
	switch list := value.(type) {
	case []interface{}:
		items = list
	case []map[string]interface{}:
		for _, m := range list {
			items = append(items, m)
		}
	default:
		fields, err := fieldsOf(value)
		if err != nil {
			return nil, configErrorf(key, "value must be a number, an object or a list of objects, got %T", value)
		}
		s, err := stageFromFields(key, fields, d, reg)
		if err != nil {
			return nil, err
		}
		return []*Stage{s}, nil
	}

	if len(items) == 0 {
		return nil, configErrorf(key, "empty stage list")
	}
	queue := make([]*Stage, 0, len(items))
	for i, item := range items {
		fields, err := fieldsOf(item)
		if err != nil {
			return nil, configErrorf(key, "stage %d must be an object, got %T", i, item)
		}
		// each entry starts from the tween defaults, not the previous entry
		s, err := stageFromFields(key, fields, d, reg)
		if err != nil {
			return nil, err
		}
		queue = append(queue, s)
	}
	return queue, nil
}

func stageFromDefaults(end float64, d defaults) *Stage {
	repeat := d.repeat
	if d.loop {
		repeat = -1
	}
	return newStage(end, d.duration, d.delay, d.ease, d.yoyo, repeat)
}

func stageFromFields(key string, fields map[string]interface{}, d defaults, reg *easing.Registry) (*Stage, error) {
	raw, ok := fields[keyValue]
	if !ok {
		return nil, configErrorf(key, "stage has no value")
	}
	end, ok := toFloat(raw)
	if !ok {
		return nil, configErrorf(key, "stage value must be a number, got %T", raw)
	}

	fn, err := resolveEase(key, fields[keyEase], d.ease, reg)
	if err != nil {
		return nil, err
	}
	duration, err := resolveDuration(key, fields[keyDuration], d.duration)
	if err != nil {
		return nil, err
	}
	delay, err := resolveDuration(key, fields[keyDelay], d.delay)
	if err != nil {
		return nil, err
	}
	yoyo, err := resolveBool(key, fields[keyYoyo], d.yoyo)
	if err != nil {
		return nil, err
	}
	defRepeat := d.repeat
	if d.loop {
		defRepeat = -1
	}
	repeat, err := resolveInt(key, fields[keyRepeat], defRepeat)
	if err != nil {
		return nil, err
	}
	if raw, ok := fields[keyLoop]; ok {
		loop, err := resolveBool(key, raw, false)
		if err != nil {
			return nil, err
		}
		switch {
		case loop:
			repeat = -1
		case fields[keyRepeat] == nil && repeat == -1:
			repeat = 0
		}
	}

	return newStage(end, duration, delay, fn, yoyo, repeat), nil
}

// readDefaults resolves the tween-level defaults.
func (c Config) readDefaults(reg *easing.Registry) (defaults, error) {
	var d defaults
	var err error
	if d.ease, err = resolveEase(keyEase, c[keyEase], nil, reg); err != nil {
		return d, err
	}
	if d.duration, err = resolveDuration(keyDuration, c[keyDuration], 1000); err != nil {
		return d, err
	}
	if d.delay, err = resolveDuration(keyDelay, c[keyDelay], 0); err != nil {
		return d, err
	}
	if d.yoyo, err = resolveBool(keyYoyo, c[keyYoyo], false); err != nil {
		return d, err
	}
	if d.repeat, err = resolveInt(keyRepeat, c[keyRepeat], 0); err != nil {
		return d, err
	}
	if d.loop, err = resolveBool(keyLoop, c[keyLoop], false); err != nil {
		return d, err
	}
	if d.repeat == -1 {
		d.loop = true
	}
	return d, nil
}

// resolveEase picks the stage ease, falling back to def, then to Power0.
func resolveEase(key string, v interface{}, def easing.Func, reg *easing.Registry) (easing.Func, error) {
	switch e := v.(type) {
	case nil:
		if def != nil {
			return def, nil
		}
		v = "Power0"
	case easing.Func:
		return e, nil
	case func(float64) float64:
		return e, nil
	}
	name, ok := v.(string)
	if !ok {
		return nil, configErrorf(key, "ease must be a name or a function, got %T", v)
	}
	fn, err := reg.Lookup(name)
	if err != nil {
		return nil, &ConfigError{Key: key, Reason: "bad ease", Err: err}
	}
	return fn, nil
}

// resolveDuration converts a duration field to milliseconds.
func resolveDuration(key string, v interface{}, def float64) (float64, error) {
	switch d := v.(type) {
	case nil:
		return def, nil
	case time.Duration:
		return float64(d) / float64(time.Millisecond), nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: "bad duration", Err: err}
		}
		return float64(parsed) / float64(time.Millisecond), nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, configErrorf(key, "duration must be a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, configErrorf(key, "duration must be finite, got %v", f)
	}
	return f, nil
}

func resolveBool(key string, v interface{}, def bool) (bool, error) {
	if v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, configErrorf(key, "expected a boolean, got %T", v)
	}
	return b, nil
}

func resolveInt(key string, v interface{}, def int) (int, error) {
	if v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return 0, configErrorf(key, "expected an integer, got %v", v)
	}
	if f < -1 {
		return 0, configErrorf(key, "must be -1 or more, got %v", f)
	}
	return int(f), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
