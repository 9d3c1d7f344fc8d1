package tween

import (
	"reflect"
)

// A Target is an object whose numeric properties are animated. The tween
// borrows targets and never copies them.
type Target interface {
	// Get returns the current value of key and whether the target has it.
	Get(key string) (float64, bool)
	// Set writes v to key.
	Set(key string, v float64)
}

// Values is a Target backed by a map.
type Values map[string]float64

// Get implements Target.
func (v Values) Get(key string) (float64, bool) {
	x, ok := v[key]
	return x, ok
}

// Set implements Target.
func (v Values) Set(key string, x float64) {
	v[key] = x
}

// Fields is a Target that animates float64 variables in place.
type Fields map[string]*float64

// Get implements Target.
func (f Fields) Get(key string) (float64, bool) {
	p, ok := f[key]
	if !ok || p == nil {
		return 0, false
	}
	return *p, true
}

// Set implements Target. Unknown keys are ignored.
func (f Fields) Set(key string, x float64) {
	if p, ok := f[key]; ok && p != nil {
		*p = x
	}
}

// resolveTargets accepts a Target, a slice of targets or a factory returning
// either, and normalises it to a non-empty ordered list without duplicates.
func resolveTargets(v interface{}) ([]Target, error) {
	switch fn := v.(type) {
	case func() interface{}:
		v = fn()
	case func() Target:
		v = fn()
	case func() []Target:
		v = fn()
	}

	var list []Target
	switch t := v.(type) {
	case nil:
		return nil, configErrorf(keyTargets, "no targets")
	case Target:
		list = []Target{t}
	case []Target:
		list = t
	case []interface{}:
		list = make([]Target, 0, len(t))
		for i, item := range t {
			target, ok := item.(Target)
			if !ok {
				return nil, configErrorf(keyTargets, "element %d is %T, not a Target", i, item)
			}
			list = append(list, target)
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, configErrorf(keyTargets, "cannot resolve targets from %T", v)
		}
		list = make([]Target, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			target, ok := rv.Index(i).Interface().(Target)
			if !ok {
				return nil, configErrorf(keyTargets, "element %d is %s, not a Target", i, rv.Index(i).Type())
			}
			list = append(list, target)
		}
	}

	out := make([]Target, 0, len(list))
	for _, t := range list {
		if t == nil || containsTarget(out, t) {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, configErrorf(keyTargets, "no targets")
	}

	return out, nil
}

func containsTarget(list []Target, t Target) bool {
	for _, other := range list {
		if sameTarget(other, t) {
			return true
		}
	}
	return false
}

// sameTarget reports identity. Reference kinds compare by address so that
// map-backed targets such as Values can be compared without panicking.
func sameTarget(a, b Target) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return false
}
