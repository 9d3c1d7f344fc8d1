package easing

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fogleman/ease"
)

// ErrUnknown is returned by Lookup for a name that was never registered.
var ErrUnknown = errors.New("unknown ease")

// A Func maps normalised time in [0,1] to eased progress.
type Func func(t float64) float64

// Registry maps ease names to functions. Names are matched case-insensitively.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := new(Registry)
	r.funcs = make(map[string]Func)
	return r
}

// Register adds or replaces the function for name.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[strings.ToLower(name)] = fn
}

// Lookup resolves name to its function.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn, nil
}

// Names lists every registered name in lower case.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

type family struct {
	in, out, inOut Func
}

// registerFamily registers name (defaulting to the out variant) and its
// .easeIn, .easeOut and .easeInOut forms.
func (r *Registry) registerFamily(name string, f family) {
	r.Register(name, f.out)
	r.Register(name+".easeIn", f.in)
	r.Register(name+".easeOut", f.out)
	r.Register(name+".easeInOut", f.inOut)
}

// NewStandard creates a Registry holding the standard ease names.
func NewStandard() *Registry {
	r := NewRegistry()

	linear := family{ease.Linear, ease.Linear, ease.Linear}
	quad := family{ease.InQuad, ease.OutQuad, ease.InOutQuad}
	cubic := family{ease.InCubic, ease.OutCubic, ease.InOutCubic}
	quart := family{ease.InQuart, ease.OutQuart, ease.InOutQuart}
	quint := family{ease.InQuint, ease.OutQuint, ease.InOutQuint}

	r.registerFamily("Linear", linear)
	r.registerFamily("Power0", linear)
	r.registerFamily("Quad", quad)
	r.registerFamily("Power1", quad)
	r.registerFamily("Cubic", cubic)
	r.registerFamily("Power2", cubic)
	r.registerFamily("Quart", quart)
	r.registerFamily("Power3", quart)
	r.registerFamily("Quint", quint)
	r.registerFamily("Power4", quint)
	r.registerFamily("Sine", family{ease.InSine, ease.OutSine, ease.InOutSine})
	r.registerFamily("Expo", family{ease.InExpo, ease.OutExpo, ease.InOutExpo})
	r.registerFamily("Circ", family{ease.InCirc, ease.OutCirc, ease.InOutCirc})
	r.registerFamily("Elastic", family{ease.InElastic, ease.OutElastic, ease.InOutElastic})
	r.registerFamily("Back", family{ease.InBack, ease.OutBack, ease.InOutBack})
	r.registerFamily("Bounce", family{ease.InBounce, ease.OutBounce, ease.InOutBounce})
	r.registerFamily("Square", family{ease.InSquare, ease.OutSquare, ease.InOutSquare})

	r.Register("Stepped", Stepped(1))
	r.Register("Pulse", Sampled(GenerateLut(ease.InOutQuad, 256)))

	return r
}

// Default is the registry used when none is supplied.
var Default = NewStandard()

// Lookup resolves name in the Default registry.
func Lookup(name string) (Func, error) {
	return Default.Lookup(name)
}
