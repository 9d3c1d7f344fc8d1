package stream

import (
	"github.com/matt-g-everett/ledtween/tween"
)

// An Animation implements a way to render a specific animation.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}

// A Layer is a named tween target that paints itself onto a frame.
type Layer interface {
	tween.Target
	Name() string
	Render(f *Frame)
}
