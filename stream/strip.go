package stream

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// A Strip is a Layer that lights a run of pixels with a single HCL colour.
// Animatable properties: hue, chroma, luminance, fill (lit fraction of the
// run, from its start) and opacity.
type Strip struct {
	name   string
	offset int
	length int

	hue       float64
	chroma    float64
	luminance float64
	fill      float64
	opacity   float64
}

// NewStrip creates a fully lit, opaque Strip.
func NewStrip(name string, offset, length int, hue, chroma, luminance float64) *Strip {
	s := new(Strip)
	s.name = name
	s.offset = offset
	s.length = length
	s.hue = hue
	s.chroma = chroma
	s.luminance = luminance
	s.fill = 1
	s.opacity = 1
	return s
}

func (s *Strip) Name() string { return s.name }

func (s *Strip) field(key string) *float64 {
	switch key {
	case "hue":
		return &s.hue
	case "chroma":
		return &s.chroma
	case "luminance":
		return &s.luminance
	case "fill":
		return &s.fill
	case "opacity":
		return &s.opacity
	}
	return nil
}

// Get implements tween.Target.
func (s *Strip) Get(key string) (float64, bool) {
	if p := s.field(key); p != nil {
		return *p, true
	}
	return 0, false
}

// Set implements tween.Target.
func (s *Strip) Set(key string, v float64) {
	if p := s.field(key); p != nil {
		*p = v
	}
}

// Colour is the strip's current colour.
func (s *Strip) Colour() colorful.Color {
	return colorful.Hcl(math.Mod(s.hue, 360), s.chroma, s.luminance).Clamped()
}

// Render paints the lit part of the strip onto f.
func (s *Strip) Render(f *Frame) {
	fill := math.Max(0, math.Min(1, s.fill))
	lit := int(math.Round(fill * float64(s.length)))
	c := s.Colour()
	for i := s.offset; i < s.offset+lit; i++ {
		f.Blend(i, c, s.opacity)
	}
}
