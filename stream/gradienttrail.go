package stream

import (
	"math"
)

// A GradientTrail is a Layer that lays a gradient along a run of pixels,
// repeating every trailLength pixels. Tweening "position" scrolls it;
// "chroma" and "luminance" set the colour strength.
type GradientTrail struct {
	name        string
	offset      int
	length      int
	gradient    GradientTable
	trailLength int

	position  float64
	chroma    float64
	luminance float64
}

// NewGradientTrail creates an instance of a GradientTrail object.
func NewGradientTrail(name string, offset, length int, gradient GradientTable, trailLength int) *GradientTrail {
	g := new(GradientTrail)
	g.name = name
	g.offset = offset
	g.length = length
	g.gradient = gradient
	if len(g.gradient) == 0 {
		g.gradient = Rainbow
	}
	g.trailLength = trailLength
	if g.trailLength <= 0 {
		g.trailLength = 1
	}
	g.chroma = 1.0
	g.luminance = 0.05

	return g
}

func (g *GradientTrail) Name() string { return g.name }

// Get implements tween.Target.
func (g *GradientTrail) Get(key string) (float64, bool) {
	switch key {
	case "position":
		return g.position, true
	case "chroma":
		return g.chroma, true
	case "luminance":
		return g.luminance, true
	}
	return 0, false
}

// Set implements tween.Target.
func (g *GradientTrail) Set(key string, v float64) {
	switch key {
	case "position":
		g.position = v
	case "chroma":
		g.chroma = v
	case "luminance":
		g.luminance = v
	}
}

// Render paints the trail onto f.
func (g *GradientTrail) Render(f *Frame) {
	trail := float64(g.trailLength)
	for i := 0; i < g.length; i++ {
		t := math.Mod(float64(i)-g.position, trail)
		if t < 0 {
			t += trail
		}
		c := g.gradient.GetColor(t/trail, g.chroma, g.luminance)
		f.Blend(g.offset+i, c.Clamped(), 1)
	}
}
