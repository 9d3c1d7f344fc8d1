package easing

import "math"

// GenerateLut samples fn into a table that rises over the first half and
// falls back over the second half.
func GenerateLut(fn Func, length int) []float64 {
	if length < 2 {
		return []float64{0}
	}
	increment := 1.0 / float64(length/2)
	lut := make([]float64, length)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	// odd lengths leave the middle slot at the peak
	if length%2 == 1 {
		lut[length/2] = fn(1)
	}

	return lut
}

// Sampled returns an ease that linearly interpolates across lut.
func Sampled(lut []float64) Func {
	n := len(lut)
	return func(t float64) float64 {
		if n == 1 {
			return lut[0]
		}
		if t <= 0 {
			return lut[0]
		}
		if t >= 1 {
			return lut[n-1]
		}
		pos := t * float64(n-1)
		i := int(math.Floor(pos))
		frac := pos - float64(i)
		return lut[i] + (lut[i+1]-lut[i])*frac
	}
}

// Stepped returns an ease that jumps in the given number of equal steps.
func Stepped(steps int) Func {
	if steps < 1 {
		steps = 1
	}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return (math.Floor(float64(steps)*t) + 1) / float64(steps)
	}
}
