// Package motion provides the small animation primitives the lesson cards
// use: timed tweens, keyframe sequences, a looping pulse and a spring.
//
// Time-based primitives are evaluated against a caller-supplied clock so
// that rendering stays a pure function of (state, now). The spring is
// frame-stepped, matching how harmonica integrates.
package motion

import "time"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// EaseInOut is a quadratic ease-in-out curve.
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - (-2*t+2)*(-2*t+2)/2
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(d))
}
