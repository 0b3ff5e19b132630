package motion

import "time"

// Tween interpolates a single value from From to To over Duration.
// A tween that was never started reports From.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     Easing

	start   time.Time
	running bool
}

// NewTween creates a stopped tween. A nil ease means Linear.
func NewTween(from, to float64, d time.Duration, ease Easing) Tween {
	if ease == nil {
		ease = Linear
	}
	return Tween{From: from, To: to, Duration: d, Ease: ease}
}

// Start (re)starts the tween at now.
func (t *Tween) Start(now time.Time) {
	t.start = now
	t.running = true
}

// Finish jumps to the final value.
func (t *Tween) Finish() {
	t.running = true
	t.start = time.Time{}
}

// Value returns the interpolated value at now.
func (t Tween) Value(now time.Time) float64 {
	if !t.running {
		return t.From
	}
	if t.start.IsZero() {
		return t.To
	}
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return lerp(t.From, t.To, ease(progress(now.Sub(t.start), t.Duration)))
}

// Active reports whether the tween is still moving at now.
func (t Tween) Active(now time.Time) bool {
	if !t.running || t.start.IsZero() {
		return false
	}
	return now.Sub(t.start) < t.Duration
}
