package motion

import "time"

// Pulse loops Low -> High -> Low for as long as it runs.
type Pulse struct {
	Low  float64
	High float64
	Half time.Duration
	Ease Easing

	start   time.Time
	running bool
}

// NewPulse returns the gentle 3s scale pulse of the active lesson.
func NewPulse() Pulse {
	return Pulse{Low: 1.0, High: 1.05, Half: 1500 * time.Millisecond, Ease: EaseInOut}
}

// Start begins the loop at now. Starting a running pulse is a no-op.
func (p *Pulse) Start(now time.Time) {
	if p.running {
		return
	}
	p.start = now
	p.running = true
}

// Stop cancels the loop; Value falls back to Low.
func (p *Pulse) Stop() {
	p.running = false
}

// Running reports whether the loop is scheduled.
func (p Pulse) Running() bool { return p.running }

// Value returns the loop value at now.
func (p Pulse) Value(now time.Time) float64 {
	if !p.running || p.Half <= 0 {
		return p.Low
	}
	ease := p.Ease
	if ease == nil {
		ease = Linear
	}
	phase := now.Sub(p.start) % (2 * p.Half)
	if phase < 0 {
		phase = 0
	}
	if phase < p.Half {
		return lerp(p.Low, p.High, ease(progress(phase, p.Half)))
	}
	return lerp(p.High, p.Low, ease(progress(phase-p.Half, p.Half)))
}
