package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const settleEpsilon = 0.001

// Spring drives a value toward Target with a damped harmonic oscillator.
// It advances one fixed frame per Step.
type Spring struct {
	Pos    float64
	Vel    float64
	Target float64

	spring  harmonica.Spring
	settled bool
}

// NewSpring creates a spring from tension/friction parameters (unit mass).
// Angular frequency is sqrt(tension); the damping ratio is
// friction / (2*sqrt(tension)), so 50/7 gives a moderate bounce.
func NewSpring(fps int, from, to, tension, friction float64) Spring {
	if fps <= 0 {
		fps = 60
	}
	omega := math.Sqrt(math.Max(tension, 0.0001))
	zeta := friction / (2 * omega)
	return Spring{
		Pos:    from,
		Target: to,
		spring: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta),
	}
}

// Step advances the spring by one frame.
func (s *Spring) Step() {
	if s.settled {
		return
	}
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, s.Target)
	if math.Abs(s.Pos-s.Target) < settleEpsilon && math.Abs(s.Vel) < settleEpsilon {
		s.Pos = s.Target
		s.Vel = 0
		s.settled = true
	}
}

// Snap jumps to the target.
func (s *Spring) Snap() {
	s.Pos = s.Target
	s.Vel = 0
	s.settled = true
}

// Settled reports whether the spring has come to rest.
func (s Spring) Settled() bool { return s.settled }

// Value returns the current position.
func (s Spring) Value() float64 { return s.Pos }

// Profile bundles frame rate and spring parameters for a motion level.
type Profile struct {
	Level    string
	FPS      int
	Tension  float64
	Friction float64
}

// ProfileFor returns the profile for "full" or "reduced"; anything else is full.
func ProfileFor(level string) Profile {
	if level == "reduced" {
		return Profile{Level: "reduced", FPS: 30, Tension: 50, Friction: 14}
	}
	return Profile{Level: "full", FPS: 60, Tension: 50, Friction: 7}
}

// FrameInterval is the delay between animation frames.
func (p Profile) FrameInterval() time.Duration {
	fps := p.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
