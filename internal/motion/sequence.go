package motion

import "time"

// Keyframe is one linear segment of a Sequence.
type Keyframe struct {
	To       float64
	Duration time.Duration
}

// Sequence plays keyframes back to back starting from From.
// Restart always begins again at From, discarding any segment in flight.
type Sequence struct {
	From   float64
	Frames []Keyframe

	start   time.Time
	running bool
	plays   int
}

// Shake displacement in points: right, left, right, left, rest.
const (
	ShakeAmplitude = 10.0
	ShakeStep      = 50 * time.Millisecond
)

// NewShake returns the horizontal shake played when a locked lesson is tapped.
func NewShake() Sequence {
	return Sequence{
		From: 0,
		Frames: []Keyframe{
			{To: ShakeAmplitude, Duration: ShakeStep},
			{To: -ShakeAmplitude, Duration: ShakeStep},
			{To: ShakeAmplitude, Duration: ShakeStep},
			{To: -ShakeAmplitude, Duration: ShakeStep},
			{To: 0, Duration: ShakeStep},
		},
	}
}

// Restart starts the sequence from its first keyframe at now.
func (s *Sequence) Restart(now time.Time) {
	s.start = now
	s.running = true
	s.plays++
}

// Plays counts how many times the sequence was (re)started.
func (s Sequence) Plays() int { return s.plays }

// Total is the combined duration of every keyframe.
func (s Sequence) Total() time.Duration {
	var d time.Duration
	for _, f := range s.Frames {
		d += f.Duration
	}
	return d
}

// Active reports whether the sequence is mid-flight at now.
func (s Sequence) Active(now time.Time) bool {
	return s.running && now.Sub(s.start) < s.Total()
}

// Value returns the sequence value at now.
func (s Sequence) Value(now time.Time) float64 {
	if !s.running || len(s.Frames) == 0 {
		return s.From
	}
	elapsed := now.Sub(s.start)
	prev := s.From
	for _, f := range s.Frames {
		if elapsed < f.Duration {
			return lerp(prev, f.To, progress(elapsed, f.Duration))
		}
		elapsed -= f.Duration
		prev = f.To
	}
	return prev
}
