package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/growthmap/internal/motion"
	"github.com/alexanderramin/growthmap/internal/notify"
	"github.com/charmbracelet/log"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	Profile motion.Profile
	Log     *log.Logger
	Sink    notify.Sink
	Starter LessonStarter

	// Clock for animations; nil means time.Now.
	Clock func() time.Time

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(profile motion.Profile, logger *log.Logger, starter LessonStarter) *SharedState {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SharedState{
		Profile: profile,
		Log:     logger,
		Sink:    notify.Dispatcher{},
		Starter: starter,
	}
}

// Now returns the current animation time.
func (s *SharedState) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
