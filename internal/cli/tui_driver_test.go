package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/motion"
	"github.com/alexanderramin/growthmap/internal/notify"
	"github.com/alexanderramin/growthmap/internal/teatest"
	"github.com/charmbracelet/x/ansi"
)

// fakeClock is a manually advanced animation clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestState returns shared state on a fake clock that records
// notification requests instead of showing toasts.
func newTestState(clock *fakeClock) (*SharedState, *notify.Recorder) {
	rec := &notify.Recorder{}
	state := newSharedState(motion.ProfileFor("full"), nil, nil)
	state.Clock = clock.Now
	state.Sink = rec
	return state, rec
}

// TestDriver wraps teatest.Driver with growth-map-specific inspection
// methods. It provides access to appModel internals (view stack, map
// selection, toasts) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	Clock *fakeClock
	State *SharedState
}

type driverOption func(*SharedState, **domain.Lesson)

// withPage opens the lesson page above the map, as `growthmap show` does.
func withPage(l domain.Lesson) driverOption {
	return func(_ *SharedState, page **domain.Lesson) { *page = &l }
}

func withStarter(s LessonStarter) driverOption {
	return func(state *SharedState, _ **domain.Lesson) { state.Starter = s }
}

// NewTestDriver creates a TestDriver showing lessons at 100x40 with the
// production toast dispatcher, and drains Init().
func NewTestDriver(t *testing.T, lessons []domain.Lesson, opts ...driverOption) *TestDriver {
	t.Helper()

	clock := newFakeClock()
	state, _ := newTestState(clock)
	state.Sink = notify.Dispatcher{}
	var page *domain.Lesson
	for _, opt := range opts {
		opt(state, &page)
	}

	m := newAppModel(state, lessons, page, nil)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	d.DrainInit()

	return &TestDriver{Driver: d, Clock: clock, State: state}
}

// ── Growth-map-specific inspection ───────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	var ids []ViewID
	for _, v := range d.appModel().viewStack {
		ids = append(ids, v.ID())
	}
	return ids
}

// Map returns the growth map at the bottom of the stack.
func (d *TestDriver) Map() *growthMapView {
	m := d.appModel()
	return m.growthMap()
}

// Toast returns the toast shown at pos.
func (d *TestDriver) Toast(pos notify.Position) (notify.Toast, bool) {
	return d.appModel().toaster.Visible(pos)
}

// Plain returns the rendered screen without ANSI styling.
func (d *TestDriver) Plain() string {
	return ansi.Strip(d.View())
}

// Frames advances the clock by step and delivers a frame, n times.
func (d *TestDriver) Frames(n int, step time.Duration) {
	d.T.Helper()
	for i := 0; i < n; i++ {
		d.Clock.Advance(step)
		d.Send(frameMsg{})
	}
}

// TapCard moves the cursor to card i and presses Enter.
func (d *TestDriver) TapCard(i int) {
	d.T.Helper()
	d.PressKey('g')
	for j := 0; j < i; j++ {
		d.PressDown()
	}
	d.PressEnter()
}
