package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/notify"
	"github.com/alexanderramin/growthmap/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMap builds a 100x40 growth map on a fake clock with a recording sink.
func newTestMap(t *testing.T, lessons []domain.Lesson) (*growthMapView, *notify.Recorder, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	state, rec := newTestState(clock)
	state.Width, state.Height = 100, 40

	v := newGrowthMapView(state, lessons)
	v.Init()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return v, rec, clock
}

func press(v *growthMapView, l domain.Lesson) tea.Cmd {
	_, cmd := v.Update(lessonPressedMsg{lesson: l})
	return cmd
}

func TestGrowthMap_TapScenario(t *testing.T) {
	lessons := testutil.NewTestLessons(
		domain.LessonDone, domain.LessonActive, domain.LessonLocked, domain.LessonLocked, domain.LessonLocked)
	v, rec, _ := newTestMap(t, lessons)

	// Completed lesson: success toast, no selection.
	press(v, lessons[0])
	require.Len(t, rec.Requests, 1)
	done := rec.Requests[0]
	assert.Equal(t, notify.KindSuccess, done.Kind)
	assert.Equal(t, "✅ Lesson completed", done.Title)
	assert.Equal(t, `Lesson "Lesson 1" is already completed.`, done.Body)
	assert.Equal(t, notify.PositionTop, done.Position)
	assert.Equal(t, 60, done.TopOffset)
	assert.Equal(t, 2*time.Second, done.Duration)
	assert.Nil(t, v.selected)
	assert.False(t, v.detailVisible)

	// Active lesson: selected and detail shown, nothing published.
	press(v, lessons[1])
	require.NotNil(t, v.selected)
	assert.Equal(t, 2, v.selected.ID)
	assert.True(t, v.detailVisible)
	assert.True(t, v.detail.visible)
	assert.Len(t, rec.Requests, 1)

	// Locked lesson: info toast, selection untouched.
	press(v, lessons[2])
	require.Len(t, rec.Requests, 2)
	locked := rec.Requests[1]
	assert.Equal(t, notify.KindInfo, locked.Kind)
	assert.Equal(t, "🔒 Lesson locked", locked.Title)
	assert.Equal(t, `Lesson "Lesson 3" is not available yet. Complete the previous lessons first.`, locked.Body)
	assert.Equal(t, notify.PositionTop, locked.Position)
	assert.Equal(t, 60, locked.TopOffset)
	assert.Equal(t, 3*time.Second, locked.Duration)
	assert.Equal(t, 2, v.selected.ID)

	// Closing clears both halves together.
	v.Update(detailClosedMsg{})
	assert.Nil(t, v.selected)
	assert.False(t, v.detailVisible)
	assert.False(t, v.detail.visible)
	assert.Len(t, rec.Requests, 2)
}

func TestGrowthMap_UnknownStatusIsIgnored(t *testing.T) {
	lessons := []domain.Lesson{testutil.NewTestLesson(1, testutil.WithStatus("beta"))}
	v, rec, _ := newTestMap(t, lessons)

	assert.Nil(t, press(v, lessons[0]))
	assert.Empty(t, rec.Requests)
	assert.Nil(t, v.selected)
	assert.False(t, v.detailVisible)
}

func TestGrowthMap_TapPressesCard(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone, domain.LessonLocked)
	v, _, _ := newTestMap(t, lessons)

	cmd := v.tap(1)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, v.items[1].shake.Plays())
	assert.True(t, v.ticking)

	v.tap(0)
	assert.Equal(t, 0, v.items[0].shake.Plays())

	assert.Nil(t, v.tap(5), "out of range")
	assert.Nil(t, v.tap(-1))
}

func TestGrowthMap_KeyboardTap(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone, domain.LessonActive)
	v, _, _ := newTestMap(t, lessons)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.cursor)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.cursor, "cursor stops at the last card")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, v.cursor)
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 1, v.cursor)
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.cursor)
}

func TestGrowthMap_ModalOwnsKeys(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonActive, domain.LessonLocked)
	v, _, _ := newTestMap(t, lessons)
	press(v, lessons[0])
	require.True(t, v.CapturesInput())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, v.cursor, "map keys are inactive behind the modal")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	v.Update(cmd())
	assert.False(t, v.CapturesInput())
	assert.Nil(t, v.selected)
}

func TestGrowthMap_FramesStopWhenIdle(t *testing.T) {
	v, _, clock := newTestMap(t, testutil.NewTestLessons(domain.LessonDone, domain.LessonLocked))
	require.True(t, v.ticking, "entrance schedules a frame")
	assert.Nil(t, v.ensureTicking(), "only one frame is outstanding")

	var cmd tea.Cmd
	for i := 0; i < 1000; i++ {
		clock.Advance(16 * time.Millisecond)
		_, cmd = v.Update(frameMsg{})
		if cmd == nil {
			break
		}
	}
	assert.Nil(t, cmd)
	assert.False(t, v.ticking)
	assert.False(t, v.animating())

	v.tap(1)
	assert.True(t, v.ticking, "a shake restarts frames")
}

func TestGrowthMap_ActiveLessonKeepsTicking(t *testing.T) {
	v, _, clock := newTestMap(t, testutil.NewTestLessons(domain.LessonActive))
	for i := 0; i < 200; i++ {
		clock.Advance(16 * time.Millisecond)
		_, cmd := v.Update(frameMsg{})
		require.NotNil(t, cmd, "pulse loops while mounted")
	}
}

func TestGrowthMap_SetLessonsReconciles(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone, domain.LessonActive, domain.LessonLocked)
	v, _, clock := newTestMap(t, lessons)
	clock.Advance(300 * time.Millisecond)

	press(v, lessons[1])
	require.NotNil(t, v.selected)

	// Lesson 2 is renamed, lesson 3 becomes active, lesson 4 appears.
	next := []domain.Lesson{
		lessons[0],
		testutil.NewTestLesson(2, testutil.WithTitle("Renamed"), testutil.WithStatus(domain.LessonActive)),
		testutil.NewTestLesson(3, testutil.WithStatus(domain.LessonActive)),
		testutil.NewTestLesson(4),
	}
	v.SetLessons(next)

	require.Len(t, v.items, 4)
	assert.Equal(t, next, v.lessons())
	assert.InDelta(t, 0.5, v.items[0].fade.Value(clock.Now()), 1e-9, "surviving card keeps its entrance")
	assert.Zero(t, v.items[3].fade.Value(clock.Now()), "new card starts its entrance")
	assert.True(t, v.items[2].pulse.Running())

	require.NotNil(t, v.selected)
	assert.Equal(t, "Renamed", v.selected.Title)
	assert.True(t, v.detailVisible)

	// The selected lesson is no longer active: the detail closes.
	next[1] = testutil.NewTestLesson(2, testutil.WithTitle("Renamed"), testutil.WithStatus(domain.LessonLocked))
	v.SetLessons(next)
	assert.Nil(t, v.selected)
	assert.False(t, v.detailVisible)
	assert.Nil(t, v.detail.lesson)
	assert.False(t, v.items[1].pulse.Running())
	assert.NotContains(t, ansi.Strip(v.View()), "Start lesson")

	// Dropping the selected lesson closes the detail.
	press(v, next[2])
	require.NotNil(t, v.selected)
	v.cursor = 3
	v.SetLessons([]domain.Lesson{next[0], next[3]})
	assert.Nil(t, v.selected)
	assert.False(t, v.detailVisible)
	assert.Equal(t, 1, v.cursor, "cursor clamps to the shorter list")
}

func TestGrowthMap_ReloadErrorKeepsLessons(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone)
	v, _, _ := newTestMap(t, lessons)

	v.Update(catalogReloadedMsg{err: errors.New("boom")})
	assert.Equal(t, lessons, v.lessons())

	v.Update(catalogReloadedMsg{lessons: []domain.Lesson{}})
	assert.Empty(t, v.items)
	assert.False(t, v.animating())
	assert.Contains(t, ansi.Strip(v.View()), mapTitle)
}

func TestGrowthMap_MouseHitTest(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone, domain.LessonActive)
	v, _, _ := newTestMap(t, lessons)
	left := cardLeft(100)

	tests := []struct {
		name string
		x, y int
		want int
		ok   bool
	}{
		{"header", left + 1, 1, 0, false},
		{"first card top border", left + 1, headerHeight, 0, true},
		{"first card last row", left + 1, headerHeight + cardHeight - 1, 0, true},
		{"gap", left + 1, headerHeight + cardHeight, 0, false},
		{"second card", left + 10, headerHeight + cardStride + 1, 1, true},
		{"left of card", left - 1, headerHeight + 1, 0, false},
		{"right of card", left + baseCardWidth(100), headerHeight + 1, 0, false},
		{"below list", left + 1, headerHeight + 2*cardStride + 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := v.hitTest(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, i)
		})
	}

	_, cmd := v.Update(tea.MouseMsg{X: left + 10, Y: headerHeight + cardStride + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, v.cursor)

	_, cmd = v.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
}

func TestGrowthMap_KeepsCursorVisible(t *testing.T) {
	lessons := testutil.NewTestLessons(
		domain.LessonDone, domain.LessonActive, domain.LessonLocked, domain.LessonLocked, domain.LessonLocked)
	v, _, _ := newTestMap(t, lessons)
	v.state.Height = 12
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	require.Equal(t, 8, v.vp.Height)

	v.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 4, v.cursor)
	assert.Equal(t, headerHeight+4*cardStride+cardHeight-v.vp.Height, v.vp.YOffset)

	v.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, v.vp.YOffset, "first card brings the header back")
}

func TestGrowthMap_View(t *testing.T) {
	lessons := testutil.NewTestLessons(domain.LessonDone, domain.LessonActive, domain.LessonLocked)
	v, _, _ := newTestMap(t, lessons)

	plain := ansi.Strip(v.View())
	assert.Contains(t, plain, mapTitle)
	assert.Contains(t, plain, mapSubtitle)
	for _, l := range lessons {
		assert.Contains(t, plain, l.Title)
	}

	press(v, lessons[1])
	plain = ansi.Strip(v.View())
	assert.Contains(t, plain, "Start lesson")
	assert.NotContains(t, plain, mapSubtitle, "modal covers the map")
}

func TestLogLessonStart(t *testing.T) {
	clock := newFakeClock()
	state, rec := newTestState(clock)
	l := testutil.NewTestLesson(2)

	assert.Nil(t, logLessonStart(state, lessonStartedMsg{lesson: l}))
	assert.Empty(t, rec.Requests)

	logLessonStart(state, lessonStartedMsg{lesson: l, err: errors.New("no network")})
	req, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, req.Kind)
	assert.Equal(t, "Could not start lesson", req.Title)
	assert.Equal(t, "no network", req.Body)
}
