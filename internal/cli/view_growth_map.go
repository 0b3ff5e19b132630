package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/notify"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	mapTitle    = "Growth Map"
	mapSubtitle = "Complete the lessons in order to reach your goal"

	// headerHeight is the title, subtitle and a blank line above the cards.
	headerHeight = 3

	toastTopOffset = 60
)

// frameMsg drives card animations. At most one is outstanding per map.
type frameMsg struct{}

// growthMapView shows the ordered lesson cards and owns the selection.
type growthMapView struct {
	state  *SharedState
	items  []lessonItem
	cursor int
	vp     viewport.Model

	selected      *domain.Lesson
	detailVisible bool
	detail        lessonDetail

	ticking bool
}

func newGrowthMapView(state *SharedState, lessons []domain.Lesson) *growthMapView {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	v := &growthMapView{
		state:  state,
		vp:     vp,
		detail: newLessonDetail(detailOverlay, nil, state.Starter),
	}
	now := state.Now()
	for _, l := range lessons {
		v.items = append(v.items, newLessonItem(l, now, state.Profile))
	}
	return v
}

func (v *growthMapView) ID() ViewID { return ViewGrowthMap }
func (v *growthMapView) Title() string { return mapTitle }

// CapturesInput is true while the lesson modal is open.
func (v *growthMapView) CapturesInput() bool { return v.detailVisible }

func (v *growthMapView) ShortHelp() []key.Binding {
	if v.detailVisible {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start lesson")),
			key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "close")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
	}
}

func (v *growthMapView) Init() tea.Cmd {
	v.refreshContent()
	return v.ensureTicking()
}

func (v *growthMapView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.detail.setSize(msg.Width, v.state.ContentHeight())
		v.refreshContent()
		v.keepCursorVisible()
		return v, nil

	case frameMsg:
		v.ticking = false
		for i := range v.items {
			v.items[i].step()
		}
		v.refreshContent()
		return v, v.ensureTicking()

	case lessonPressedMsg:
		return v, v.dispatch(msg.lesson)

	case detailClosedMsg:
		v.closeDetail()
		return v, nil

	case lessonStartedMsg:
		return v, logLessonStart(v.state, msg)

	case catalogReloadedMsg:
		if msg.err == nil {
			v.SetLessons(msg.lessons)
		}
		return v, v.ensureTicking()

	case tea.KeyMsg:
		if v.detailVisible {
			var cmd tea.Cmd
			v.detail, cmd = v.detail.Update(msg)
			return v, cmd
		}
		return v.updateKeys(msg)

	case tea.MouseMsg:
		if v.detailVisible {
			var cmd tea.Cmd
			v.detail, cmd = v.detail.Update(msg)
			return v, cmd
		}
		return v.updateMouse(msg)
	}
	return v, nil
}

func (v *growthMapView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case "home", "g":
		v.cursor = 0
	case "end", "G":
		v.cursor = max(len(v.items)-1, 0)
	case "pgup":
		v.vp.PageUp()
		return v, nil
	case "pgdown":
		v.vp.PageDown()
		return v, nil
	case "enter", " ":
		return v, v.tap(v.cursor)
	default:
		return v, nil
	}
	v.refreshContent()
	v.keepCursorVisible()
	return v, nil
}

func (v *growthMapView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if i, ok := v.hitTest(msg.X, msg.Y); ok {
			v.cursor = i
			return v, v.tap(i)
		}
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// hitTest maps a content-area cell to the card under it.
func (v *growthMapView) hitTest(x, y int) (int, bool) {
	row := y + v.vp.YOffset - headerHeight
	if row < 0 || row%cardStride >= cardHeight {
		return 0, false
	}
	i := row / cardStride
	if i >= len(v.items) {
		return 0, false
	}
	left := cardLeft(v.width())
	if x < left || x >= left+baseCardWidth(v.width()) {
		return 0, false
	}
	return i, true
}

// tap presses the card at i. Taps are accepted while animations run.
func (v *growthMapView) tap(i int) tea.Cmd {
	if i < 0 || i >= len(v.items) {
		return nil
	}
	press := v.items[i].press(v.state.Now())
	v.refreshContent()
	return tea.Batch(press, v.ensureTicking())
}

// dispatch applies the tap policy for the lesson's status.
func (v *growthMapView) dispatch(l domain.Lesson) tea.Cmd {
	logger := v.state.Log.With("lesson", l.ID, "status", string(l.Status))

	switch l.Status {
	case domain.LessonActive:
		logger.Info("open lesson detail")
		sel := l
		v.selected = &sel
		v.detailVisible = true
		v.detail.setLesson(v.selected)
		v.detail.show()
		return nil

	case domain.LessonLocked:
		logger.Info("locked lesson tapped")
		return v.state.Sink.Notify(notify.Request{
			Kind:      notify.KindInfo,
			Title:     "🔒 Lesson locked",
			Body:      fmt.Sprintf("Lesson %q is not available yet. Complete the previous lessons first.", l.Title),
			Position:  notify.PositionTop,
			TopOffset: toastTopOffset,
			Duration:  3 * time.Second,
		})

	case domain.LessonDone:
		logger.Info("completed lesson tapped")
		return v.state.Sink.Notify(notify.Request{
			Kind:      notify.KindSuccess,
			Title:     "✅ Lesson completed",
			Body:      fmt.Sprintf("Lesson %q is already completed.", l.Title),
			Position:  notify.PositionTop,
			TopOffset: toastTopOffset,
			Duration:  2 * time.Second,
		})

	default:
		logger.Warn("no tap action for lesson status")
		return nil
	}
}

// closeDetail clears the selection and hides the modal together.
func (v *growthMapView) closeDetail() {
	v.selected = nil
	v.detailVisible = false
	v.detail.hide()
	v.detail.setLesson(nil)
}

// SetLessons reconciles the cards with a new lesson list by id. Surviving
// cards keep their animation state; removed cards are unmounted.
func (v *growthMapView) SetLessons(lessons []domain.Lesson) {
	now := v.state.Now()
	existing := make(map[int]lessonItem, len(v.items))
	for _, it := range v.items {
		existing[it.lesson.ID] = it
	}

	items := make([]lessonItem, 0, len(lessons))
	for _, l := range lessons {
		if it, ok := existing[l.ID]; ok {
			it.setLesson(l, now)
			items = append(items, it)
			delete(existing, l.ID)
			continue
		}
		items = append(items, newLessonItem(l, now, v.state.Profile))
	}
	for _, gone := range existing {
		gone.unmount()
	}
	v.items = items

	if v.selected != nil {
		// The detail only ever shows an active lesson.
		if l, ok := domain.FindLesson(lessons, v.selected.ID); ok && l.Status == domain.LessonActive {
			v.selected = &l
			v.detail.setLesson(v.selected)
		} else {
			v.closeDetail()
		}
	}

	v.cursor = min(v.cursor, max(len(v.items)-1, 0))
	v.state.Log.Info("catalog reloaded", "lessons", len(lessons))
	v.refreshContent()
	v.keepCursorVisible()
}

// lessons returns the lessons currently on the map, in order.
func (v *growthMapView) lessons() []domain.Lesson {
	out := make([]domain.Lesson, 0, len(v.items))
	for _, it := range v.items {
		out = append(out, it.lesson)
	}
	return out
}

func (v *growthMapView) animating() bool {
	now := v.state.Now()
	for _, it := range v.items {
		if it.animating(now) {
			return true
		}
	}
	return false
}

// ensureTicking schedules the next frame when something animates and no
// frame is already pending.
func (v *growthMapView) ensureTicking() tea.Cmd {
	if v.ticking || !v.animating() {
		return nil
	}
	v.ticking = true
	return tea.Tick(v.state.Profile.FrameInterval(), func(time.Time) tea.Msg { return frameMsg{} })
}

func (v *growthMapView) width() int {
	if v.state.Width > 0 {
		return v.state.Width
	}
	return 80
}

func (v *growthMapView) refreshContent() {
	v.vp.SetContent(renderLessonList(v.items, v.width(), v.cursor, v.state.Now()))
}

// keepCursorVisible scrolls so the focused card is fully on screen. The
// first card also brings the header into view.
func (v *growthMapView) keepCursorVisible() {
	if v.vp.Height <= 0 || len(v.items) == 0 {
		return
	}
	top := headerHeight + v.cursor*cardStride
	if v.cursor == 0 {
		top = 0
	}
	bottom := headerHeight + v.cursor*cardStride + cardHeight - 1
	switch {
	case top < v.vp.YOffset:
		v.vp.SetYOffset(top)
	case bottom >= v.vp.YOffset+v.vp.Height:
		v.vp.SetYOffset(bottom - v.vp.Height + 1)
	}
}

func (v *growthMapView) View() string {
	if v.detailVisible {
		return v.detail.View()
	}
	if v.vp.Height <= 0 {
		return renderLessonList(v.items, v.width(), v.cursor, v.state.Now())
	}
	return v.vp.View()
}

// renderLessonList draws the header followed by one card per item. A
// cursor outside the list focuses nothing.
func renderLessonList(items []lessonItem, width, cursor int, now time.Time) string {
	var b strings.Builder
	b.WriteString("  " + formatter.StyleHeader.Render(mapTitle) + "\n")
	b.WriteString("  " + formatter.Dim(mapSubtitle) + "\n")
	b.WriteString("\n")
	for i, it := range items {
		b.WriteString(it.render(width, i == cursor, now))
		if i < len(items)-1 {
			b.WriteString("\n" + strings.Repeat("\n", cardGap))
		}
	}
	return b.String()
}

// logLessonStart records a "Start lesson" press; a failing starter is
// surfaced as an error toast.
func logLessonStart(state *SharedState, msg lessonStartedMsg) tea.Cmd {
	if msg.err != nil {
		state.Log.Error("start lesson", "lesson", msg.lesson.ID, "err", msg.err)
		return state.Sink.Notify(notify.Request{
			Kind:     notify.KindError,
			Title:    "Could not start lesson",
			Body:     msg.err.Error(),
			Position: notify.PositionTop,
		})
	}
	state.Log.Info("start lesson", "lesson", msg.lesson.ID, "title", msg.lesson.Title)
	return nil
}
