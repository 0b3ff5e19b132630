package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// LessonStarter launches a lesson chosen from the detail view.
type LessonStarter interface {
	StartLesson(ctx context.Context, lesson domain.Lesson) error
}

// detailMode selects how the lesson detail is presented.
type detailMode int

const (
	detailOverlay detailMode = iota // modal above the growth map
	detailPage                      // pushed navigation page
)

// detailClosedMsg asks the owner of an overlay detail to close it.
type detailClosedMsg struct{}

// lessonStartedMsg reports that "Start lesson" ran the starter hook.
type lessonStartedMsg struct {
	lesson domain.Lesson
	err    error
}

const (
	detailDescription = "This lesson will help you develop important skills and reach new heights " +
		"in your personal growth. Follow the instructions and complete every task in order."
	detailLearn = "- Practical techniques and methods\n" +
		"- New approaches to solving problems\n" +
		"- Tools for personal development"
	detailInstructions = "1. Read all the materials carefully\n" +
		"2. Complete the practical tasks\n" +
		"3. Pass the final test\n" +
		"4. Receive your certificate of completion"
)

const (
	detailCloseLabel = "✕"
	detailBackLabel  = "← Back"
	detailStartLabel = "▶  Start lesson"
)

// detailControl is a clickable part of the detail.
type detailControl int

const (
	controlNone    detailControl = iota
	controlDismiss               // ✕ in overlay mode, ← Back in page mode
	controlStart
)

// lessonDetail shows one lesson with a "Start lesson" control. With no
// lesson it renders nothing and ignores input, visible or not.
type lessonDetail struct {
	mode    detailMode
	visible bool
	lesson  *domain.Lesson
	starter LessonStarter

	width  int
	height int
	vp     viewport.Model
	md     *markdownRenderer
}

func newLessonDetail(mode detailMode, lesson *domain.Lesson, starter LessonStarter) lessonDetail {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return lessonDetail{
		mode:    mode,
		lesson:  lesson,
		starter: starter,
		vp:      vp,
		md:      &markdownRenderer{},
	}
}

func (d *lessonDetail) show() { d.visible = true }
func (d *lessonDetail) hide() { d.visible = false }

// setLesson replaces the shown lesson, e.g. after a catalog reload.
func (d *lessonDetail) setLesson(l *domain.Lesson) {
	d.lesson = l
	d.refresh()
}

// setSize lays the detail out in w x h cells.
func (d *lessonDetail) setSize(w, h int) {
	d.width = w
	d.height = h
	d.refresh()
}

func (d *lessonDetail) refresh() {
	if d.lesson == nil || d.width <= 0 {
		return
	}
	d.vp.Width = d.width
	d.vp.Height = max(d.height-4, 1) // top bar + blank, blank + button
	d.vp.SetContent(d.renderBody())
}

func (d lessonDetail) Update(msg tea.Msg) (lessonDetail, tea.Cmd) {
	if d.lesson == nil || !d.visible {
		return d, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return d, d.dismiss()
		case "x":
			if d.mode == detailOverlay {
				return d, d.dismiss()
			}
		case "b":
			if d.mode == detailPage {
				return d, d.dismiss()
			}
		case "enter", "s":
			return d, d.pressStart()
		case "up", "k":
			d.vp.ScrollUp(1)
		case "down", "j":
			d.vp.ScrollDown(1)
		case "pgup":
			d.vp.PageUp()
		case "pgdown":
			d.vp.PageDown()
		}
		return d, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			switch d.controlAt(msg.X, msg.Y) {
			case controlDismiss:
				return d, d.dismiss()
			case controlStart:
				return d, d.pressStart()
			}
			return d, nil
		}
		var cmd tea.Cmd
		d.vp, cmd = d.vp.Update(msg)
		return d, cmd
	}
	return d, nil
}

// dismiss closes the overlay or pops the page.
func (d lessonDetail) dismiss() tea.Cmd {
	if d.mode == detailOverlay {
		return closeDetail
	}
	return popView()
}

// pressStart runs the starter. The overlay closes afterwards; the page stays.
func (d lessonDetail) pressStart() tea.Cmd {
	if d.mode == detailOverlay {
		return tea.Batch(d.start(), closeDetail)
	}
	return d.start()
}

// controlAt maps a cell of the laid-out detail to the control drawn there.
// Rows: top bar, blank, viewport, blank, button.
func (d lessonDetail) controlAt(x, y int) detailControl {
	if d.width <= 0 {
		return controlNone
	}
	switch y {
	case 0:
		if d.mode == detailPage {
			if x < lipgloss.Width(detailBackLabel) {
				return controlDismiss
			}
			return controlNone
		}
		if x >= d.width-lipgloss.Width(detailCloseLabel) && x < d.width {
			return controlDismiss
		}
	case d.vp.Height + 3:
		bw := lipgloss.Width(startButton())
		left := max(d.width-bw, 0) / 2
		if x >= left && x < left+bw {
			return controlStart
		}
	}
	return controlNone
}

func closeDetail() tea.Msg { return detailClosedMsg{} }

// start runs the starter hook off the event loop.
func (d lessonDetail) start() tea.Cmd {
	l := *d.lesson
	starter := d.starter
	return func() tea.Msg {
		if starter == nil {
			return lessonStartedMsg{lesson: l}
		}
		return lessonStartedMsg{lesson: l, err: starter.StartLesson(context.Background(), l)}
	}
}

func (d lessonDetail) View() string {
	if d.lesson == nil || !d.visible {
		return ""
	}

	var top string
	switch d.mode {
	case detailPage:
		top = formatter.StyleBlue.Render(detailBackLabel)
	default:
		top = lipgloss.PlaceHorizontal(max(d.width, 1), lipgloss.Right, formatter.Dim(detailCloseLabel))
	}

	button := startButton()

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n\n")
	if d.width > 0 {
		b.WriteString(d.vp.View())
	} else {
		b.WriteString(d.renderBody())
	}
	b.WriteString("\n\n")
	b.WriteString(formatter.Center(button, max(d.width, lipgloss.Width(button))))
	return b.String()
}

func startButton() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(formatter.HexCardFg)).
		Background(lipgloss.Color(formatter.HexActive)).
		Bold(true).
		Padding(0, 3).
		Render(detailStartLabel)
}

func (d lessonDetail) renderBody() string {
	width := d.width
	if width <= 0 {
		width = 80
	}
	cardW := min(width-2, 76)
	wrap := max(cardW-8, 20)

	icon := lipgloss.NewStyle().
		Foreground(lipgloss.Color(formatter.HexCardFg)).
		Background(lipgloss.Color(formatter.HexActive)).
		Padding(1, 3).
		Render("▶")
	title := formatter.StyleBold.Render(d.lesson.Title)

	cards := []string{
		formatter.RenderBox("Lesson description", d.md.render(detailDescription, wrap)),
		formatter.RenderBox("What you will learn", d.md.render(detailLearn, wrap)),
	}
	if d.mode == detailOverlay {
		cards = append(cards, formatter.RenderBox("Instructions", d.md.render(detailInstructions, wrap)))
	}

	sections := []string{icon, "", title, ""}
	for _, c := range cards {
		sections = append(sections, lipgloss.NewStyle().Width(cardW).Render(c), "")
	}
	return formatter.Center(strings.Join(sections, "\n"), width)
}

// markdownRenderer renders detail text with glamour. The renderer is
// rebuilt only when the wrap width changes.
type markdownRenderer struct {
	wrap int
	r    *glamour.TermRenderer
}

// render returns md rendered at wrap columns, or md itself when glamour fails.
func (m *markdownRenderer) render(md string, wrap int) string {
	if m.r == nil || m.wrap != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return md
		}
		m.r, m.wrap = r, wrap
	}
	out, err := m.r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
