package cli

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/motion"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Entrance animation played once when a card mounts.
const (
	entranceFade       = 600 * time.Millisecond
	entranceScaleStart = 0.9
)

// Card geometry in terminal cells.
const (
	cardHeight    = 4 // border + title + subtitle + border
	cardGap       = 1
	cardStride    = cardHeight + cardGap
	cardMaxWidth  = 56
	cardMinWidth  = 24
	pointsPerCol  = 5
	playChip      = " ▶ "
	iconCellWidth = 4
)

// lessonPressedMsg is emitted when a lesson card is tapped. The card never
// decides what a tap means; the growth map does.
type lessonPressedMsg struct {
	lesson domain.Lesson
}

// cardVisual is the static look of a card for one status.
type cardVisual struct {
	family   domain.LessonStatus
	icon     string
	subtitle string
	playChip bool
	bg       string
	fg       string
	border   string
}

func visualFor(status domain.LessonStatus) cardVisual {
	switch status {
	case domain.LessonDone:
		return cardVisual{
			family:   domain.LessonDone,
			icon:     "✓",
			subtitle: "Completed",
			bg:       formatter.HexDone,
			fg:       formatter.HexCardFg,
			border:   formatter.HexDoneDeep,
		}
	case domain.LessonActive:
		return cardVisual{
			family:   domain.LessonActive,
			icon:     "▶",
			subtitle: "Tap to start",
			playChip: true,
			bg:       formatter.HexActive,
			fg:       formatter.HexCardFg,
			border:   formatter.HexActiveDeep,
		}
	case domain.LessonLocked:
		return cardVisual{
			family:   domain.LessonLocked,
			icon:     "🔒",
			subtitle: "Locked",
			bg:       formatter.HexLocked,
			fg:       formatter.HexLockedFg,
			border:   formatter.HexLocked,
		}
	default:
		v := visualFor(domain.LessonLocked)
		v.icon = ""
		return v
	}
}

// cardFrame is the animated state of a card at one instant.
type cardFrame struct {
	opacity float64
	scale   float64
	offset  float64 // horizontal displacement in points
}

// lessonItem is one card on the growth map together with its animations.
type lessonItem struct {
	lesson domain.Lesson
	fade   motion.Tween
	scale  motion.Spring
	pulse  motion.Pulse
	shake  motion.Sequence
}

func newLessonItem(l domain.Lesson, now time.Time, p motion.Profile) lessonItem {
	it := lessonItem{
		lesson: l,
		fade:   motion.NewTween(0, 1, entranceFade, motion.Linear),
		scale:  motion.NewSpring(p.FPS, entranceScaleStart, 1, p.Tension, p.Friction),
		pulse:  motion.NewPulse(),
		shake:  motion.NewShake(),
	}
	it.fade.Start(now)
	it.syncStatus(now)
	return it
}

// setLesson swaps in new lesson data. Status visuals are re-derived; the
// entrance is not replayed.
func (it *lessonItem) setLesson(l domain.Lesson, now time.Time) {
	it.lesson = l
	it.syncStatus(now)
}

func (it *lessonItem) syncStatus(now time.Time) {
	if it.lesson.Status == domain.LessonActive {
		it.pulse.Start(now)
		return
	}
	it.pulse.Stop()
}

// unmount cancels every looping animation.
func (it *lessonItem) unmount() {
	it.pulse.Stop()
}

// settle jumps the entrance to its final state.
func (it *lessonItem) settle() {
	it.fade.Finish()
	it.scale.Snap()
}

// press plays the locked shake when applicable and reports the tap.
func (it *lessonItem) press(now time.Time) tea.Cmd {
	if it.lesson.Status == domain.LessonLocked {
		it.shake.Restart(now)
	}
	l := it.lesson
	return func() tea.Msg { return lessonPressedMsg{lesson: l} }
}

// step advances frame-based animations by one frame.
func (it *lessonItem) step() {
	it.scale.Step()
}

func (it lessonItem) animating(now time.Time) bool {
	return it.fade.Active(now) || !it.scale.Settled() || it.pulse.Running() || it.shake.Active(now)
}

func (it lessonItem) frame(now time.Time) cardFrame {
	f := cardFrame{
		opacity: it.fade.Value(now),
		scale:   it.scale.Value(),
	}
	if it.pulse.Running() {
		f.scale *= it.pulse.Value(now)
	}
	if it.lesson.Status == domain.LessonLocked {
		f.offset = it.shake.Value(now)
	}
	return f
}

// baseCardWidth is the card width at scale 1 for the given screen width.
func baseCardWidth(width int) int {
	return max(min(width-4, cardMaxWidth), cardMinWidth)
}

// cardLeft is the first column of an unscaled, unshaken card.
func cardLeft(width int) int {
	return max((width-baseCardWidth(width))/2, 0)
}

// render draws the card centered in width columns. The result is always
// cardHeight lines.
func (it lessonItem) render(width int, focused bool, now time.Time) string {
	f := it.frame(now)
	vis := visualFor(it.lesson.Status)

	base := baseCardWidth(width)
	w := int(math.Round(float64(base) * f.scale))
	w = max(min(w, width), cardMinWidth/2)

	bg := blendHex(formatter.HexSurface, vis.bg, f.opacity)
	fg := blendHex(formatter.HexSurface, vis.fg, f.opacity)
	borderColor := blendHex(formatter.HexSurface, vis.border, f.opacity)
	border := lipgloss.RoundedBorder()
	if focused {
		border = lipgloss.ThickBorder()
		borderColor = blendHex(formatter.HexSurface, string(formatter.ColorHeader), f.opacity)
	}

	inner := w - 4 // border and padding
	textStyle := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))

	icon := textStyle.Width(iconCellWidth).Render(" " + vis.icon)
	chip := ""
	if vis.playChip {
		chip = lipgloss.NewStyle().
			Background(lipgloss.Color(fg)).
			Foreground(lipgloss.Color(bg)).
			Render(playChip)
	}
	titleW := max(inner-iconCellWidth-lipgloss.Width(chip), 1)
	title := textStyle.Bold(true).Width(titleW).Render(formatter.Truncate(it.lesson.Title, titleW))
	subtitle := textStyle.Width(inner - iconCellWidth).Render(formatter.Truncate(vis.subtitle, inner-iconCellWidth))

	body := lipgloss.JoinVertical(lipgloss.Left,
		icon+title+chip,
		textStyle.Width(iconCellWidth).Render("")+subtitle,
	)
	card := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Width(w - 2).
		Render(body)

	left := (width-w)/2 + int(math.Round(f.offset/pointsPerCol))
	left = max(left, 0)
	return indentLines(card, left)
}

// blendHex mixes from toward to in Lab space; t=0 is from, t=1 is to.
func blendHex(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	t = math.Max(0, math.Min(1, t))
	return a.BlendLab(b, t).Clamped().Hex()
}

func indentLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
