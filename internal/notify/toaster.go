package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// PointsPerRow converts a TopOffset in points to terminal rows.
const PointsPerRow = 20

// DefaultDuration applies when a request does not set one.
const DefaultDuration = 4 * time.Second

// Toast is a request that is currently on screen.
type Toast struct {
	ID        string
	Request   Request
	ShownAt   time.Time
	ExpiresAt time.Time
}

// dismissMsg fires when a toast's display time has elapsed.
type dismissMsg struct {
	id string
}

// Toaster shows at most one toast per position; a newer request replaces
// the visible one and the replaced toast's timer becomes stale.
type Toaster struct {
	toasts map[Position]Toast
	now    func() time.Time
	after  func(d time.Duration, id string) tea.Cmd
	width  int
}

// NewToaster creates an empty toast layer.
func NewToaster() Toaster {
	return Toaster{
		toasts: make(map[Position]Toast),
		now:    time.Now,
		after:  dismissAfter,
	}
}

func dismissAfter(d time.Duration, id string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return dismissMsg{id: id} })
}

// Handles reports whether msg belongs to the toast layer.
func Handles(msg tea.Msg) bool {
	switch msg.(type) {
	case ShowMsg, dismissMsg:
		return true
	}
	return false
}

// SetWidth sets the available width for rendering.
func (t *Toaster) SetWidth(w int) { t.width = w }

// Update handles ShowMsg and dismissal messages.
func (t Toaster) Update(msg tea.Msg) (Toaster, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		return t.show(msg.Request)
	case dismissMsg:
		t.dismiss(msg.id)
	}
	return t, nil
}

func (t Toaster) show(req Request) (Toaster, tea.Cmd) {
	if req.Position == "" {
		req.Position = PositionTop
	}
	if req.Duration <= 0 {
		req.Duration = DefaultDuration
	}
	now := t.now()
	toast := Toast{
		ID:        uuid.NewString(),
		Request:   req,
		ShownAt:   now,
		ExpiresAt: now.Add(req.Duration),
	}
	if t.toasts == nil {
		t.toasts = make(map[Position]Toast)
	}
	t.toasts[req.Position] = toast
	return t, t.after(req.Duration, toast.ID)
}

func (t *Toaster) dismiss(id string) {
	for pos, toast := range t.toasts {
		if toast.ID == id {
			delete(t.toasts, pos)
			return
		}
	}
}

// Visible returns the toast shown at pos.
func (t Toaster) Visible(pos Position) (Toast, bool) {
	toast, ok := t.toasts[pos]
	return toast, ok
}

// Empty reports whether no toast is on screen.
func (t Toaster) Empty() bool { return len(t.toasts) == 0 }

// Render returns the rendered toast for pos and the row it should start at,
// counted from the anchored edge. ok is false when nothing is shown there.
func (t Toaster) Render(pos Position) (out string, row int, ok bool) {
	toast, found := t.toasts[pos]
	if !found {
		return "", 0, false
	}
	req := toast.Request
	width := t.width
	if width <= 0 {
		width = 80
	}
	boxW := min(max(24, width-8), 72)

	var b strings.Builder
	b.WriteString(titleStyle.Render(req.Title))
	if req.Body != "" {
		b.WriteString("\n")
		b.WriteString(req.Body)
	}
	box := boxStyle(req.Kind).Width(boxW).Render(b.String())
	if pos == PositionTop {
		row = req.TopOffset / PointsPerRow
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box), row, true
}

func accent(kind Kind) lipgloss.Color {
	switch kind {
	case KindSuccess:
		return lipgloss.Color("#10b981")
	case KindError:
		return lipgloss.Color("#ef4444")
	default:
		return lipgloss.Color("#3b82f6")
	}
}

func boxStyle(kind Kind) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(accent(kind)).
		Background(lipgloss.Color("#ffffff")).
		Foreground(lipgloss.Color("#64748b")).
		Padding(0, 1)
}

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#1e293b")).
	Background(lipgloss.Color("#ffffff")).
	Bold(true)
