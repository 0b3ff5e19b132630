package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/growthmap/internal/catalog"
	"github.com/alexanderramin/growthmap/internal/cli/formatter"
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/alexanderramin/growthmap/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appHeaderHeight is the title line plus its separator.
const appHeaderHeight = 2

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack with the growth map at the bottom and a toast
// layer drawn above every view.
type appModel struct {
	state     *SharedState
	viewStack []View
	toaster   notify.Toaster
	reload    *catalogReloader
	quitting  bool
}

// catalogReloader re-reads the catalog whenever the watcher fires.
type catalogReloader struct {
	source  catalog.Source
	watcher *catalog.Watcher
}

func (r *catalogReloader) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-r.watcher.Changed():
			lessons, err := r.source.Lessons(context.Background())
			return catalogReloadedMsg{lessons: lessons, err: err}
		case err := <-r.watcher.Errors():
			return catalogReloadedMsg{err: fmt.Errorf("watching catalog: %w", err)}
		}
	}
}

// newAppModel starts on the growth map. When page is non-nil the lesson
// page is pushed above it.
func newAppModel(state *SharedState, lessons []domain.Lesson, page *domain.Lesson, reload *catalogReloader) appModel {
	m := appModel{
		state:   state,
		toaster: notify.NewToaster(),
		reload:  reload,
	}
	m.viewStack = []View{newGrowthMapView(state, lessons)}
	if page != nil {
		m.viewStack = append(m.viewStack, newLessonPageView(state, *page))
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast sends msg to every view in the stack, bottom first.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// growthMap returns the map at the bottom of the stack.
func (m *appModel) growthMap() *growthMapView {
	if len(m.viewStack) == 0 {
		return nil
	}
	gm, _ := m.viewStack[0].(*growthMapView)
	return gm
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range m.viewStack {
		cmds = append(cmds, v.Init())
	}
	if m.reload != nil {
		cmds = append(cmds, m.reload.wait())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notify.Handles(msg) {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.toaster.SetWidth(msg.Width)
		// Every view keeps its layout current, not just the top one.
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		msg.Y -= appHeaderHeight
		if msg.Y < 0 || msg.Y >= m.state.ContentHeight() {
			return m, nil
		}
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	// Navigation messages from views
	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case frameMsg:
		// Frames belong to the map even while a page covers it.
		if gm := m.growthMap(); gm != nil {
			_, cmd := gm.Update(msg)
			return m, cmd
		}
		return m, nil

	case catalogReloadedMsg:
		cmds := []tea.Cmd{}
		if msg.err != nil {
			m.state.Log.Error("catalog reload failed", "err", msg.err)
			cmds = append(cmds, m.state.Sink.Notify(notify.Request{
				Kind:     notify.KindError,
				Title:    "Catalog reload failed",
				Body:     msg.err.Error(),
				Position: notify.PositionBottom,
			}))
		} else if err := domain.ValidateLessons(msg.lessons); err != nil {
			m.state.Log.Error("catalog reload rejected", "err", err)
			msg = catalogReloadedMsg{err: err}
			cmds = append(cmds, m.state.Sink.Notify(notify.Request{
				Kind:     notify.KindError,
				Title:    "Catalog reload rejected",
				Body:     err.Error(),
				Position: notify.PositionBottom,
			}))
		}
		cmds = append(cmds, m.broadcast(msg))
		if m.reload != nil {
			cmds = append(cmds, m.reload.wait())
		}
		return m, tea.Batch(cmds...)
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// If the active view captures input (an open modal), forward directly.
	// This bypasses global keybindings so Esc closes the modal instead of
	// popping the stack.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := ""
	if v := m.activeView(); v != nil {
		content = v.View()
	}
	if m.state.Height > 0 {
		content = fitHeight(content, m.state.ContentHeight())
	}

	sections := []string{
		m.renderHeader(),
		content,
		m.renderStatusBar(),
	}
	return m.overlayToasts(strings.Join(sections, "\n"))
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("growthmap")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if gm := m.growthMap(); gm != nil && len(gm.items) > 0 {
		done := 0
		for _, it := range gm.items {
			if it.lesson.Status == domain.LessonDone {
				done++
			}
		}
		progress := formatter.StyleGreen.Render(fmt.Sprintf("%d/%d", done, len(gm.items)))
		header += "  " + formatter.Dim("[") + progress + formatter.Dim(" done]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if !viewCapturesInput(v) {
			if len(m.viewStack) > 1 {
				hints = append(hints, formatter.Dim("esc: back"))
			}
			hints = append(hints, formatter.Dim("q: quit"))
		}
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(formatter.ColorDim))
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// overlayToasts draws visible toasts over whole screen lines. Top toasts
// start TopOffset rows below the screen top; bottom toasts end just above
// the status bar.
func (m *appModel) overlayToasts(screen string) string {
	if m.toaster.Empty() {
		return screen
	}
	lines := strings.Split(screen, "\n")

	if out, row, ok := m.toaster.Render(notify.PositionTop); ok {
		lines = overlayLines(lines, strings.Split(out, "\n"), row)
	}
	if out, _, ok := m.toaster.Render(notify.PositionBottom); ok {
		toast := strings.Split(out, "\n")
		lines = overlayLines(lines, toast, len(lines)-2-len(toast))
	}
	return strings.Join(lines, "\n")
}

func overlayLines(base, over []string, row int) []string {
	row = max(row, 0)
	for i, l := range over {
		at := row + i
		if at < len(base) {
			base[at] = l
		} else {
			base = append(base, l)
		}
	}
	return base
}

// fitHeight pads or cuts s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// viewCapturesInput returns true if the active view should receive all key
// events (bypassing global keybindings like q and Esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}
