package cli

import (
	"github.com/alexanderramin/growthmap/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// catalogReloadedMsg carries a fresh lesson list, or the error that
// prevented loading one. It is broadcast to every view in the stack.
type catalogReloadedMsg struct {
	lessons []domain.Lesson
	err     error
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}
