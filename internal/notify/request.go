// Package notify carries transient feedback messages from the views to the
// toast layer. Views only build Requests; the Toaster owns queuing,
// rendering and dismissal.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind selects the toast styling.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Position anchors a toast to the top or bottom of the content area.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Request asks for a one-shot, auto-dismissing message.
// TopOffset is in points and only applies to top toasts.
type Request struct {
	Kind      Kind
	Title     string
	Body      string
	Position  Position
	Duration  time.Duration
	TopOffset int
}

// Sink accepts notification requests.
type Sink interface {
	Notify(req Request) tea.Cmd
}

// ShowMsg delivers a request to the Toaster.
type ShowMsg struct {
	Request Request
}

// Dispatcher is the production Sink: it routes requests through the
// bubbletea runtime as ShowMsg.
type Dispatcher struct{}

func (Dispatcher) Notify(req Request) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Request: req} }
}

// Recorder is a Sink that keeps every request. Useful for tests.
type Recorder struct {
	Requests []Request
}

func (r *Recorder) Notify(req Request) tea.Cmd {
	r.Requests = append(r.Requests, req)
	return nil
}

// Last returns the most recent request.
func (r *Recorder) Last() (Request, bool) {
	if len(r.Requests) == 0 {
		return Request{}, false
	}
	return r.Requests[len(r.Requests)-1], true
}
