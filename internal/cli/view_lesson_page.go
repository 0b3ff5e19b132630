package cli

import (
	"github.com/alexanderramin/growthmap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// lessonPageView is the navigation entry point for a single lesson. It
// shows the detail in page mode; going back pops it off the stack.
type lessonPageView struct {
	state  *SharedState
	detail lessonDetail
}

func newLessonPageView(state *SharedState, lesson domain.Lesson) *lessonPageView {
	d := newLessonDetail(detailPage, &lesson, state.Starter)
	d.show()
	return &lessonPageView{state: state, detail: d}
}

func (v *lessonPageView) ID() ViewID { return ViewLessonPage }

func (v *lessonPageView) Title() string {
	if v.detail.lesson == nil {
		return ""
	}
	return v.detail.lesson.Title
}

func (v *lessonPageView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start lesson")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
	}
}

func (v *lessonPageView) Init() tea.Cmd {
	v.detail.setSize(v.state.Width, v.state.ContentHeight())
	return nil
}

func (v *lessonPageView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.detail.setSize(msg.Width, v.state.ContentHeight())
		return v, nil

	case lessonStartedMsg:
		return v, logLessonStart(v.state, msg)

	case catalogReloadedMsg:
		if msg.err != nil || v.detail.lesson == nil {
			return v, nil
		}
		if l, ok := domain.FindLesson(msg.lessons, v.detail.lesson.ID); ok {
			v.detail.setLesson(&l)
		}
		return v, nil

	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		v.detail, cmd = v.detail.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *lessonPageView) View() string {
	return v.detail.View()
}
