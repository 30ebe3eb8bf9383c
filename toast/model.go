package toast

import (
	"strings"
	"time"

	"chatdesk/i18n"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	toastStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Foreground(lipgloss.Color("#F9FAFB"))

	actionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06B6D4")).
		Bold(true)
)

// dismissMsg fires when a toast's timeout elapses. Generation ties it to the
// toast that scheduled it.
type dismissMsg struct {
	generation int
}

// ClosedMsg is emitted whenever a visible toast closes
type ClosedMsg struct {
	Kind Kind
}

// Model shows at most one toast at a time
type Model struct {
	current        *Toast
	generation     int
	width          int
	defaultTimeout time.Duration
	localizer      *i18n.Localizer
}

// NewModel creates an empty toast slot
func NewModel(localizer *i18n.Localizer, defaultTimeout time.Duration) Model {
	if localizer == nil {
		localizer = i18n.MustNew()
	}
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return Model{localizer: localizer, defaultTimeout: defaultTimeout}
}

// Show replaces whatever toast is visible with t
func (m Model) Show(t Toast) (Model, tea.Cmd) {
	m.generation++
	m.current = &t

	if t.AutoDismissDisabled {
		return m, nil
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = m.defaultTimeout
	}
	generation := m.generation
	return m, tea.Tick(timeout, func(time.Time) tea.Msg {
		return dismissMsg{generation: generation}
	})
}

// Close clears the slot
func (m Model) Close() (Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	kind := m.current.Kind
	m.current = nil
	m.generation++
	return m, func() tea.Msg { return ClosedMsg{Kind: kind} }
}

// Current returns the visible toast
func (m Model) Current() (Toast, bool) {
	if m.current == nil {
		return Toast{}, false
	}
	return *m.current, true
}

// Visible reports whether a toast is showing
func (m Model) Visible() bool {
	return m.current != nil
}

// SetWidth sets the width the toast is aligned within
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Update handles auto-dismiss ticks
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(dismissMsg); ok {
		if m.current != nil && msg.generation == m.generation {
			return m.Close()
		}
	}
	return m, nil
}

// HandleKey lets a visible toast consume enter/space (close) and ctrl+a
// (action). The bool reports whether the key was consumed.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.current == nil {
		return m, nil, false
	}

	switch msg.String() {
	case "enter", " ":
		if m.current.DisableCloseOnClick {
			return m, nil, false
		}
		m, cmd := m.Close()
		return m, cmd, true
	case "ctrl+a":
		action := m.current.Action
		if action == nil {
			return m, nil, false
		}
		m, closeCmd := m.Close()
		emit := func() tea.Msg { return action.Msg }
		return m, tea.Batch(emit, closeCmd), true
	}

	return m, nil, false
}

// Text renders the toast body without styling
func (m Model) Text() string {
	if m.current == nil {
		return ""
	}
	return Render(m.localizer, *m.current)
}

// Render produces the text of t
func Render(localizer *i18n.Localizer, t Toast) string {
	text := localizer.T(t.Kind.MessageKey(), t.Params)
	if t.Kind == FileSize {
		text += " " + localizer.T("fileSizeLimit", t.Params)
	}
	return text
}

// View renders the visible toast, or an empty string
func (m Model) View() string {
	if m.current == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Text())
	if m.current.Action != nil {
		b.WriteString("  ")
		b.WriteString(actionStyle.Render("[" + m.current.Action.Label + "]"))
	}

	box := toastStyle.Render(b.String())
	if m.width <= 0 {
		return box
	}

	pos := lipgloss.Center
	if m.current.align() == AlignLeft {
		pos = lipgloss.Left
	}
	return lipgloss.PlaceHorizontal(m.width, pos, box)
}
