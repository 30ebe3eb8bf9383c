package tui

import (
	"fmt"

	"chatdesk/modals"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI application and blocks until it exits
func Run(deps Deps) error {
	m := NewModel(deps)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Dispatches from commands happen outside Update; Send must not run on
	// the goroutine that is inside Update.
	unsubscribe := m.store.Subscribe(func(modals.State) {
		go p.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if finalModel, ok := finalModel.(Model); ok && finalModel.err != nil {
		m.logger.Warn("session ended with error", "error", finalModel.err)
	}
	return nil
}
