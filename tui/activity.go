package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderActivity generates the content for the right pane with scrolling
func (m Model) renderActivity() string {
	var s strings.Builder

	s.WriteString(highlightStyle.Render("Activity") + "\n\n")

	if len(m.activity) == 0 {
		s.WriteString(helpStyle.Render("Nothing yet.\n\nModals, toasts and attachment\nresults will appear here."))
		return s.String()
	}

	visibleLines := m.height - 8 // borders, padding, title
	if visibleLines < 5 {
		visibleLines = 5
	}

	startIdx := m.activityScrollOffset
	if startIdx >= len(m.activity) {
		startIdx = len(m.activity) - 1
	}
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := startIdx + visibleLines
	if endIdx > len(m.activity) {
		endIdx = len(m.activity)
	}

	s.WriteString(strings.Join(m.activity[startIdx:endIdx], "\n"))

	if len(m.activity) > visibleLines {
		s.WriteString("\n\n" + helpStyle.Render("PgUp/PgDn to scroll"))
	}

	return s.String()
}

// maxActivityScroll is the largest useful scroll offset
func (m Model) maxActivityScroll() int {
	visibleLines := m.height - 8
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(m.activity) - visibleLines
	if maxScroll < 0 {
		return 0
	}
	return maxScroll
}

func (m *Model) addActivity(item string) {
	m.activity = append(m.activity, item)
	if len(m.activity) > maxActivityLines {
		m.activity = m.activity[len(m.activity)-maxActivityLines:]
	}
	// Follow the tail
	m.activityScrollOffset = m.maxActivityScroll()
}

func (m *Model) addActivityAction(action string) {
	m.addActivity(activityActionStyle.Render(action))
}

func (m *Model) addActivityStatus(key, value string) {
	m.addActivity("  " + formatActivityStatus(key, value))
}

// formatActivityStatus formats a key: value line, coloring the value
func formatActivityStatus(key, value string) string {
	return activityKeyStyle.Render(key+": ") + determineValueStyle(key, value).Render(value)
}

// determineValueStyle picks a color for a status value from its wording
func determineValueStyle(key, value string) lipgloss.Style {
	lowerKey := strings.ToLower(key)
	lowerValue := strings.ToLower(value)

	switch lowerKey {
	case "toast":
		return activityWarningValueStyle
	case "accepted", "loaded":
		if lowerValue != "0" && lowerValue != "" {
			return activitySuccessValueStyle
		}
	}

	errorPatterns := []string{
		"error", "failed", "not found", "rejected", "expired", "cancelled",
	}
	for _, pattern := range errorPatterns {
		if strings.Contains(lowerValue, pattern) {
			return activityErrorValueStyle
		}
	}

	successPatterns := []string{
		"sent", "opened", "loaded", "resolved", "added",
	}
	for _, pattern := range successPatterns {
		if strings.Contains(lowerValue, pattern) {
			return activitySuccessValueStyle
		}
	}

	return activityNeutralValueStyle
}
