package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - dark chat theme
	primaryColor   = lipgloss.Color("#3A76F0") // Blue
	secondaryColor = lipgloss.Color("#7C3AED") // Purple
	accentColor    = lipgloss.Color("#06B6D4") // Cyan
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray

	// Box container
	boxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Align(lipgloss.Left)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			PaddingBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor)

	// Messages
	authorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	bodyStyle = lipgloss.NewStyle().
			Foreground(textColor)

	// Contact pills
	pillStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#374151")).
			Padding(0, 1)

	selectedPillStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(primaryColor).
				Bold(true).
				Padding(0, 1)

	// Modals
	modalStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(secondaryColor)

	dangerModalStyle = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.DoubleBorder()).
				BorderForeground(warningColor)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			PaddingBottom(1)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	inputFieldStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Activity pane
	activityActionStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Italic(true)

	activityKeyStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	activitySuccessValueStyle = lipgloss.NewStyle().
					Foreground(successColor)

	activityWarningValueStyle = lipgloss.NewStyle().
					Foreground(warningColor)

	activityErrorValueStyle = lipgloss.NewStyle().
				Foreground(errorColor)

	activityNeutralValueStyle = lipgloss.NewStyle().
					Foreground(textColor)
)
