package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"chatdesk/models"
	"chatdesk/utils"

	"github.com/charmbracelet/lipgloss"
)

// maxDraftNameLength bounds file names in the draft list
const maxDraftNameLength = 40

// View implements tea.Model
func (m Model) View() string {
	var content string
	switch m.state {
	case StateStories:
		content = m.stories.View(m.modalState.IsStoriesSettingsVisible)
	default:
		content = m.viewConversation()
	}

	return m.renderWithDynamicWidth(content)
}

func (m Model) viewConversation() string {
	var b strings.Builder
	t := m.localizer.T

	b.WriteString(titleStyle.Render("chatdesk") + "\n")
	b.WriteString(subtitleStyle.Render(m.conversationID) + "\n\n")

	if modal := m.viewModal(); modal != "" {
		b.WriteString(modal + "\n\n")
	} else {
		b.WriteString(m.viewMessages() + "\n")
	}

	b.WriteString(m.viewDrafts())

	if m.state == StateAttachInput {
		b.WriteString(inputFieldStyle.Render(t("Composer__attach-prompt", nil)) + "\n")
		b.WriteString(m.attachInput.View() + "\n")
		b.WriteString(helpStyle.Render(m.acceptLine()) + "\n\n")
	}

	b.WriteString(subtitleStyle.Render("To") + "\n")
	b.WriteString(m.pills.View() + "\n\n")

	if toastView := m.toast.View(); toastView != "" {
		b.WriteString(toastView + "\n\n")
	}

	if m.errorLine != "" {
		b.WriteString(errorStyle.Render("Error: "+m.errorLine) + "\n\n")
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewMessages() string {
	msgs := m.repository.Conversation(m.conversationID)
	if len(msgs) == 0 {
		return timestampStyle.Render("No messages yet") + "\n"
	}

	width := m.leftPaneWidth - 12
	if width < 30 {
		width = 60
	}

	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(authorStyle.Render(msg.Author) + " " +
			timestampStyle.Render(msg.SentAt.Local().Format("Jan 2 3:04 PM")) + "\n")
		for _, line := range m.wrapText(strings.TrimSpace(msg.Body), width) {
			b.WriteString(bodyStyle.Render(line) + "\n")
		}
		for _, a := range msg.Attachments {
			b.WriteString(timestampStyle.Render(fmt.Sprintf("  📎 %s (%s)", a.FileName, utils.FormatFileSize(a.Size))) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDrafts() string {
	list := m.drafts.Attachments(m.conversationID)
	if len(list) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(m.localizer.T("Composer__drafts", map[string]string{
		"count": strconv.Itoa(len(list)),
	})) + "\n")
	for _, draft := range list {
		name := draft.FileName
		if name == "" {
			name = draft.Path
		}
		name = utils.TruncateString(name, maxDraftNameLength)
		if draft.Pending {
			b.WriteString("  " + m.spinner.View() + " " + warningStyle.Render(name) + "\n")
			continue
		}
		b.WriteString("  " + successStyle.Render("✓ "+name) +
			timestampStyle.Render(fmt.Sprintf("  %s, %s", draft.ContentType, utils.FormatFileSize(draft.Size))) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// acceptLine describes which files the composer accepts given its drafts
func (m Model) acceptLine() string {
	types := m.intake.Policy().AcceptContentTypes(m.drafts.Attachments(m.conversationID))
	if len(types) == 0 {
		return m.localizer.T("Composer__accept-any", nil)
	}
	return m.localizer.T("Composer__accept", map[string]string{"types": strings.Join(types, ", ")})
}

func (m Model) helpLine() string {
	switch {
	case m.state == StateAttachInput:
		return "Enter to attach • Esc to cancel"
	case m.modalState.SafetyNumberChangedBlockingData.IsSet():
		return "y send anyway • n cancel"
	case m.modalState.AnyVisible():
		return "esc close • q quit"
	}
	return "a attach • f forward • x send • s stories • p profile • e profile error • w what's new • n connections\n" +
		"c contact • g add to group • k safety number • u user lookup • +/- recipients • ←/→ select • r clear • q quit"
}

// viewModal renders the topmost visible modal
func (m Model) viewModal() string {
	s := m.modalState
	t := m.localizer.T

	if data, ok := s.SafetyNumberChangedBlockingData.Get(); ok {
		return dangerModalStyle.Render(
			modalTitleStyle.Render(t("SafetyNumberChangeDialog--title", nil)) + "\n" +
				t("SafetyNumberChangeDialog--body", map[string]string{
					"count":         strconv.Itoa(data.ConversationsToPause.MemberCount()),
					"conversations": strconv.Itoa(len(data.ConversationsToPause)),
				}) + "\n" +
				timestampStyle.Render(strings.Join(pausedMembers(data.ConversationsToPause), ", ")) + "\n\n" +
				highlightStyle.Render(t("SafetyNumberChangeDialog--actions", nil)))
	}

	if props, ok := s.ForwardMessageProps.Get(); ok {
		var b strings.Builder
		b.WriteString(modalTitleStyle.Render(t("ForwardMessageModal--title", nil)) + "\n")
		b.WriteString(timestampStyle.Render(t("ForwardMessageModal--from", map[string]string{
			"author":    props.Author,
			"timestamp": props.Timestamp,
		})) + "\n\n")
		b.WriteString(bodyStyle.Render(props.Text))
		for _, a := range props.Attachments {
			b.WriteString("\n" + timestampStyle.Render(fmt.Sprintf("📎 %s (%s, %s)", a.FileName, a.ContentType, a.Size)))
		}
		return modalStyle.Render(b.String())
	}

	if contactID, ok := s.SafetyNumberModalContactID.Get(); ok {
		return modalStyle.Render(modalTitleStyle.Render(t("SafetyNumberModal--title", map[string]string{"contactId": contactID})))
	}

	if contactID, ok := s.AddUserToAnotherGroupModalContactID.Get(); ok {
		return modalStyle.Render(modalTitleStyle.Render(t("AddUserToAnotherGroupModal--title", map[string]string{"contactId": contactID})))
	}

	if notFound, ok := s.UserNotFoundModalState.Get(); ok {
		return modalStyle.Render(errorStyle.Render(t("UserNotFound--"+string(notFound.Kind), map[string]string{
			"identifier": notFound.Identifier(),
		})))
	}

	if contact, ok := s.ContactModalState.Get(); ok {
		body := modalTitleStyle.Render(t("ContactModal--title", nil)) + "\n" + highlightStyle.Render(contact.ContactID)
		if contact.ConversationID != "" {
			body += "\n" + timestampStyle.Render(t("ContactModal--conversation", map[string]string{
				"conversationId": contact.ConversationID,
			}))
		}
		return modalStyle.Render(body)
	}

	if s.IsProfileEditorVisible {
		body := modalTitleStyle.Render(t("ProfileEditor--title", nil))
		if s.ProfileEditorHasError {
			body += "\n" + errorStyle.Render(t("ProfileEditor--error", nil))
		}
		return modalStyle.Render(body)
	}

	if s.IsSignalConnectionsVisible {
		return modalStyle.Render(modalTitleStyle.Render(t("SignalConnectionsModal--title", nil)) + "\n" +
			t("SignalConnectionsModal--body", nil))
	}

	if s.IsWhatsNewVisible {
		return modalStyle.Render(modalTitleStyle.Render(t("WhatsNew--title", nil)) + "\n" +
			t("WhatsNew--body", nil))
	}

	if s.IsStoriesSettingsVisible {
		return modalStyle.Render(modalTitleStyle.Render(t("StoriesSettings--title", nil)))
	}

	return ""
}

// pausedMembers lists the members of conversations as conversation/member
func pausedMembers(conversations models.ConversationsToPause) []string {
	var out []string
	for conversationID, members := range conversations {
		for member := range members {
			out = append(out, conversationID+"/"+member)
		}
	}
	sort.Strings(out)
	return out
}

// renderWithDynamicWidth renders content with two-pane layout
func (m Model) renderWithDynamicWidth(content string) string {
	if m.width > 0 && m.height > 0 {
		if m.showRightPane && m.leftPaneWidth > 0 && m.rightPaneWidth > 0 {
			return m.renderTwoPaneLayout(content)
		}
		return m.renderSinglePaneLayout(content)
	}

	return boxStyle.Render(content)
}

// renderSinglePaneLayout renders content in single pane mode
func (m Model) renderSinglePaneLayout(content string) string {
	marginHorizontal := 2
	marginVertical := 1

	contentWidth := m.width - (marginHorizontal * 2) - 2 // 2 for border
	contentHeight := m.height - (marginVertical * 2) - 2 // 2 for border

	if contentWidth < 50 {
		contentWidth = 50
	}
	if contentHeight < 10 {
		contentHeight = 10
	}

	mainStyle := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Align(lipgloss.Left)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(marginVertical, marginHorizontal).
		Render(mainStyle.Render(content))
}

// renderTwoPaneLayout renders the conversation on the left and activity on
// the right
func (m Model) renderTwoPaneLayout(content string) string {
	marginVertical := 1
	contentHeight := m.height - (marginVertical * 2) - 2 // 2 for border

	if contentHeight < 10 {
		contentHeight = 10
	}

	leftWidth := m.leftPaneWidth - 4   // border and padding
	rightWidth := m.rightPaneWidth - 4 // border and padding

	paneStyle := lipgloss.NewStyle().
		Height(contentHeight).
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor)

	leftPane := paneStyle.Width(leftWidth).Render(content)
	rightPane := paneStyle.Width(rightWidth).Render(m.renderActivity())

	combinedPanes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	return lipgloss.NewStyle().
		Padding(marginVertical, 1).
		Render(combinedPanes)
}

// wrapText wraps text to fit within the specified width
func (m Model) wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range strings.Fields(text) {
		if currentLine.Len() > 0 && currentLine.Len()+len(word)+1 > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}

		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}
