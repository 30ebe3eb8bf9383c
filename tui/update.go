package tui

import (
	"context"
	"fmt"
	"strconv"

	"chatdesk/modals"
	"chatdesk/models"
	"chatdesk/promises"
	"chatdesk/toast"
	"chatdesk/utils"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.modalState = m.store.State()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case stateChangedMsg:
		return m, nil
	case forwardResultMsg:
		return m.handleForwardResult(msg)
	case intakeStartedMsg:
		return m.handleIntakeStarted(msg)
	case intakeDoneMsg:
		return m.handleIntakeDone(msg)
	case decisionMsg:
		return m.handleDecision(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Update(msg)
	return m, cmd
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.showRightPane = m.width >= 100
	if m.showRightPane {
		m.leftPaneWidth = int(float64(m.width) * 0.65)   // 65% for the conversation
		m.rightPaneWidth = m.width - m.leftPaneWidth - 1 // rest for activity, minus separator
	} else {
		m.leftPaneWidth = m.width
		m.rightPaneWidth = 0
	}

	m.pills = m.pills.SetWidth(m.leftPaneWidth - 10)
	m.toast = m.toast.SetWidth(m.leftPaneWidth - 10)
	m.attachInput.Width = m.leftPaneWidth - 20
	return m, nil
}

// handleKeyMessage routes keys to the current screen
func (m Model) handleKeyMessage(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "pgup":
		m.activityScrollOffset -= 5
		if m.activityScrollOffset < 0 {
			m.activityScrollOffset = 0
		}
		return m, nil
	case "pgdown":
		m.activityScrollOffset += 5
		if maxScroll := m.maxActivityScroll(); m.activityScrollOffset > maxScroll {
			m.activityScrollOffset = maxScroll
		}
		return m, nil
	}

	switch m.state {
	case StateAttachInput:
		return m.updateAttachInput(msg)
	case StateStories:
		return m.updateStories(msg)
	}

	// The toast only takes keys while no text input is focused
	if t, cmd, handled := m.toast.HandleKey(msg); handled {
		m.toast = t
		return m, cmd
	}

	return m.updateConversation(msg)
}

func (m Model) updateConversation(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modalState.SafetyNumberChangedBlockingData.IsSet() {
		switch msg.String() {
		case "y":
			return m.answerSendAnyway(true)
		case "n", "esc":
			return m.answerSendAnyway(false)
		}
	}

	m.errorLine = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m.closeTopmost()
	case "p":
		m.dispatch(modals.ToggleProfileEditor{})
	case "e":
		m.dispatch(modals.ToggleProfileEditorError{})
	case "w":
		m.dispatch(modals.ShowWhatsNewModal{})
	case "n":
		m.dispatch(modals.ToggleSignalConnectionsModal{})
	case "u":
		m.dispatch(modals.ShowUserNotFoundModal{State: models.UserNotFoundByUsername("someone.01")})
	case "c":
		if contact, ok := m.requireContact(); ok {
			m.dispatch(modals.ShowContactModal{ContactID: contact, ConversationID: m.conversationID})
		}
	case "g":
		if contact, ok := m.requireContact(); ok {
			m.dispatch(modals.ShowAddUserToAnotherGroupModal{ContactID: contact})
		}
	case "k":
		if contact, ok := m.requireContact(); ok {
			m.dispatch(modals.ShowSafetyNumberModal{ContactID: contact})
		}
	case "f":
		return m.forwardLatest()
	case "x":
		return m.simulateSend()
	case "s":
		m.state = StateStories
		m.addActivityAction("Opened stories")
	case "a":
		return m.startAttach()
	case "r":
		m.drafts.Clear(m.conversationID)
		m.addActivityAction("Cleared attachments")
	case "+":
		contact := "contact-" + strconv.Itoa(len(m.pills.Contacts())+1)
		m.pills = m.pills.Add(contact)
		m.addActivityStatus("Recipient", contact+" added")
	case "-":
		m.pills = m.pills.RemoveSelected()
	case "left", "shift+tab":
		m.pills = m.pills.Move(-1)
	case "right", "tab":
		m.pills = m.pills.Move(1)
	}

	return m, nil
}

// dispatch applies action and records it in the activity pane
func (m *Model) dispatch(action modals.Action) {
	m.store.Dispatch(action)
	m.modalState = m.store.State()
	m.addActivityStatus("Modal", action.Type())
}

func (m *Model) requireContact() (string, bool) {
	contact, ok := m.pills.Selected()
	if !ok {
		m.errorLine = "Select a recipient first (+ adds one)"
	}
	return contact, ok
}

func (m Model) closeTopmost() (Model, tea.Cmd) {
	action := modals.CloseTopmost(m.modalState)
	if action == nil {
		if m.toast.Visible() {
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Close()
			return m, cmd
		}
		return m, nil
	}
	m.dispatch(action)
	return m, nil
}

func (m Model) forwardLatest() (Model, tea.Cmd) {
	latest, ok := m.repository.Latest(m.conversationID)
	if !ok {
		m.errorLine = "No message to forward in " + m.conversationID
		return m, nil
	}
	m.addActivityStatus("Forward", latest.ID)
	return m, forwardMessageCmd(m.store, m.lookup, latest.ID)
}

func (m Model) handleForwardResult(msg forwardResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		m.errorLine = msg.Err.Error()
		m.logger.Error("forward message failed", "message_id", msg.MessageID, "error", msg.Err)
		m.addActivityStatus("Forward", "failed")
		return m, nil
	}
	m.addActivityStatus("Forward", "opened "+msg.MessageID)
	return m, nil
}

// simulateSend raises the send-anyway dialog for the current recipients and
// waits for the answer
func (m Model) simulateSend() (Model, tea.Cmd) {
	if m.pendingDecision != nil {
		return m, nil
	}
	contacts := m.pills.Contacts()
	if len(contacts) == 0 {
		m.errorLine = "Select a recipient first (+ adds one)"
		return m, nil
	}

	members := make(map[string]struct{}, len(contacts))
	for _, contact := range contacts {
		members[contact] = struct{}{}
	}

	deferred := promises.NewDeferred[bool]()
	thunk := modals.ShowBlockingSafetyNumberChangeDialog(
		m.promises,
		models.ConversationsToPause{m.conversationID: members},
		deferred,
		models.Some(models.SourceMessageSend),
	)
	if err := m.store.Run(context.Background(), thunk); err != nil {
		m.errorLine = err.Error()
		return m, nil
	}

	m.pendingDecision = deferred
	m.modalState = m.store.State()
	m.addActivityStatus("Send", "waiting for safety number confirmation")
	return m, waitDecisionCmd(deferred)
}

func (m Model) answerSendAnyway(proceed bool) (Model, tea.Cmd) {
	err := m.store.Run(context.Background(), modals.ResolveBlockingSafetyNumberChange(m.promises, proceed))
	m.modalState = m.store.State()
	if err != nil {
		m.errorLine = err.Error()
		m.logger.Warn("send anyway answer not applied", "error", err)
	}
	return m, nil
}

func (m Model) handleDecision(msg decisionMsg) (Model, tea.Cmd) {
	m.pendingDecision = nil
	switch {
	case msg.Err != nil:
		m.addActivityStatus("Send", describeDecisionError(msg.Err))
	case msg.Proceed:
		m.addActivityStatus("Send", "sent")
	default:
		m.addActivityStatus("Send", "cancelled")
	}
	return m, nil
}

func (m Model) startAttach() (Model, tea.Cmd) {
	m.state = StateAttachInput
	m.attachInput.Reset()
	return m, m.attachInput.Focus()
}

func (m Model) updateAttachInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateConversation
		m.attachInput.Blur()
		m.attachInput.Reset()
		return m, nil
	case "enter":
		paths := utils.ParseCommaSeparatedList(m.attachInput.Value())
		m.state = StateConversation
		m.attachInput.Blur()
		m.attachInput.Reset()
		if len(paths) == 0 {
			return m, nil
		}

		m.addActivityAction(fmt.Sprintf("Attaching %d file(s)", len(paths)))
		cmds := []tea.Cmd{attachFilesCmd(m.intake, m.conversationID, paths, m.drafts.Attachments(m.conversationID))}
		if m.pendingBatches == 0 {
			cmds = append(cmds, m.spinner.Tick)
		}
		m.pendingBatches++
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.attachInput, cmd = m.attachInput.Update(msg)
	return m, cmd
}

func (m Model) handleIntakeStarted(msg intakeStartedMsg) (Model, tea.Cmd) {
	for _, err := range msg.PathErrors {
		m.errorLine = err.Error()
		m.addActivityStatus("Attach", err.Error())
	}

	decision := msg.Batch.Decision
	m.addActivityStatus("Accepted", strconv.Itoa(len(decision.Accepted)))

	var cmds []tea.Cmd
	for i, t := range decision.Toasts {
		if i == 0 {
			cmds = append(cmds, m.showToast(t))
			continue
		}
		m.addActivityStatus("Toast", toast.Render(m.localizer, t))
	}

	cmds = append(cmds, waitBatchCmd(msg.Batch))
	return m, tea.Batch(cmds...)
}

func (m Model) handleIntakeDone(msg intakeDoneMsg) (Model, tea.Cmd) {
	if m.pendingBatches > 0 {
		m.pendingBatches--
	}

	loaded, failed := 0, 0
	for _, result := range msg.Batch.Results() {
		if result.Err != nil {
			failed++
			m.logger.Warn("attachment failed to load", "file", result.File.Path, "error", result.Err)
			continue
		}
		loaded++
	}
	if loaded+failed > 0 {
		m.addActivityStatus("Loaded", strconv.Itoa(loaded))
	}

	if failed > 0 {
		m.addActivityStatus("Attach", fmt.Sprintf("%d failed", failed))
		return m, m.showToast(toast.New(toast.UnableToLoadAttachment))
	}
	return m, nil
}

func (m *Model) showToast(t toast.Toast) tea.Cmd {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(t)
	m.addActivityStatus("Toast", toast.Render(m.localizer, t))
	return cmd
}

func (m Model) updateStories(msg tea.KeyMsg) (Model, tea.Cmd) {
	stories, cmd, event := m.stories.Update(msg, m.modalState.IsStoriesSettingsVisible)
	m.stories = stories

	switch event {
	case storiesClose:
		m.state = StateConversation
		m.addActivityAction("Closed stories")
	case storiesShowSettings:
		m.dispatch(modals.ShowStoriesSettings{})
	case storiesHideSettings:
		m.dispatch(modals.HideStoriesSettings{})
	}

	return m, cmd
}

// handleSpinnerTick advances the spinner while batches are processing and
// lets it stop once nothing is pending
func (m Model) handleSpinnerTick(msg spinner.TickMsg) (Model, tea.Cmd) {
	if m.pendingBatches == 0 && m.drafts.PendingCount(m.conversationID) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}
