package tui

import (
	"context"
	"errors"

	"chatdesk/attachments"
	"chatdesk/messages"
	"chatdesk/modals"
	"chatdesk/models"
	"chatdesk/promises"
	"chatdesk/utils"

	tea "github.com/charmbracelet/bubbletea"
)

// stateChangedMsg is sent when the modal store dispatches from outside Update
type stateChangedMsg struct{}

// forwardResultMsg reports the outcome of opening the forward dialog
type forwardResultMsg struct {
	MessageID string
	Err       error
}

// intakeStartedMsg carries a batch whose policy decision is known and whose
// accepted files are processing
type intakeStartedMsg struct {
	Batch      *attachments.Batch
	PathErrors []error
}

// intakeDoneMsg is sent once every file of a batch has settled
type intakeDoneMsg struct {
	Batch *attachments.Batch
}

// decisionMsg reports how a send-anyway decision settled
type decisionMsg struct {
	Proceed bool
	Err     error
}

// forwardMessageCmd opens the forward dialog for messageID
func forwardMessageCmd(store *modals.Store, lookup messages.Lookup, messageID string) tea.Cmd {
	return func() tea.Msg {
		err := store.Run(context.Background(), modals.ToggleForwardMessageModal(lookup, messageID))
		return forwardResultMsg{MessageID: messageID, Err: err}
	}
}

// attachFilesCmd resolves paths and hands them to the intake
func attachFilesCmd(intake *attachments.Intake, conversationID string, paths []string, current []models.AttachmentDraft) tea.Cmd {
	return func() tea.Msg {
		files, pathErrors := utils.FilesFromPaths(paths)
		batch := intake.Handle(context.Background(), conversationID, files, current, nil)
		return intakeStartedMsg{Batch: batch, PathErrors: pathErrors}
	}
}

// waitBatchCmd blocks until batch settles
func waitBatchCmd(batch *attachments.Batch) tea.Cmd {
	return func() tea.Msg {
		<-batch.Done()
		return intakeDoneMsg{Batch: batch}
	}
}

// waitDecisionCmd blocks until the send-anyway decision settles
func waitDecisionCmd(deferred *promises.Deferred[bool]) tea.Cmd {
	return func() tea.Msg {
		proceed, err := deferred.Wait(context.Background())
		return decisionMsg{Proceed: proceed, Err: err}
	}
}

// describeDecisionError turns a rejected decision into activity text
func describeDecisionError(err error) string {
	switch {
	case errors.Is(err, promises.ErrExpired):
		return "expired"
	case errors.Is(err, promises.ErrCleared):
		return "cancelled on exit"
	default:
		return "failed: " + err.Error()
	}
}
