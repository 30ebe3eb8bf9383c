package modals

import "chatdesk/models"

// Reduce returns the state after applying action. It never modifies state
// and copies any nested payload data it stores.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case ShowContactModal:
		state.ContactModalState = models.Some(models.ContactModalState{
			ContactID:      a.ContactID,
			ConversationID: a.ConversationID,
		})
	case HideContactModal:
		state.ContactModalState = models.None[models.ContactModalState]()

	case ShowWhatsNewModal:
		state.IsWhatsNewVisible = true
	case HideWhatsNewModal:
		state.IsWhatsNewVisible = false

	case ShowUserNotFoundModal:
		state.UserNotFoundModalState = models.Some(a.State)
	case HideUserNotFoundModal:
		state.UserNotFoundModalState = models.None[models.UserNotFoundModalState]()

	case ShowStoriesSettings:
		state.IsStoriesSettingsVisible = true
	case HideStoriesSettings:
		state.IsStoriesSettingsVisible = false

	case ToggleProfileEditor:
		state.IsProfileEditorVisible = !state.IsProfileEditorVisible
	case ToggleProfileEditorError:
		state.ProfileEditorHasError = !state.ProfileEditorHasError
	case ToggleSignalConnectionsModal:
		state.IsSignalConnectionsVisible = !state.IsSignalConnectionsVisible

	case ToggleSafetyNumberModal:
		state.SafetyNumberModalContactID = a.ContactID
	case ShowSafetyNumberModal:
		state.SafetyNumberModalContactID = models.Some(a.ContactID)
	case HideSafetyNumberModal:
		state.SafetyNumberModalContactID = models.None[string]()

	case ToggleAddUserToAnotherGroupModal:
		state.AddUserToAnotherGroupModalContactID = a.ContactID
	case ShowAddUserToAnotherGroupModal:
		state.AddUserToAnotherGroupModalContactID = models.Some(a.ContactID)
	case HideAddUserToAnotherGroupModal:
		state.AddUserToAnotherGroupModalContactID = models.None[string]()

	case ToggleForwardMessageModalAction:
		props, ok := a.Props.Get()
		if !ok {
			state.ForwardMessageProps = models.None[models.ForwardMessageProps]()
			break
		}
		state.ForwardMessageProps = models.Some(cloneProps(props))
	case HideForwardMessageModal:
		state.ForwardMessageProps = models.None[models.ForwardMessageProps]()

	case ShowSendAnywayDialog:
		state.SafetyNumberChangedBlockingData = models.Some(models.SafetyNumberChangedBlockingData{
			PromiseID:            a.PromiseID,
			Source:               a.Source,
			ConversationsToPause: a.ConversationsToPause.Clone(),
		})
	case HideSendAnywayDialog:
		state.SafetyNumberChangedBlockingData = models.None[models.SafetyNumberChangedBlockingData]()
	}

	return state
}

func cloneProps(props models.ForwardMessageProps) models.ForwardMessageProps {
	if props.Attachments != nil {
		props.Attachments = append([]models.AttachmentSummary(nil), props.Attachments...)
	}
	return props
}
