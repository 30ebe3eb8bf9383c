package modals

import "chatdesk/models"

// Action is anything Reduce understands. Unknown types are ignored.
type Action interface {
	Type() string
}

// Action types
const (
	HideContactModalType                 = "globalModals/HIDE_CONTACT_MODAL"
	ShowContactModalType                 = "globalModals/SHOW_CONTACT_MODAL"
	HideWhatsNewModalType                = "globalModals/HIDE_WHATS_NEW_MODAL_MODAL"
	ShowWhatsNewModalType                = "globalModals/SHOW_WHATS_NEW_MODAL_MODAL"
	HideUserNotFoundModalType            = "globalModals/HIDE_USER_NOT_FOUND_MODAL"
	ShowUserNotFoundModalType            = "globalModals/SHOW_USER_NOT_FOUND_MODAL"
	HideStoriesSettingsType              = "globalModals/HIDE_STORIES_SETTINGS"
	ShowStoriesSettingsType              = "globalModals/SHOW_STORIES_SETTINGS"
	ToggleForwardMessageModalType        = "globalModals/TOGGLE_FORWARD_MESSAGE_MODAL"
	HideForwardMessageModalType          = "globalModals/HIDE_FORWARD_MESSAGE_MODAL"
	ToggleProfileEditorType              = "globalModals/TOGGLE_PROFILE_EDITOR"
	ToggleProfileEditorErrorType         = "globalModals/TOGGLE_PROFILE_EDITOR_ERROR"
	ToggleSafetyNumberModalType          = "globalModals/TOGGLE_SAFETY_NUMBER_MODAL"
	ShowSafetyNumberModalType            = "globalModals/SHOW_SAFETY_NUMBER_MODAL"
	HideSafetyNumberModalType            = "globalModals/HIDE_SAFETY_NUMBER_MODAL"
	ToggleAddUserToAnotherGroupModalType = "globalModals/TOGGLE_ADD_USER_TO_ANOTHER_GROUP_MODAL"
	ShowAddUserToAnotherGroupModalType   = "globalModals/SHOW_ADD_USER_TO_ANOTHER_GROUP_MODAL"
	HideAddUserToAnotherGroupModalType   = "globalModals/HIDE_ADD_USER_TO_ANOTHER_GROUP_MODAL"
	ToggleSignalConnectionsModalType     = "globalModals/TOGGLE_SIGNAL_CONNECTIONS_MODAL"
	ShowSendAnywayDialogType             = "globalModals/SHOW_SEND_ANYWAY_DIALOG"
	HideSendAnywayDialogType             = "globalModals/HIDE_SEND_ANYWAY_DIALOG"
)

type (
	ShowContactModal struct {
		ContactID      string
		ConversationID string
	}
	HideContactModal struct{}

	ShowWhatsNewModal struct{}
	HideWhatsNewModal struct{}

	ShowUserNotFoundModal struct {
		State models.UserNotFoundModalState
	}
	HideUserNotFoundModal struct{}

	ShowStoriesSettings struct{}
	HideStoriesSettings struct{}

	ToggleProfileEditor          struct{}
	ToggleProfileEditorError     struct{}
	ToggleSignalConnectionsModal struct{}

	// ToggleSafetyNumberModal replaces the contact id; an absent id hides
	// the modal
	ToggleSafetyNumberModal struct {
		ContactID models.Optional[string]
	}
	ShowSafetyNumberModal struct {
		ContactID string
	}
	HideSafetyNumberModal struct{}

	// ToggleAddUserToAnotherGroupModal replaces the contact id; an absent id
	// hides the modal
	ToggleAddUserToAnotherGroupModal struct {
		ContactID models.Optional[string]
	}
	ShowAddUserToAnotherGroupModal struct {
		ContactID string
	}
	HideAddUserToAnotherGroupModal struct{}

	// ToggleForwardMessageModalAction carries the already resolved
	// projection. Build it with the ToggleForwardMessageModal thunk.
	ToggleForwardMessageModalAction struct {
		Props models.Optional[models.ForwardMessageProps]
	}
	HideForwardMessageModal struct{}

	ShowSendAnywayDialog struct {
		PromiseID            string
		Source               models.Optional[models.SafetyNumberChangeSource]
		ConversationsToPause models.ConversationsToPause
	}
	HideSendAnywayDialog struct{}
)

func (ShowContactModal) Type() string                 { return ShowContactModalType }
func (HideContactModal) Type() string                 { return HideContactModalType }
func (ShowWhatsNewModal) Type() string                { return ShowWhatsNewModalType }
func (HideWhatsNewModal) Type() string                { return HideWhatsNewModalType }
func (ShowUserNotFoundModal) Type() string            { return ShowUserNotFoundModalType }
func (HideUserNotFoundModal) Type() string            { return HideUserNotFoundModalType }
func (ShowStoriesSettings) Type() string              { return ShowStoriesSettingsType }
func (HideStoriesSettings) Type() string              { return HideStoriesSettingsType }
func (ToggleProfileEditor) Type() string              { return ToggleProfileEditorType }
func (ToggleProfileEditorError) Type() string         { return ToggleProfileEditorErrorType }
func (ToggleSignalConnectionsModal) Type() string     { return ToggleSignalConnectionsModalType }
func (ToggleSafetyNumberModal) Type() string          { return ToggleSafetyNumberModalType }
func (ShowSafetyNumberModal) Type() string            { return ShowSafetyNumberModalType }
func (HideSafetyNumberModal) Type() string            { return HideSafetyNumberModalType }
func (ToggleAddUserToAnotherGroupModal) Type() string { return ToggleAddUserToAnotherGroupModalType }
func (ShowAddUserToAnotherGroupModal) Type() string   { return ShowAddUserToAnotherGroupModalType }
func (HideAddUserToAnotherGroupModal) Type() string   { return HideAddUserToAnotherGroupModalType }
func (ToggleForwardMessageModalAction) Type() string  { return ToggleForwardMessageModalType }
func (HideForwardMessageModal) Type() string          { return HideForwardMessageModalType }
func (ShowSendAnywayDialog) Type() string             { return ShowSendAnywayDialogType }
func (HideSendAnywayDialog) Type() string             { return HideSendAnywayDialogType }
