// Package modals owns the record of which global modal or dialog is visible.
//
// State is only replaced, never mutated: Reduce returns a new State for every
// action and Store swaps it in whole. Work that must happen before an action
// is dispatched, such as looking up a message, lives in thunks.
package modals

import "chatdesk/models"

// State is the flat visibility record of the global modals
type State struct {
	ContactModalState                   models.Optional[models.ContactModalState]
	ForwardMessageProps                 models.Optional[models.ForwardMessageProps]
	IsProfileEditorVisible              bool
	IsSignalConnectionsVisible          bool
	IsStoriesSettingsVisible            bool
	IsWhatsNewVisible                   bool
	ProfileEditorHasError               bool
	SafetyNumberChangedBlockingData     models.Optional[models.SafetyNumberChangedBlockingData]
	SafetyNumberModalContactID          models.Optional[string]
	AddUserToAnotherGroupModalContactID models.Optional[string]
	UserNotFoundModalState              models.Optional[models.UserNotFoundModalState]
}

// EmptyState has every flag false and every optional absent. It is the
// initial state.
func EmptyState() State {
	return State{}
}

// Clone returns a copy that shares no maps or slices with s
func (s State) Clone() State {
	if props, ok := s.ForwardMessageProps.Get(); ok {
		s.ForwardMessageProps = models.Some(cloneProps(props))
	}
	if data, ok := s.SafetyNumberChangedBlockingData.Get(); ok {
		data.ConversationsToPause = data.ConversationsToPause.Clone()
		s.SafetyNumberChangedBlockingData = models.Some(data)
	}
	return s
}

// AnyVisible reports whether at least one modal is showing
func (s State) AnyVisible() bool {
	return len(s.Visible()) > 0
}

// Visible names the visible modals, topmost first
func (s State) Visible() []string {
	var names []string
	add := func(visible bool, name string) {
		if visible {
			names = append(names, name)
		}
	}

	add(s.SafetyNumberChangedBlockingData.IsSet(), "send-anyway")
	add(s.ForwardMessageProps.IsSet(), "forward-message")
	add(s.SafetyNumberModalContactID.IsSet(), "safety-number")
	add(s.AddUserToAnotherGroupModalContactID.IsSet(), "add-user-to-another-group")
	add(s.UserNotFoundModalState.IsSet(), "user-not-found")
	add(s.ContactModalState.IsSet(), "contact")
	add(s.IsProfileEditorVisible, "profile-editor")
	add(s.IsSignalConnectionsVisible, "signal-connections")
	add(s.IsWhatsNewVisible, "whats-new")
	add(s.IsStoriesSettingsVisible, "stories-settings")
	return names
}

// CloseTopmost returns the action that hides the topmost visible modal, or
// nil when none is visible.
func CloseTopmost(s State) Action {
	switch {
	case s.SafetyNumberChangedBlockingData.IsSet():
		return HideSendAnywayDialog{}
	case s.ForwardMessageProps.IsSet():
		return HideForwardMessageModal{}
	case s.SafetyNumberModalContactID.IsSet():
		return HideSafetyNumberModal{}
	case s.AddUserToAnotherGroupModalContactID.IsSet():
		return HideAddUserToAnotherGroupModal{}
	case s.UserNotFoundModalState.IsSet():
		return HideUserNotFoundModal{}
	case s.ContactModalState.IsSet():
		return HideContactModal{}
	case s.IsProfileEditorVisible:
		return ToggleProfileEditor{}
	case s.IsSignalConnectionsVisible:
		return ToggleSignalConnectionsModal{}
	case s.IsWhatsNewVisible:
		return HideWhatsNewModal{}
	case s.IsStoriesSettingsVisible:
		return HideStoriesSettings{}
	}
	return nil
}
