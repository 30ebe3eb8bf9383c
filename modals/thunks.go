package modals

import (
	"context"
	"errors"
	"fmt"

	"chatdesk/messages"
	"chatdesk/models"
	"chatdesk/promises"
)

// ErrMessageNotFound is returned when the message to forward does not exist
var ErrMessageNotFound = errors.New("no message found")

// Dispatch applies an action to the store
type Dispatch func(Action)

// GetState returns the current state
type GetState func() State

// Thunk is an action creator that may do work before dispatching. A thunk
// that returns an error has dispatched nothing.
type Thunk func(ctx context.Context, dispatch Dispatch, getState GetState) error

// ToggleForwardMessageModal opens the forward dialog for messageID, or closes
// it when messageID is empty. The message is looked up before anything is
// dispatched.
func ToggleForwardMessageModal(lookup messages.Lookup, messageID string) Thunk {
	return func(ctx context.Context, dispatch Dispatch, _ GetState) error {
		if messageID == "" {
			dispatch(ToggleForwardMessageModalAction{})
			return nil
		}

		msg, err := lookup.GetMessageByID(ctx, messageID)
		if err != nil {
			return fmt.Errorf("forward message %s: %w", messageID, err)
		}
		if msg == nil {
			return fmt.Errorf("forward message %s: %w", messageID, ErrMessageNotFound)
		}

		dispatch(ToggleForwardMessageModalAction{
			Props: models.Some(messages.Project(*msg)),
		})
		return nil
	}
}

// ShowBlockingSafetyNumberChangeDialog registers deferred in registry right
// away and returns a thunk that shows the send-anyway dialog for it. The
// deferred is later settled by ResolveBlockingSafetyNumberChange, or rejected
// when the registry entry expires.
func ShowBlockingSafetyNumberChangeDialog(
	registry *promises.Registry[bool],
	conversationsToPause models.ConversationsToPause,
	deferred *promises.Deferred[bool],
	source models.Optional[models.SafetyNumberChangeSource],
) Thunk {
	promiseID := registry.Set(deferred)
	conversations := conversationsToPause.Clone()

	return func(_ context.Context, dispatch Dispatch, _ GetState) error {
		dispatch(ShowSendAnywayDialog{
			PromiseID:            promiseID,
			Source:               source,
			ConversationsToPause: conversations,
		})
		return nil
	}
}

// ResolveBlockingSafetyNumberChange settles the pending send-anyway decision
// with proceed and hides the dialog. The dialog is hidden even when the
// decision had already expired.
func ResolveBlockingSafetyNumberChange(registry *promises.Registry[bool], proceed bool) Thunk {
	return func(_ context.Context, dispatch Dispatch, getState GetState) error {
		data, ok := getState().SafetyNumberChangedBlockingData.Get()
		if !ok {
			return fmt.Errorf("send anyway: %w", promises.ErrNotFound)
		}

		err := registry.Resolve(data.PromiseID, proceed)
		dispatch(HideSendAnywayDialog{})
		return err
	}
}
