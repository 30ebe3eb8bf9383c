package models

import "time"

// ContactModalState identifies the contact shown in the contact modal
type ContactModalState struct {
	ContactID      string `json:"contact_id" yaml:"contact_id"`
	ConversationID string `json:"conversation_id,omitempty" yaml:"conversation_id,omitempty"`
}

// UserNotFoundKind discriminates UserNotFoundModalState
type UserNotFoundKind string

const (
	UserNotFoundPhoneNumber UserNotFoundKind = "phoneNumber"
	UserNotFoundUsername    UserNotFoundKind = "username"
)

// UserNotFoundModalState describes the lookup that failed. Only the field
// matching Kind is meaningful.
type UserNotFoundModalState struct {
	Kind        UserNotFoundKind `json:"type" yaml:"type"`
	PhoneNumber string           `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Username    string           `json:"username,omitempty" yaml:"username,omitempty"`
}

// UserNotFoundByPhoneNumber builds a phone number lookup failure
func UserNotFoundByPhoneNumber(phoneNumber string) UserNotFoundModalState {
	return UserNotFoundModalState{Kind: UserNotFoundPhoneNumber, PhoneNumber: phoneNumber}
}

// UserNotFoundByUsername builds a username lookup failure
func UserNotFoundByUsername(username string) UserNotFoundModalState {
	return UserNotFoundModalState{Kind: UserNotFoundUsername, Username: username}
}

// Identifier returns the phone number or username that was searched for
func (s UserNotFoundModalState) Identifier() string {
	if s.Kind == UserNotFoundUsername {
		return s.Username
	}
	return s.PhoneNumber
}

// Message represents a stored chat message
type Message struct {
	ID             string            `json:"id" yaml:"id"`
	ConversationID string            `json:"conversation_id" yaml:"conversation_id"`
	Author         string            `json:"author" yaml:"author"`
	Body           string            `json:"body" yaml:"body"`
	SentAt         time.Time         `json:"sent_at" yaml:"sent_at"`
	Attachments    []AttachmentDraft `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// AttachmentSummary is the display form of a message attachment
type AttachmentSummary struct {
	FileName    string
	ContentType string
	Size        string
}

// ForwardMessageProps is the display-ready projection of a message that the
// forward dialog renders
type ForwardMessageProps struct {
	ID             string
	ConversationID string
	Author         string
	Text           string
	Timestamp      string
	Attachments    []AttachmentSummary
}

// SafetyNumberChangeSource names the flow that raised a safety number change
type SafetyNumberChangeSource string

const (
	SourceCalling      SafetyNumberChangeSource = "Calling"
	SourceContactModal SafetyNumberChangeSource = "ContactModal"
	SourceInitiateCall SafetyNumberChangeSource = "InitiateCall"
	SourceMessageSend  SafetyNumberChangeSource = "MessageSend"
	SourceReaction     SafetyNumberChangeSource = "Reaction"
	SourceStory        SafetyNumberChangeSource = "Story"
)

// ConversationsToPause maps a conversation id to the set of member ids whose
// safety number changed
type ConversationsToPause map[string]map[string]struct{}

// Clone returns a deep copy
func (c ConversationsToPause) Clone() ConversationsToPause {
	if c == nil {
		return nil
	}
	out := make(ConversationsToPause, len(c))
	for conversationID, members := range c {
		set := make(map[string]struct{}, len(members))
		for member := range members {
			set[member] = struct{}{}
		}
		out[conversationID] = set
	}
	return out
}

// MemberCount returns the number of affected members across all conversations
func (c ConversationsToPause) MemberCount() int {
	total := 0
	for _, members := range c {
		total += len(members)
	}
	return total
}

// SafetyNumberChangedBlockingData correlates a pending send-anyway decision
// with the conversations that get paused if the user proceeds
type SafetyNumberChangedBlockingData struct {
	PromiseID            string
	Source               Optional[SafetyNumberChangeSource]
	ConversationsToPause ConversationsToPause
}
