// Package drafts keeps the ordered draft attachments of each conversation.
package drafts

import (
	"sync"

	"chatdesk/models"
)

// Store holds draft attachments per conversation. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	conversations map[string][]models.AttachmentDraft
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{conversations: make(map[string][]models.AttachmentDraft)}
}

// AddPendingAttachment appends a placeholder for a file still being processed
func (s *Store) AddPendingAttachment(conversationID string, draft models.AttachmentDraft) {
	draft.Pending = true
	s.upsert(conversationID, draft)
}

// AddAttachment replaces the entry with the same path, or appends it
func (s *Store) AddAttachment(conversationID string, draft models.AttachmentDraft) {
	s.upsert(conversationID, draft)
}

func (s *Store) upsert(conversationID string, draft models.AttachmentDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.conversations[conversationID]
	for i := range list {
		if list[i].Path == draft.Path {
			list[i] = draft
			return
		}
	}
	s.conversations[conversationID] = append(list, draft)
}

// RemoveAttachment drops the entry with path, if any
func (s *Store) RemoveAttachment(conversationID string, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.conversations[conversationID]
	for i := range list {
		if list[i].Path == path {
			s.conversations[conversationID] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Attachments returns a copy of the drafts of a conversation, in order
func (s *Store) Attachments(conversationID string) []models.AttachmentDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.conversations[conversationID]
	if len(list) == 0 {
		return nil
	}
	return append([]models.AttachmentDraft(nil), list...)
}

// PendingCount returns how many drafts are still being processed
func (s *Store) PendingCount(conversationID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, d := range s.conversations[conversationID] {
		if d.Pending {
			n++
		}
	}
	return n
}

// Clear removes every draft of a conversation
func (s *Store) Clear(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
}
