// Package messages looks up stored messages by id and derives the forms the
// dialogs render.
package messages

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"chatdesk/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/messages.yaml
var sampleFixtures []byte

// Lookup finds a message by id. A nil message with a nil error means the id
// is unknown.
type Lookup interface {
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
}

type fixtureFile struct {
	Messages []models.Message `yaml:"messages"`
}

// Repository is an in-memory message store
type Repository struct {
	mu       sync.RWMutex
	messages map[string]models.Message
}

// NewRepository creates a repository holding msgs
func NewRepository(msgs ...models.Message) *Repository {
	r := &Repository{messages: make(map[string]models.Message, len(msgs))}
	for _, msg := range msgs {
		r.messages[msg.ID] = msg
	}
	return r
}

// LoadRepository reads a YAML fixtures file. An empty path loads the bundled
// sample conversation.
func LoadRepository(path string) (*Repository, error) {
	data := sampleFixtures
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read messages file %s: %w", path, err)
		}
	}

	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}

	for i, msg := range fixtures.Messages {
		if msg.ID == "" {
			return nil, fmt.Errorf("message %d has no id", i)
		}
	}

	return NewRepository(fixtures.Messages...), nil
}

// GetMessageByID implements Lookup
func (r *Repository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	return &msg, nil
}

// Save stores msg, replacing any message with the same id
func (r *Repository) Save(msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = msg
}

// Conversation returns the messages of a conversation, oldest first
func (r *Repository) Conversation(conversationID string) []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, msg := range r.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out
}

// Latest returns the newest message of a conversation
func (r *Repository) Latest(conversationID string) (models.Message, bool) {
	msgs := r.Conversation(conversationID)
	if len(msgs) == 0 {
		return models.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

// ConversationIDs returns every conversation that has messages, sorted
func (r *Repository) ConversationIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for _, msg := range r.messages {
		if !seen[msg.ConversationID] {
			seen[msg.ConversationID] = true
			ids = append(ids, msg.ConversationID)
		}
	}
	sort.Strings(ids)
	return ids
}
