package drafts

import (
	"fmt"
	"sync"
	"testing"

	"chatdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingReplacedInPlace(t *testing.T) {
	s := NewStore()
	s.AddPendingAttachment("c1", models.AttachmentDraft{Path: "a.png"})
	s.AddPendingAttachment("c1", models.AttachmentDraft{Path: "b.png"})

	s.AddAttachment("c1", models.AttachmentDraft{Path: "a.png", ContentType: "image/png"})

	list := s.Attachments("c1")
	require.Len(t, list, 2)
	assert.Equal(t, "a.png", list[0].Path)
	assert.False(t, list[0].Pending)
	assert.Equal(t, "image/png", list[0].ContentType)
	assert.True(t, list[1].Pending)
	assert.Equal(t, 1, s.PendingCount("c1"))
}

func TestRemoveKeepsOrder(t *testing.T) {
	s := NewStore()
	for _, p := range []string{"a", "b", "c"} {
		s.AddAttachment("c1", models.AttachmentDraft{Path: p})
	}

	s.RemoveAttachment("c1", "b")
	s.RemoveAttachment("c1", "missing")

	list := s.Attachments("c1")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Path)
	assert.Equal(t, "c", list[1].Path)
}

func TestAttachmentsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddAttachment("c1", models.AttachmentDraft{Path: "a"})

	list := s.Attachments("c1")
	list[0].Path = "changed"

	assert.Equal(t, "a", s.Attachments("c1")[0].Path)
}

func TestConversationsAreIsolated(t *testing.T) {
	s := NewStore()
	s.AddAttachment("c1", models.AttachmentDraft{Path: "a"})
	s.AddAttachment("c2", models.AttachmentDraft{Path: "b"})

	s.Clear("c1")

	assert.Nil(t, s.Attachments("c1"))
	assert.Len(t, s.Attachments("c2"), 1)
}

func TestConcurrentWriters(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("file-%d", i)
			s.AddPendingAttachment("c1", models.AttachmentDraft{Path: path})
			s.AddAttachment("c1", models.AttachmentDraft{Path: path})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Attachments("c1"), 50)
	assert.Zero(t, s.PendingCount("c1"))
}
