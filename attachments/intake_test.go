package attachments

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"chatdesk/drafts"
	"chatdesk/models"
	"chatdesk/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mb = 1024 * 1024

type fakeProcessor struct {
	mu     sync.Mutex
	fail   map[string]error
	called []string
}

func (p *fakeProcessor) ProcessAttachment(_ context.Context, file models.File) (models.AttachmentDraft, error) {
	p.mu.Lock()
	p.called = append(p.called, file.Name)
	err := p.fail[file.Name]
	p.mu.Unlock()

	if err != nil {
		return models.AttachmentDraft{}, err
	}
	return models.AttachmentDraft{
		FileName:    file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
	}, nil
}

func newIntake(p Processor, sink DraftSink) *Intake {
	return NewIntake(DefaultPolicy(), p, sink, 2, nil)
}

func waitBatch(t *testing.T, b *Batch) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, b.Wait(ctx))
}

func TestOversizedFileDroppedOthersAccepted(t *testing.T) {
	files := []models.File{
		{Name: "huge.pdf", Path: "/tmp/huge.pdf", Size: 150 * mb, ContentType: "application/pdf"},
		{Name: "photo.png", Path: "/tmp/photo.png", Size: 2 * mb, ContentType: "image/png"},
	}

	d := DefaultPolicy().Evaluate(files, nil)

	require.Len(t, d.Accepted, 1)
	assert.Equal(t, "photo.png", d.Accepted[0].Name)
	assert.False(t, d.BatchRejected)

	require.Len(t, d.Toasts, 1)
	assert.Equal(t, toast.FileSize, d.Toasts[0].Kind)
	assert.Equal(t, 100, d.Toasts[0].Limit())
	assert.Equal(t, "MB", d.Toasts[0].Units())
	require.Len(t, d.Rejected, 1)
	assert.Equal(t, "huge.pdf", d.Rejected[0].File.Name)
}

func TestCombinationRules(t *testing.T) {
	tests := []struct {
		name   string
		files  []models.File
		drafts []models.AttachmentDraft
		want   toast.Kind
	}{
		{
			name: "image and pdf",
			files: []models.File{
				{Name: "a.png", Size: 10, ContentType: "image/png"},
				{Name: "b.pdf", Size: 10, ContentType: "application/pdf"},
			},
			want: toast.CannotMixMultiAndNonMultiAttachments,
		},
		{
			name:   "pdf onto image draft",
			files:  []models.File{{Name: "b.pdf", Size: 10, ContentType: "application/pdf"}},
			drafts: []models.AttachmentDraft{{Path: "a.png", ContentType: "image/png"}},
			want:   toast.CannotMixMultiAndNonMultiAttachments,
		},
		{
			name: "two documents",
			files: []models.File{
				{Name: "a.pdf", Size: 10, ContentType: "application/pdf"},
				{Name: "b.zip", Size: 10, ContentType: "application/zip"},
			},
			want: toast.UnsupportedMultiAttachment,
		},
		{
			name:   "document onto document draft",
			files:  []models.File{{Name: "b.zip", Size: 10, ContentType: "application/zip"}},
			drafts: []models.AttachmentDraft{{Path: "a.pdf", ContentType: "application/pdf"}},
			want:   toast.UnsupportedMultiAttachment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultPolicy().Evaluate(tt.files, tt.drafts)

			assert.True(t, d.BatchRejected)
			assert.Empty(t, d.Accepted)
			assert.Len(t, d.Rejected, len(tt.files))
			require.Len(t, d.Toasts, 1)
			assert.Equal(t, tt.want, d.Toasts[0].Kind)
		})
	}
}

func TestImagesAndVideosMayBeCombined(t *testing.T) {
	files := []models.File{
		{Name: "a.png", Size: 10, ContentType: "image/png"},
		{Name: "b.mp4", Size: 10, ContentType: "video/mp4"},
	}
	drafts := []models.AttachmentDraft{{Path: "c.gif", ContentType: "image/gif"}}

	d := DefaultPolicy().Evaluate(files, drafts)

	assert.Len(t, d.Accepted, 2)
	assert.Empty(t, d.Toasts)
}

func TestMaxAttachmentsRejectsWholeBatch(t *testing.T) {
	drafts := make([]models.AttachmentDraft, 31)
	for i := range drafts {
		drafts[i] = models.AttachmentDraft{ContentType: "image/png"}
	}
	files := []models.File{
		{Name: "a.png", Size: 10, ContentType: "image/png"},
		{Name: "b.png", Size: 10, ContentType: "image/png"},
	}

	d := DefaultPolicy().Evaluate(files, drafts)

	assert.True(t, d.BatchRejected)
	assert.Empty(t, d.Accepted)
	require.Len(t, d.Toasts, 1)
	assert.Equal(t, toast.MaxAttachments, d.Toasts[0].Kind)

	d = DefaultPolicy().Evaluate(files[:1], drafts)
	assert.Len(t, d.Accepted, 1)
}

func TestDangerousFilesDropped(t *testing.T) {
	files := []models.File{
		{Name: "setup.EXE", Size: 10, ContentType: "application/octet-stream"},
		{Name: "scan.tiff", Size: 10, ContentType: "image/tiff"},
		{Name: "clip.avi", Size: 10, ContentType: "video/x-msvideo"},
		{Name: "ok.webp", Size: 10, ContentType: "image/webp"},
	}

	d := DefaultPolicy().Evaluate(files, nil)

	require.Len(t, d.Accepted, 1)
	assert.Equal(t, "ok.webp", d.Accepted[0].Name)
	require.Len(t, d.Toasts, 3)
	for _, tt := range d.Toasts {
		assert.Equal(t, toast.DangerousFileType, tt.Kind)
	}
}

func TestOversizedDangerousFileGetsOneToast(t *testing.T) {
	d := DefaultPolicy().Evaluate([]models.File{{Name: "big.exe", Size: 200 * mb}}, nil)

	require.Len(t, d.Toasts, 1)
	assert.Equal(t, toast.FileSize, d.Toasts[0].Kind)
}

func TestEmptyBatch(t *testing.T) {
	d := DefaultPolicy().Evaluate(nil, nil)

	assert.Empty(t, d.Toasts)
	assert.Empty(t, d.Accepted)
	assert.False(t, d.BatchRejected)
}

func TestResolveContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	open := func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(png)), nil }

	assert.Equal(t, "image/jpeg", ResolveContentType(models.File{Name: "a", ContentType: "Image/JPEG; q=1"}))
	assert.Equal(t, "image/png", ResolveContentType(models.File{Name: "noext", Open: open}))
	assert.Equal(t, "image/png", ResolveContentType(models.File{Name: "noext", ContentType: "application/octet-stream", Open: open}))
	assert.Equal(t, "text/plain", ResolveContentType(models.File{Name: "notes.txt"}))
	assert.Equal(t, "application/octet-stream", ResolveContentType(models.File{Name: "blob"}))
}

func TestAcceptContentTypes(t *testing.T) {
	p := DefaultPolicy()

	assert.Nil(t, p.AcceptContentTypes(nil))
	assert.Nil(t, p.AcceptContentTypes([]models.AttachmentDraft{{ContentType: "application/pdf"}}))

	types := p.AcceptContentTypes([]models.AttachmentDraft{
		{ContentType: "application/pdf"},
		{ContentType: "video/mp4"},
	})
	assert.Contains(t, types, "image/png")
	assert.Contains(t, types, "video/webm")
	assert.NotContains(t, types, "application/pdf")
}

func TestHandleDispatchesAcceptedFiles(t *testing.T) {
	store := drafts.NewStore()
	proc := &fakeProcessor{fail: map[string]error{"broken.png": errors.New("decode failed")}}

	var mu sync.Mutex
	var seen []toast.Kind
	onToast := func(t toast.Toast) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, t.Kind)
	}

	files := []models.File{
		{Name: "good.png", Path: "/p/good.png", Size: 10, ContentType: "image/png"},
		{Name: "broken.png", Path: "/p/broken.png", Size: 10, ContentType: "image/png"},
		{Name: "huge.png", Path: "/p/huge.png", Size: 101 * mb, ContentType: "image/png"},
	}

	batch := newIntake(proc, store).Handle(context.Background(), "c1", files, nil, onToast)
	waitBatch(t, batch)

	list := store.Attachments("c1")
	require.Len(t, list, 1)
	assert.Equal(t, "/p/good.png", list[0].Path)
	assert.False(t, list[0].Pending)

	assert.ElementsMatch(t, []string{"good.png", "broken.png"}, proc.called)

	results := batch.Results()
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []toast.Kind{toast.FileSize, toast.UnableToLoadAttachment}, seen)
	assert.Len(t, batch.Toasts(), 2)
}

func TestHandleRejectedBatchDispatchesNothing(t *testing.T) {
	store := drafts.NewStore()
	proc := &fakeProcessor{}
	files := []models.File{
		{Name: "a.png", Size: 10, ContentType: "image/png"},
		{Name: "b.pdf", Size: 10, ContentType: "application/pdf"},
	}

	batch := newIntake(proc, store).Handle(context.Background(), "c1", files, nil, nil)

	select {
	case <-batch.Done():
	default:
		t.Fatal("rejected batch should be settled immediately")
	}
	assert.Empty(t, proc.called)
	assert.Nil(t, store.Attachments("c1"))
}

type blockingProcessor struct {
	release chan struct{}
}

func (p *blockingProcessor) ProcessAttachment(ctx context.Context, file models.File) (models.AttachmentDraft, error) {
	select {
	case <-p.release:
		return models.AttachmentDraft{FileName: file.Name, ContentType: file.ContentType}, nil
	case <-ctx.Done():
		return models.AttachmentDraft{}, ctx.Err()
	}
}

func TestHandleDoesNotBlockCaller(t *testing.T) {
	store := drafts.NewStore()
	proc := &blockingProcessor{release: make(chan struct{})}
	files := []models.File{{Name: "a.png", Path: "a.png", Size: 10, ContentType: "image/png"}}

	batch := newIntake(proc, store).Handle(context.Background(), "c1", files, nil, nil)

	assert.Equal(t, 1, store.PendingCount("c1"))
	close(proc.release)
	waitBatch(t, batch)
	assert.Zero(t, store.PendingCount("c1"))
}

type failSecondProcessor struct {
	mu    sync.Mutex
	calls int
}

func (p *failSecondProcessor) ProcessAttachment(_ context.Context, file models.File) (models.AttachmentDraft, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls > 1 {
		return models.AttachmentDraft{}, errors.New("read failed")
	}
	return models.AttachmentDraft{FileName: file.Name, ContentType: file.ContentType}, nil
}

func TestRepeatedPathProcessedOnce(t *testing.T) {
	store := drafts.NewStore()
	proc := &failSecondProcessor{}
	files := []models.File{
		{Name: "a.png", Path: "/p/a.png", Size: 10, ContentType: "image/png"},
		{Name: "a.png", Path: "/p/a.png", Size: 10, ContentType: "image/png"},
	}

	batch := NewIntake(DefaultPolicy(), proc, store, 1, nil).Handle(context.Background(), "c1", files, nil, nil)
	waitBatch(t, batch)

	require.Len(t, batch.Decision.Accepted, 1)
	require.Len(t, batch.Results(), 1)
	assert.NoError(t, batch.Results()[0].Err)
	assert.Equal(t, 1, proc.calls)

	list := store.Attachments("c1")
	require.Len(t, list, 1)
	assert.Equal(t, "/p/a.png", list[0].Path)
}

func TestRepeatedPathsCountOnceTowardsLimit(t *testing.T) {
	drafts := make([]models.AttachmentDraft, 31)
	for i := range drafts {
		drafts[i] = models.AttachmentDraft{ContentType: "image/png"}
	}
	files := []models.File{
		{Name: "a.png", Path: "/p/a.png", Size: 10, ContentType: "image/png"},
		{Name: "a.png", Path: "/p/a.png", Size: 10, ContentType: "image/png"},
	}

	d := DefaultPolicy().Evaluate(files, drafts)
	assert.False(t, d.BatchRejected)
	assert.Len(t, d.Accepted, 1)
}

func TestToastCallbackMayReadBatch(t *testing.T) {
	proc := &blockingProcessor{release: make(chan struct{})}
	files := []models.File{{Name: "a.png", Path: "a.png", Size: 10, ContentType: "image/png"}}

	var batch *Batch
	seen := make(chan int, 1)
	onToast := func(toast.Toast) {
		seen <- len(batch.Toasts()) + len(batch.Results())
	}

	failing := &failingBlockingProcessor{blockingProcessor: proc}
	batch = newIntake(failing, drafts.NewStore()).Handle(context.Background(), "c1", files, nil, onToast)
	close(proc.release)

	select {
	case n := <-seen:
		assert.Equal(t, 2, n)
	case <-time.After(2 * time.Second):
		t.Fatal("toast callback blocked")
	}
	waitBatch(t, batch)
}

type failingBlockingProcessor struct {
	*blockingProcessor
}

func (p *failingBlockingProcessor) ProcessAttachment(ctx context.Context, file models.File) (models.AttachmentDraft, error) {
	if _, err := p.blockingProcessor.ProcessAttachment(ctx, file); err != nil {
		return models.AttachmentDraft{}, err
	}
	return models.AttachmentDraft{}, errors.New("decode failed")
}
