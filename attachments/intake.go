package attachments

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"chatdesk/logging"
	"chatdesk/models"
	"chatdesk/toast"

	"golang.org/x/sync/errgroup"
)

// Processor loads one accepted file into a draft attachment
type Processor interface {
	ProcessAttachment(ctx context.Context, file models.File) (models.AttachmentDraft, error)
}

// DraftSink receives draft mutations for a conversation
type DraftSink interface {
	AddPendingAttachment(conversationID string, draft models.AttachmentDraft)
	AddAttachment(conversationID string, draft models.AttachmentDraft)
	RemoveAttachment(conversationID string, path string)
}

// ToastFunc is called for every toast an intake produces. Calls from one
// batch never overlap.
type ToastFunc func(toast.Toast)

// FileResult is the processing outcome of one dispatched file
type FileResult struct {
	File  models.File
	Draft models.AttachmentDraft
	Err   error
}

// Batch tracks the files dispatched by one Handle call
type Batch struct {
	Decision Decision

	done    chan struct{}
	emitMu  sync.Mutex // serializes onToast calls
	mu      sync.Mutex
	results []FileResult
	toasts  []toast.Toast
	onToast ToastFunc
}

// Done is closed once every dispatched file has settled
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until every dispatched file has settled, or ctx ends
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the per-file outcomes in dispatch order. Only complete
// after Done is closed.
func (b *Batch) Results() []FileResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]FileResult(nil), b.results...)
}

// Toasts returns every toast the batch produced, policy toasts first
func (b *Batch) Toasts() []toast.Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]toast.Toast(nil), b.toasts...)
}

func (b *Batch) emit(t toast.Toast) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	b.toasts = append(b.toasts, t)
	b.mu.Unlock()

	if b.onToast != nil {
		b.onToast(t)
	}
}

// Intake validates selected files and dispatches the accepted ones
type Intake struct {
	policy    Policy
	processor Processor
	sink      DraftSink
	workers   int
	logger    *slog.Logger
}

// NewIntake creates an intake. workers bounds concurrent processing; zero or
// less means unbounded.
func NewIntake(policy Policy, processor Processor, sink DraftSink, workers int, logger *slog.Logger) *Intake {
	return &Intake{
		policy:    policy,
		processor: processor,
		sink:      sink,
		workers:   workers,
		logger:    logging.Component(logging.OrNop(logger), "attachments"),
	}
}

// Policy returns the limits the intake applies
func (in *Intake) Policy() Policy {
	return in.policy
}

// Handle evaluates files against drafts and starts processing the accepted
// files. It returns without waiting for processing.
func (in *Intake) Handle(ctx context.Context, conversationID string, files []models.File, drafts []models.AttachmentDraft, onToast ToastFunc) *Batch {
	decision := in.policy.Evaluate(files, drafts)
	batch := &Batch{
		Decision: decision,
		done:     make(chan struct{}),
		onToast:  onToast,
	}

	for _, t := range decision.Toasts {
		batch.emit(t)
	}

	in.logger.Debug("evaluated attachment batch",
		"conversation", conversationID,
		"files", len(files),
		"accepted", len(decision.Accepted),
		"rejected", len(decision.Rejected),
		"toasts", decision.Describe())

	if len(decision.Accepted) == 0 {
		close(batch.done)
		return batch
	}

	batch.results = make([]FileResult, len(decision.Accepted))
	for i, file := range decision.Accepted {
		batch.results[i].File = file
		in.sink.AddPendingAttachment(conversationID, pendingDraft(file))
	}

	g, gctx := errgroup.WithContext(ctx)
	if in.workers > 0 {
		g.SetLimit(in.workers)
	}

	go func() {
		defer close(batch.done)
		for i, file := range decision.Accepted {
			g.Go(func() error {
				in.process(gctx, conversationID, batch, i, file)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return batch
}

func (in *Intake) process(ctx context.Context, conversationID string, batch *Batch, i int, file models.File) {
	path := draftPath(file)

	draft, err := in.processor.ProcessAttachment(ctx, file)
	if err != nil {
		in.sink.RemoveAttachment(conversationID, path)
		in.logger.Warn("failed to load attachment", "file", path, "error", err)

		batch.mu.Lock()
		batch.results[i].Err = err
		batch.mu.Unlock()
		batch.emit(toast.New(toast.UnableToLoadAttachment))
		return
	}

	draft.Path = path
	draft.Pending = false
	in.sink.AddAttachment(conversationID, draft)

	batch.mu.Lock()
	batch.results[i].Draft = draft
	batch.mu.Unlock()
}

func pendingDraft(file models.File) models.AttachmentDraft {
	return models.AttachmentDraft{
		Path:        draftPath(file),
		FileName:    fileName(file),
		ContentType: file.ContentType,
		Size:        file.Size,
		Pending:     true,
	}
}

func draftPath(file models.File) string {
	if file.Path != "" {
		return file.Path
	}
	return file.Name
}

func fileName(file models.File) string {
	if file.Name != "" {
		return file.Name
	}
	return filepath.Base(file.Path)
}
