// Package processor loads accepted attachment files into memory.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"chatdesk/logging"
	"chatdesk/models"

	"github.com/gabriel-vasile/mimetype"
)

// ErrTooLarge is returned when a file turns out bigger than the size limit
var ErrTooLarge = errors.New("attachment exceeds size limit")

// ErrShortRead is returned when fewer bytes than the declared size were read
var ErrShortRead = errors.New("attachment truncated")

// Loader reads files into non-pending draft attachments
type Loader struct {
	config *models.Config
	logger *slog.Logger
}

// NewLoader creates a loader bounded by config's attachment size limit
func NewLoader(config *models.Config, logger *slog.Logger) *Loader {
	if config == nil {
		defaults := models.NewConfig()
		config = &defaults
	}
	return &Loader{
		config: config,
		logger: logging.Component(logging.OrNop(logger), "processor"),
	}
}

// ProcessAttachment reads file and returns the loaded draft
func (l *Loader) ProcessAttachment(ctx context.Context, file models.File) (models.AttachmentDraft, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return models.AttachmentDraft{}, err
	}

	rc, err := l.open(file)
	if err != nil {
		return models.AttachmentDraft{}, fmt.Errorf("failed to open %s: %w", displayName(file), err)
	}
	defer rc.Close()

	limit := l.config.MaxAttachmentSizeBytes()
	data, err := io.ReadAll(io.LimitReader(contextReader{ctx: ctx, r: rc}, limit+1))
	if err != nil {
		return models.AttachmentDraft{}, fmt.Errorf("failed to read %s: %w", displayName(file), err)
	}
	if int64(len(data)) > limit {
		return models.AttachmentDraft{}, fmt.Errorf("%s: %w", displayName(file), ErrTooLarge)
	}
	if file.Size > 0 && int64(len(data)) < file.Size {
		return models.AttachmentDraft{}, fmt.Errorf("%s: read %d of %d bytes: %w", displayName(file), len(data), file.Size, ErrShortRead)
	}

	contentType := models.BaseMIMEType(file.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = models.BaseMIMEType(mimetype.Detect(data).String())
	}

	draft := models.AttachmentDraft{
		Path:        file.Path,
		FileName:    displayName(file),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}

	l.logger.Debug("loaded attachment",
		"file", draft.FileName,
		"content_type", draft.ContentType,
		"size", draft.Size,
		"elapsed", time.Since(startTime))

	return draft, nil
}

func (l *Loader) open(file models.File) (io.ReadCloser, error) {
	if file.Open != nil {
		return file.Open()
	}
	if file.Path == "" {
		return nil, errors.New("file has no path")
	}
	return os.Open(file.Path)
}

func displayName(file models.File) string {
	if file.Name != "" {
		return file.Name
	}
	return filepath.Base(file.Path)
}

// contextReader stops reading once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
