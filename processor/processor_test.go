package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"chatdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gifHeader = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestLoadsFileFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel")
	require.NoError(t, os.WriteFile(path, gifHeader, 0o644))

	draft, err := NewLoader(nil, nil).ProcessAttachment(context.Background(), models.File{
		Path: path,
		Size: int64(len(gifHeader)),
	})
	require.NoError(t, err)

	assert.Equal(t, path, draft.Path)
	assert.Equal(t, "pixel", draft.FileName)
	assert.Equal(t, "image/gif", draft.ContentType)
	assert.Equal(t, int64(len(gifHeader)), draft.Size)
	assert.Equal(t, gifHeader, draft.Data)
	assert.False(t, draft.Pending)
}

func TestDeclaredContentTypeWins(t *testing.T) {
	file := models.File{
		Name:        "doc.pdf",
		ContentType: "application/pdf",
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(gifHeader)), nil },
	}

	draft, err := NewLoader(nil, nil).ProcessAttachment(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", draft.ContentType)
}

func TestLoaderErrors(t *testing.T) {
	small := models.NewConfig()
	small.MaxAttachmentSizeMB = 1

	tests := []struct {
		name   string
		config *models.Config
		file   models.File
		target error
	}{
		{
			name:   "missing file",
			file:   models.File{Path: filepath.Join(t.TempDir(), "nope")},
			target: os.ErrNotExist,
		},
		{
			name: "short read",
			file: models.File{
				Name: "cut.bin",
				Size: 100,
				Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader([]byte("abc"))), nil },
			},
			target: ErrShortRead,
		},
		{
			name:   "too large",
			config: &small,
			file: models.File{
				Name: "big.bin",
				Open: func() (io.ReadCloser, error) {
					return io.NopCloser(bytes.NewReader(make([]byte, 2*1024*1024))), nil
				},
			},
			target: ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(tt.config, nil).ProcessAttachment(context.Background(), tt.file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), err.Error())
		})
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil, nil).ProcessAttachment(ctx, models.File{Name: "a"})
	assert.ErrorIs(t, err, context.Canceled)
}
