package utils

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{150 * 1024 * 1024, "150.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size))
	}
}

func TestParseCommaSeparatedList(t *testing.T) {
	assert.Nil(t, ParseCommaSeparatedList(""))
	assert.Equal(t, []string{"a.png", "b c.pdf"}, ParseCommaSeparatedList(" a.png, ,b c.pdf "))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "hello w...", TruncateString("hello world!", 10))
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	file, err := FileFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "note.txt", file.Name)
	assert.Equal(t, int64(5), file.Size)
	assert.Empty(t, file.ContentType)

	rc, err := file.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = FileFromPath(dir)
	assert.ErrorContains(t, err, "directory")

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	file, err = FileFromPath(empty)
	require.NoError(t, err)
	assert.Zero(t, file.Size)
}

func TestFilesFromPathsCollectsErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0o644))

	files, errs := FilesFromPaths([]string{good, good, filepath.Join(dir, "missing")})

	assert.Len(t, files, 1)
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "does not exist")
}

func TestIntakeReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "intake.yml")
	report := IntakeReport{
		GeneratedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ConversationID: "note-to-self",
		Accepted:       []ReportFile{{Name: "a.png", Path: "/a.png", ContentType: "image/png", Size: "2.0 MB", Loaded: true}},
		Rejected:       []ReportRejected{{Name: "b.pdf", Path: "/b.pdf", Toast: "ToastFileSize", Message: "too big"}},
		Toasts:         []string{"ToastFileSize"},
	}

	require.NoError(t, WriteIntakeReport(path, report))

	got, err := ReadIntakeReport(path)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "conversation_id: note-to-self")
}
