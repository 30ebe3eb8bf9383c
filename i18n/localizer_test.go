package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateSubstitutesPlaceholders(t *testing.T) {
	l := MustNew()

	assert.Equal(t, "100MB", l.T("fileSizeLimit", map[string]string{"limit": "100", "units": "MB"}))
	assert.Equal(t, "Click on a story to view it", l.T("Stories__placeholder--text", nil))
}

func TestTranslateUnknownKeyAndPlaceholder(t *testing.T) {
	l := MustNew()

	assert.Equal(t, "does-not-exist", l.T("does-not-exist", nil))
	partial := l.T("fileSizeLimit", map[string]string{"units": "MB"})
	assert.NotContains(t, partial, "{{")
	assert.Contains(t, partial, "MB")
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	l, err := New("xx")
	require.NoError(t, err)

	assert.True(t, l.Has("dangerousFileType"))
	assert.Equal(t, "xx", l.Locale())
}

func TestLoadFileOverridesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toastClose: \"Dismiss\"\n"), 0o644))

	l := MustNew()
	require.NoError(t, l.LoadFile(path))

	assert.Equal(t, "Dismiss", l.T("toastClose", nil))
	assert.True(t, l.Has("unableToLoadAttachment"))
}

func TestLoadFileAddsLocaleWithEnglishFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "de.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toastClose: \"Schließen\"\nComposer__drafts: \"{{.count}} Anhänge\"\n"), 0o644))

	l, err := New("de")
	require.NoError(t, err)
	require.NoError(t, l.LoadFile(path))

	assert.Equal(t, "Schließen", l.T("toastClose", nil))
	assert.Equal(t, "3 Anhänge", l.T("Composer__drafts", map[string]string{"count": "3"}))
	assert.Equal(t, "Unable to load selected attachment.", l.T("unableToLoadAttachment", nil))
}

func TestLoadFileRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: [unterminated"), 0o644))

	assert.Error(t, MustNew().LoadFile(path))
}
