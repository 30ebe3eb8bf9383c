package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chatdesk/models"
	"chatdesk/utils"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_attachment_size_mb: 10\ntoast_timeout: 3s\nmax_attachments: 20\n"), 0o644))
	t.Setenv("CHATDESK_MAX_ATTACHMENTS", "5")

	c := &cli{v: viper.New(), configFile: path}
	cfg, err := c.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxAttachments)
	assert.Equal(t, 10, cfg.MaxAttachmentSizeMB)
	assert.Equal(t, 3*time.Second, cfg.ToastTimeout)
	assert.Equal(t, models.DefaultConfig.SupportedVideoTypes, cfg.SupportedVideoTypes)
	assert.Equal(t, "note-to-self", cfg.ConversationID)
}

func TestLoadConfigErrors(t *testing.T) {
	c := &cli{v: viper.New(), configFile: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := c.loadConfig()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_attachments: -1\n"), 0o644))
	c = &cli{v: viper.New(), configFile: path}
	_, err = c.loadConfig()

	var cfgErr *models.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunCheckWritesReport(t *testing.T) {
	cfg := models.NewConfig()
	cfg.LogFile = ""
	deps, cleanup, err := buildDeps(cfg)
	require.NoError(t, err)
	defer cleanup()

	dir := t.TempDir()
	photo := filepath.Join(dir, "photo")
	require.NoError(t, os.WriteFile(photo, pngHeader, 0o644))
	installer := filepath.Join(dir, "setup.exe")
	require.NoError(t, os.WriteFile(installer, []byte("MZ"), 0o644))
	reportPath := filepath.Join(dir, "out", "report.yaml")

	var out bytes.Buffer
	err = runCheck(context.Background(), &out, deps, []string{photo, installer}, reportPath)
	assert.ErrorIs(t, err, errFilesRejected)
	assert.Contains(t, out.String(), "Report written to")

	report, err := utils.ReadIntakeReport(reportPath)
	require.NoError(t, err)

	assert.Equal(t, "note-to-self", report.ConversationID)
	assert.False(t, report.BatchRejected)
	require.Len(t, report.Accepted, 1)
	assert.Equal(t, "photo", report.Accepted[0].Name)
	assert.Equal(t, "image/png", report.Accepted[0].ContentType)
	assert.True(t, report.Accepted[0].Loaded)

	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "setup.exe", report.Rejected[0].Name)
	assert.Equal(t, "ToastDangerousFileType", report.Rejected[0].Toast)
	assert.Equal(t, "For security reasons, this file type cannot be sent", report.Rejected[0].Message)
	assert.Contains(t, report.AcceptTypes, "video/mp4")
}

func TestRunCheckAllAccepted(t *testing.T) {
	cfg := models.NewConfig()
	cfg.LogFile = ""
	deps, cleanup, err := buildDeps(cfg)
	require.NoError(t, err)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &out, deps, []string{path}, ""))
	assert.Contains(t, out.String(), "Accepted: 1")
}
