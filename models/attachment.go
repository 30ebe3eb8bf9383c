package models

import (
	"io"
	"path/filepath"
	"strings"
)

// MIME type prefixes used to classify attachments
const (
	imagePrefix = "image/"
	videoPrefix = "video/"
)

// File represents a file the user selected for attaching
type File struct {
	Name        string
	Path        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Extension returns the lower-cased extension of the file name, without the dot
func (f File) Extension() string {
	name := f.Name
	if name == "" {
		name = f.Path
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// AttachmentDraft represents a file attached to an in-progress, unsent message
type AttachmentDraft struct {
	Path        string `json:"path" yaml:"path"`
	FileName    string `json:"file_name" yaml:"file_name"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Size        int64  `json:"size" yaml:"size"`
	Pending     bool   `json:"pending" yaml:"pending"`
	Data        []byte `json:"-" yaml:"-"`
}

// IsImage reports whether the draft is an image attachment
func (a AttachmentDraft) IsImage() bool {
	return IsImageType(a.ContentType)
}

// IsVideo reports whether the draft is a video attachment
func (a AttachmentDraft) IsVideo() bool {
	return IsVideoType(a.ContentType)
}

// IsImageType reports whether contentType is an image MIME type
func IsImageType(contentType string) bool {
	return strings.HasPrefix(BaseMIMEType(contentType), imagePrefix)
}

// IsVideoType reports whether contentType is a video MIME type
func IsVideoType(contentType string) bool {
	return strings.HasPrefix(BaseMIMEType(contentType), videoPrefix)
}

// BaseMIMEType strips parameters and normalizes case, so
// "Text/Plain; charset=utf-8" becomes "text/plain"
func BaseMIMEType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
