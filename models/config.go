package models

import (
	"strconv"
	"time"
)

// Config holds the runtime configuration of the client
type Config struct {
	MaxAttachments      int           `mapstructure:"max_attachments" yaml:"max_attachments"`
	MaxAttachmentSizeMB int           `mapstructure:"max_attachment_size_mb" yaml:"max_attachment_size_mb"`
	ProcessingWorkers   int           `mapstructure:"processing_workers" yaml:"processing_workers"`
	SupportedImageTypes []string      `mapstructure:"supported_image_types" yaml:"supported_image_types"`
	SupportedVideoTypes []string      `mapstructure:"supported_video_types" yaml:"supported_video_types"`
	ToastTimeout        time.Duration `mapstructure:"toast_timeout" yaml:"toast_timeout"`
	PromiseTTL          time.Duration `mapstructure:"promise_ttl" yaml:"promise_ttl"`
	MessageCacheSize    int           `mapstructure:"message_cache_size" yaml:"message_cache_size"`
	MessageCacheTTL     time.Duration `mapstructure:"message_cache_ttl" yaml:"message_cache_ttl"`
	MessagesFile        string        `mapstructure:"messages_file" yaml:"messages_file"`
	ConversationID      string        `mapstructure:"conversation_id" yaml:"conversation_id"`
	Locale              string        `mapstructure:"locale" yaml:"locale"`
	LocaleFile          string        `mapstructure:"locale_file" yaml:"locale_file"`
	LogFile             string        `mapstructure:"log_file" yaml:"log_file"`
	LogLevel            string        `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig mirrors the limits of the desktop client
var DefaultConfig = Config{
	MaxAttachments:      32,
	MaxAttachmentSizeMB: 100,
	ProcessingWorkers:   4,
	SupportedImageTypes: []string{
		"image/bmp",
		"image/gif",
		"image/jpeg",
		"image/png",
		"image/svg+xml",
		"image/webp",
		"image/x-xbitmap",
	},
	SupportedVideoTypes: []string{
		"video/mp4",
		"video/ogg",
		"video/webm",
	},
	ToastTimeout:     8 * time.Second,
	PromiseTTL:       30 * time.Minute,
	MessageCacheSize: 256,
	MessageCacheTTL:  5 * time.Minute,
	ConversationID:   "note-to-self",
	Locale:           "en",
	LogFile:          "chatdesk.log",
	LogLevel:         "info",
}

// NewConfig returns a copy of DefaultConfig that callers may modify freely
func NewConfig() Config {
	cfg := DefaultConfig
	cfg.SupportedImageTypes = append([]string(nil), DefaultConfig.SupportedImageTypes...)
	cfg.SupportedVideoTypes = append([]string(nil), DefaultConfig.SupportedVideoTypes...)
	return cfg
}

// Validate rejects negative limits and fills unset fields with defaults
func (c *Config) Validate() error {
	if c.MaxAttachments < 0 {
		return &ConfigError{Field: "max_attachments", Message: "must not be negative, got " + strconv.Itoa(c.MaxAttachments)}
	}

	if c.MaxAttachmentSizeMB < 0 {
		return &ConfigError{Field: "max_attachment_size_mb", Message: "must not be negative, got " + strconv.Itoa(c.MaxAttachmentSizeMB)}
	}

	if c.ProcessingWorkers < 0 {
		return &ConfigError{Field: "processing_workers", Message: "must not be negative, got " + strconv.Itoa(c.ProcessingWorkers)}
	}

	if c.MaxAttachments == 0 {
		c.MaxAttachments = DefaultConfig.MaxAttachments
	}

	if c.MaxAttachmentSizeMB == 0 {
		c.MaxAttachmentSizeMB = DefaultConfig.MaxAttachmentSizeMB
	}

	if c.ProcessingWorkers == 0 {
		c.ProcessingWorkers = DefaultConfig.ProcessingWorkers
	}

	if len(c.SupportedImageTypes) == 0 {
		c.SupportedImageTypes = append([]string(nil), DefaultConfig.SupportedImageTypes...)
	}

	if len(c.SupportedVideoTypes) == 0 {
		c.SupportedVideoTypes = append([]string(nil), DefaultConfig.SupportedVideoTypes...)
	}

	if c.ToastTimeout <= 0 {
		c.ToastTimeout = DefaultConfig.ToastTimeout
	}

	if c.PromiseTTL <= 0 {
		c.PromiseTTL = DefaultConfig.PromiseTTL
	}

	if c.MessageCacheSize <= 0 {
		c.MessageCacheSize = DefaultConfig.MessageCacheSize
	}

	if c.MessageCacheTTL <= 0 {
		c.MessageCacheTTL = DefaultConfig.MessageCacheTTL
	}

	if c.ConversationID == "" {
		c.ConversationID = DefaultConfig.ConversationID
	}

	if c.Locale == "" {
		c.Locale = DefaultConfig.Locale
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}

	return nil
}

// MaxAttachmentSizeBytes returns the per-file limit in bytes
func (c Config) MaxAttachmentSizeBytes() int64 {
	return int64(c.MaxAttachmentSizeMB) * 1024 * 1024
}

// ConfigError reports an invalid configuration field
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
