package main

import (
	"fmt"
	"strings"

	"chatdesk/attachments"
	"chatdesk/drafts"
	"chatdesk/i18n"
	"chatdesk/logging"
	"chatdesk/messages"
	"chatdesk/modals"
	"chatdesk/models"
	"chatdesk/processor"
	"chatdesk/promises"
	"chatdesk/tui"
)

const defaultConfigFile = "chatdesk.yaml"

// loadConfig layers defaults, the config file, CHATDESK_* variables and flags
func (c *cli) loadConfig() (models.Config, error) {
	v := c.v
	defaults := models.NewConfig()

	v.SetDefault("max_attachments", defaults.MaxAttachments)
	v.SetDefault("max_attachment_size_mb", defaults.MaxAttachmentSizeMB)
	v.SetDefault("processing_workers", defaults.ProcessingWorkers)
	v.SetDefault("supported_image_types", defaults.SupportedImageTypes)
	v.SetDefault("supported_video_types", defaults.SupportedVideoTypes)
	v.SetDefault("toast_timeout", defaults.ToastTimeout)
	v.SetDefault("promise_ttl", defaults.PromiseTTL)
	v.SetDefault("message_cache_size", defaults.MessageCacheSize)
	v.SetDefault("message_cache_ttl", defaults.MessageCacheTTL)
	v.SetDefault("messages_file", defaults.MessagesFile)
	v.SetDefault("conversation_id", defaults.ConversationID)
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("locale_file", defaults.LocaleFile)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("CHATDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := c.configFile
	if configFile == "" && fileExists(defaultConfigFile) {
		configFile = defaultConfigFile
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return models.Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	cfg := defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return models.Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return models.Config{}, err
	}
	return cfg, nil
}

// buildDeps wires the stores and services the commands share. cleanup
// releases the log file and rejects pending decisions.
func buildDeps(cfg models.Config) (tui.Deps, func(), error) {
	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	localizer, err := i18n.New(cfg.Locale)
	if err != nil {
		logCloser.Close()
		return tui.Deps{}, nil, err
	}
	if cfg.LocaleFile != "" {
		if err := localizer.LoadFile(cfg.LocaleFile); err != nil {
			logCloser.Close()
			return tui.Deps{}, nil, err
		}
	}

	repository, err := messages.LoadRepository(cfg.MessagesFile)
	if err != nil {
		logCloser.Close()
		return tui.Deps{}, nil, err
	}

	registry := promises.NewRegistry[bool](cfg.PromiseTTL, logger)
	draftStore := drafts.NewStore()
	loader := processor.NewLoader(&cfg, logger)

	deps := tui.Deps{
		Config:     cfg,
		Store:      modals.NewStore(modals.EmptyState(), logger),
		Intake:     attachments.NewIntake(attachments.PolicyFromConfig(cfg), loader, draftStore, cfg.ProcessingWorkers, logger),
		Drafts:     draftStore,
		Lookup:     messages.NewCachedLookup(repository, cfg.MessageCacheSize, cfg.MessageCacheTTL, logger),
		Repository: repository,
		Promises:   registry,
		Localizer:  localizer,
		Logger:     logger,
	}

	logger.Info("chatdesk starting",
		"conversation_id", cfg.ConversationID,
		"locale", localizer.Locale(),
		"max_attachments", cfg.MaxAttachments,
		"max_attachment_size_mb", cfg.MaxAttachmentSizeMB)

	cleanup := func() {
		registry.Close()
		logCloser.Close()
	}
	return deps, cleanup, nil
}
