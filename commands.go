package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"chatdesk/attachments"
	"chatdesk/toast"
	"chatdesk/tui"
	"chatdesk/ui"
	"chatdesk/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errFilesRejected makes check exit non-zero once the decision is printed
var errFilesRejected = errors.New("some files were rejected")

type cli struct {
	v          *viper.Viper
	configFile string
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "chatdesk",
		Short:         "Terminal messaging client",
		Long:          "chatdesk is a terminal messaging client: forward messages, attach files and confirm safety number changes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			deps, cleanup, err := buildDeps(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.Run(deps)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.String("log-file", "", "Log file path (empty disables logging)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("locale", "", "Message catalog locale")
	flags.String("locale-file", "", "YAML catalog overriding bundled messages")
	flags.String("messages", "", "YAML file of stored messages")
	flags.String("conversation", "", "Conversation to open")
	flags.Int("max-attachments", 0, "Maximum attachments per message")
	flags.Int("max-size-mb", 0, "Maximum attachment size in MB")
	flags.Int("workers", 0, "Concurrent attachment loaders")

	for key, flag := range map[string]string{
		"log_file":               "log-file",
		"log_level":              "log-level",
		"locale":                 "locale",
		"locale_file":            "locale-file",
		"messages_file":          "messages",
		"conversation_id":        "conversation",
		"max_attachments":        "max-attachments",
		"max_attachment_size_mb": "max-size-mb",
		"processing_workers":     "workers",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(c.newCheckCommand())

	return rootCmd
}

func (c *cli) newCheckCommand() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate files against the attachment rules",
		Long: `Run the attachment intake on the given files without starting the UI.

Prompts for comma separated paths when none are given. Exits non-zero when
any file is rejected or fails to load.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				paths, err := ui.PromptPaths(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				args = paths
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			deps, cleanup, err := buildDeps(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return runCheck(cmd.Context(), cmd.OutOrStdout(), deps, args, reportPath)
		},
	}

	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Write a YAML report to this path")
	return cmd
}

func runCheck(ctx context.Context, w io.Writer, deps tui.Deps, paths []string, reportPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	ui.PrintBanner(w)

	files, pathErrors := utils.FilesFromPaths(paths)
	ui.PrintPathErrors(w, pathErrors)

	conversationID := deps.Config.ConversationID
	current := deps.Drafts.Attachments(conversationID)
	batch := deps.Intake.Handle(ctx, conversationID, files, current, nil)
	if err := batch.Wait(ctx); err != nil {
		return fmt.Errorf("attachment processing interrupted: %w", err)
	}

	ui.PrintBatch(w, deps.Localizer, batch)
	fmt.Fprintln(w, ui.ColorDimText("  Finished in "+utils.FormatDuration(time.Since(startTime))))

	if reportPath != "" {
		report := buildReport(deps, batch, time.Now())
		if err := utils.WriteIntakeReport(reportPath, report); err != nil {
			return err
		}
		fmt.Fprintln(w, ui.ColorSuccess("  Report written to "+reportPath))
	}

	if len(pathErrors) > 0 || len(batch.Decision.Rejected) > 0 || failedCount(batch) > 0 {
		return errFilesRejected
	}
	return nil
}

func failedCount(batch *attachments.Batch) int {
	failed := 0
	for _, result := range batch.Results() {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}

func buildReport(deps tui.Deps, batch *attachments.Batch, now time.Time) utils.IntakeReport {
	conversationID := deps.Config.ConversationID
	report := utils.IntakeReport{
		GeneratedAt:    now.UTC(),
		ConversationID: conversationID,
		BatchRejected:  batch.Decision.BatchRejected,
		AcceptTypes:    deps.Intake.Policy().AcceptContentTypes(deps.Drafts.Attachments(conversationID)),
	}

	for _, result := range batch.Results() {
		file := utils.ReportFile{
			Name:        result.File.Name,
			Path:        result.File.Path,
			ContentType: result.Draft.ContentType,
			Size:        utils.FormatFileSize(result.File.Size),
			Loaded:      result.Err == nil,
		}
		if result.Err != nil {
			file.ContentType = result.File.ContentType
			file.Error = result.Err.Error()
		}
		report.Accepted = append(report.Accepted, file)
	}

	for _, rejection := range batch.Decision.Rejected {
		report.Rejected = append(report.Rejected, utils.ReportRejected{
			Name:    rejection.File.Name,
			Path:    rejection.File.Path,
			Toast:   rejection.Toast.Kind.String(),
			Message: toast.Render(deps.Localizer, rejection.Toast),
		})
	}

	for _, t := range batch.Toasts() {
		report.Toasts = append(report.Toasts, t.Kind.String())
	}

	return report
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
