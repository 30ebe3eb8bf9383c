package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// IntakeReport is the YAML document written by the check command
type IntakeReport struct {
	GeneratedAt    time.Time        `yaml:"generated_at"`
	ConversationID string           `yaml:"conversation_id"`
	BatchRejected  bool             `yaml:"batch_rejected"`
	Accepted       []ReportFile     `yaml:"accepted"`
	Rejected       []ReportRejected `yaml:"rejected,omitempty"`
	Toasts         []string         `yaml:"toasts,omitempty"`
	AcceptTypes    []string         `yaml:"accept_content_types,omitempty"`
}

// ReportFile describes one accepted file
type ReportFile struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	ContentType string `yaml:"content_type"`
	Size        string `yaml:"size"`
	Loaded      bool   `yaml:"loaded"`
	Error       string `yaml:"error,omitempty"`
}

// ReportRejected describes one dropped file and the toast it produced
type ReportRejected struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Toast   string `yaml:"toast"`
	Message string `yaml:"message"`
}

// WriteIntakeReport writes report to path as YAML, creating parent directories
func WriteIntakeReport(path string, report IntakeReport) error {
	if path == "" {
		return fmt.Errorf("report path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDirectory(dir); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}

// ReadIntakeReport loads a report written by WriteIntakeReport
func ReadIntakeReport(path string) (IntakeReport, error) {
	var report IntakeReport

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}
