// Package ui prints the console output of the headless commands.
package ui

import (
	"fmt"
	"io"
	"strings"

	"chatdesk/attachments"
	"chatdesk/i18n"
	"chatdesk/toast"
	"chatdesk/utils"

	"github.com/fatih/color"
)

// Color helper functions
var (
	ColorTitle     = color.New(color.FgCyan, color.Bold).SprintFunc()
	ColorSuccess   = color.New(color.FgGreen, color.Bold).SprintFunc()
	ColorError     = color.New(color.FgRed, color.Bold).SprintFunc()
	ColorWarning   = color.New(color.FgYellow).SprintFunc()
	ColorInfo      = color.New(color.FgWhite).SprintFunc()
	ColorSection   = color.New(color.FgBlue, color.Bold).SprintFunc()
	ColorHighlight = color.New(color.FgCyan).SprintFunc()
	ColorDimText   = color.New(color.FgHiBlack).SprintFunc()
	ColorListItem  = color.New(color.FgGreen).SprintFunc()
)

const sectionWidth = 60

// PrintBanner displays the application banner
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, ColorTitle("    ╔══════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, ColorTitle("    ║  chatdesk ")+ColorHighlight("attachment check")+ColorTitle("                       ║"))
	fmt.Fprintln(w, ColorTitle("    ╚══════════════════════════════════════════════════╝"))
}

// PrintSectionHeader prints a formatted section header
func PrintSectionHeader(w io.Writer, title string) {
	headerContent := fmt.Sprintf("─ %s ", title)
	remainingWidth := sectionWidth - len([]rune(headerContent))
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	fmt.Fprintln(w, ColorSection("┌"+headerContent+strings.Repeat("─", remainingWidth)+"┐"))
}

// PrintSectionFooter prints a formatted section footer
func PrintSectionFooter(w io.Writer) {
	fmt.Fprintln(w, ColorSection("└"+strings.Repeat("─", sectionWidth-1)+"┘"))
}

// PrintResultsSummary prints a count for a category
func PrintResultsSummary(w io.Writer, category string, count int) {
	if count > 0 {
		fmt.Fprintf(w, "  %s: %s\n", ColorSuccess(category), ColorHighlight(count))
		return
	}
	fmt.Fprintf(w, "  %s\n", ColorDimText(category+": none"))
}

// PrintPathErrors lists the paths that could not be read
func PrintPathErrors(w io.Writer, errs []error) {
	if len(errs) == 0 {
		return
	}
	PrintSectionHeader(w, "Unreadable paths")
	for _, err := range errs {
		fmt.Fprintf(w, "  %s %s\n", ColorError("✗"), err)
	}
	PrintSectionFooter(w)
}

// PrintBatch prints the policy decision of batch and the outcome of every
// processed file. batch must have settled.
func PrintBatch(w io.Writer, localizer *i18n.Localizer, batch *attachments.Batch) {
	decision := batch.Decision

	PrintSectionHeader(w, "Decision")
	if decision.BatchRejected {
		fmt.Fprintf(w, "  %s\n", ColorError("Batch rejected"))
	}
	PrintResultsSummary(w, "Accepted", len(decision.Accepted))
	PrintResultsSummary(w, "Rejected", len(decision.Rejected))
	PrintSectionFooter(w)

	if len(decision.Rejected) > 0 {
		PrintSectionHeader(w, "Rejected files")
		for _, rejection := range decision.Rejected {
			fmt.Fprintf(w, "  %s %s %s\n",
				ColorError("✗"),
				rejection.File.Name,
				ColorDimText("("+rejection.Toast.Kind.String()+")"))
		}
		PrintSectionFooter(w)
	}

	results := batch.Results()
	if len(results) > 0 {
		PrintSectionHeader(w, "Loaded files")
		for _, result := range results {
			if result.Err != nil {
				fmt.Fprintf(w, "  %s %s %s\n", ColorError("✗"), result.File.Name, ColorDimText(result.Err.Error()))
				continue
			}
			fmt.Fprintf(w, "  %s %s %s\n",
				ColorListItem("✓"),
				result.Draft.FileName,
				ColorDimText(fmt.Sprintf("%s, %s", result.Draft.ContentType, utils.FormatFileSize(result.Draft.Size))))
		}
		PrintSectionFooter(w)
	}

	if toasts := batch.Toasts(); len(toasts) > 0 {
		PrintSectionHeader(w, "Toasts")
		for _, t := range toasts {
			PrintToast(w, localizer, t)
		}
		PrintSectionFooter(w)
	}
}

// PrintToast prints the localized text of t
func PrintToast(w io.Writer, localizer *i18n.Localizer, t toast.Toast) {
	fmt.Fprintf(w, "  %s %s\n", ColorWarning("!"), ColorInfo(toast.Render(localizer, t)))
}
