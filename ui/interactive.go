package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"chatdesk/utils"
)

// PromptInput prompts for one line of input with a default value
func PromptInput(r *bufio.Reader, w io.Writer, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(w, "%s [default: %s]: ", ColorSection(prompt), ColorHighlight(defaultValue))
	} else {
		fmt.Fprintf(w, "%s: ", ColorSection(prompt))
	}

	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// PromptPaths asks for comma-separated file paths until at least one is given
// or the input ends
func PromptPaths(r io.Reader, w io.Writer) ([]string, error) {
	reader := bufio.NewReader(r)
	for {
		input, err := PromptInput(reader, w, "Files to check (comma separated)", "")
		if err != nil {
			return nil, err
		}
		if paths := utils.ParseCommaSeparatedList(input); len(paths) > 0 {
			return paths, nil
		}

		if _, err := reader.Peek(1); err != nil {
			return nil, fmt.Errorf("no files given")
		}
		fmt.Fprintln(w, ColorError("  At least one file is required!"))
	}
}
