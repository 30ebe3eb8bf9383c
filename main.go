package main

import (
	"errors"
	"fmt"
	"os"

	"chatdesk/ui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errFilesRejected) {
			fmt.Fprintln(os.Stderr, ui.ColorError("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
