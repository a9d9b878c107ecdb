package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal. When rendering fails (no
// TTY, unknown style) the raw markdown is still perfectly readable, so it is
// printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
