package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteCode writes source to w. On a terminal it is rendered as a fenced
// markdown block highlighted for lang; elsewhere it is written verbatim so
// the output stays pipeable.
func WriteCode(w io.Writer, lang, source string) error {
	if !IsTerminal(w) {
		_, err := io.WriteString(w, source)
		return err
	}
	out, err := NewRenderer()("```" + lang + "\n" + source + "```\n")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
