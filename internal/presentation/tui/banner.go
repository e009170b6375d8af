package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the seedbed banner to w, colored when w supports it.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                  _ _              _ ", "#34d399"},
		{"  ___  ___  ___  __| | |__   ___  __| |", "#10b981"},
		{" / __|/ _ \\/ _ \\/ _` | '_ \\ / _ \\/ _` |", "#059669"},
		{" \\__ \\  __/  __/ (_| | |_) |  __/ (_| |", "#047857"},
		{" |___/\\___|\\___|\\__,_|_.__/ \\___|\\__,_|", "#065f46"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}
