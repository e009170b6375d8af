package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintReport writes one line per path of a batch report followed by a
// totals line. Colors are dropped when w is not a terminal.
func PrintReport(w io.Writer, r domain.Report) {
	o := termenv.NewOutput(w)
	mark := func(symbol, color, path string) {
		fmt.Fprintf(w, "%s %s\n", o.String(symbol).Foreground(o.Color(color)).Bold(), path)
	}

	for _, p := range r.Created {
		mark("+", "#22c55e", p)
	}
	for _, p := range r.Existing {
		mark("=", "#94a3b8", p)
	}
	for _, p := range r.Skipped {
		mark("~", "#eab308", p)
	}
	for _, f := range r.Failed {
		mark("x", "#ef4444", fmt.Sprintf("%s: %v", f.Path, f.Err))
	}

	fmt.Fprintf(w, "\n%d created, %d existing, %d skipped, %d failed\n",
		len(r.Created), len(r.Existing), len(r.Skipped), len(r.Failed))
}
