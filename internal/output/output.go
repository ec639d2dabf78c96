// Package output provides the diagnostic writer used by all pubtopics
// commands. Diagnostics are kept on a dedicated stream (stderr or an
// --errors file) so that piping corpus data from stdout never
// interleaves data with error reports.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer provides formatted diagnostic output.
type Writer struct {
	out   io.Writer
	isTTY bool
}

// New creates a diagnostic Writer. Carriage-return progress updates
// are only used when the destination is a terminal.
func New(out io.Writer) *Writer {
	w := &Writer{out: out}
	if f, ok := out.(*os.File); ok {
		w.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return w
}

// Statusf prints a status message.
// Errors from writing diagnostics are intentionally ignored.
func (w *Writer) Statusf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorf prints an error report for a single record or path.
func (w *Writer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
}

// Progressf prints an in-place progress update on terminals, falling
// back to one line per update otherwise.
func (w *Writer) Progressf(format string, args ...any) {
	if w.isTTY {
		_, _ = fmt.Fprintf(w.out, "\r"+format, args...)
		return
	}
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
}

// ProgressDone terminates an in-place progress line so the final
// update stays on screen.
func (w *Writer) ProgressDone() {
	if w.isTTY {
		_, _ = fmt.Fprintln(w.out)
	}
}
