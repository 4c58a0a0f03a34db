// Package display renders user-facing status messages.
//
// Unlike the diagnostic logs in internal/logging, these messages are the
// product: they report what the run did (files matched, packages installed,
// follow-up results). Color is applied only when writing to a terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes formatted status messages to a single output stream.
type Printer struct {
	w io.Writer

	success *color.Color
	warn    *color.Color
	errc    *color.Color
}

// New creates a Printer writing to w. Color output is enabled only when w is
// os.Stdout or os.Stderr attached to a terminal.
func New(w io.Writer) *Printer {
	p := &Printer{
		w:       w,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		errc:    color.New(color.FgRed, color.Bold),
	}
	if !writerIsTerminal(w) {
		p.success.DisableColor()
		p.warn.DisableColor()
		p.errc.DisableColor()
	}
	return p
}

// Infof prints a plain informational message.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Successf prints a green success message.
func (p *Printer) Successf(format string, args ...any) {
	p.success.Fprintf(p.w, format+"\n", args...)
}

// Warnf prints a yellow warning message.
func (p *Printer) Warnf(format string, args ...any) {
	p.warn.Fprintf(p.w, format+"\n", args...)
}

// Errorf prints a red error message.
func (p *Printer) Errorf(format string, args ...any) {
	p.errc.Fprintf(p.w, format+"\n", args...)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
