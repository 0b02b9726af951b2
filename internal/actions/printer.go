package actions

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes GitHub Actions workflow commands.
// Info lines and raw output are written as plain text.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w, normally os.Stdout
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Info writes a plain log line
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Infof writes a formatted plain log line
func (p *Printer) Infof(format string, args ...any) {
	p.Info(fmt.Sprintf(format, args...))
}

// Print writes text as-is followed by a newline, like console.log
func (p *Printer) Print(text string) {
	fmt.Fprintln(p.w, text)
}

// Debug writes a message visible only when step debug logging is enabled
func (p *Printer) Debug(msg string) {
	p.command("debug", msg)
}

// Notice writes a notice annotation
func (p *Printer) Notice(msg string) {
	p.command("notice", msg)
}

// Warning writes a warning annotation
func (p *Printer) Warning(msg string) {
	p.command("warning", msg)
}

// Warningf writes a formatted warning annotation
func (p *Printer) Warningf(format string, args ...any) {
	p.Warning(fmt.Sprintf(format, args...))
}

// StartGroup begins a collapsible log group
func (p *Printer) StartGroup(name string) {
	p.command("group", name)
}

// EndGroup ends the current log group
func (p *Printer) EndGroup() {
	p.command("endgroup", "")
}

// Group runs fn inside a log group, closing the group even when fn fails
func (p *Printer) Group(name string, fn func() error) error {
	p.StartGroup(name)
	defer p.EndGroup()
	return fn()
}

func (p *Printer) command(name, msg string) {
	fmt.Fprintf(p.w, "::%s::%s\n", name, escapeData(msg))
}

// escapeData escapes a command message so it stays on a single line
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
