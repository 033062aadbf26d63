package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	gutterFormat   = "%*d | "
	locationFormat = "%s--> %s:%d:%d\n"
)

// DiagnosticPrinter renders diagnostics with the offending source line underlined.
type DiagnosticPrinter struct {
	writer io.Writer
	lines  map[string][]string

	errorColor    *color.Color
	warningColor  *color.Color
	caretColor    *color.Color
	gutterColor   *color.Color
	locationColor *color.Color
	helpColor     *color.Color
}

func NewDiagnosticPrinter(w io.Writer, sources map[string]string, useColor bool) *DiagnosticPrinter {
	printer := &DiagnosticPrinter{
		writer:        w,
		lines:         map[string][]string{},
		errorColor:    color.New(color.Bold, color.FgRed),
		warningColor:  color.New(color.Bold, color.FgYellow),
		caretColor:    color.New(color.FgRed),
		gutterColor:   color.New(color.FgHiBlack),
		locationColor: color.New(color.FgBlue),
		helpColor:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{printer.errorColor, printer.warningColor, printer.caretColor,
		printer.gutterColor, printer.locationColor, printer.helpColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for file, source := range sources {
		printer.lines[file] = strings.Split(source, "\n")
	}
	return printer
}

// PrintDiagnostics writes every diagnostic of diagnostics to w.
func PrintDiagnostics(w io.Writer, diagnostics []*Diagnostic, sources map[string]string, useColor bool) {
	printer := NewDiagnosticPrinter(w, sources, useColor)
	for _, diagnostic := range diagnostics {
		printer.Print(diagnostic)
	}
}

func (printer *DiagnosticPrinter) paint(c *color.Color, format string, args ...interface{}) {
	_, _ = c.Fprintf(printer.writer, format, args...)
}

func (printer *DiagnosticPrinter) Print(diagnostic *Diagnostic) {
	header := printer.errorColor
	if diagnostic.Severity == Warning {
		header = printer.warningColor
	}
	printer.paint(header, "%s", diagnostic.Severity)
	fmt.Fprintf(printer.writer, "[%s]: ", diagnostic.Code.ID())
	printer.paint(header, "%s\n", diagnostic.Message)

	span := diagnostic.Span
	width := len(fmt.Sprint(span.Start.Line))
	printer.paint(printer.locationColor, locationFormat, strings.Repeat(" ", width), span.File, span.Start.Line, span.Start.Column)
	if line, ok := printer.line(span.File, span.Start.Line); ok {
		fmt.Fprint(printer.writer, strings.Repeat(" ", width))
		printer.paint(printer.gutterColor, " |\n")
		printer.paint(printer.gutterColor, gutterFormat, width, span.Start.Line)
		fmt.Fprintln(printer.writer, line)
		fmt.Fprint(printer.writer, strings.Repeat(" ", width))
		printer.paint(printer.gutterColor, " | ")
		length := span.End.Column - span.Start.Column
		if span.End.Line != span.Start.Line || length <= 0 {
			length = 1
		}
		fmt.Fprint(printer.writer, strings.Repeat(" ", max(span.Start.Column-1, 0)))
		printer.paint(printer.caretColor, "%s\n", strings.Repeat("^", length))
	}
	if diagnostic.Help != "" {
		fmt.Fprint(printer.writer, strings.Repeat(" ", width))
		printer.paint(printer.helpColor, " = help: %s\n", diagnostic.Help)
	}
	fmt.Fprintln(printer.writer)
}

func (printer *DiagnosticPrinter) line(file string, n int) (string, bool) {
	lines, ok := printer.lines[file]
	if !ok || n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}
