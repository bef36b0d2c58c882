package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/micromingle/kotlin/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError is a structured diagnostic with a stable code and
// optional context notes.
type CompilerError struct {
	Level    ErrorLevel
	Code     string       // stable code like E0600
	Message  string       // primary message
	Position ast.Position // location in source
	Length   int          // length of the problematic region
	Notes    []string     // additional context
	HelpText string       // actionable advice
}

// ErrorReporter renders diagnostics against a source file with carets
// under the offending region.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for one source file.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders one diagnostic.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder

	level := er.levelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", level(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", level(string(err.Level)), err.Message)
	}

	gutter := gutterWidth(err.Position.Line)
	pad := strings.Repeat(" ", gutter)

	fmt.Fprintf(&out, "%s %s %s:%d:%d\n",
		pad, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", pad, dim("│"))

	if err.Position.Line > 0 && err.Position.Line <= len(er.lines) {
		fmt.Fprintf(&out, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", gutter, err.Position.Line)),
			dim("│"),
			er.lines[err.Position.Line-1])
		fmt.Fprintf(&out, "%s %s %s\n", pad, dim("│"), er.caret(err))
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, dim("│"), noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, dim("│"), helpColor("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

func (er *ErrorReporter) levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (er *ErrorReporter) caret(err CompilerError) string {
	length := err.Length
	if length <= 0 {
		length = 1
	}
	col := err.Position.Column
	if col < 1 {
		col = 1
	}
	marker := er.levelColor(err.Level)(strings.Repeat("^", length))
	return strings.Repeat(" ", col-1) + marker
}

func gutterWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}
