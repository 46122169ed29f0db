package errors

import (
	"fmt"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string    { return color(colorRed, text) }
func green(text string) string  { return color(colorGreen, text) }
func yellow(text string) string { return color(colorYellow, text) }
func cyan(text string) string   { return color(colorCyan, text) }
func gray(text string) string   { return color(colorGray, text) }
func bold(text string) string   { return color(colorBold, text) }

// Format returns a formatted error message for terminal display.
func (e *NavkitError) Format() string {
	var b strings.Builder

	// Header: ✗ N001 [config] Root router registered more than once
	b.WriteString(red("✗ "))
	if e.Code != "" {
		b.WriteString(bold(e.Code))
		b.WriteString(" ")
	}
	if e.Category != "" {
		b.WriteString(gray(fmt.Sprintf("[%s] ", e.Category)))
	}
	b.WriteString(bold(e.Message))
	b.WriteString("\n")

	if e.Detail != "" {
		b.WriteString("\n")
		b.WriteString(wrapIndented(e.Detail, "  "))
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("\n")
		b.WriteString(gray("  caused by: " + e.Wrapped.Error()))
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(yellow("  hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}

	if e.Example != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(e.Example, "\n") {
			b.WriteString(green("    " + line))
			b.WriteString("\n")
		}
	}

	if e.DocURL != "" {
		b.WriteString("\n")
		b.WriteString(cyan("  docs: " + e.DocURL))
		b.WriteString("\n")
	}

	return b.String()
}

// wrapIndented indents each line of text with the given prefix.
func wrapIndented(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
