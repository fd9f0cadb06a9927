package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of output. Without colour it falls back to a
// plain-text prefix and suffix.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a newline to s unless it already ends with one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor honours NO_COLOR (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code: commands and statements. `backticks` without colour.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path: files and directories, such as the root vault.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag: CLI flags like --root.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight: user values such as register names and entry ids. 'quoted' without colour.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted: secondary text. (parenthesised) without colour.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// Secret: a password the user asked to see. Never decorated, so it can be copied as is.
	Secret = Formatter{color.New(color.FgMagenta, color.Bold), "", ""}
)
