package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	unsetNoColor(t)
	forceColor(t, false)

	result := Code.Sprint("pwmn connect personal")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "pwmn init", "`pwmn init`"},
		{"Path has no decoration", Path, "/home/alice/.pwmn", "/home/alice/.pwmn"},
		{"Flag has no decoration", Flag, "--root", "--root"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "personal", "'personal'"},
		{"Muted adds parentheses", Muted, "no entries", "(no entries)"},
		{"Secret has no decoration", Secret, "p@ss'w0rd", "p@ss'w0rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprintf("pwmn %s %s", "create", "personal")
	want := "`pwmn create personal`"
	if result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}

	unsetNoColor(t)
	forceColor(t, true)
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{
		"":       "\n",
		"done":   "done\n",
		"done\n": "done\n",
	}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTable(t *testing.T) {
	got := Table([][]string{
		{"ID", "USED FOR", "STRENGTH"},
		{"En-1a2b3c4d", "bank", "strong"},
		{"En-ffff0000", "email,work", "weak"},
	})

	want := "" +
		"ID           USED FOR    STRENGTH\n" +
		"--           --------    --------\n" +
		"En-1a2b3c4d  bank        strong\n" +
		"En-ffff0000  email,work  weak\n"
	if got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}

	if Table(nil) != "" {
		t.Error("Table(nil) should be empty")
	}
}

func unsetNoColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	// t.Setenv restores the variable afterwards; LookupEnv must not see it now.
	if err := os.Unsetenv("NO_COLOR"); err != nil {
		t.Fatal(err)
	}
}

func forceColor(t *testing.T, disabled bool) {
	t.Helper()
	original := color.NoColor
	color.NoColor = disabled
	t.Cleanup(func() { color.NoColor = original })
}
