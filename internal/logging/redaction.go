package logger

import (
	"io"
	"regexp"
)

const redacted = "[REDACTED]"

// Redactor masks secrets that end up in log lines by accident.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor returns a redactor for password-like key/value pairs.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(password|passwd|pwd|passphrase)(\\?["\s:=]+)[^\s",}\\]+`),
			regexp.MustCompile(`(?i)(secret|key)(\\?["\s:=]+)[^\s",}\\]+`),
		},
	}
}

// addPattern adds a pattern whose whole match is replaced.
func (r *Redactor) addPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	r.patterns = append(r.patterns, re)
	return nil
}

// Redact masks every match in s. The key and separator of a key/value pair
// are kept.
func (r *Redactor) Redact(s string) string {
	for _, re := range r.patterns {
		if re.NumSubexp() >= 2 {
			s = re.ReplaceAllString(s, "${1}${2}"+redacted)
		} else {
			s = re.ReplaceAllString(s, redacted)
		}
	}
	return s
}

// Wrap returns a writer that redacts before writing to w.
func (r *Redactor) Wrap(w io.Writer) io.Writer {
	return &redactingWriter{w: w, r: r}
}

type redactingWriter struct {
	w io.Writer
	r *Redactor
}

// Write reports len(p) on success so callers do not see a short write when
// redaction changed the length.
func (rw *redactingWriter) Write(p []byte) (int, error) {
	if _, err := rw.w.Write([]byte(rw.r.Redact(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
