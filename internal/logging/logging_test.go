package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosityGatesConsoleOutput(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		logger  Logger
		wantOut []string
		wantErr []string
	}{
		{
			name:    "quiet",
			logger:  Logger{},
			wantErr: []string{"[warn] always"},
		},
		{
			name:    "verbose",
			logger:  Logger{Verbose: true},
			wantOut: []string{"[info] info"},
			wantErr: []string{"[warn] warn", "[warn] always"},
		},
		{
			name:    "debug",
			logger:  Logger{Debug: true},
			wantOut: []string{"[info] info", "[debug] debug"},
			wantErr: []string{"[warn] warn", "[warn] always", "[error] error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errOut

			l.Infof("info")
			l.Debugf("debug")
			l.Warnf("warn")
			l.WarnfAlways("always")
			l.Errorf("error")

			assert.Equal(t, tt.wantOut, lines(out.String()))
			assert.Equal(t, tt.wantErr, lines(errOut.String()))
		})
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	sentinel := errors.New("boom")
	l := Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	err := l.ErrorfAndReturn("saving register: %w", sentinel)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "saving register: boom", err.Error())
}

func TestSinkMirrorsAllLevels(t *testing.T) {
	var buf bytes.Buffer
	sink := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := Logger{Sink: &sink, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	l.Infof("created %s", "3fa9c2d1")
	l.Debugf("derived key")

	got := buf.String()
	assert.Contains(t, got, `"level":"info"`)
	assert.Contains(t, got, `"message":"created 3fa9c2d1"`)
	assert.Contains(t, got, `"level":"debug"`)
}

func TestOpenFileWritesRedactedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pwmn.log")
	sink, err := OpenFile(FileConfig{Path: path, Level: "debug", MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	sink.Logger.Info().Str("password", "hunter2").Msg("password=hunter2 rejected")
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
	assert.Contains(t, string(data), redacted)
}

func TestOpenFileRequiresPath(t *testing.T) {
	_, err := OpenFile(FileConfig{})
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		in   string
		want string
	}{
		{"password=hunter2", "password=[REDACTED]"},
		{`{"passphrase":"open sesame"}`, `{"passphrase":"[REDACTED] sesame"}`},
		{"created register 3fa9c2d1", "created register 3fa9c2d1"},
		{"secret: abc123", "secret: [REDACTED]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Redact(tt.in), tt.in)
	}

	require.NoError(t, r.addPattern(`En-[0-9a-f]{8}`))
	assert.Equal(t, "fetched [REDACTED]", r.Redact("fetched En-1a2b3c4d"))
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
