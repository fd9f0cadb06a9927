package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/utils"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Stop must not print it a second time.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner wraps read so the spinner is stopped while the user types.
func pauseSpinner(s *spinner.Spinner, read utils.PasswordReader) utils.PasswordReader {
	return func(prompt string) ([]byte, error) {
		active := s.Active()
		if active {
			s.Stop()
		}
		defer func() {
			if active {
				s.Start()
			}
		}()
		return read(prompt)
	}
}

// runtimeWithSpinner returns a runtime whose password prompts pause s.
func runtimeWithSpinner(s *spinner.Spinner) *workflows.Runtime {
	rt := newRuntime()
	rt.Password = pauseSpinner(s, rt.Password)
	return rt
}

// formatVaultError turns a workflow error into the message shown to the user.
func formatVaultError(err error) string {
	var short *perrors.ShortLenError
	switch {
	case errors.Is(err, perrors.ErrVaultNotExists):
		return ui.Error.Sprint("✗") + " The root vault has not been initialized\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("pwmn init") + " first"

	case errors.Is(err, perrors.ErrRootVaultAlreadyExists):
		return ui.Error.Sprint("✗") + " The root vault already exists at " + ui.Path.Sprint(vaultRoot) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("pwmn create <name>") + " to add a register"

	case errors.Is(err, perrors.ErrRegisterAlreadyExists):
		return ui.Error.Sprint("✗") + " A register with this name already exists"

	case errors.Is(err, perrors.ErrRegisterNotExists):
		return ui.Error.Sprint("✗") + " No register with this name exists"

	case errors.Is(err, perrors.ErrEntryNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, perrors.ErrAnotherSessionIsRunning):
		return ui.Error.Sprint("✗") + " Another register is connected\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("disconnect") + " first"

	case errors.Is(err, perrors.ErrSessionNotConnected):
		return ui.Error.Sprint("✗") + " No register is connected\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("connect <name>") + " first"

	case errors.Is(err, perrors.ErrDecryption):
		return ui.Error.Sprint("✗") + " Invalid password or corrupted vault"

	case errors.Is(err, perrors.ErrMismatchedFileHeader):
		return ui.Error.Sprint("✗") + " The register file is not a pwmn vault or uses an unknown version"

	case errors.Is(err, perrors.ErrAuthFileNotFound):
		return ui.Error.Sprint("✗") + " The register auth file is missing\n" +
			ui.Info.Sprint("→") + " Connect to the register to rewrite it"

	case errors.As(err, &short):
		return ui.Error.Sprint("✗") + " " + short.Error()

	case errors.Is(err, perrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, perrors.ErrUnsupportedStatement):
		return ui.Error.Sprint("✗") + " Unsupported statement"

	case errors.Is(err, utils.ErrPassphraseMismatch):
		return ui.Error.Sprint("✗") + " Passwords do not match"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError reports whether err should make the command exit non-zero
// with its raw message, instead of the friendly one alone.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, perrors.ErrVaultNotExists),
		errors.Is(err, perrors.ErrRootVaultAlreadyExists),
		errors.Is(err, perrors.ErrRegisterAlreadyExists),
		errors.Is(err, perrors.ErrRegisterNotExists),
		errors.Is(err, perrors.ErrEntryNotFound),
		errors.Is(err, perrors.ErrAnotherSessionIsRunning),
		errors.Is(err, perrors.ErrSessionNotConnected),
		errors.Is(err, perrors.ErrDecryption),
		errors.Is(err, perrors.ErrMismatchedFileHeader),
		errors.Is(err, perrors.ErrAuthFileNotFound),
		errors.Is(err, perrors.ErrShortLength),
		errors.Is(err, perrors.ErrInvalidDateFormat),
		errors.Is(err, perrors.ErrUnsupportedStatement),
		errors.Is(err, utils.ErrPassphraseMismatch):
		return false
	default:
		return true
	}
}

// errSilent makes a command exit non-zero after its message was printed.
var errSilent = errors.New("")

// failure sets the spinner's final message for err and returns the error
// the command should exit with.
func failure(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatVaultError(err)
	if isUnexpectedError(err) {
		return err
	}
	return errSilent
}
