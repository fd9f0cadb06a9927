package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/utils"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var shellNoBanner bool

func init() {
	shellCmd.Flags().BoolVar(&shellNoBanner, "no-banner", false, "do not print the banner")
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts an interactive session",
	Long: `Starts an interactive shell that keeps one session open across statements.

Connect to a register once, then insert, select, update and drop entries
without retyping its password. Exiting the shell, or reaching end of input,
disconnects and wipes the register from memory.

Type 'help' inside the shell for the list of statements.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting shell")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if !shellNoBanner && utils.IsTerminal() {
			printBanner(os.Stdout)
		}
		return runShell(ctx, newRuntime(), utils.StdinReader(), os.Stdout)
	},
}

func printBanner(out io.Writer) {
	if color.NoColor {
		fmt.Fprintln(out, figure.NewFigure("pwmn", "alligator2", true).String())
	} else {
		fmt.Fprintln(out, figure.NewColorFigure("pwmn", "alligator2", "green", true).ColorString())
	}
	fmt.Fprintf(out, "%s Type %s for statements, %s to leave\n\n",
		ui.Info.Sprint("→"), ui.Code.Sprint("help"), ui.Code.Sprint("exit"))
}

// runShell reads statements from in until exit or end of input. Statement
// errors are printed and the loop goes on. The session is always
// disconnected on return.
func runShell(ctx context.Context, rt *workflows.Runtime, in *bufio.Reader, out io.Writer) error {
	defer func() {
		if rt.Session.IsConnected() {
			if _, err := workflows.Disconnect(ctx, rt); err != nil {
				Logger.Warnf("Failed to disconnect: %v", err)
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, shellPrompt(rt))

		line, readErr := in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading statement: %w", readErr)
		}
		if readErr != nil && strings.TrimSpace(line) == "" {
			fmt.Fprintln(out)
			return nil
		}

		if done := runShellLine(ctx, rt, line, out); done {
			return nil
		}
		if readErr != nil {
			return nil
		}
	}
}

// runShellLine runs one line and reports whether the shell should exit.
func runShellLine(ctx context.Context, rt *workflows.Runtime, line string, out io.Writer) bool {
	words, err := utils.SplitFields(line)
	if err != nil {
		fmt.Fprintln(out, ui.Error.Sprint("✗")+" "+err.Error())
		return false
	}
	words = trimTerminator(words)
	if len(words) == 0 {
		return false
	}

	switch strings.ToLower(words[0]) {
	case "exit", "quit", `\q`:
		return true
	case "help":
		fmt.Fprintln(out, shellUsage)
		return false
	case "status":
		result, err := workflows.Status(ctx, rt)
		if err != nil {
			fmt.Fprintln(out, formatVaultError(err))
			return false
		}
		fmt.Fprintln(out, formatShellStatus(result))
		return false
	}

	stmt, err := parseStatement(words)
	if err != nil {
		fmt.Fprintln(out, ui.Error.Sprint("✗")+" "+err.Error())
		return false
	}

	Logger.Debugf("Executing %T", stmt)
	result, err := workflows.Execute(ctx, rt, stmt)
	if err != nil {
		fmt.Fprintln(out, formatVaultError(err))
		return false
	}
	fmt.Fprint(out, ui.EnsureNewline(describeResult(result)))
	return false
}

func shellPrompt(rt *workflows.Runtime) string {
	if name, ok := rt.Session.ConnectedName(); ok {
		return "pwmn(" + name + ")> "
	}
	return "pwmn> "
}

func formatShellStatus(r *workflows.StatusResult) string {
	var b strings.Builder
	if r.Initialized {
		fmt.Fprintf(&b, "%s Root vault at %s, %d register(s)\n", ui.Success.Sprint("✓"), ui.Path.Sprint(r.Root), r.Registers)
	} else {
		fmt.Fprintf(&b, "%s No root vault at %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(r.Root))
	}
	if r.Connected != "" {
		fmt.Fprintf(&b, "%s Connected to %s, %d entries", ui.Info.Sprint("→"), ui.Highlight.Sprint(r.Connected), r.Entries)
	} else {
		fmt.Fprintf(&b, "%s Disconnected", ui.Info.Sprint("→"))
	}
	return b.String()
}

// describeResult renders the result of a statement. Passwords held by the
// result are wiped once rendered.
func describeResult(result any) string {
	switch r := result.(type) {
	case *workflows.InitResult:
		return ui.Success.Sprint("✓") + " Root vault initialized at " + ui.Path.Sprint(r.Root)

	case *workflows.CreateResult:
		return ui.Success.Sprint("✓") + " Register " + ui.Highlight.Sprint(r.Name) + " created " + ui.Muted.Sprint(r.AddressPrefix)

	case *workflows.ConnectResult:
		return formatConnected(r)

	case *workflows.DisconnectResult:
		return ui.Success.Sprint("✓") + " Disconnected from " + ui.Highlight.Sprint(r.Name)

	case *workflows.DropRegisterResult:
		return ui.Success.Sprint("✓") + " Register " + ui.Highlight.Sprint(r.Name) + " dropped " + ui.Muted.Sprint(r.AddressPrefix)

	case *workflows.DropEntryResult:
		return fmt.Sprintf("%s Entry %s dropped, %d left", ui.Success.Sprint("✓"), ui.Highlight.Sprint(r.ID), r.Remaining)

	case *workflows.SelectResult:
		if r.Entry != nil {
			defer crypto.Zero(r.Entry.Password)
			return formatEntry(r.Entry, true)
		}
		return formatEntryTable(r.Entries)

	case *workflows.InsertResult:
		defer crypto.Zero(r.Generated)
		msg := fmt.Sprintf("%s Entry %s added %s", ui.Success.Sprint("✓"), ui.Highlight.Sprint(r.ID), ui.Muted.Sprint(r.Strength.String()))
		if r.Generated != nil {
			msg += "\n" + ui.Info.Sprint("→") + " Generated password: " + ui.Secret.Sprint(string(r.Generated))
		}
		return msg

	case *workflows.UpdateResult:
		defer crypto.Zero(r.Generated)
		msg := fmt.Sprintf("%s Password of %s updated %s", ui.Success.Sprint("✓"), ui.Highlight.Sprint(r.ID), ui.Muted.Sprint(r.Strength.String()))
		if r.Generated != nil {
			msg += "\n" + ui.Info.Sprint("→") + " Generated password: " + ui.Secret.Sprint(string(r.Generated))
		}
		return msg

	default:
		return fmt.Sprintf("%v", result)
	}
}
