package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	connectEntryID string
	connectReveal  bool
)

func init() {
	connectCmd.Flags().StringVarP(&connectEntryID, "entry", "e", "", "show a single entry by id")
	connectCmd.Flags().BoolVar(&connectReveal, "reveal", false, "print the entry password (with --entry)")
}

func resetConnectCommandState() {
	connectEntryID = ""
	connectReveal = false
}

var connectCmd = &cobra.Command{
	Use:   "connect <name>",
	Short: "Opens a register and lists its entries",
	Long: `Connects to a register, prints its entries and disconnects again.

Connecting counts as an access to the register. Use --entry to show one
entry, and --reveal to also print its password. Use 'pwmn shell' to keep a
register connected across several statements.

Examples:
  pwmn connect personal
  pwmn connect personal --entry Gi-1a2b3c4d --reveal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting connect command")
		Logger.Debugf("Flags: entry=%q, reveal=%t", connectEntryID, connectReveal)
		spinner, cleanup := startSpinner("Connecting to register...")
		defer cleanup()

		ctx := context.Background()
		rt := runtimeWithSpinner(spinner)

		connected, err := workflows.Connect(ctx, rt, workflows.ConnectOptions{Name: args[0]})
		if err != nil {
			return failure(spinner, err)
		}
		defer func() {
			if _, err := workflows.Disconnect(ctx, rt); err != nil {
				Logger.Warnf("Failed to disconnect: %v", err)
			}
		}()

		selected, err := workflows.Select(ctx, rt, workflows.SelectOptions{ID: connectEntryID})
		if err != nil {
			return failure(spinner, err)
		}

		var b strings.Builder
		b.WriteString(formatConnected(connected))
		if selected.Entry != nil {
			defer crypto.Zero(selected.Entry.Password)
			b.WriteString("\n" + formatEntry(selected.Entry, connectReveal))
		} else {
			b.WriteString(formatEntryTable(selected.Entries))
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}

func formatConnected(r *workflows.ConnectResult) string {
	msg := ui.Success.Sprint("✓") + " Connected to " + ui.Highlight.Sprint(r.Name) + " " +
		ui.Muted.Sprintf("%d entries, %d accesses", r.Entries, r.AccessCount) + "\n"
	if r.SidecarRepaired {
		msg += ui.Warning.Sprint("⚠") + " The auth file was out of date and has been rewritten\n"
	}
	return msg
}

func formatEntryTable(entries []workflows.EntrySummary) string {
	if len(entries) == 0 {
		return ui.Info.Sprint("→") + " No entries yet. Use " + ui.Code.Sprint("insert") + " in " + ui.Code.Sprint("pwmn shell") + "\n"
	}
	rows := [][]string{{"ID", "USED FOR", "USERNAME", "URL", "STRENGTH", "FETCHED", "MODIFIED"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			strings.Join(e.UsedFor, ","),
			e.Username,
			e.URL,
			e.Strength.String(),
			fmt.Sprintf("%d", e.FetchedCount),
			formatUnix(e.ModifiedAt),
		})
	}
	return "\n" + ui.Table(rows)
}

// formatEntry renders one entry. The password is masked unless reveal is set.
func formatEntry(e *register.Entry, reveal bool) string {
	var b strings.Builder
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %-10s %s\n", name+":", value)
		}
	}

	fmt.Fprintf(&b, "%s %s\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(e.ID))
	field("used for", strings.Join(e.UsedFor, ", "))
	field("username", e.Username)
	field("url", e.URL)
	if reveal {
		field("password", ui.Secret.Sprint(string(e.Password)))
	} else {
		field("password", strings.Repeat("*", 8)+" "+ui.Muted.Sprint("use --reveal"))
	}
	field("notes", e.Notes)
	field("strength", register.Score(e.Metadata.StrengthScore).String())
	field("created", e.Metadata.CreatedBy.String()+" "+formatUnix(e.Metadata.CreatedAt))
	field("modified", formatUnix(e.Metadata.ModifiedAt))
	field("fetched", fmt.Sprintf("%d", e.Metadata.FetchedCount))

	keys := make([]string, 0, len(e.CustomField))
	for k := range e.CustomField {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		field(k, e.CustomField[k].String())
	}
	return b.String()
}

func formatUnix(sec int64) string {
	if sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).Local().Format("2006-01-02 15:04")
}
