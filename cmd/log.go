package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logRegister  string
	logOperation string
	logFailed    bool
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logRegister, "register", "", "filter by register name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logFailed, "failed", false, "show failed operations only")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logRegister = ""
	logOperation = ""
	logFailed = false
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of the root vault.

Registers appear as the first 8 hex characters of their address. The
--register filter hashes the name you give, so names never appear in clear.

Examples:
  pwmn log                            # View full log
  pwmn log -n 10                      # Last 10 entries
  pwmn log --reverse                  # Most recent first
  pwmn log --register personal        # One register
  pwmn log --operation connect,drop   # Filter by operation
  pwmn log --failed                   # Failed operations only
  pwmn log --since 2026-01-01         # Filter by date
  pwmn log --json                     # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...")
	defer cleanup()

	result, err := workflows.AuditLog(context.Background(), newRuntime(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Register:   logRegister,
		FailedOnly: logFailed,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		return failure(spinner, err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.Total)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.Total == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log entries found."
		} else {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log entries found matching the filters."
		}
		return nil
	}

	// Entries are printed after the spinner stops.
	spinner.Stop()

	switch {
	case logJSON:
		return outputLogJSON(result.Entries)
	case logOneline:
		outputLogOneline(result.Entries)
	default:
		outputLogDefault(result.Entries)
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n", formatAuditTime(e.Timestamp, "2006-01-02"), e.User, e.Operation, formatAuditDetails(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	rows := [][]string{{"TIME", "USER", "OPERATION", "REGISTER", "DETAILS"}}
	for _, e := range entries {
		rows = append(rows, []string{
			formatAuditTime(e.Timestamp, "2006-01-02 15:04:05"),
			e.User,
			e.Operation,
			e.Register,
			formatAuditDetails(e),
		})
	}
	fmt.Print(ui.Table(rows))
}

func formatAuditTime(ts, layout string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format(layout)
}

func formatAuditDetails(e audit.Entry) string {
	details := ""
	if e.EntryID != "" {
		details = "entry " + e.EntryID
	}
	if e.Count > 0 {
		details = fmt.Sprintf("%d entries", e.Count)
	}
	if !e.Success {
		if details != "" {
			details += " "
		}
		details += ui.Error.Sprint("failed")
	}
	return details
}
