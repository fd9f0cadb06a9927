package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/pwmn/internal/audit"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

const dateLayout = "2006-01-02"

// LogOptions configures the audit log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest.
	Reverse bool

	// Operations keeps only these operations (comma-separated).
	Operations string

	// Register keeps only entries for this register name. The name is
	// turned into its address prefix, it is never compared in clear.
	Register string

	// FailedOnly keeps only failed operations.
	FailedOnly bool

	// Since and Until bound the entries by date (YYYY-MM-DD, inclusive).
	Since string
	Until string
}

// LogResult contains the outcome of an audit log operation.
type LogResult struct {
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// AuditLog reads and filters the audit log of the root vault.
//
// Returns ErrVaultNotExists if the root vault was never initialized.
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func AuditLog(ctx context.Context, rt *Runtime, opts LogOptions) (*LogResult, error) {
	manager, err := vault.Load(rt.root(), rt.suite())
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(rt.root())
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result := &LogResult{Total: len(entries)}

	var keep []func(audit.Entry) bool

	if opts.Operations != "" {
		ops := map[string]bool{}
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		keep = append(keep, func(e audit.Entry) bool { return ops[strings.ToLower(e.Operation)] })
	}
	if opts.Register != "" {
		prefix := audit.AddressPrefix(manager.Address(opts.Register))
		keep = append(keep, func(e audit.Entry) bool { return e.Register == prefix })
	}
	if opts.FailedOnly {
		keep = append(keep, func(e audit.Entry) bool { return !e.Success })
	}
	if opts.Since != "" {
		since, err := time.Parse(dateLayout, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", perrors.ErrInvalidDateFormat)
		}
		keep = append(keep, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.Before(since)
		})
	}
	if opts.Until != "" {
		until, err := time.Parse(dateLayout, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", perrors.ErrInvalidDateFormat)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		keep = append(keep, func(e audit.Entry) bool {
			t, ok := entryTime(e)
			return ok && !t.After(until)
		})
	}

	filtered := slices.DeleteFunc(entries, func(e audit.Entry) bool {
		for _, k := range keep {
			if !k(e) {
				return true
			}
		}
		return false
	})

	// Limit keeps the most recent entries either way.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(filtered)
	}

	result.Entries = filtered
	return result, nil
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}
