package audit

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/pwmn/internal/configs"
)

// FileName is the audit log inside the root vault.
const FileName = "audit.jsonl"

// prefixBytes is how much of a content address an entry records.
const prefixBytes = 4

// Entry represents a single audit log entry. It never carries a register
// name, a password or any entry content.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user running pwmn.
	Host      string `json:"host,omitempty"`
	Operation string `json:"op"`   // Statement name.
	Success   bool   `json:"ok"`

	// Optional fields depending on operation.
	Register string `json:"register,omitempty"` // Address prefix, see AddressPrefix.
	EntryID  string `json:"entry_id,omitempty"` // For insert/select/update/drop entry.
	Count    int    `json:"count,omitempty"`    // Entries listed by select.
}

// AddressPrefix returns the hex form of the first bytes of a content address.
// It is enough to tell registers apart in the log without naming them.
func AddressPrefix(address []byte) string {
	if len(address) > prefixBytes {
		address = address[:prefixBytes]
	}
	return hex.EncodeToString(address)
}

// LogPath returns the audit log path for a root vault.
func LogPath(root string) string {
	return filepath.Join(root, FileName)
}

// Log appends an entry to the audit log of root.
// Failures are ignored: operations never fail because of audit logging.
// Nothing is written when root does not exist or auditing is disabled.
func Log(root string, entry Entry) {
	if root == "" || !configs.AuditEnabled() {
		return
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	f, err := os.OpenFile(LogPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser is a convenience function that fills in the OS user and host.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	if configs.Settings != nil {
		entry.User = configs.Settings.Username
		entry.Host = configs.Settings.Hostname
	}
	return entry
}

// ReadEntries reads all entries from the audit log of root.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(root string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines, such as a torn final write, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
