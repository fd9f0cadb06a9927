package register

import (
	"fmt"
	"strconv"
)

// Operation identifies what a log entry records.
type Operation uint8

const (
	OpInsert Operation = iota
	OpUpdate
	OpFetch
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpFetch:
		return "fetch"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// CreatedBy records whether an entry password was typed or generated.
type CreatedBy uint8

const (
	Manual CreatedBy = iota
	Generated
)

func (c CreatedBy) String() string {
	if c == Generated {
		return "generated"
	}
	return "manual"
}

// ValueKind tags the variant held by a CustomValue.
type ValueKind uint8

const (
	KindText ValueKind = iota
	KindNumber
	KindBool
)

// CustomValue is one of Text, Number or Bool.
type CustomValue struct {
	Kind   ValueKind `cbor:"kind"`
	Text   string    `cbor:"text,omitempty"`
	Number int32     `cbor:"number,omitempty"`
	Bool   bool      `cbor:"bool,omitempty"`
}

// TextValue returns a Text custom value.
func TextValue(s string) CustomValue { return CustomValue{Kind: KindText, Text: s} }

// NumberValue returns a Number custom value.
func NumberValue(n int32) CustomValue { return CustomValue{Kind: KindNumber, Number: n} }

// BoolValue returns a Bool custom value.
func BoolValue(b bool) CustomValue { return CustomValue{Kind: KindBool, Bool: b} }

func (v CustomValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatInt(int64(v.Number), 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindText:
		return v.Text
	default:
		return fmt.Sprintf("<kind %d>", v.Kind)
	}
}

// Metadata tracks register-level counters. Times are unix seconds.
type Metadata struct {
	CreatedAt   int64  `cbor:"created_at"`
	ModifiedAt  int64  `cbor:"modified_at"`
	AccessCount uint32 `cbor:"access_count"`
	NumEntries  uint32 `cbor:"n_of_entries"`
}

// EntryMetadata tracks per-entry counters. Times are unix seconds.
type EntryMetadata struct {
	CreatedAt     int64     `cbor:"created_at"`
	ModifiedAt    int64     `cbor:"modified_at"`
	FetchedCount  uint32    `cbor:"fetched_cnt"`
	StrengthScore uint8     `cbor:"strength_score"`
	CreatedBy     CreatedBy `cbor:"created_by"`
}

// Entry is a single stored credential.
type Entry struct {
	ID          string                 `cbor:"id"`
	UsedFor     []string               `cbor:"used_for"`
	Password    []byte                 `cbor:"password"`
	Notes       string                 `cbor:"notes,omitempty"`
	Username    string                 `cbor:"username,omitempty"`
	URL         string                 `cbor:"url,omitempty"`
	Metadata    EntryMetadata          `cbor:"metadata"`
	CustomField map[string]CustomValue `cbor:"custom_field,omitempty"`
}

// LogEntry records one operation against the register.
type LogEntry struct {
	Timestamp int64     `cbor:"timestamp"`
	Operation Operation `cbor:"operation"`
	EntryID   string    `cbor:"entry_id,omitempty"`
	Status    bool      `cbor:"status"`
	Details   string    `cbor:"details"`
}

// Register is a named password collection.
type Register struct {
	Name     string     `cbor:"name"`
	Metadata Metadata   `cbor:"metadata"`
	Entries  []Entry    `cbor:"entries"`
	Log      []LogEntry `cbor:"log"`
}
