package register

import (
	"fmt"
	"slices"
	"strings"
	"time"

	perrors "github.com/PolarWolf314/pwmn/internal/errors"
)

// New returns an empty register named name, created at now.
func New(name string, now time.Time) *Register {
	ts := now.Unix()
	return &Register{
		Name: name,
		Metadata: Metadata{
			CreatedAt:  ts,
			ModifiedAt: ts,
		},
	}
}

// EntryInput carries the caller-supplied fields of a new entry.
type EntryInput struct {
	UsedFor     []string
	Password    []byte
	CreatedBy   CreatedBy
	Notes       string
	Username    string
	URL         string
	CustomField map[string]CustomValue
}

// RecordAccess counts a successful connection.
func (r *Register) RecordAccess() {
	r.Metadata.AccessCount++
}

// Find returns the entry with the given id.
func (r *Register) Find(id string) (*Entry, bool) {
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			return &r.Entries[i], true
		}
	}
	return nil, false
}

// AddEntry appends a new entry built from in. The password is copied, so the
// caller may wipe in.Password afterwards.
func (r *Register) AddEntry(in EntryInput, now time.Time) (*Entry, error) {
	if len(in.Password) == 0 {
		r.appendLog(now, OpInsert, "", false, "empty password")
		return nil, &perrors.ShortLenError{Field: "entry password", Min: 1}
	}

	id := NewID("entry")
	for _, taken := r.Find(id); taken; _, taken = r.Find(id) {
		id = NewID("entry")
	}

	ts := now.Unix()
	entry := Entry{
		ID:          id,
		UsedFor:     normalizeTags(in.UsedFor),
		Password:    slices.Clone(in.Password),
		Notes:       in.Notes,
		Username:    in.Username,
		URL:         in.URL,
		CustomField: in.CustomField,
		Metadata: EntryMetadata{
			CreatedAt:     ts,
			ModifiedAt:    ts,
			StrengthScore: uint8(Strength(in.Password)),
			CreatedBy:     in.CreatedBy,
		},
	}
	r.Entries = append(r.Entries, entry)
	r.Metadata.NumEntries = uint32(len(r.Entries))
	r.Metadata.ModifiedAt = ts
	r.appendLog(now, OpInsert, id, true, "entry added for "+strings.Join(entry.UsedFor, ","))

	return &r.Entries[len(r.Entries)-1], nil
}

// FetchEntry returns the entry with the given id and counts the read.
func (r *Register) FetchEntry(id string, now time.Time) (*Entry, error) {
	entry, ok := r.Find(id)
	if !ok {
		r.appendLog(now, OpFetch, id, false, "no such entry")
		return nil, fmt.Errorf("%w: %s", perrors.ErrEntryNotFound, id)
	}
	entry.Metadata.FetchedCount++
	r.appendLog(now, OpFetch, id, true, "entry fetched")
	return entry, nil
}

// UpdatePassword replaces the password of an entry, wiping the old one.
func (r *Register) UpdatePassword(id string, password []byte, by CreatedBy, now time.Time) error {
	entry, ok := r.Find(id)
	if !ok {
		r.appendLog(now, OpUpdate, id, false, "no such entry")
		return fmt.Errorf("%w: %s", perrors.ErrEntryNotFound, id)
	}
	if len(password) == 0 {
		r.appendLog(now, OpUpdate, id, false, "empty password")
		return &perrors.ShortLenError{Field: "entry password", Min: 1}
	}

	wipe(entry.Password)
	entry.Password = slices.Clone(password)
	entry.Metadata.StrengthScore = uint8(Strength(password))
	entry.Metadata.CreatedBy = by
	entry.Metadata.ModifiedAt = now.Unix()
	r.Metadata.ModifiedAt = now.Unix()
	r.appendLog(now, OpUpdate, id, true, "password updated")
	return nil
}

// DeleteEntry removes an entry, wiping its password.
func (r *Register) DeleteEntry(id string, now time.Time) error {
	idx := slices.IndexFunc(r.Entries, func(e Entry) bool { return e.ID == id })
	if idx < 0 {
		r.appendLog(now, OpDelete, id, false, "no such entry")
		return fmt.Errorf("%w: %s", perrors.ErrEntryNotFound, id)
	}

	wipe(r.Entries[idx].Password)
	r.Entries = slices.Delete(r.Entries, idx, idx+1)
	r.Metadata.NumEntries = uint32(len(r.Entries))
	r.Metadata.ModifiedAt = now.Unix()
	r.appendLog(now, OpDelete, id, true, "entry deleted")
	return nil
}

// Clone returns a deep copy of the register. Passwords are copied, so
// wiping one copy leaves the other intact.
func (r *Register) Clone() *Register {
	c := *r
	c.Entries = make([]Entry, len(r.Entries))
	for i, e := range r.Entries {
		e.UsedFor = slices.Clone(e.UsedFor)
		e.Password = slices.Clone(e.Password)
		if e.CustomField != nil {
			fields := make(map[string]CustomValue, len(e.CustomField))
			for k, v := range e.CustomField {
				fields[k] = v
			}
			e.CustomField = fields
		}
		c.Entries[i] = e
	}
	c.Log = slices.Clone(r.Log)
	return &c
}

// Wipe zeroes every password held by the register. The register must not be
// encoded afterwards.
func (r *Register) Wipe() {
	if r == nil {
		return
	}
	for i := range r.Entries {
		wipe(r.Entries[i].Password)
	}
}

func (r *Register) appendLog(now time.Time, op Operation, id string, ok bool, details string) {
	r.Log = append(r.Log, LogEntry{
		Timestamp: now.Unix(),
		Operation: op,
		EntryID:   id,
		Status:    ok,
		Details:   details,
	})
}

// normalizeTags lowercases, trims, sorts and deduplicates tags so UsedFor
// behaves as a set with a stable encoding.
func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
