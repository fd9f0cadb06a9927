package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/register"
)

// InsertOptions configures the insert workflow.
type InsertOptions struct {
	// UsedFor tags the entry, for example "bank" or "email".
	UsedFor  []string
	Username string
	URL      string
	Notes    string

	// Generate creates a random password of Length characters instead of
	// prompting for one.
	Generate bool
	Length   int

	CustomField map[string]register.CustomValue
}

// InsertResult contains the outcome of an insert operation.
type InsertResult struct {
	ID       string
	Strength register.Score

	// Generated holds the generated password when InsertOptions.Generate
	// was set. The caller wipes it after showing it.
	Generated []byte
}

// Insert adds an entry to the connected register and re-seals it.
//
// Returns ErrSessionNotConnected if no register is connected.
func Insert(ctx context.Context, rt *Runtime, opts InsertOptions) (_ *InsertResult, err error) {
	conn, err := rt.connection()
	if err != nil {
		return nil, err
	}
	var id string
	defer func() {
		rt.audit("insert", conn.Address, err == nil, func(e *audit.Entry) { e.EntryID = id })
	}()

	password, by, err := rt.entryPassword(opts.Generate, opts.Length)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(password)

	result := &InsertResult{}
	if err := rt.commit(conn, func(r *register.Register) error {
		entry, err := r.AddEntry(register.EntryInput{
			UsedFor:     opts.UsedFor,
			Password:    password,
			CreatedBy:   by,
			Notes:       opts.Notes,
			Username:    opts.Username,
			URL:         opts.URL,
			CustomField: opts.CustomField,
		}, rt.now())
		if err != nil {
			return err
		}
		result.ID = entry.ID
		result.Strength = register.Score(entry.Metadata.StrengthScore)
		return nil
	}); err != nil {
		return nil, err
	}
	id = result.ID

	if opts.Generate {
		result.Generated = slices.Clone(password)
	}
	rt.Log.Infof("Inserted entry %s", id)
	return result, nil
}

// EntrySummary describes an entry without its password.
type EntrySummary struct {
	ID           string
	UsedFor      []string
	Username     string
	URL          string
	Strength     register.Score
	CreatedBy    register.CreatedBy
	FetchedCount uint32
	ModifiedAt   int64
}

// SelectOptions configures the select workflow.
type SelectOptions struct {
	// ID selects one entry. Empty lists all entries without passwords.
	ID string
}

// SelectResult contains the outcome of a select operation.
type SelectResult struct {
	// Entries is set when listing.
	Entries []EntrySummary

	// Entry is a copy of the selected entry, password included. The caller
	// wipes Entry.Password when done.
	Entry *register.Entry
}

// Select lists the connected register or fetches one entry. Fetching counts
// the access and re-seals the register.
//
// Returns ErrSessionNotConnected if no register is connected.
// Returns ErrEntryNotFound if the register has no such entry.
func Select(ctx context.Context, rt *Runtime, opts SelectOptions) (_ *SelectResult, err error) {
	conn, err := rt.connection()
	if err != nil {
		return nil, err
	}

	if opts.ID == "" {
		entries := summarize(conn.Register.Entries)
		rt.audit("select", conn.Address, true, func(e *audit.Entry) { e.Count = len(entries) })
		return &SelectResult{Entries: entries}, nil
	}

	defer func() {
		rt.audit("fetch", conn.Address, err == nil, func(e *audit.Entry) { e.EntryID = opts.ID })
	}()

	result := &SelectResult{}
	if err := rt.commit(conn, func(r *register.Register) error {
		entry, err := r.FetchEntry(opts.ID, rt.now())
		if err != nil {
			return err
		}
		result.Entry = cloneEntry(entry)
		return nil
	}); err != nil {
		if result.Entry != nil {
			crypto.Zero(result.Entry.Password)
		}
		return nil, err
	}
	return result, nil
}

// UpdateOptions configures the update password workflow.
type UpdateOptions struct {
	ID       string
	Generate bool
	Length   int
}

// UpdateResult contains the outcome of an update password operation.
type UpdateResult struct {
	ID        string
	Strength  register.Score
	Generated []byte
}

// UpdatePassword replaces an entry's password and re-seals the register.
//
// Returns ErrSessionNotConnected if no register is connected.
// Returns ErrEntryNotFound if the register has no such entry.
func UpdatePassword(ctx context.Context, rt *Runtime, opts UpdateOptions) (_ *UpdateResult, err error) {
	conn, err := rt.connection()
	if err != nil {
		return nil, err
	}
	defer func() {
		rt.audit("update", conn.Address, err == nil, func(e *audit.Entry) { e.EntryID = opts.ID })
	}()

	if _, ok := conn.Register.Find(opts.ID); !ok {
		return nil, fmt.Errorf("%w: %s", perrors.ErrEntryNotFound, opts.ID)
	}

	password, by, err := rt.entryPassword(opts.Generate, opts.Length)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(password)

	if err := rt.commit(conn, func(r *register.Register) error {
		return r.UpdatePassword(opts.ID, password, by, rt.now())
	}); err != nil {
		return nil, err
	}

	result := &UpdateResult{ID: opts.ID, Strength: register.Strength(password)}
	if opts.Generate {
		result.Generated = slices.Clone(password)
	}
	return result, nil
}

// entryPassword generates or prompts for an entry password.
func (rt *Runtime) entryPassword(generate bool, length int) ([]byte, register.CreatedBy, error) {
	if generate {
		if length == 0 {
			length = DefaultGeneratedLength
		}
		password, err := register.GeneratePassword(length)
		return password, register.Generated, err
	}

	password, err := rt.readNewPassword("Entry password: ", "Confirm entry password: ")
	return password, register.Manual, err
}

func summarize(entries []register.Entry) []EntrySummary {
	out := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntrySummary{
			ID:           e.ID,
			UsedFor:      slices.Clone(e.UsedFor),
			Username:     e.Username,
			URL:          e.URL,
			Strength:     register.Score(e.Metadata.StrengthScore),
			CreatedBy:    e.Metadata.CreatedBy,
			FetchedCount: e.Metadata.FetchedCount,
			ModifiedAt:   e.Metadata.ModifiedAt,
		})
	}
	return out
}

func cloneEntry(e *register.Entry) *register.Entry {
	c := *e
	c.UsedFor = slices.Clone(e.UsedFor)
	c.Password = slices.Clone(e.Password)
	if e.CustomField != nil {
		c.CustomField = make(map[string]register.CustomValue, len(e.CustomField))
		for k, v := range e.CustomField {
			c.CustomField[k] = v
		}
	}
	return &c
}
