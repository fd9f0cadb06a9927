// Package statement defines the closed set of statements the vault executes.
//
// Parsing text into statements is the caller's job. The set is sealed: only
// types in this package implement Statement, so the dispatcher can match on
// them exhaustively.
package statement

import "github.com/PolarWolf314/pwmn/internal/register"

// Statement is one executable command.
type Statement interface {
	statement()
}

// Init creates the root vault.
type Init struct{}

// Create creates a new register.
type Create struct {
	Name string
}

// Connect opens a register and makes it the session's active register.
type Connect struct {
	Name string
}

// Disconnect closes the active register.
type Disconnect struct{}

// Drop deletes a register or an entry of the connected register.
type Drop struct {
	Target DropTarget
}

// DropTarget is what a Drop statement removes.
type DropTarget interface {
	dropTarget()
}

// DropRegister removes a whole register directory.
type DropRegister struct {
	Name string
}

// DropEntry removes one entry from the connected register.
type DropEntry struct {
	ID string
}

// Select lists the connected register's entries, or fetches one when ID is set.
type Select struct {
	ID string
}

// Insert adds an entry to the connected register. With Generate set the
// password is generated with Length characters instead of prompted for.
type Insert struct {
	UsedFor     []string
	Username    string
	URL         string
	Notes       string
	Generate    bool
	Length      int
	CustomField map[string]register.CustomValue
}

// Update replaces the password of an entry in the connected register.
type Update struct {
	ID       string
	Generate bool
	Length   int
}

func (Init) statement()       {}
func (Create) statement()     {}
func (Connect) statement()    {}
func (Disconnect) statement() {}
func (Drop) statement()       {}
func (Select) statement()     {}
func (Insert) statement()     {}
func (Update) statement()     {}

func (DropRegister) dropTarget() {}
func (DropEntry) dropTarget()    {}
