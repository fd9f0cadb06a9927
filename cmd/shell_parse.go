package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/statement"
)

const shellUsage = `Statements:
  init                                  create the root vault
  create <name>                         create a register
  connect <name>                        connect to a register
  disconnect                            disconnect the connected register
  drop register <name>                  delete a register (disconnected)
  drop entry <id>                       delete an entry of the connected register
  select [<id>]                         list entries, or show one with its password
  insert <used_for>[,<used_for>...] [user=<u>] [url=<u>] [notes=<n>]
         [generate] [length=<n>] [field.<key>=<value>]...
                                        add an entry
  update <id> [generate] [length=<n>]   replace an entry password
  status                                show the root vault and session
  help                                  show this help
  exit                                  disconnect and leave the shell
A trailing ';' is accepted and ignored.`

// parseStatement turns the words of one shell line into a statement.
// Keywords are case-insensitive, arguments are kept as typed.
func parseStatement(words []string) (statement.Statement, error) {
	words = trimTerminator(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty statement")
	}

	keyword := strings.ToLower(words[0])
	args := words[1:]

	switch keyword {
	case "init":
		if err := wantArgs(keyword, args, 0); err != nil {
			return nil, err
		}
		return statement.Init{}, nil

	case "create":
		if err := wantArgs("create <name>", args, 1); err != nil {
			return nil, err
		}
		return statement.Create{Name: args[0]}, nil

	case "connect":
		if err := wantArgs("connect <name>", args, 1); err != nil {
			return nil, err
		}
		return statement.Connect{Name: args[0]}, nil

	case "disconnect":
		if err := wantArgs(keyword, args, 0); err != nil {
			return nil, err
		}
		return statement.Disconnect{}, nil

	case "drop":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: drop register <name> | drop entry <id>")
		}
		switch strings.ToLower(args[0]) {
		case "register", "reg":
			return statement.Drop{Target: statement.DropRegister{Name: args[1]}}, nil
		case "entry", "ent":
			return statement.Drop{Target: statement.DropEntry{ID: args[1]}}, nil
		default:
			return nil, fmt.Errorf("usage: drop register <name> | drop entry <id>")
		}

	case "select":
		if len(args) > 1 {
			return nil, fmt.Errorf("usage: select [<id>]")
		}
		if len(args) == 1 {
			return statement.Select{ID: args[0]}, nil
		}
		return statement.Select{}, nil

	case "insert":
		return parseInsert(args)

	case "update":
		return parseUpdate(args)

	default:
		return nil, fmt.Errorf("unknown statement %q, type 'help' for the list", words[0])
	}
}

func parseInsert(args []string) (statement.Statement, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: insert <used_for>[,<used_for>...] [options]")
	}

	stmt := statement.Insert{}
	for _, u := range strings.Split(args[0], ",") {
		if u = strings.TrimSpace(u); u != "" {
			stmt.UsedFor = append(stmt.UsedFor, u)
		}
	}
	if len(stmt.UsedFor) == 0 {
		return nil, fmt.Errorf("insert needs at least one used_for value")
	}

	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "generate") {
			stmt.Generate = true
			continue
		}

		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("unexpected %q, options are key=value", arg)
		}
		switch k := strings.ToLower(key); {
		case k == "user" || k == "username":
			stmt.Username = value
		case k == "url":
			stmt.URL = value
		case k == "notes":
			stmt.Notes = value
		case k == "length":
			n, err := parseLength(value)
			if err != nil {
				return nil, err
			}
			stmt.Length = n
		case strings.HasPrefix(k, "field."):
			name := key[len("field."):]
			if name == "" {
				return nil, fmt.Errorf("custom field needs a name: field.<key>=<value>")
			}
			if stmt.CustomField == nil {
				stmt.CustomField = map[string]register.CustomValue{}
			}
			stmt.CustomField[name] = parseCustomValue(value)
		default:
			return nil, fmt.Errorf("unknown insert option %q", key)
		}
	}

	if stmt.Length != 0 && !stmt.Generate {
		return nil, fmt.Errorf("length only applies with generate")
	}
	return stmt, nil
}

func parseUpdate(args []string) (statement.Statement, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: update <id> [generate] [length=<n>]")
	}

	stmt := statement.Update{ID: args[0]}
	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "generate") {
			stmt.Generate = true
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok || !strings.EqualFold(key, "length") {
			return nil, fmt.Errorf("unexpected %q in update", arg)
		}
		n, err := parseLength(value)
		if err != nil {
			return nil, err
		}
		stmt.Length = n
	}

	if stmt.Length != 0 && !stmt.Generate {
		return nil, fmt.Errorf("length only applies with generate")
	}
	return stmt, nil
}

func parseLength(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("length must be a positive number, got %q", value)
	}
	if n > register.MaxGeneratedLength {
		return 0, fmt.Errorf("length must be at most %d, got %d", register.MaxGeneratedLength, n)
	}
	return n, nil
}

// parseCustomValue reads true/false as Bool, 32-bit integers as Number and
// anything else as Text.
func parseCustomValue(value string) register.CustomValue {
	switch strings.ToLower(value) {
	case "true":
		return register.BoolValue(true)
	case "false":
		return register.BoolValue(false)
	}
	if n, err := strconv.ParseInt(value, 10, 32); err == nil {
		return register.NumberValue(int32(n))
	}
	return register.TextValue(value)
}

func wantArgs(usage string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// trimTerminator drops a trailing ';', alone or glued to the last word.
func trimTerminator(words []string) []string {
	if len(words) == 0 {
		return words
	}
	last := len(words) - 1
	if words[last] == ";" {
		return words[:last]
	}
	if strings.HasSuffix(words[last], ";") {
		out := append([]string(nil), words...)
		out[last] = strings.TrimSuffix(out[last], ";")
		return out
	}
	return words
}
