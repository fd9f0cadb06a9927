package workflows

import (
	"context"
	"fmt"

	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/statement"
)

// Execute runs one statement and returns the workflow's result, one of the
// *XxxResult types of this package.
//
// Returns ErrUnsupportedStatement for a nil statement or drop target.
func Execute(ctx context.Context, rt *Runtime, stmt statement.Statement) (any, error) {
	switch s := stmt.(type) {
	case statement.Init:
		return result(Init(ctx, rt))
	case statement.Create:
		return result(Create(ctx, rt, CreateOptions{Name: s.Name}))
	case statement.Connect:
		return result(Connect(ctx, rt, ConnectOptions{Name: s.Name}))
	case statement.Disconnect:
		return result(Disconnect(ctx, rt))
	case statement.Drop:
		switch t := s.Target.(type) {
		case statement.DropRegister:
			return result(DropRegister(ctx, rt, DropRegisterOptions{Name: t.Name}))
		case statement.DropEntry:
			return result(DropEntry(ctx, rt, DropEntryOptions{ID: t.ID}))
		default:
			return nil, fmt.Errorf("%w: drop target %T", perrors.ErrUnsupportedStatement, s.Target)
		}
	case statement.Select:
		return result(Select(ctx, rt, SelectOptions{ID: s.ID}))
	case statement.Insert:
		return result(Insert(ctx, rt, InsertOptions{
			UsedFor:     s.UsedFor,
			Username:    s.Username,
			URL:         s.URL,
			Notes:       s.Notes,
			Generate:    s.Generate,
			Length:      s.Length,
			CustomField: s.CustomField,
		}))
	case statement.Update:
		return result(UpdatePassword(ctx, rt, UpdateOptions{ID: s.ID, Generate: s.Generate, Length: s.Length}))
	default:
		return nil, fmt.Errorf("%w: %T", perrors.ErrUnsupportedStatement, stmt)
	}
}

// result drops the typed nil a failed workflow returns, so callers can
// compare the result with nil.
func result[T any](r *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}
