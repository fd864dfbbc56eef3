package bot

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/repository"
)

// handleRegister treats the typed text as the display name. A conflict or
// a bad name keeps the user in registration; success chains back to
// entry.
func (r *Router) handleRegister(ctx context.Context, ev Event) (Result, error) {
	name := strings.TrimSpace(ev.Text)
	if name == "" || utf8.RuneCountInString(name) > entity.MaxNameLen {
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgNameTooLong}); err != nil {
			return Result{}, err
		}
		return Result{Pending: ActionRegister}, nil
	}

	if _, err := r.users.Create(ctx, name, ev.UserID); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			return Result{}, err
		}
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgRegisterFailed}); err != nil {
			return Result{}, err
		}
		return Result{Pending: ActionRegister}, nil
	}

	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgRegisterOK}); err != nil {
		return Result{}, err
	}
	return Result{Next: ActionEntry}, nil
}
