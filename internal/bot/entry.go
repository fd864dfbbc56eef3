package bot

import (
	"context"
	"fmt"

	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
)

// handleEntry is the default step. Unregistered users get the
// registration prompt and a pending register action; registered users get
// their name and score, then flow onward to the question or the category
// menu.
func (r *Router) handleEntry(ctx context.Context, ev Event) (Result, error) {
	account, found, err := r.requireUser(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if !found {
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgRegisterPrompt}); err != nil {
			return Result{}, err
		}
		return Result{Pending: ActionRegister}, nil
	}

	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: "username:" + account.Name}); err != nil {
		return Result{}, err
	}
	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: fmt.Sprintf("score:%d", account.Score)}); err != nil {
		return Result{}, err
	}

	if account.HasCategory() {
		return Result{Next: ActionAskQuestion}, nil
	}
	return Result{Next: ActionChooseCategory}, nil
}
