package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
	"github.com/j03-dev/ankamantatra-bot/internal/repository"
)

// handleSettings serves the persistent menu: reset the score, delete the
// account, or jump back into category selection. Reset and delete chain
// to entry, which reports the fresh state (or re-prompts registration).
func (r *Router) handleSettings(ctx context.Context, ev Event) (Result, error) {
	var choice payload.SettingsChoice
	if len(ev.Data) == 0 {
		return Result{Next: ActionEntry}, nil
	}
	if err := json.Unmarshal(ev.Data, &choice); err != nil {
		return Result{}, fmt.Errorf("decode settings choice: %w", err)
	}

	switch choice.Choice {
	case payload.SettingChooseCategory:
		return Result{Next: ActionChooseCategory}, nil

	case payload.SettingResetScore:
		err := r.users.UpdateScore(ctx, ev.UserID, 0)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return Result{}, err
		}
		return Result{Next: ActionEntry}, nil

	case payload.SettingDeleteAccount:
		err := r.users.Delete(ctx, ev.UserID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return Result{}, err
		}
		return Result{Next: ActionEntry}, nil

	default:
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgUnknownRequest}); err != nil {
			return Result{}, err
		}
		return Result{}, nil
	}
}
