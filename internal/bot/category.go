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

// handleChooseCategory shows the category menu when the event carries no
// choice, and records the choice then chains into a question when it does.
func (r *Router) handleChooseCategory(ctx context.Context, ev Event) (Result, error) {
	bank, err := r.source.Bank()
	if err != nil {
		return Result{}, err
	}

	if len(ev.Data) == 0 {
		return r.sendCategoryMenu(ctx, ev.UserID, bank.Categories())
	}

	var choice payload.CategoryChoice
	if err := json.Unmarshal(ev.Data, &choice); err != nil {
		return Result{}, fmt.Errorf("decode category choice: %w", err)
	}
	if !bank.Has(choice.Category) {
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgInvalidCategory}); err != nil {
			return Result{}, err
		}
		return Result{}, nil
	}

	err = r.users.UpdateCategory(ctx, ev.UserID, choice.Category)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Result{}, err
	}

	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgCategorySet}); err != nil {
		return Result{}, err
	}
	return Result{Next: ActionAskQuestion}, nil
}

func (r *Router) sendCategoryMenu(ctx context.Context, userID string, categories []string) (Result, error) {
	replies := make([]messenger.QuickReply, 0, len(categories))
	for _, category := range categories {
		encoded, err := r.codec.Encode(string(ActionChooseCategory), payload.CategoryChoice{
			V:        payload.Version,
			Category: category,
		})
		if err != nil {
			return Result{}, fmt.Errorf("encode category payload: %w", err)
		}
		replies = append(replies, messenger.QuickReply{Title: category, Payload: encoded})
	}

	err := r.sink.Send(ctx, userID, messenger.QuickReplyMessage{
		Text:    msgChooseCategory,
		Replies: replies,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{}, nil
}
