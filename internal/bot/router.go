package bot

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
	"github.com/j03-dev/ankamantatra-bot/internal/quiz"
	"github.com/j03-dev/ankamantatra-bot/internal/repository"
)

// ErrRouteNotFound means an inbound event named a route no handler
// answers to. The turn reports a generic error; other users are not
// affected.
var ErrRouteNotFound = errors.New("bot: route not found")

// chains are short (entry -> ask question at most); anything longer is a
// transition bug, not a conversation.
const maxChain = 8

// UserStore is the persistence boundary for user accounts.
type UserStore interface {
	GetByUserID(ctx context.Context, userID string) (entity.UserAccount, error)
	Create(ctx context.Context, name, userID string) (entity.UserAccount, error)
	UpdateScore(ctx context.Context, userID string, score int) error
	UpdateCategory(ctx context.Context, userID, category string) error
	Delete(ctx context.Context, userID string) error
}

// ActionStore holds the one-shot pending action per user.
type ActionStore interface {
	Set(ctx context.Context, userID, action string) error
	Consume(ctx context.Context, userID string) (string, bool, error)
	Clear(ctx context.Context, userID string) error
}

// Sink delivers outbound messages; the transport owns rendering.
type Sink interface {
	Send(ctx context.Context, userID string, msg messenger.Message) error
}

// Explainer produces free-form explanation text for a wrong answer.
type Explainer interface {
	Explain(ctx context.Context, question, answer string) (string, error)
}

// Router resolves inbound events to conversation handlers and drives the
// transitions they return.
type Router struct {
	users   UserStore
	pending ActionStore
	source  quiz.Source
	codec   *payload.Codec
	explain Explainer
	sink    Sink
}

func NewRouter(users UserStore, pending ActionStore, source quiz.Source, codec *payload.Codec, explain Explainer, sink Sink) *Router {
	return &Router{
		users:   users,
		pending: pending,
		source:  source,
		codec:   codec,
		explain: explain,
		sink:    sink,
	}
}

// Handle runs one conversation turn. Resolution order: the explicit route
// on the event (which clears any stored pending action), else the stored
// pending action (consumed, one-shot), else Entry. Handler failures are
// reported to the user and never leave a pending action behind.
func (r *Router) Handle(ctx context.Context, ev Event) error {
	action, err := r.resolve(ctx, ev)
	if err != nil {
		r.report(ctx, ev.UserID, err)
		return err
	}

	for hops := 0; ; hops++ {
		result, err := r.dispatch(ctx, action, ev)
		if err != nil {
			r.report(ctx, ev.UserID, err)
			return fmt.Errorf("action %s for user %s: %w", action, ev.UserID, err)
		}
		if result.Next != "" && result.Pending != "" {
			return fmt.Errorf("bot: action %s set both next and pending", action)
		}
		if result.Pending != "" {
			if err := r.pending.Set(ctx, ev.UserID, string(result.Pending)); err != nil {
				r.report(ctx, ev.UserID, err)
				return err
			}
			return nil
		}
		if result.Next == "" {
			return nil
		}
		if hops == maxChain {
			return fmt.Errorf("bot: chain exceeded %d hops at action %s", maxChain, action)
		}
		// A chained handler starts a fresh step; the triggering
		// event's payload belongs to the handler that consumed it.
		ev = Event{UserID: ev.UserID}
		action = result.Next
	}
}

func (r *Router) resolve(ctx context.Context, ev Event) (Action, error) {
	if ev.Route != "" {
		// Explicit intent wins and must not leak into a later
		// ambiguous turn.
		if err := r.pending.Clear(ctx, ev.UserID); err != nil {
			return "", err
		}
		action, ok := ParseAction(ev.Route)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrRouteNotFound, ev.Route)
		}
		return action, nil
	}

	name, ok, err := r.pending.Consume(ctx, ev.UserID)
	if err != nil {
		return "", err
	}
	if ok {
		if action, valid := ParseAction(name); valid {
			return action, nil
		}
		log.Printf("bot: user %s had stale pending action %q, falling back to entry", ev.UserID, name)
	}
	return ActionEntry, nil
}

func (r *Router) dispatch(ctx context.Context, action Action, ev Event) (Result, error) {
	switch action {
	case ActionEntry:
		return r.handleEntry(ctx, ev)
	case ActionRegister:
		return r.handleRegister(ctx, ev)
	case ActionChooseCategory:
		return r.handleChooseCategory(ctx, ev)
	case ActionAskQuestion:
		return r.handleAskQuestion(ctx, ev)
	case ActionGradeAnswer:
		return r.handleGradeAnswer(ctx, ev)
	case ActionSettings:
		return r.handleSettings(ctx, ev)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrRouteNotFound, action)
	}
}

// report sends the short user-visible message for a failed turn. Internal
// detail goes to the log only.
func (r *Router) report(ctx context.Context, userID string, err error) {
	log.Printf("bot: turn failed for user %s: %v", userID, err)

	var loadErr *quiz.LoadError
	var text string
	switch {
	case errors.As(err, &loadErr):
		text = msgLoadFailed
	case errors.Is(err, quiz.ErrEmptyCategory):
		text = msgNoQuestions
	case errors.Is(err, quiz.ErrUnknownCategory):
		text = msgInvalidCategory
	case errors.Is(err, ErrRouteNotFound):
		text = msgUnknownRequest
	default:
		text = msgGenericFailure
	}
	if sendErr := r.sink.Send(ctx, userID, messenger.TextMessage{Text: text}); sendErr != nil {
		log.Printf("bot: failed to report error to user %s: %v", userID, sendErr)
	}
}

// requireUser loads the account or reports that the flow should restart
// at Entry.
func (r *Router) requireUser(ctx context.Context, userID string) (entity.UserAccount, bool, error) {
	account, err := r.users.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.UserAccount{}, false, nil
	}
	if err != nil {
		return entity.UserAccount{}, false, err
	}
	return account, true, nil
}
