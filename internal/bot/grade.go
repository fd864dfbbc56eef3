package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
)

// handleGradeAnswer compares the submitted candidate to the correct
// answer, case-insensitively. A correct answer is worth exactly one point
// for a registered user; a wrong one gets the correct answer plus a
// best-effort generated explanation. Either way the flow loops back to
// entry.
func (r *Router) handleGradeAnswer(ctx context.Context, ev Event) (Result, error) {
	if len(ev.Data) == 0 {
		// Typed text while an answer was expected; the quick replies
		// above the composer still work, so just nudge.
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgPickAnOption}); err != nil {
			return Result{}, err
		}
		return Result{}, nil
	}

	var submission payload.AnswerSubmission
	if err := json.Unmarshal(ev.Data, &submission); err != nil {
		return Result{}, fmt.Errorf("decode answer submission: %w", err)
	}

	if strings.EqualFold(submission.CandidateAnswer, submission.CorrectAnswer) {
		if err := r.awardPoint(ctx, ev.UserID); err != nil {
			return Result{}, err
		}
		if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgCorrect}); err != nil {
			return Result{}, err
		}
		return Result{Next: ActionEntry}, nil
	}

	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: msgIncorrect}); err != nil {
		return Result{}, err
	}
	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: "The answer is : " + submission.CorrectAnswer}); err != nil {
		return Result{}, err
	}

	explanation, err := r.explain.Explain(ctx, submission.Question, submission.CorrectAnswer)
	if err != nil {
		log.Printf("bot: explanation failed for user %s: %v", ev.UserID, err)
		explanation = msgNoExplanation
	}
	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: explanation}); err != nil {
		return Result{}, err
	}
	return Result{Next: ActionEntry}, nil
}

// awardPoint adds one to the score. Scoring needs an existing account; a
// correct answer on a deleted account (stale payload) just doesn't write.
func (r *Router) awardPoint(ctx context.Context, userID string) error {
	account, found, err := r.requireUser(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		log.Printf("bot: correct answer from unregistered user %s, score not written", userID)
		return nil
	}
	return r.users.UpdateScore(ctx, userID, account.Score+1)
}
