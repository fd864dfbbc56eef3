package bot

import (
	"context"
	"fmt"

	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
)

// handleAskQuestion draws one question at random from the user's category
// and offers each candidate answer as a quick reply carrying everything
// grading will need. The next routeless event from this user grades.
func (r *Router) handleAskQuestion(ctx context.Context, ev Event) (Result, error) {
	account, found, err := r.requireUser(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Next: ActionEntry}, nil
	}
	if !account.HasCategory() {
		return Result{Next: ActionChooseCategory}, nil
	}

	bank, err := r.source.Bank()
	if err != nil {
		return Result{}, err
	}
	question, err := bank.Pick(*account.Category)
	if err != nil {
		return Result{}, err
	}

	if err := r.sink.Send(ctx, ev.UserID, messenger.TextMessage{Text: question.Prompt}); err != nil {
		return Result{}, err
	}

	candidates := question.Candidates()
	replies := make([]messenger.QuickReply, 0, len(candidates))
	for _, candidate := range candidates {
		encoded, err := r.codec.Encode(string(ActionGradeAnswer), payload.AnswerSubmission{
			V:               payload.Version,
			Question:        question.Prompt,
			CandidateAnswer: candidate,
			CorrectAnswer:   question.Answer,
		})
		if err != nil {
			return Result{}, fmt.Errorf("encode answer payload: %w", err)
		}
		replies = append(replies, messenger.QuickReply{Title: candidate, Payload: encoded})
	}

	err = r.sink.Send(ctx, ev.UserID, messenger.QuickReplyMessage{
		Text:    msgChooseOption,
		Replies: replies,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Pending: ActionGradeAnswer}, nil
}
