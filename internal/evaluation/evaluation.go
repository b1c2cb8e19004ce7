// Package evaluation scores a single answer with the completion service.
package evaluation

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/prompts"
)

// NoAnswerKeyPoint is the only key point of a skipped question.
const NoAnswerKeyPoint = "no answer provided"

// Evaluator turns an answer into a scored Evaluation.
type Evaluator struct {
	completer ai.Completer
	logger    *zap.Logger
}

func New(completer ai.Completer, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{completer: completer, logger: log}
}

// Evaluate scores answer to q. An empty answer gets the minimum score without a completion call.
// A response without a readable score degrades to the minimum score flagged LowConfidence.
func (e *Evaluator) Evaluate(ctx context.Context, cfg interview.Config, q interview.Question, answer interview.Answer) (interview.Evaluation, error) {
	if answer.Skipped() {
		return interview.Evaluation{
			QuestionIndex: q.Index,
			Score:         interview.MinScore,
			KeyPoints:     []string{NoAnswerKeyPoint},
			Skipped:       true,
		}, nil
	}

	prompt, err := prompts.Evaluate(prompts.EvaluationRequest{
		Role:     cfg.Role,
		Domain:   cfg.Domain,
		Type:     cfg.Type,
		Question: q.Text,
		Answer:   answer.Text,
	})
	if err != nil {
		return interview.Evaluation{}, err
	}

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return interview.Evaluation{}, fmt.Errorf("evaluate answer %d: %w", q.Index+1, err)
	}

	parsed := parse(raw)
	ev := interview.Evaluation{
		QuestionIndex: q.Index,
		Score:         parsed.score,
		KeyPoints:     parsed.keyPoints,
		ModelAnswer:   parsed.modelAnswer,
		Raw:           raw,
	}

	if parsed.err != nil {
		ev.Score = interview.MinScore
		ev.LowConfidence = true
		e.logger.Warn("evaluation score could not be parsed",
			zap.Int("question", q.Index+1),
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.Error(parsed.err),
		)
	}

	e.logger.Debug("answer evaluated",
		zap.Int("question", q.Index+1),
		zap.Int("score", ev.Score),
		zap.Int("key_points", len(ev.KeyPoints)),
	)

	return ev, nil
}
