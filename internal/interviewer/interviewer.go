// Package interviewer drives one interview session from question generation to the final report.
package interviewer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/logger"
	"github.com/spigell/interview-prep/internal/prompts"
	"github.com/spigell/interview-prep/internal/summary"
)

// weaknessLimit caps the weak areas passed to the resource request.
const weaknessLimit = 5

// ErrNoCurrentQuestion is returned by Answer once every question has been answered.
var ErrNoCurrentQuestion = errors.New("no question is waiting for an answer")

type QuestionGenerator interface {
	Generate(ctx context.Context, cfg interview.Config) ([]interview.Question, error)
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, cfg interview.Config, q interview.Question, answer interview.Answer) (interview.Evaluation, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, r *interview.Report) (summary.Result, error)
}

type Recommender interface {
	Recommend(ctx context.Context, req prompts.ResourceRequest) []interview.Resource
}

// Interviewer runs the steps of a session. The session only changes when a step
// succeeds, so any failed step can be retried as is.
type Interviewer struct {
	generator   QuestionGenerator
	evaluator   AnswerEvaluator
	summarizer  Summarizer
	recommender Recommender
	logger      *zap.Logger
	now         func() time.Time
}

func New(gen QuestionGenerator, eval AnswerEvaluator, sum Summarizer, rec Recommender, log *zap.Logger) *Interviewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interviewer{
		generator:   gen,
		evaluator:   eval,
		summarizer:  sum,
		recommender: rec,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Start validates cfg before generating any question.
func (i *Interviewer) Start(ctx context.Context, cfg interview.Config) (*interview.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	questions, err := i.generator.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s, err := interview.NewSession(cfg, questions)
	if err != nil {
		return nil, err
	}

	logger.WithSession(i.logger, s.ID, cfg).Info("interview started", zap.Int("questions", len(questions)))
	return s, nil
}

// Answer evaluates text as the answer to the current question and advances the session.
func (i *Interviewer) Answer(ctx context.Context, s *interview.Session, text string) (*interview.Evaluation, error) {
	q, ok := s.Current()
	if !ok {
		return nil, ErrNoCurrentQuestion
	}

	answer := interview.Answer{QuestionIndex: q.Index, Text: text, SubmittedAt: i.now()}
	ev, err := i.evaluator.Evaluate(ctx, s.Config, q, answer)
	if err != nil {
		return nil, err
	}

	if err := s.Record(answer, ev); err != nil {
		return nil, err
	}

	pos, total := s.Position()
	i.logger.Debug("answer recorded",
		zap.String(logger.FieldSession, s.ID),
		zap.Int("question", q.Index+1),
		zap.Int("score", ev.Score),
		zap.Int("next", pos),
		zap.Int("total", total),
	)
	return &ev, nil
}

// Finish summarizes the session, asks for resources and returns the finalized report.
func (i *Interviewer) Finish(ctx context.Context, s *interview.Session) (*interview.Report, error) {
	if !s.Complete() {
		return nil, interview.ErrIncomplete
	}

	snapshot := s.Snapshot()
	result, err := i.summarizer.Summarize(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	snapshot.Improvements = result.Improvements

	resources := i.recommender.Recommend(ctx, prompts.ResourceRequest{
		Summary:    result.Summary,
		Role:       s.Config.Role,
		Domain:     s.Config.Domain,
		Type:       s.Config.Type,
		Weaknesses: snapshot.Weaknesses(weaknessLimit),
	})

	report, err := s.Finalize(result.Summary, result.Strengths, result.Improvements, resources)
	if err != nil {
		return nil, err
	}

	i.logger.Info("interview finished",
		zap.String(logger.FieldSession, report.ID),
		zap.Float64("final_score", report.FinalScore),
		zap.Int("resources", len(report.Resources)),
	)
	return report, nil
}
