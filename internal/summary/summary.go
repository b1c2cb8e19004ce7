// Package summary produces the closing narrative of a fully evaluated session.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/prompts"
	"github.com/spigell/interview-prep/internal/utils"
)

const (
	sectionSummary      = "summary"
	sectionStrengths    = "strengths"
	sectionImprovements = "improvements"
)

var errNoSections = errors.New("no summary sections found")

// Result is the parsed narrative. Slices are never nil.
type Result struct {
	Summary      string
	Strengths    []string
	Improvements []string
}

type Summarizer struct {
	completer ai.Completer
	logger    *zap.Logger
}

func New(completer ai.Completer, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Summarizer{completer: completer, logger: log}
}

// Summarize makes one completion call over every evaluated answer of r. It returns
// interview.ErrIncomplete while any question lacks an evaluation.
func (s *Summarizer) Summarize(ctx context.Context, r *interview.Report) (Result, error) {
	if r == nil {
		return Result{}, interview.ErrIncomplete
	}
	for _, q := range r.Questions {
		if _, ok := r.Evaluations[q.Index]; !ok {
			return Result{}, interview.ErrIncomplete
		}
	}

	prompt, err := prompts.Summarize(prompts.SummaryRequest{
		Config:      r.Config,
		Questions:   r.Questions,
		Answers:     r.Answers,
		Evaluations: r.Evaluations,
	})
	if err != nil {
		return Result{}, err
	}

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("summarize interview: %w", err)
	}

	result, err := parse(raw)
	if err != nil {
		s.logger.Warn("summary layout not recognized, keeping raw text", zap.Error(err))
	}
	return result, nil
}

func parse(raw string) (Result, error) {
	sections := utils.SplitSections(raw, sectionSummary, sectionStrengths, sectionImprovements)

	_, hasSummary := sections[sectionSummary]
	_, hasStrengths := sections[sectionStrengths]
	_, hasImprovements := sections[sectionImprovements]
	if !hasSummary && !hasStrengths && !hasImprovements {
		return Result{
			Summary:      strings.TrimSpace(raw),
			Strengths:    []string{},
			Improvements: []string{},
		}, &interview.ParseError{Kind: "summary", Raw: raw, Cause: errNoSections}
	}

	text := sections[sectionSummary]
	if text == "" {
		text = sections[""]
	}

	return Result{
		Summary:      text,
		Strengths:    utils.Bullets(sections[sectionStrengths]),
		Improvements: utils.Bullets(sections[sectionImprovements]),
	}, nil
}
