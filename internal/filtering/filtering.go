// Package filtering runs generated question candidates through a sequence of filters.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/dedup"
	"github.com/spigell/interview-prep/internal/interview"
)

// Candidate is a parsed, not yet accepted, question.
type Candidate struct {
	Text     string
	Category interview.Category
}

// Filter represents a single filtering step applied to a batch of candidates.
type Filter interface {
	Name() string
	Apply(ctx context.Context, deps Deps, batch []Candidate) ([]Candidate, Step, error)
}

// Deps aggregates the state shared across all filtering steps of one pass.
type Deps struct {
	Logger *zap.Logger
	Dedup  *dedup.Deduplicator
	// Excluded holds normalized texts that must never be returned again.
	Excluded map[string]struct{}
	// Accepted holds the question texts accepted in earlier passes.
	Accepted []string
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Default returns the filter order used by the question generator.
func Default(t interview.Type) []Filter {
	return []Filter{
		NewMalformed(),
		NewExcluded(),
		NewInterviewType(t),
		NewDuplicates(),
	}
}

// Run executes the supplied filters sequentially and returns the surviving candidates in their original order.
func Run(ctx context.Context, deps Deps, steps []Filter, batch []Candidate) ([]Candidate, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Dedup == nil {
		deps.Dedup = dedup.New(dedup.Config{})
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, batch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		batch = next
	}

	return batch, nil
}

func keep(batch []Candidate, drop func(Candidate) bool) ([]Candidate, []string) {
	kept := make([]Candidate, 0, len(batch))
	var dropped []string
	for _, c := range batch {
		if drop(c) {
			dropped = append(dropped, c.Text)
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

func stepOf(initial int, kept []Candidate) Step {
	return Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
