// Package generator produces the unique question set of an interview session.
//
// Each pass asks the completion service for more questions than still needed, filters the
// response (malformed, already excluded, wrong interview type, duplicates) and accepts the
// survivors in order. Everything seen joins the exclusion list of the next pass. When the
// passes run out, canned questions fill the remaining slots.
package generator

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/dedup"
	"github.com/spigell/interview-prep/internal/filtering"
	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/prompts"
)

const (
	DefaultOverGenerationFactor = 1.5
	DefaultMaxPasses            = 3
)

// Config tunes the generation loop.
type Config struct {
	OverGenerationFactor float64      `mapstructure:"over-generation-factor"`
	MaxPasses            int          `mapstructure:"max-passes"`
	Dedup                dedup.Config `mapstructure:",squash"`
	// Exclude seeds the exclusion list, typically from an exclude file.
	Exclude []string `mapstructure:"-"`
}

// Generator builds question sets with a completion service.
type Generator struct {
	completer ai.Completer
	dedup     *dedup.Deduplicator
	factor    float64
	maxPasses int
	exclude   []string
	logger    *zap.Logger
}

func New(completer ai.Completer, cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	factor := cfg.OverGenerationFactor
	if factor < DefaultOverGenerationFactor {
		factor = DefaultOverGenerationFactor
	}

	maxPasses := cfg.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	return &Generator{
		completer: completer,
		dedup:     dedup.New(cfg.Dedup),
		factor:    factor,
		maxPasses: maxPasses,
		exclude:   append([]string(nil), cfg.Exclude...),
		logger:    log,
	}
}

// exclusions keeps the ordered list sent to the model and the normalized set used for matching.
type exclusions struct {
	list []string
	set  map[string]struct{}
}

func (e *exclusions) add(text string) {
	key := dedup.Normalize(text)
	if key == "" {
		return
	}
	if _, ok := e.set[key]; ok {
		return
	}
	e.set[key] = struct{}{}
	e.list = append(e.list, text)
}

func (e *exclusions) has(text string) bool {
	_, ok := e.set[dedup.Normalize(text)]
	return ok
}

// Generate returns exactly cfg.QuestionCount pairwise non-duplicate questions with stable indices.
// Completion failures are returned as *ai.ServiceError; a useless response only consumes a pass.
func (g *Generator) Generate(ctx context.Context, cfg interview.Config) ([]interview.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	excluded := &exclusions{set: make(map[string]struct{})}
	for _, text := range g.exclude {
		excluded.add(text)
	}

	steps := filtering.Default(cfg.Type)
	accepted := make([]interview.Question, 0, cfg.QuestionCount)

	for pass := 1; pass <= g.maxPasses && len(accepted) < cfg.QuestionCount; pass++ {
		remaining := cfg.QuestionCount - len(accepted)
		requested := int(math.Ceil(float64(remaining) * g.factor))

		prompt, err := prompts.GenerateQuestions(prompts.QuestionRequest{
			Role:    cfg.Role,
			Domain:  cfg.Domain,
			Type:    cfg.Type,
			Count:   requested,
			Exclude: excluded.list,
		})
		if err != nil {
			return nil, err
		}

		raw, err := g.completer.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate questions: %w", err)
		}

		batch := parseQuestions(raw, cfg.Type)
		if len(batch) == 0 {
			g.logger.Warn("question response yielded no candidates",
				zap.Int("pass", pass),
				zap.Error(&interview.ParseError{Kind: "questions", Raw: raw}),
			)
			continue
		}

		kept, err := filtering.Run(ctx, filtering.Deps{
			Logger:   g.logger,
			Dedup:    g.dedup,
			Excluded: excluded.set,
			Accepted: questionTexts(accepted),
		}, steps, batch)
		if err != nil {
			return nil, err
		}

		for _, c := range kept {
			if len(accepted) == cfg.QuestionCount {
				break
			}
			accepted = append(accepted, interview.Question{Index: len(accepted), Text: c.Text, Category: c.Category})
		}

		for _, c := range batch {
			excluded.add(c.Text)
		}

		g.logger.Info("question generation pass",
			zap.Int("pass", pass),
			zap.Int("requested", requested),
			zap.Int("parsed", len(batch)),
			zap.Int("kept", len(kept)),
			zap.Int("accepted", len(accepted)),
		)
	}

	if missing := cfg.QuestionCount - len(accepted); missing > 0 {
		g.logger.Warn("filling question set with fallback questions", zap.Int("missing", missing))

		var err error
		accepted, err = g.fill(cfg, accepted, excluded)
		if err != nil {
			return nil, err
		}
	}

	return accepted, nil
}

// fill tops up accepted from the fallback pool. Pool entries that were excluded are used only
// when nothing else is left.
func (g *Generator) fill(cfg interview.Config, accepted []interview.Question, excluded *exclusions) ([]interview.Question, error) {
	pool := fallbackPool(cfg)

	for _, allowExcluded := range []bool{false, true} {
		for _, q := range pool {
			if len(accepted) == cfg.QuestionCount {
				return accepted, nil
			}
			if !allowExcluded && excluded.has(q.Text) {
				continue
			}
			if _, dup := g.dedup.DuplicateOf(q.Text, questionTexts(accepted)); dup {
				continue
			}
			q.Index = len(accepted)
			accepted = append(accepted, q)
		}
	}

	if len(accepted) < cfg.QuestionCount {
		return nil, fmt.Errorf("only %d of %d questions could be generated", len(accepted), cfg.QuestionCount)
	}
	return accepted, nil
}

func questionTexts(questions []interview.Question) []string {
	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.Text)
	}
	return texts
}
