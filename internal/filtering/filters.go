package filtering

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/classify"
	"github.com/spigell/interview-prep/internal/dedup"
	"github.com/spigell/interview-prep/internal/interview"
)

const minQuestionWords = 3

// chatter marks lines that talk about the answer instead of being a question.
var chatter = []string{"sorry", "here are", "here is", "sure", "certainly", "i can", "i cannot", "i can't", "as an ai", "note:"}

type malformedFilter struct{}

// NewMalformed creates a filter that removes empty lines, headings and fragments.
func NewMalformed() Filter {
	return &malformedFilter{}
}

func (f *malformedFilter) Name() string { return "malformed" }

func (f *malformedFilter) Apply(_ context.Context, deps Deps, batch []Candidate) ([]Candidate, Step, error) {
	kept, dropped := keep(batch, func(c Candidate) bool { return malformed(c.Text) })
	if len(dropped) > 0 {
		deps.Logger.Debug("dropping malformed candidates", zap.Strings("candidates", dropped))
	}
	return kept, stepOf(len(batch), kept), nil
}

func malformed(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasSuffix(text, ":") {
		return true
	}
	if !strings.ContainsFunc(text, unicode.IsLetter) {
		return true
	}

	lower := strings.ToLower(text)
	for _, prefix := range chatter {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return len(strings.Fields(text)) < minQuestionWords
}

type excludedFilter struct{}

// NewExcluded creates a filter that removes candidates found in the exclusion list.
func NewExcluded() Filter {
	return &excludedFilter{}
}

func (f *excludedFilter) Name() string { return "excluded" }

func (f *excludedFilter) Apply(_ context.Context, deps Deps, batch []Candidate) ([]Candidate, Step, error) {
	if len(deps.Excluded) == 0 {
		return batch, stepOf(len(batch), batch), nil
	}

	kept, dropped := keep(batch, func(c Candidate) bool {
		_, found := deps.Excluded[dedup.Normalize(c.Text)]
		return found
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding already asked questions",
			zap.Strings("excluded_questions", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}
	return kept, stepOf(len(batch), kept), nil
}

type interviewTypeFilter struct {
	typ interview.Type
}

// NewInterviewType creates a filter that removes candidates belonging to the other interview type.
func NewInterviewType(t interview.Type) Filter {
	return &interviewTypeFilter{typ: t}
}

func (f *interviewTypeFilter) Name() string { return "interview_type" }

func (f *interviewTypeFilter) Apply(_ context.Context, deps Deps, batch []Candidate) ([]Candidate, Step, error) {
	kept, dropped := keep(batch, func(c Candidate) bool { return !classify.MatchesType(c.Text, f.typ) })
	if len(dropped) > 0 {
		deps.Logger.Info("excluding questions of the wrong interview type",
			zap.String("interview_type", string(f.typ)),
			zap.Strings("excluded_questions", dropped),
		)
	}
	return kept, stepOf(len(batch), kept), nil
}

type duplicatesFilter struct{}

// NewDuplicates creates a filter that removes near-duplicates inside the batch and of accepted
// questions. The first occurrence wins.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, batch []Candidate) ([]Candidate, Step, error) {
	seen := append([]string(nil), deps.Accepted...)

	kept, dropped := keep(batch, func(c Candidate) bool {
		if _, dup := deps.Dedup.DuplicateOf(c.Text, seen); dup {
			return true
		}
		seen = append(seen, c.Text)
		return false
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding duplicate questions",
			zap.Strings("excluded_questions", dropped),
			zap.Int("candidates_left", len(kept)),
		)
	}
	return kept, stepOf(len(batch), kept), nil
}
