package interview

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the mutable state of an interview in progress. It progresses strictly serially:
// only the current question can be answered and each answer is evaluated exactly once.
type Session struct {
	ID          string
	CreatedAt   time.Time
	Config      Config
	Questions   []Question
	Answers     map[int]Answer
	Evaluations map[int]Evaluation

	current int
}

// NewSession creates a session for an already generated question set.
func NewSession(cfg Config, questions []Question) (*Session, error) {
	if len(questions) != cfg.QuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", cfg.QuestionCount, len(questions))
	}

	for i, q := range questions {
		if q.Index != i {
			return nil, fmt.Errorf("question %d has index %d", i, q.Index)
		}
	}

	return &Session{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Config:      cfg,
		Questions:   questions,
		Answers:     make(map[int]Answer, len(questions)),
		Evaluations: make(map[int]Evaluation, len(questions)),
	}, nil
}

// Current returns the question awaiting an answer, false once every question is evaluated.
func (s *Session) Current() (Question, bool) {
	if s.current >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.current], true
}

// Position returns the 1-based number of the current question and the total count.
func (s *Session) Position() (int, int) {
	return s.current + 1, len(s.Questions)
}

// Record stores an answer and its evaluation for the current question and advances.
func (s *Session) Record(answer Answer, evaluation Evaluation) error {
	q, ok := s.Current()
	if !ok {
		return fmt.Errorf("all %d questions are already answered", len(s.Questions))
	}

	if answer.QuestionIndex != q.Index || evaluation.QuestionIndex != q.Index {
		return fmt.Errorf("question %d must be answered before question %d", q.Index, answer.QuestionIndex)
	}

	if _, exists := s.Evaluations[q.Index]; exists {
		return fmt.Errorf("question %d is already evaluated", q.Index)
	}

	s.Answers[q.Index] = answer
	s.Evaluations[q.Index] = evaluation
	s.current++
	return nil
}

// Complete reports whether every question has an evaluation.
func (s *Session) Complete() bool {
	return len(s.Evaluations) == len(s.Questions)
}

// FinalScore is the mean of the per-question scores.
func (s *Session) FinalScore() (float64, error) {
	if !s.Complete() {
		return 0, ErrIncomplete
	}
	if len(s.Evaluations) == 0 {
		return 0, nil
	}

	total := 0
	for _, ev := range s.Evaluations {
		total += ev.Score
	}
	return float64(total) / float64(len(s.Evaluations)), nil
}

// Snapshot assembles a report from the current state without the final score and narrative.
func (s *Session) Snapshot() *Report {
	return &Report{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Config:      s.Config,
		Questions:   append([]Question(nil), s.Questions...),
		Answers:     maps.Clone(s.Answers),
		Evaluations: maps.Clone(s.Evaluations),
	}
}

// Finalize builds the persisted report. It fails with ErrIncomplete until all questions are evaluated.
func (s *Session) Finalize(summary string, strengths, improvements []string, resources []Resource) (*Report, error) {
	score, err := s.FinalScore()
	if err != nil {
		return nil, err
	}

	if resources == nil {
		resources = []Resource{}
	}

	report := s.Snapshot()
	report.FinalScore = score
	report.Summary = summary
	report.Strengths = nonNil(strengths)
	report.Improvements = nonNil(improvements)
	report.Resources = resources
	return report, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
