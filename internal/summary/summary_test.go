package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/interview"
)

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	s.calls++
	return s.response, s.err
}

func evaluatedReport() *interview.Report {
	return &interview.Report{
		Config: interview.Config{Role: "UX Designer", Type: interview.TypeBehavioral, QuestionCount: 2},
		Questions: []interview.Question{
			{Index: 0, Text: "Tell me about a design critique that changed your direction."},
			{Index: 1, Text: "Describe a time you pushed back on a stakeholder."},
		},
		Answers: map[int]interview.Answer{
			0: {QuestionIndex: 0, Text: "We ran a critique..."},
			1: {QuestionIndex: 1, Text: "I showed research data..."},
		},
		Evaluations: map[int]interview.Evaluation{
			0: {QuestionIndex: 0, Score: 70},
			1: {QuestionIndex: 1, Score: 50},
		},
	}
}

func TestSummarizeRequiresAllEvaluations(t *testing.T) {
	t.Parallel()

	r := evaluatedReport()
	delete(r.Evaluations, 1)

	completer := &stubCompleter{response: "Summary: fine"}
	_, err := New(completer, nil).Summarize(context.Background(), r)
	if !errors.Is(err, interview.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if completer.calls != 0 {
		t.Fatal("expected no completion call for an incomplete session")
	}
}

func TestSummarizeParsesSections(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{response: "Summary:\nStrong storytelling with\nclear outcomes.\n" +
		"Strengths:\n- Uses data to persuade\n- Clear structure\n" +
		"Improvements:\nQuantify the impact\nName the trade-offs"}

	got, err := New(completer, zap.NewNop()).Summarize(context.Background(), evaluatedReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if completer.calls != 1 {
		t.Fatalf("expected one call, got %d", completer.calls)
	}
	if got.Summary != "Strong storytelling with\nclear outcomes." {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if strings.Join(got.Strengths, "|") != "Uses data to persuade|Clear structure" {
		t.Fatalf("unexpected strengths: %q", got.Strengths)
	}
	if strings.Join(got.Improvements, "|") != "Quantify the impact|Name the trade-offs" {
		t.Fatalf("expected newline fallback for improvements, got %q", got.Improvements)
	}
}

func TestSummarizeKeepsProse(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	completer := &stubCompleter{response: "  You did well overall but should practice STAR.  "}

	got, err := New(completer, zap.New(core)).Summarize(context.Background(), evaluatedReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Summary != "You did well overall but should practice STAR." {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if got.Strengths == nil || got.Improvements == nil || len(got.Strengths)+len(got.Improvements) != 0 {
		t.Fatalf("expected empty lists, got %+v", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestSummarizePropagatesServiceError(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{err: &ai.ServiceError{Provider: "stub", Message: "down"}}
	_, err := New(completer, nil).Summarize(context.Background(), evaluatedReport())

	var svcErr *ai.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}
