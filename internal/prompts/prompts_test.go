package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/spigell/interview-prep/internal/interview"
)

func TestGenerateQuestionsTechnical(t *testing.T) {
	t.Parallel()

	prompt, err := GenerateQuestions(QuestionRequest{
		Role:    "Software Engineer",
		Domain:  "Backend Development",
		Type:    interview.TypeTechnical,
		Count:   10,
		Exclude: []string{"What is a mutex?", "Explain [REST]\nverbs"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Generate exactly 10 new, unique, self-contained technical interview questions",
		"Software Engineer position with focus on Backend Development",
		"Algorithms/Coding: at least 30% (3 of 10)",
		"System Design: at least 20% (2 of 10)",
		"- Data structures and algorithms",
		"[Domain focus: Backend Development]",
		"- What is a mutex?",
		"- Explain (REST) verbs",
		"Allowed labels: Algorithms, System Design, Role-Specific, OS, Networks, Database, Factual.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("prompt has unresolved placeholders:\n%s", prompt)
	}
}

func TestGenerateQuestionsBehavioral(t *testing.T) {
	t.Parallel()

	prompt, err := GenerateQuestions(QuestionRequest{Role: "Product Manager", Type: interview.TypeBehavioral, Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt, "STAR answer") {
		t.Error("behavioral prompt must ask for STAR-style questions")
	}
	if strings.Contains(prompt, "[Technical rules]") || strings.Contains(prompt, "Allowed labels") {
		t.Error("behavioral prompt must not carry technical rules")
	}
	if !strings.Contains(prompt, "[Already asked - do not repeat]") || !strings.Contains(prompt, "- none") {
		t.Error("expected an explicit empty exclusion list")
	}
	if strings.Contains(prompt, "with focus on") {
		t.Error("expected no domain clause without a domain")
	}
}

func TestBuildersRejectMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() (string, error)
		field string
	}{
		{
			name:  "questions without role",
			build: func() (string, error) { return GenerateQuestions(QuestionRequest{Type: interview.TypeTechnical, Count: 1}) },
			field: "role",
		},
		{
			name: "questions with zero count",
			build: func() (string, error) {
				return GenerateQuestions(QuestionRequest{Role: "UX Designer", Type: interview.TypeTechnical})
			},
			field: "count",
		},
		{
			name: "questions with unknown type",
			build: func() (string, error) {
				return GenerateQuestions(QuestionRequest{Role: "UX Designer", Type: "panel", Count: 1})
			},
			field: "interview_type",
		},
		{
			name: "evaluation without answer",
			build: func() (string, error) {
				return Evaluate(EvaluationRequest{Role: "UX Designer", Type: interview.TypeBehavioral, Question: "q", Answer: "  "})
			},
			field: "answer",
		},
		{
			name:  "summary without questions",
			build: func() (string, error) { return Summarize(SummaryRequest{}) },
			field: "questions",
		},
		{
			name: "resources without summary",
			build: func() (string, error) {
				return SuggestResources(ResourceRequest{Role: "UX Designer", Type: interview.TypeBehavioral})
			},
			field: "summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.build()
			var cfgErr *interview.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestEvaluateUsesTypeCriteria(t *testing.T) {
	t.Parallel()

	technical, err := Evaluate(EvaluationRequest{
		Role:     "DevOps Engineer",
		Type:     interview.TypeTechnical,
		Question: "How do you roll back a failed deployment?",
		Answer:   "Blue/green switch\nthen drain the old pool.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Correctness", "Complexity", "Clarity", "- Automation and efficiency", "Score: <integer 0-100>/100", "Blue/green switch\nthen drain"} {
		if !strings.Contains(technical, want) {
			t.Errorf("technical prompt is missing %q", want)
		}
	}

	behavioral, err := Evaluate(EvaluationRequest{
		Role:     "DevOps Engineer",
		Type:     interview.TypeBehavioral,
		Question: "Tell me about a time you handled an outage.",
		Answer:   "We had an outage.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Situation", "Task", "Action", "Result"} {
		if !strings.Contains(behavioral, want) {
			t.Errorf("behavioral prompt is missing %q", want)
		}
	}
}

func TestEvaluateKeepsPlaceholdersInValues(t *testing.T) {
	t.Parallel()

	prompt, err := Evaluate(EvaluationRequest{
		Role:     "Software Engineer",
		Type:     interview.TypeTechnical,
		Question: "What does {{ANSWER}} render to in a Go template?",
		Answer:   "It calls the {{QUESTION}} field.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"What does {{ANSWER}} render to in a Go template?", "It calls the {{QUESTION}} field."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestSummarizeListsEveryAnswer(t *testing.T) {
	t.Parallel()

	req := SummaryRequest{
		Config: interview.Config{Role: "Data Scientist", Type: interview.TypeTechnical, QuestionCount: 2},
		Questions: []interview.Question{
			{Index: 0, Text: "What is overfitting?", Category: interview.CategoryFactual},
			{Index: 1, Text: "Explain gradient descent."},
		},
		Answers: map[int]interview.Answer{
			0: {QuestionIndex: 0, Text: "Memorizing noise."},
			1: {QuestionIndex: 1},
		},
		Evaluations: map[int]interview.Evaluation{
			0: {QuestionIndex: 0, Score: 80, KeyPoints: []string{"concise"}},
			1: {QuestionIndex: 1, Score: 0, Skipped: true},
		},
	}

	prompt, err := Summarize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Average score: 40/100",
		"Q1 [Factual]: What is overfitting?",
		"Answer: Memorizing noise.",
		"Key points: concise",
		"Q2: Explain gradient descent.",
		"Answer: (skipped)",
		"Domain: general",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("summary prompt is missing %q", want)
		}
	}
}

func TestSuggestResourcesListsWeaknesses(t *testing.T) {
	t.Parallel()

	prompt, err := SuggestResources(ResourceRequest{
		Summary:    "Solid fundamentals.",
		Role:       "Software Engineer",
		Type:       interview.TypeTechnical,
		Weaknesses: []string{"Caching strategies", ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prompt, "- Caching strategies") {
		t.Error("expected weaknesses in the prompt")
	}
	if !strings.Contains(prompt, `"title"`) || !strings.Contains(prompt, `"url"`) {
		t.Error("expected the JSON keys to be spelled out")
	}
}
