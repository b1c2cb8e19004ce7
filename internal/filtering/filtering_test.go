package filtering

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-prep/internal/dedup"
	"github.com/spigell/interview-prep/internal/interview"
)

func texts(batch []Candidate) []string {
	out := make([]string, 0, len(batch))
	for _, c := range batch {
		out = append(out, c.Text)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunDefaultPipeline(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	deps := Deps{
		Logger:   zap.New(core),
		Dedup:    dedup.New(dedup.Config{}),
		Excluded: map[string]struct{}{dedup.Normalize("What is a mutex?"): {}},
		Accepted: []string{"Explain how a hash map handles collisions."},
	}

	batch := []Candidate{
		{Text: "Technical questions:"},
		{Text: "  what is a MUTEX "},
		{Text: "Tell me about a time you disagreed with your manager."},
		{Text: "Explain how a hash map handles collisions"},
		{Text: "Design a rate limiter for a public API."},
		{Text: "Design a rate limiter for a public API!"},
		{Text: "What is a B-tree index?"},
		{Text: "ok"},
	}

	got, err := Run(context.Background(), deps, Default(interview.TypeTechnical), batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Design a rate limiter for a public API.", "What is a B-tree index?"}
	if !equal(texts(got), want) {
		t.Fatalf("unexpected survivors: %v", texts(got))
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 4 {
		t.Fatalf("expected 4 filter step logs, got %d", len(steps))
	}
	first := steps[0].ContextMap()
	if first["name"] != "malformed" || first["dropped"] != int64(2) {
		t.Fatalf("unexpected malformed step: %v", first)
	}
}

func TestRunBehavioralDropsTechnical(t *testing.T) {
	t.Parallel()

	batch := []Candidate{
		{Text: "Write a function that checks whether a string is a palindrome."},
		{Text: "Tell me about a time you resolved a conflict within your team."},
	}

	got, err := Run(context.Background(), Deps{}, Default(interview.TypeBehavioral), batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !equal(texts(got), []string{"Tell me about a time you resolved a conflict within your team."}) {
		t.Fatalf("unexpected survivors: %v", texts(got))
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, Deps{}, Default(interview.TypeTechnical), []Candidate{{Text: "What is a heap?"}}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestExcludeFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "asked.json")

	empty, err := LoadExcludeFile(path)
	if err != nil {
		t.Fatalf("missing file must load as empty: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(empty.Items))
	}

	engineer := interview.Config{Role: "Software Engineer", Type: interview.TypeTechnical}
	designer := interview.Config{Role: "UX Designer", Type: interview.TypeBehavioral}

	empty.Append(ToExcluded(engineer, []interview.Question{{Text: "What is a heap?"}}))
	empty.Append(ToExcluded(designer, []interview.Question{{Text: "Tell me about a design critique."}}))
	if err := empty.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	loaded, err := LoadExcludeFile(path)
	if err != nil {
		t.Fatalf("load exclude file: %v", err)
	}

	if got := loaded.Texts("Software Engineer", interview.TypeTechnical); !equal(got, []string{"What is a heap?"}) {
		t.Fatalf("unexpected texts for engineer: %v", got)
	}
	if got := loaded.Texts("", ""); len(got) != 2 {
		t.Fatalf("expected all texts without filters, got %v", got)
	}
}
