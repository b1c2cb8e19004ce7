package classify

import (
	"testing"

	"github.com/spigell/interview-prep/internal/interview"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want interview.Category
	}{
		{"How would you choose an index for a slow SQL query?", interview.CategoryDatabase},
		{"Explain what happens during the TCP handshake.", interview.CategoryNetworks},
		{"What is a deadlock and how do you prevent it?", interview.CategoryOS},
		{"Design a rate limiter for a public API.", interview.CategorySystemDesign},
		{"Implement a function that reverses a linked list.", interview.CategoryAlgorithms},
		{"What is idempotency?", interview.CategoryFactual},
		{"How do you decide which metrics a new onboarding flow should move?", interview.CategoryRoleSpecific},
		{"Explain the difference between threads and processes when querying a database.", interview.CategoryDatabase},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  interview.Category
		ok    bool
	}{
		{"Algorithms/Coding", interview.CategoryAlgorithms, true},
		{"System Design", interview.CategorySystemDesign, true},
		{"role-specific", interview.CategoryRoleSpecific, true},
		{"OS", interview.CategoryOS, true},
		{" Networking ", interview.CategoryNetworks, true},
		{"DB", interview.CategoryDatabase, true},
		{"Factual", interview.CategoryFactual, true},
		{"Trivia", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLabel(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLabel(%q) = %q, %v, want %q, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchesType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		typ  interview.Type
		want bool
	}{
		{
			name: "technical accepts technical",
			text: "Explain how a hash map handles collisions.",
			typ:  interview.TypeTechnical,
			want: true,
		},
		{
			name: "technical rejects star prompt",
			text: "Tell me about a time you disagreed with your manager.",
			typ:  interview.TypeTechnical,
			want: false,
		},
		{
			name: "technical rejects soft skills",
			text: "How do you keep stakeholders aligned on priorities?",
			typ:  interview.TypeTechnical,
			want: false,
		},
		{
			name: "technical keeps data conflicts",
			text: "How do you resolve write conflicts in a replicated database?",
			typ:  interview.TypeTechnical,
			want: true,
		},
		{
			name: "behavioral accepts star prompt",
			text: "Describe a situation where you had to lead without authority.",
			typ:  interview.TypeBehavioral,
			want: true,
		},
		{
			name: "behavioral rejects coding",
			text: "Write a function that checks whether a string is a palindrome.",
			typ:  interview.TypeBehavioral,
			want: false,
		},
		{
			name: "behavioral rejects system design",
			text: "Walk me through the system design of a chat service.",
			typ:  interview.TypeBehavioral,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MatchesType(tt.text, tt.typ); got != tt.want {
				t.Fatalf("MatchesType(%q, %s) = %v, want %v", tt.text, tt.typ, got, tt.want)
			}
		})
	}
}
