package dedup

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"  What is a Mutex?  ", "what is a mutex"},
		{"1. Explain   TCP\n handshake.", "explain tcp handshake"},
		{"Q2: Describe a B-tree!!", "describe a b-tree"},
		{"- How does DNS resolution work?", "how does dns resolution work"},
		{"3) Design a rate limiter", "design a rate limiter"},
		{"What is the CAP theorem ... ", "what is the cap theorem"},
		{"", ""},
		{"Tell me about a time you led a team.", "tell me about a time you led a team"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDuplicate(t *testing.T) {
	t.Parallel()

	d := New(Config{})

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "case and whitespace only",
			a:    "What is a mutex?",
			b:    "  what IS a   mutex ",
			want: true,
		},
		{
			name: "numbering differs",
			a:    "1. Explain the TCP three-way handshake.",
			b:    "Explain the TCP three-way handshake",
			want: true,
		},
		{
			name: "near paraphrase",
			a:    "What is the difference between a process and a thread?",
			b:    "What is the difference between a thread and a process?",
			want: true,
		},
		{
			name: "long containment",
			a:    "How would you design a URL shortener",
			b:    "How would you design a URL shortener that handles a billion requests per day?",
			want: true,
		},
		{
			name: "short containment is not enough",
			a:    "What is DNS",
			b:    "What is DNS over HTTPS and why would a browser prefer it?",
			want: false,
		},
		{
			name: "different questions",
			a:    "Explain how a hash map handles collisions.",
			b:    "Describe the trade-offs of microservices versus a monolith.",
			want: false,
		},
		{
			name: "one empty",
			a:    "",
			b:    "What is a heap?",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := d.IsDuplicate(tt.a, tt.b); got != tt.want {
				t.Fatalf("IsDuplicate(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := d.IsDuplicate(tt.b, tt.a); got != tt.want {
				t.Fatalf("IsDuplicate is not symmetric for %q and %q", tt.a, tt.b)
			}
		})
	}
}

func TestIsDuplicateReflexive(t *testing.T) {
	t.Parallel()

	d := New(Config{Threshold: 0.99, MinContainment: 1000})
	for _, q := range []string{"", "x", "What is a heap?", "Tell me about a conflict you resolved."} {
		if !d.IsDuplicate(q, q) {
			t.Errorf("expected %q to duplicate itself", q)
		}
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	if got := New(Config{Threshold: 1.5}).Threshold(); got != DefaultThreshold {
		t.Fatalf("expected default threshold, got %v", got)
	}
	if got := New(Config{Threshold: 0.7}).Threshold(); got != 0.7 {
		t.Fatalf("expected configured threshold, got %v", got)
	}
}

func TestDuplicateOf(t *testing.T) {
	t.Parallel()

	d := New(Config{})
	accepted := []string{"Explain how garbage collection works in Go.", "What is a deadlock?"}

	match, ok := d.DuplicateOf("what is a deadlock", accepted)
	if !ok || match != "What is a deadlock?" {
		t.Fatalf("expected deadlock match, got %q, %v", match, ok)
	}

	if _, ok := d.DuplicateOf("Describe consistent hashing.", accepted); ok {
		t.Fatal("expected no match")
	}
}
