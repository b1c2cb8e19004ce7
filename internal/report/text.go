// Package report renders finalized sessions for the terminal and as an HTML export.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/interview-prep/internal/interview"
)

const timeLayout = "2006-01-02 15:04 MST"

// printer remembers the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) block(indent, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		p.printf("%s%s\n", indent, strings.TrimRight(line, " \t"))
	}
}

func (p *printer) list(indent string, items []string, empty string) {
	if len(items) == 0 {
		p.printf("%s%s\n", indent, empty)
		return
	}
	for _, item := range items {
		p.printf("%s- %s\n", indent, item)
	}
}

// Title is the one-line description of a session config.
func Title(cfg interview.Config) string {
	parts := []string{cfg.Role}
	if cfg.Domain != "" {
		parts = append(parts, cfg.Domain)
	}
	parts = append(parts, cfg.Type.Title())
	return strings.Join(parts, " / ")
}

// QuestionLabel prefixes the 1-based number and, for technical questions, the category.
func QuestionLabel(q interview.Question) string {
	if q.Category == "" {
		return fmt.Sprintf("Q%d", q.Index+1)
	}
	return fmt.Sprintf("Q%d [%s]", q.Index+1, q.Category.Label())
}

// ScoreLabel renders a score with its scale and qualifiers.
func ScoreLabel(ev interview.Evaluation) string {
	s := fmt.Sprintf("%d/%d", ev.Score, interview.MaxScore)
	switch {
	case ev.Skipped:
		s += " (skipped)"
	case ev.LowConfidence:
		s += " (score not found in feedback)"
	}
	return s
}

// RenderEvaluation writes the feedback shown right after an answer.
func RenderEvaluation(w io.Writer, ev interview.Evaluation) error {
	p := &printer{w: w}
	writeEvaluation(p, ev)
	return p.err
}

func writeEvaluation(p *printer, ev interview.Evaluation) {
	p.printf("  Score: %s\n", ScoreLabel(ev))
	p.printf("  Key points:\n")
	p.list("    ", ev.KeyPoints, "- none")
	if ev.ModelAnswer != "" {
		p.printf("  Model answer:\n")
		p.block("    ", ev.ModelAnswer)
	}
}

// RenderText writes the full report in plain text.
func RenderText(w io.Writer, r *interview.Report) error {
	p := &printer{w: w}

	p.printf("Interview report: %s\n", Title(r.Config))
	p.printf("Session: %s\n", r.ID)
	if !r.CreatedAt.IsZero() {
		p.printf("Date: %s\n", r.CreatedAt.Local().Format(timeLayout))
	}
	p.printf("Final score: %.1f/%d\n", r.FinalScore, interview.MaxScore)

	for _, q := range r.Questions {
		p.printf("\n%s %s\n", QuestionLabel(q), q.Text)

		answer := r.Answers[q.Index]
		if answer.Skipped() {
			p.printf("  Answer: (skipped)\n")
		} else {
			p.printf("  Answer:\n")
			p.block("    ", answer.Text)
		}

		if ev, ok := r.Evaluations[q.Index]; ok {
			writeEvaluation(p, ev)
		}
	}

	p.printf("\nSummary\n")
	if strings.TrimSpace(r.Summary) == "" {
		p.printf("  (none)\n")
	} else {
		p.block("  ", r.Summary)
	}

	p.printf("\nStrengths\n")
	p.list("  ", r.Strengths, "- none")
	p.printf("\nImprovements\n")
	p.list("  ", r.Improvements, "- none")

	p.printf("\nResources\n")
	if len(r.Resources) == 0 {
		p.printf("  - none\n")
	}
	for _, res := range r.Resources {
		p.printf("  - %s: %s\n", res.Title, res.URL)
	}

	return p.err
}
