// Package prompts builds the natural-language requests sent to the text-generation service.
// Every builder is a pure function over its request; missing required fields yield a
// *interview.ConfigurationError.
package prompts

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/utils"
)

//go:embed templates/*.md
var templates embed.FS

const (
	questionsTemplate = "templates/questions.md"
	evaluateTemplate  = "templates/evaluate.md"
	summaryTemplate   = "templates/summary.md"
	resourcesTemplate = "templates/resources.md"

	maxAnswerRunes = 6000
)

// QuestionRequest describes a question generation pass.
type QuestionRequest struct {
	Role    string
	Domain  string
	Type    interview.Type
	Count   int
	Exclude []string
}

// EvaluationRequest describes the scoring of a single answer.
type EvaluationRequest struct {
	Role     string
	Domain   string
	Type     interview.Type
	Question string
	Answer   string
}

// SummaryRequest carries a fully evaluated, not yet finalized, session.
type SummaryRequest struct {
	Config      interview.Config
	Questions   []interview.Question
	Answers     map[int]interview.Answer
	Evaluations map[int]interview.Evaluation
}

// ResourceRequest describes a learning resource lookup.
type ResourceRequest struct {
	Summary    string
	Role       string
	Domain     string
	Type       interview.Type
	Weaknesses []string
}

// GenerateQuestions builds the request for Count new questions that avoid the exclusion list.
func GenerateQuestions(req QuestionRequest) (string, error) {
	if err := requireText("role", req.Role); err != nil {
		return "", err
	}
	if err := requireType(req.Type); err != nil {
		return "", err
	}
	if req.Count <= 0 {
		return "", &interview.ConfigurationError{Field: "count", Message: "must be positive"}
	}

	var rules, format string
	switch req.Type {
	case interview.TypeTechnical:
		rules = technicalRules(req.Role, req.Domain, req.Count)
		format = technicalFormat()
	case interview.TypeBehavioral:
		rules = behavioralRules()
		format = "One question per line, numbered, for example:\n1. Tell me about a time when ..."
	}

	return render(questionsTemplate, map[string]string{
		"ROLE":          sanitizeLine(req.Role),
		"COUNT":         fmt.Sprint(req.Count),
		"TYPE":          strings.ToLower(req.Type.Title()),
		"DOMAIN_CLAUSE": domainClause(req.Domain),
		"TYPE_RULES":    rules,
		"EXCLUDE":       bulletList(req.Exclude, "none"),
		"FORMAT":        format,
	})
}

// Evaluate builds the scoring request for one answer on the 0-100 scale.
func Evaluate(req EvaluationRequest) (string, error) {
	if err := requireText("role", req.Role); err != nil {
		return "", err
	}
	if err := requireType(req.Type); err != nil {
		return "", err
	}
	if err := requireText("question", req.Question); err != nil {
		return "", err
	}
	if err := requireText("answer", req.Answer); err != nil {
		return "", err
	}

	domain := sanitizeLine(req.Domain)
	if domain == "" {
		domain = "the role"
	}

	return render(evaluateTemplate, map[string]string{
		"ROLE":     sanitizeLine(req.Role),
		"DOMAIN":   domain,
		"QUESTION": sanitizeLine(req.Question),
		"ANSWER":   truncateBlock(req.Answer, maxAnswerRunes),
		"CRITERIA": evaluationCriteria(req.Role, req.Type),
	})
}

// Summarize builds the final narrative request over every evaluated answer.
func Summarize(req SummaryRequest) (string, error) {
	if len(req.Questions) == 0 {
		return "", &interview.ConfigurationError{Field: "questions", Message: "are required"}
	}
	if err := requireText("role", req.Config.Role); err != nil {
		return "", err
	}
	if err := requireType(req.Config.Type); err != nil {
		return "", err
	}

	domain := sanitizeLine(req.Config.Domain)
	if domain == "" {
		domain = "general"
	}

	return render(summaryTemplate, map[string]string{
		"ROLE":   sanitizeLine(req.Config.Role),
		"DOMAIN": domain,
		"TYPE":   req.Config.Type.Title(),
		"SCORE":  fmt.Sprintf("%.0f", averageScore(req.Evaluations)),
		"QA":     formatQA(req),
	})
}

// SuggestResources builds the request for a strict JSON array of {title, url} objects.
func SuggestResources(req ResourceRequest) (string, error) {
	if err := requireText("summary", req.Summary); err != nil {
		return "", err
	}
	if err := requireText("role", req.Role); err != nil {
		return "", err
	}
	if err := requireType(req.Type); err != nil {
		return "", err
	}

	return render(resourcesTemplate, map[string]string{
		"ROLE":          sanitizeLine(req.Role),
		"TYPE":          strings.ToLower(req.Type.Title()),
		"DOMAIN_CLAUSE": domainClause(req.Domain),
		"SUMMARY":       truncateBlock(req.Summary, maxAnswerRunes),
		"WEAKNESSES":    bulletList(req.Weaknesses, "none identified"),
	})
}

func technicalRules(role, domain string, count int) string {
	var b strings.Builder

	b.WriteString("[Technical rules]\n")
	b.WriteString("Balance the categories. Minimum share of the questions:\n")
	fmt.Fprintf(&b, "- Algorithms/Coding: at least 30%% (%d of %d)\n", atLeast(count, 0.3), count)
	fmt.Fprintf(&b, "- System Design: at least 20%% (%d of %d)\n", atLeast(count, 0.2), count)
	fmt.Fprintf(&b, "- Role-Specific: at least 20%% (%d of %d)\n", atLeast(count, 0.2), count)
	b.WriteString("- OS, Networks, Database: at least 10% each where applicable to the role\n")
	b.WriteString("- Factual: at least one short definition question\n")
	b.WriteString("Do not ask behavioral questions about teamwork, leadership, conflicts or past experiences.\n")
	b.WriteString("Make questions practical and scenario-based, testing both theory and implementation.\n")

	if profile, ok := interview.LookupRole(role); ok && len(profile.Focus) > 0 {
		b.WriteString("\n[Role focus]\n")
		b.WriteString(bulletList(profile.Focus, ""))
		b.WriteString("\n")
	}

	if focus := interview.DomainFocus(domain); len(focus) > 0 {
		fmt.Fprintf(&b, "\n[Domain focus: %s]\n", sanitizeLine(domain))
		b.WriteString(bulletList(focus, ""))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func technicalFormat() string {
	labels := make([]string, 0, len(interview.Categories))
	for _, c := range interview.Categories {
		labels = append(labels, c.Label())
	}

	return "One question per line, numbered, prefixed with its category label in square brackets, for example:\n" +
		"1. [Algorithms] How would you detect a cycle in a linked list?\n" +
		"Allowed labels: " + strings.Join(labels, ", ") + "."
}

func behavioralRules() string {
	return strings.Join([]string{
		"[Behavioral rules]",
		"Cover a variety of topics: teamwork, leadership, conflict resolution, communication, handling ambiguity and stakeholder management.",
		"Frame every question so it invites a STAR answer (Situation, Task, Action, Result).",
		"Do not ask technical, coding, algorithm or system design questions.",
	}, "\n")
}

func evaluationCriteria(role string, t interview.Type) string {
	if t == interview.TypeBehavioral {
		return strings.Join([]string{
			"Evaluate the response against the STAR structure:",
			"1. Situation: clear context and background",
			"2. Task: specific role and responsibilities",
			"3. Action: detailed steps the candidate took",
			"4. Result: quantifiable outcomes and learning",
			"Also weigh specificity of the example and the impact achieved.",
		}, "\n")
	}

	roleCriteria := []string{"Understanding of core principles"}
	if profile, ok := interview.LookupRole(role); ok && len(profile.Criteria) > 0 {
		roleCriteria = profile.Criteria
	}

	var b strings.Builder
	b.WriteString("Evaluate the technical response on:\n")
	b.WriteString("1. Correctness: accuracy of the technical concepts\n")
	for _, c := range roleCriteria {
		fmt.Fprintf(&b, "   - %s\n", c)
	}
	b.WriteString("2. Complexity: awareness of time/space complexity, trade-offs and alternatives\n")
	b.WriteString("3. Clarity: structured explanation and precise terminology")
	return b.String()
}

func formatQA(r SummaryRequest) string {
	var b strings.Builder
	for _, q := range r.Questions {
		label := ""
		if q.Category != "" {
			label = fmt.Sprintf(" [%s]", q.Category.Label())
		}
		fmt.Fprintf(&b, "Q%d%s: %s\n", q.Index+1, label, sanitizeLine(q.Text))

		answer := "(skipped)"
		if a, ok := r.Answers[q.Index]; ok && !a.Skipped() {
			answer = truncateBlock(a.Text, maxAnswerRunes/4)
		}
		fmt.Fprintf(&b, "Answer: %s\n", answer)

		if ev, ok := r.Evaluations[q.Index]; ok {
			fmt.Fprintf(&b, "Score: %d/100\n", ev.Score)
			if len(ev.KeyPoints) > 0 {
				fmt.Fprintf(&b, "Key points: %s\n", strings.Join(ev.KeyPoints, "; "))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func averageScore(evaluations map[int]interview.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}
	total := 0
	for _, ev := range evaluations {
		total += ev.Score
	}
	return float64(total) / float64(len(evaluations))
}

func atLeast(count int, share float64) int {
	return int(math.Ceil(float64(count) * share))
}

func render(name string, values map[string]string) (string, error) {
	data, err := templates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read prompt template %s: %w", name, err)
	}

	// One pass, so placeholders inside substituted values stay literal.
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(string(data))), nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &interview.ConfigurationError{Field: field, Message: "is required"}
	}
	return nil
}

func requireType(t interview.Type) error {
	if t != interview.TypeTechnical && t != interview.TypeBehavioral {
		return &interview.ConfigurationError{Field: "interview_type", Message: fmt.Sprintf("unsupported value %q", t)}
	}
	return nil
}

func domainClause(domain string) string {
	domain = sanitizeLine(domain)
	if domain == "" {
		return ""
	}
	return " with focus on " + domain
}

// sanitizeLine keeps substituted values on one line and prevents them from opening new prompt sections.
func sanitizeLine(s string) string {
	s = utils.SingleLine(s)
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

func truncateBlock(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + " ..."
}

func bulletList(items []string, empty string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		item = sanitizeLine(item)
		if item == "" {
			continue
		}
		lines = append(lines, "- "+item)
	}
	if len(lines) == 0 {
		if empty == "" {
			return ""
		}
		return "- " + empty
	}
	return strings.Join(lines, "\n")
}
