// Package interview holds the domain model of a mock interview session.
package interview

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeTechnical  Type = "technical"
	TypeBehavioral Type = "behavioral"
)

// ParseType accepts the case-insensitive name of an interview type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeTechnical:
		return TypeTechnical, nil
	case TypeBehavioral:
		return TypeBehavioral, nil
	default:
		return "", &ConfigurationError{Field: "type", Message: fmt.Sprintf("unknown interview type %q", s)}
	}
}

func (t Type) Title() string {
	switch t {
	case TypeTechnical:
		return "Technical"
	case TypeBehavioral:
		return "Behavioral"
	default:
		return string(t)
	}
}

type Category string

const (
	CategoryAlgorithms   Category = "algorithms"
	CategorySystemDesign Category = "system_design"
	CategoryRoleSpecific Category = "role_specific"
	CategoryOS           Category = "os"
	CategoryNetworks     Category = "networks"
	CategoryDatabase     Category = "database"
	CategoryFactual      Category = "factual"
)

// Categories lists the technical categories in the order prompts present them.
var Categories = []Category{
	CategoryAlgorithms,
	CategorySystemDesign,
	CategoryRoleSpecific,
	CategoryOS,
	CategoryNetworks,
	CategoryDatabase,
	CategoryFactual,
}

// Label is the human-readable name used in prompts and reports.
func (c Category) Label() string {
	switch c {
	case CategoryAlgorithms:
		return "Algorithms"
	case CategorySystemDesign:
		return "System Design"
	case CategoryRoleSpecific:
		return "Role-Specific"
	case CategoryOS:
		return "OS"
	case CategoryNetworks:
		return "Networks"
	case CategoryDatabase:
		return "Database"
	case CategoryFactual:
		return "Factual"
	default:
		return string(c)
	}
}

// Config is the immutable input of a session.
type Config struct {
	Role          string `json:"role" validate:"required,role"`
	Domain        string `json:"domain,omitempty"`
	Type          Type   `json:"interview_type" validate:"required,oneof=technical behavioral"`
	QuestionCount int    `json:"question_count" validate:"min=1,max=20"`
}

type Question struct {
	Index    int      `json:"index"`
	Text     string   `json:"text"`
	Category Category `json:"category,omitempty"`
}

type Answer struct {
	QuestionIndex int       `json:"question_index"`
	Text          string    `json:"text"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Skipped reports whether the candidate submitted no answer.
func (a Answer) Skipped() bool {
	return strings.TrimSpace(a.Text) == ""
}

const (
	MinScore = 0
	MaxScore = 100
)

// Evaluation is the scored critique of one answer. Score is on the 0-100 scale.
type Evaluation struct {
	QuestionIndex int      `json:"question_index"`
	Score         int      `json:"score"`
	KeyPoints     []string `json:"key_points"`
	ModelAnswer   string   `json:"model_answer"`
	LowConfidence bool     `json:"low_confidence,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
	Raw           string   `json:"raw,omitempty"`
}

type Resource struct {
	Title string `json:"title" mapstructure:"title"`
	URL   string `json:"url" mapstructure:"url"`
}

// Report is the finalized session and the unit of persistence.
type Report struct {
	ID           string             `json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	Config       Config             `json:"config"`
	Questions    []Question         `json:"questions"`
	Answers      map[int]Answer     `json:"answers"`
	Evaluations  map[int]Evaluation `json:"evaluations"`
	FinalScore   float64            `json:"final_score"`
	Summary      string             `json:"summary"`
	Strengths    []string           `json:"strengths"`
	Improvements []string           `json:"improvements"`
	Resources    []Resource         `json:"resources"`
}

// Weaknesses returns the improvement areas followed by the questions scored below 60, capped at limit.
func (r *Report) Weaknesses(limit int) []string {
	if r == nil || limit <= 0 {
		return nil
	}

	out := append([]string(nil), r.Improvements...)
	for _, q := range r.Questions {
		if len(out) >= limit {
			break
		}
		ev, ok := r.Evaluations[q.Index]
		if !ok || ev.Score >= 60 {
			continue
		}
		out = append(out, q.Text)
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
