package filtering

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spigell/interview-prep/internal/interview"
)

// ExcludedQuestions is the content of an exclude file: questions asked in earlier sessions.
type ExcludedQuestions struct {
	Items []*ExcludedQuestion `json:"items"`
}

type ExcludedQuestion struct {
	Text       string         `json:"text"`
	Role       string         `json:"role,omitempty"`
	Type       interview.Type `json:"interview_type,omitempty"`
	ExcludedAt time.Time      `json:"excluded_at"`
}

// ToExcluded converts asked questions into exclude file entries.
func ToExcluded(cfg interview.Config, questions []interview.Question) *ExcludedQuestions {
	excluded := &ExcludedQuestions{}
	now := time.Now().UTC()
	for _, q := range questions {
		excluded.Items = append(excluded.Items, &ExcludedQuestion{
			Text:       q.Text,
			Role:       cfg.Role,
			Type:       cfg.Type,
			ExcludedAt: now,
		})
	}
	return excluded
}

// LoadExcludeFile reads an exclude file. A missing or empty file yields an empty list.
func LoadExcludeFile(path string) (*ExcludedQuestions, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedQuestions{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedQuestions{}, nil
	}

	var excluded ExcludedQuestions
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %s: %w", path, err)
	}
	return &excluded, nil
}

func (e *ExcludedQuestions) Append(s *ExcludedQuestions) {
	e.Items = append(e.Items, s.Items...)
}

// Texts returns the question texts of the entries matching role and type. Empty filters match everything.
func (e *ExcludedQuestions) Texts(role string, t interview.Type) []string {
	texts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		if item == nil || item.Text == "" {
			continue
		}
		if role != "" && item.Role != "" && item.Role != role {
			continue
		}
		if t != "" && item.Type != "" && item.Type != t {
			continue
		}
		texts = append(texts, item.Text)
	}
	return texts
}

func (e *ExcludedQuestions) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
