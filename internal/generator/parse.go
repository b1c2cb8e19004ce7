package generator

import (
	"regexp"
	"strings"

	"github.com/spigell/interview-prep/internal/classify"
	"github.com/spigell/interview-prep/internal/filtering"
	"github.com/spigell/interview-prep/internal/interview"
)

var (
	numbered    = regexp.MustCompile(`(?i)^(?:q(?:uestion)?\s*)?\d+\s*[.):-]\s*`)
	bullet      = regexp.MustCompile(`^[-*•]+\s+`)
	labelPrefix = regexp.MustCompile(`^[\[(]([^\])]{1,40})[\])]\s*:?\s*`)
)

// parseQuestions splits a response into candidates. When the response numbers its questions,
// unnumbered lines such as a preamble are ignored.
func parseQuestions(raw string, t interview.Type) []filtering.Candidate {
	type line struct {
		text     string
		numbered bool
	}

	var lines []line
	anyNumbered := false
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "```") {
			continue
		}

		l = strings.ReplaceAll(l, "**", "")
		isNumbered := numbered.MatchString(l)
		if isNumbered {
			anyNumbered = true
			l = numbered.ReplaceAllString(l, "")
		} else {
			l = bullet.ReplaceAllString(l, "")
		}

		lines = append(lines, line{text: strings.TrimSpace(l), numbered: isNumbered})
	}

	candidates := make([]filtering.Candidate, 0, len(lines))
	for _, l := range lines {
		if anyNumbered && !l.numbered {
			continue
		}
		candidates = append(candidates, candidate(l.text, t))
	}
	return candidates
}

func candidate(text string, t interview.Type) filtering.Candidate {
	label := ""
	if m := labelPrefix.FindStringSubmatch(text); m != nil {
		label = m[1]
		text = strings.TrimSpace(text[len(m[0]):])
	}

	if t == interview.TypeBehavioral {
		return filtering.Candidate{Text: text}
	}

	category, ok := classify.ParseLabel(label)
	if !ok {
		category = classify.Classify(text)
	}
	return filtering.Candidate{Text: text, Category: category}
}
