package evaluation

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/utils"
)

const (
	sectionScore       = "score"
	sectionKeyPoints   = "key points"
	sectionModelAnswer = "model answer"
)

var (
	// A score label may carry a short prefix ("Final Score") and a parenthesized
	// scale ("Score (0-100)") before the value.
	scoreLine = regexp.MustCompile(`(?im)^[^\n]{0,20}?\bscore\b(?:\s*\([^)\n]*\))?[\s*_#:=-]*(\d+(?:\.\d+)?)(?:\s*(?:/|out of)\s*(\d+(?:\.\d+)?))?`)

	errNoScore = errors.New("no score line found")
)

type parsed struct {
	score       int
	keyPoints   []string
	modelAnswer string
	err         error
}

func parse(raw string) parsed {
	sections := utils.SplitSections(raw, sectionScore, sectionKeyPoints, sectionModelAnswer)

	keyPoints := utils.Bullets(sections[sectionKeyPoints])
	if _, ok := sections[sectionKeyPoints]; !ok {
		keyPoints = utils.ListItems(sections[""])
	}

	p := parsed{
		keyPoints:   keyPoints,
		modelAnswer: sections[sectionModelAnswer],
	}

	score, err := parseScore(raw)
	if err != nil {
		p.err = &interview.ParseError{Kind: "evaluation", Raw: raw, Cause: err}
		return p
	}
	p.score = score
	return p
}

// parseScore reads "Score: N/D" normalized to the 0-100 scale, or a bare "Score: N".
func parseScore(raw string) (int, error) {
	m := scoreLine.FindStringSubmatch(raw)
	if m == nil {
		return 0, errNoScore
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}
	if m[2] == "" {
		return clamp(n), nil
	}

	d, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errNoScore
	}
	return clamp(n / d * interview.MaxScore), nil
}

func clamp(v float64) int {
	return int(math.Round(math.Max(interview.MinScore, math.Min(interview.MaxScore, v))))
}
