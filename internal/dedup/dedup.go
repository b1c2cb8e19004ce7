// Package dedup decides whether two question texts are the same question.
package dedup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	DefaultThreshold      = 0.85
	DefaultMinContainment = 24
)

var leadingMarker = regexp.MustCompile(`^(?:q(?:uestion)?\s*\d+\s*[.):-]?|\d+\s*[.):-]|[-*•]+)\s*`)

// Config tunes the similarity decision. Zero values fall back to the defaults.
type Config struct {
	Threshold      float64 `mapstructure:"similarity-threshold"`
	MinContainment int     `mapstructure:"min-containment"`
}

// Deduplicator compares question texts after normalization.
type Deduplicator struct {
	threshold      float64
	minContainment int
}

func New(cfg Config) *Deduplicator {
	threshold := cfg.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	minContainment := cfg.MinContainment
	if minContainment <= 0 {
		minContainment = DefaultMinContainment
	}

	return &Deduplicator{threshold: threshold, minContainment: minContainment}
}

// Normalize lowercases the text, drops leading numbering or bullets, collapses whitespace and
// trims trailing punctuation.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = leadingMarker.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// IsDuplicate reports whether a and b are the same question. The relation is symmetric and reflexive.
func (d *Deduplicator) IsDuplicate(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if na == "" || nb == "" {
		return false
	}

	if d.contained(na, nb) {
		return true
	}

	return Similarity(na, nb) >= d.threshold
}

// DuplicateOf returns the first entry of existing that candidate duplicates.
func (d *Deduplicator) DuplicateOf(candidate string, existing []string) (string, bool) {
	for _, e := range existing {
		if d.IsDuplicate(candidate, e) {
			return e, true
		}
	}
	return "", false
}

func (d *Deduplicator) Threshold() float64 {
	return d.threshold
}

func (d *Deduplicator) contained(a, b string) bool {
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < d.minContainment {
		return false
	}
	return strings.Contains(longer, shorter)
}

// Similarity is the larger of the edit-distance ratio and the token Jaccard index of two
// already normalized texts, in [0, 1].
func Similarity(a, b string) float64 {
	return max(editRatio(a, b), jaccard(a, b))
}

func editRatio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func jaccard(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func tokens(s string) map[string]struct{} {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
