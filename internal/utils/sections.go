package utils

import (
	"regexp"
	"strings"
)

var listItem = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])\s+(.*)$`)

type section struct {
	name    string
	pattern *regexp.Regexp
}

// SplitSections splits free-form model output into the named sections. Headers are matched
// case-insensitively with or without a trailing "s", markdown decoration and a colon; text after
// the colon starts the section. Text before the first header is stored under "". Keys are the
// lowercased names.
func SplitSections(raw string, names ...string) map[string]string {
	sections := make([]section, 0, len(names))
	for _, name := range names {
		base := regexp.QuoteMeta(strings.TrimSuffix(strings.ToLower(name), "s"))
		sections = append(sections, section{
			name:    strings.ToLower(name),
			pattern: regexp.MustCompile(`(?i)^[\s#*_>]*` + base + `s?[\s*_]*(?::[\s*_]*(.*))?$`),
		})
	}

	out := make(map[string][]string)
	current := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, " \t\r")

		matched := false
		for _, s := range sections {
			m := s.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current = s.name
			if _, ok := out[current]; !ok {
				out[current] = nil
			}
			if rest := strings.TrimSpace(m[1]); rest != "" {
				out[current] = append(out[current], rest)
			}
			matched = true
			break
		}

		if !matched {
			out[current] = append(out[current], line)
		}
	}

	result := make(map[string]string, len(out))
	for name, lines := range out {
		result[name] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return result
}

// ListItems returns the bulleted or numbered items of text, joining wrapped continuation lines.
func ListItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := listItem.FindStringSubmatch(line); m != nil {
			items = append(items, cleanItem(m[1]))
			continue
		}
		if len(items) > 0 {
			items[len(items)-1] = strings.TrimSpace(items[len(items)-1] + " " + cleanItem(trimmed))
		}
	}
	return compact(items)
}

// Bullets returns the list items of text, falling back to its non-empty lines when there are none.
func Bullets(text string) []string {
	if items := ListItems(text); len(items) > 0 {
		return items
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, cleanItem(line))
	}
	return compact(lines)
}

func cleanItem(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
