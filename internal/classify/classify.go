// Package classify assigns technical categories to questions and checks whether a question
// fits the requested interview type. All matching is keyword based and works on whole words.
package classify

import (
	"strings"
	"unicode"

	"github.com/spigell/interview-prep/internal/interview"
)

type rule struct {
	category interview.Category
	keywords []string
}

// rules are checked in order; the first category with a keyword hit wins.
var rules = []rule{
	{
		category: interview.CategoryDatabase,
		keywords: []string{
			"sql", "nosql", "database", "databases", "index", "indexes", "indexing", "transaction",
			"transactions", "acid", "query", "queries", "schema", "normalization", "sharding",
			"replication", "postgres", "postgresql", "mysql", "mongodb", "orm", "primary key",
			"foreign key", "join", "joins", "isolation level",
		},
	},
	{
		category: interview.CategoryNetworks,
		keywords: []string{
			"tcp", "udp", "http", "https", "dns", "ip", "network", "networks", "networking", "socket",
			"sockets", "packet", "packets", "router", "routing", "tls", "ssl", "cdn", "osi",
			"handshake", "bandwidth", "websocket",
		},
	},
	{
		category: interview.CategoryOS,
		keywords: []string{
			"process", "processes", "thread", "threads", "operating system", "kernel", "mutex",
			"semaphore", "deadlock", "deadlocks", "scheduling", "scheduler", "virtual memory",
			"paging", "context switch", "system call", "syscall", "file descriptor", "race condition",
		},
	},
	{
		category: interview.CategorySystemDesign,
		keywords: []string{
			"system design", "design a", "scalable", "scalability", "architecture", "microservice",
			"microservices", "load balancer", "load balancing", "cache", "caching", "rate limiter",
			"distributed", "high availability", "throughput", "message queue", "consistency",
			"url shortener", "horizontal scaling", "fault tolerance",
		},
	},
	{
		category: interview.CategoryAlgorithms,
		keywords: []string{
			"algorithm", "algorithms", "complexity", "big o", "sort", "sorting", "binary search",
			"tree", "trees", "graph", "graphs", "linked list", "array", "arrays", "hash map",
			"hashmap", "hash table", "stack", "heap", "recursion", "recursive",
			"dynamic programming", "implement", "function", "palindrome", "bfs", "dfs",
			"data structure", "data structures",
		},
	},
	{
		category: interview.CategoryFactual,
		keywords: []string{"what is", "what are", "define", "definition", "what does", "stand for"},
	},
}

var labels = map[string]interview.Category{
	"algorithms":        interview.CategoryAlgorithms,
	"algorithm":         interview.CategoryAlgorithms,
	"coding":            interview.CategoryAlgorithms,
	"algorithms coding": interview.CategoryAlgorithms,
	"system design":     interview.CategorySystemDesign,
	"design":            interview.CategorySystemDesign,
	"role specific":     interview.CategoryRoleSpecific,
	"role":              interview.CategoryRoleSpecific,
	"domain":            interview.CategoryRoleSpecific,
	"os":                interview.CategoryOS,
	"operating systems": interview.CategoryOS,
	"operating system":  interview.CategoryOS,
	"networks":          interview.CategoryNetworks,
	"networking":        interview.CategoryNetworks,
	"network":           interview.CategoryNetworks,
	"database":          interview.CategoryDatabase,
	"databases":         interview.CategoryDatabase,
	"db":                interview.CategoryDatabase,
	"factual":           interview.CategoryFactual,
	"definition":        interview.CategoryFactual,
}

// behavioralPhrases mark a question as behavioral on their own.
var behavioralPhrases = []string{
	"tell me about a time", "describe a time", "describe a situation", "give an example of a time",
	"give me an example of a time", "share an experience", "how did you handle", "walk me through a time",
	"a time when you", "a time you",
}

// behavioralWords mark a question as behavioral only when no technical keyword is present.
var behavioralWords = []string{
	"teamwork", "leadership", "conflict", "conflicts", "stakeholder", "stakeholders", "teammate",
	"teammates", "colleague", "colleagues", "coworker", "coworkers", "manager", "mentor", "mentoring",
	"disagreement", "disagreed", "motivate", "motivated", "your team", "team member", "team members",
	"difficult person", "proudest", "biggest failure",
}

// technicalWords are rejected in behavioral interviews.
var technicalWords = []string{
	"algorithm", "algorithms", "complexity", "big o", "system design", "design a system", "implement",
	"write a function", "write code", "code", "coding", "data structure", "data structures", "sql",
	"time complexity", "linked list", "binary tree", "hash map", "pseudocode",
}

// Classify returns the technical category of a question text.
func Classify(text string) interview.Category {
	padded := pad(text)
	for _, r := range rules {
		if containsAny(padded, r.keywords) {
			return r.category
		}
	}
	return interview.CategoryRoleSpecific
}

// ParseLabel maps a model-provided label such as "System Design" or "Algorithms/Coding" to a category.
func ParseLabel(label string) (interview.Category, bool) {
	key := strings.Join(words(label), " ")
	if key == "" {
		return "", false
	}
	c, ok := labels[key]
	return c, ok
}

// MatchesType reports whether the question belongs in an interview of type t.
func MatchesType(text string, t interview.Type) bool {
	switch t {
	case interview.TypeTechnical:
		return !LooksBehavioral(text)
	case interview.TypeBehavioral:
		return !LooksTechnical(text)
	default:
		return true
	}
}

func LooksBehavioral(text string) bool {
	padded := pad(text)
	if containsAny(padded, behavioralPhrases) {
		return true
	}
	return containsAny(padded, behavioralWords) && !hasTechnicalKeyword(padded)
}

func LooksTechnical(text string) bool {
	return containsAny(pad(text), technicalWords)
}

func hasTechnicalKeyword(padded string) bool {
	for _, r := range rules {
		if r.category == interview.CategoryFactual {
			continue
		}
		if containsAny(padded, r.keywords) {
			return true
		}
	}
	return false
}

func containsAny(padded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(padded, " "+kw+" ") {
			return true
		}
	}
	return false
}

func pad(text string) string {
	return " " + strings.Join(words(text), " ") + " "
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
