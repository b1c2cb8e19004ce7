package generator

import (
	"fmt"

	"github.com/spigell/interview-prep/internal/interview"
)

// genericTerms back the technical fallback questions for every role.
var genericTerms = []string{
	"a race condition", "idempotency", "eventual consistency", "a deadlock", "memoization",
	"a hash collision", "database normalization", "the CAP theorem", "a load balancer", "a memory leak",
	"garbage collection", "a mutex", "a semaphore", "Big-O notation", "a RESTful API", "a Bloom filter",
	"consistent hashing", "a database index", "a message queue", "a virtual machine", "a Linux container",
	"TLS", "the Domain Name System", "a content delivery network", "a binary search tree", "a linked list",
	"dynamic programming", "a closure in programming", "dependency injection", "an ACID transaction",
	"a write-ahead log", "a circuit breaker", "horizontal scaling", "a cache eviction policy",
	"a priority queue", "a trie", "tail latency", "backpressure", "a two-phase commit",
	"optimistic locking", "a reverse proxy", "rate limiting",
}

var roleTerms = map[string][]string{
	"Software Engineer": {
		"the single responsibility principle", "test-driven development", "a code smell", "technical debt",
		"continuous integration", "semantic versioning", "a design pattern", "refactoring",
	},
	"Data Scientist": {
		"overfitting", "regularization", "cross-validation", "a p-value", "the bias-variance tradeoff",
		"feature engineering", "a confusion matrix", "gradient descent",
	},
	"Product Manager": {
		"a north star metric", "a minimum viable product", "product-market fit",
		"the RICE prioritization framework", "customer churn", "an A/B test", "a product roadmap",
		"a user story",
	},
	"DevOps Engineer": {
		"infrastructure as code", "blue-green deployment", "a canary release", "an SLO", "GitOps",
		"container orchestration", "immutable infrastructure", "observability",
	},
	"UX Designer": {
		"a design system", "a usability test", "information architecture", "a user persona",
		"WCAG conformance", "a wireframe", "a heuristic evaluation", "a user journey map",
	},
}

var behavioralFallback = []string{
	"Tell me about a time you had to deliver difficult feedback to a peer.",
	"Describe a situation where you disagreed with a decision made by your manager.",
	"Give an example of a goal you set and how you achieved it.",
	"Tell me about a project that failed and what you learned from it.",
	"Describe a time when you had to lead a team through a tight deadline.",
	"Share an experience where you resolved a conflict between two colleagues.",
	"Tell me about a time you had to influence stakeholders without formal authority.",
	"Describe a situation where requirements were ambiguous and how you moved forward.",
	"Give an example of how you handled competing priorities from different stakeholders.",
	"Tell me about the accomplishment you are most proud of and your role in it.",
	"Describe a time you made a mistake that affected others and how you handled it.",
	"Tell me about a time you mentored someone and what the outcome was.",
	"Describe how you built trust with a new team you joined.",
	"Give an example of a time you went beyond what was expected of you.",
	"Tell me about a time you had to adapt quickly to a significant change.",
	"Describe a situation where you had to persuade a skeptical audience.",
	"Tell me about a time you received critical feedback and what you did with it.",
	"Describe a time you had to make a decision with incomplete information.",
	"Give an example of how you explained a complex idea to a non-expert audience.",
	"Tell me about a time you had to say no to a request and how you handled it.",
	"Describe a situation where you improved a way of working that others had accepted as is.",
	"Tell me about a time you worked with a difficult person and how you kept the work moving.",
	"Describe a moment when you took ownership of a problem that was not yours.",
	"Give an example of a time you balanced quality against a hard deadline.",
	"Tell me about a time you motivated a team that was losing momentum.",
	"Describe a time you had to rebuild a relationship with a frustrated customer or partner.",
	"Tell me about a time you spotted a risk early and kept it from becoming a problem.",
	"Describe the most ambiguous assignment you have taken on and how you structured it.",
}

// fallbackPool returns the canned questions for a configuration, most relevant first.
func fallbackPool(cfg interview.Config) []interview.Question {
	if cfg.Type == interview.TypeBehavioral {
		pool := make([]interview.Question, 0, len(behavioralFallback))
		for _, text := range behavioralFallback {
			pool = append(pool, interview.Question{Text: text})
		}
		return pool
	}

	terms := append(append([]string(nil), roleTerms[cfg.Role]...), genericTerms...)
	pool := make([]interview.Question, 0, len(terms))
	for _, term := range terms {
		pool = append(pool, interview.Question{
			Text:     fmt.Sprintf("What is %s?", term),
			Category: interview.CategoryFactual,
		})
	}
	return pool
}
