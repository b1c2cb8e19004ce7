package interview

import "slices"

// RoleProfile groups everything the prompts know about a role.
type RoleProfile struct {
	Name     string
	Domains  []string
	Focus    []string
	Criteria []string
}

var roleProfiles = []RoleProfile{
	{
		Name: "Software Engineer",
		Domains: []string{
			"Frontend Development", "Backend Development", "Full Stack Development",
			"Mobile Development", "System Design", "Cloud & DevOps", "Security Engineering",
			"Game Development", "Embedded Systems",
		},
		Focus: []string{
			"Data structures and algorithms",
			"System design and architecture",
			"Code optimization and performance",
			"Debugging and problem-solving",
			"Software development best practices",
			"Testing and quality assurance",
		},
		Criteria: []string{
			"Code quality and best practices",
			"Algorithm efficiency and optimization",
			"System design considerations",
			"Error handling and edge cases",
			"Scalability considerations",
		},
	},
	{
		Name: "Data Scientist",
		Domains: []string{
			"Machine Learning", "Deep Learning", "Natural Language Processing", "Computer Vision",
			"Data Analytics", "Big Data Engineering", "MLOps", "Quantitative Analysis",
			"Business Intelligence",
		},
		Focus: []string{
			"Statistical analysis and hypothesis testing",
			"Machine learning algorithms and models",
			"Data preprocessing and feature engineering",
			"Model evaluation and validation",
			"Big data technologies and tools",
			"Experimental design and A/B testing",
		},
		Criteria: []string{
			"Statistical reasoning",
			"Model selection and justification",
			"Data preprocessing considerations",
			"Evaluation metrics understanding",
			"Business impact awareness",
		},
	},
	{
		Name: "Product Manager",
		Domains: []string{
			"Consumer Products", "Enterprise Software", "Mobile Applications", "Data Products",
			"AI/ML Products", "E-commerce", "FinTech", "Healthcare Tech", "Developer Tools",
		},
		Focus: []string{
			"Product metrics and analytics",
			"Feature prioritization and roadmap planning",
			"User research and market analysis",
			"Product development lifecycle",
			"Stakeholder management",
			"Technical feasibility assessment",
		},
		Criteria: []string{
			"Product thinking and strategy",
			"Data-driven decision making",
			"Stakeholder consideration",
			"Technical feasibility assessment",
			"Market understanding",
		},
	},
	{
		Name: "DevOps Engineer",
		Domains: []string{
			"Cloud Infrastructure", "CI/CD Pipeline", "Container Orchestration", "Site Reliability",
			"Infrastructure Automation", "Security Operations", "Platform Engineering",
			"Network Operations", "Database Operations",
		},
		Focus: []string{
			"CI/CD pipelines and automation",
			"Infrastructure as Code (IaC)",
			"Cloud platforms and services",
			"Container orchestration and microservices",
			"Monitoring and logging",
			"Security and compliance",
		},
		Criteria: []string{
			"Automation and efficiency",
			"Security considerations",
			"Scalability planning",
			"Monitoring and reliability",
			"Infrastructure design",
		},
	},
	{
		Name: "UX Designer",
		Domains: []string{
			"Mobile Design", "Web Design", "Product Design", "Interaction Design", "Service Design",
			"Design Systems", "Research & Testing", "Information Architecture", "Accessibility",
		},
		Focus: []string{
			"User research methods and tools",
			"Design systems and patterns",
			"Prototyping and wireframing",
			"Usability testing and metrics",
			"Accessibility standards",
			"Design tools and workflows",
		},
		Criteria: []string{
			"User-centered design thinking",
			"Research methodology",
			"Design system consistency",
			"Accessibility considerations",
			"Interaction design patterns",
		},
	},
}

// domainFocus mirrors the per-domain guidance used when a domain is selected.
var domainFocus = map[string][]string{
	"Frontend Development": {
		"Modern JavaScript frameworks (React, Vue, Angular)", "Web performance optimization",
		"Responsive design and CSS architecture", "Browser APIs and compatibility",
		"State management and data flow", "Web accessibility standards",
	},
	"Backend Development": {
		"API design and RESTful principles", "Database design and optimization",
		"Authentication and authorization", "Microservices architecture",
		"Message queues and async processing", "Security best practices",
	},
	"Full Stack Development": {
		"End-to-end application architecture", "Frontend and backend integration",
		"Database design and ORM usage", "API design and implementation",
		"Performance optimization", "Development workflows",
	},
	"Mobile Development": {
		"Native app development", "Cross-platform frameworks", "Mobile UI/UX best practices",
		"App performance optimization", "Mobile security", "App lifecycle management",
	},
	"Machine Learning": {
		"ML algorithms and model selection", "Feature engineering", "Model evaluation metrics",
		"Hyperparameter tuning", "ML system design", "Model deployment",
	},
	"Deep Learning": {
		"Neural network architectures", "Deep learning frameworks", "Model optimization",
		"Transfer learning", "GPU acceleration", "Training large models",
	},
	"Natural Language Processing": {
		"Text preprocessing", "Language models", "Sentiment analysis",
		"Named entity recognition", "Machine translation", "Document classification",
	},
	"Cloud Infrastructure": {
		"Cloud service architecture", "Infrastructure as Code", "Cost optimization",
		"Multi-cloud strategy", "Cloud security", "Disaster recovery",
	},
	"CI/CD Pipeline": {
		"Pipeline design and implementation", "Build automation", "Deployment strategies",
		"Testing integration", "Release management", "Pipeline security",
	},
	"Site Reliability": {
		"System reliability", "Monitoring and alerting", "Incident response",
		"Performance optimization", "Chaos engineering", "SLO/SLA management",
	},
	"Mobile Design": {
		"Mobile UI patterns", "Gesture-based interactions", "Platform guidelines",
		"Responsive layouts", "Mobile usability", "Touch interfaces",
	},
	"Product Design": {
		"Product thinking", "User research", "Design systems", "Interaction patterns",
		"Usability testing", "Design documentation",
	},
	"Design Systems": {
		"Component libraries", "Design tokens", "Documentation", "Version control",
		"Team collaboration", "Implementation guidelines",
	},
}

// Roles returns the names of the supported roles.
func Roles() []string {
	names := make([]string, 0, len(roleProfiles))
	for _, p := range roleProfiles {
		names = append(names, p.Name)
	}
	return names
}

// LookupRole returns the profile of the named role.
func LookupRole(name string) (RoleProfile, bool) {
	for _, p := range roleProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return RoleProfile{}, false
}

// DomainsFor returns the domains available for a role, empty for unknown roles.
func DomainsFor(role string) []string {
	p, ok := LookupRole(role)
	if !ok {
		return nil
	}
	return slices.Clone(p.Domains)
}

// DomainFocus returns the guidance topics of a domain, nil when none are known.
func DomainFocus(domain string) []string {
	return slices.Clone(domainFocus[domain])
}
