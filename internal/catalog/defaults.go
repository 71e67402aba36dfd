package catalog

var defaultAttributes = []Attribute{
	// Delivery Flow
	{ID: "delivery_speed_predictability", Name: "Delivery Speed & Predictability", Description: "Ability to deliver working software quickly, consistently, and in small, reliable increments."},
	{ID: "flow_efficiency", Name: "Flow Efficiency", Description: "Minimizing waiting, context switching, and bottlenecks to maintain smooth delivery flow."},
	{ID: "process_simplicity", Name: "Process Simplicity", Description: "Lean and effective processes that minimize ceremony while ensuring alignment."},
	{ID: "sustainable_pace", Name: "Sustainable Pace", Description: "Delivering value at a steady, healthy rhythm that can be maintained long-term."},

	// Customer Value
	{ID: "customer_feedback_loop", Name: "Customer Feedback Loop", Description: "Regularly collecting and acting on insights from users and customers."},
	{ID: "stakeholder_alignment", Name: "Stakeholder Alignment", Description: "Shared understanding between the team and stakeholders on priorities and success metrics."},
	{ID: "outcome_orientation", Name: "Outcome Orientation", Description: "Focus on delivering measurable business or user value, not just completing tasks."},
	{ID: "mission_clarity", Name: "Mission Clarity", Description: "Clear understanding of why the team exists and what success looks like."},

	// Technical Craftsmanship
	{ID: "built_in_quality", Name: "Built-in Quality", Description: "Quality practices (testing, reviews, etc.) are embedded in daily work, not inspected in later."},
	{ID: "technical_excellence", Name: "Technical Excellence", Description: "Application of strong engineering principles, design patterns, and clean code practices."},
	{ID: "automation_maturity", Name: "Automation Maturity", Description: "Effective use of CI/CD, automated testing, and monitoring for fast feedback and reliability."},
	{ID: "end_to_end_ownership", Name: "End-to-End Ownership", Description: "Team owns the full lifecycle, from design through deployment and maintenance."},
	{ID: "cognitive_load_management", Name: "Cognitive Load Management", Description: "Technical and domain complexity are managed to keep the system and team understandable."},

	// Team Culture
	{ID: "psychological_safety", Name: "Psychological Safety", Description: "Team members feel safe to express ideas, take risks, and admit mistakes."},
	{ID: "team_cohesion_support", Name: "Team Cohesion & Support", Description: "Team members help one another, communicate openly, and resolve conflict constructively."},
	{ID: "autonomy_empowerment", Name: "Autonomy & Empowerment", Description: "Team has control over how work is done and can make local decisions effectively."},
	{ID: "work_transparency", Name: "Work Transparency", Description: "Progress, decisions, and blockers are visible and communicated clearly."},
	{ID: "inter_team_collaboration", Name: "Inter-Team Collaboration", Description: "Cross-team cooperation and alignment across functions and dependencies."},

	// Continuous Improvement
	{ID: "continuous_improvement", Name: "Continuous Improvement", Description: "Team regularly inspects performance and implements small, meaningful improvements."},
	{ID: "learning_experimentation", Name: "Learning & Experimentation", Description: "Encouragement of experimentation and learning from both successes and failures."},
	{ID: "adaptability", Name: "Adaptability", Description: "Ability to adjust plans and priorities quickly in response to feedback or change."},
	{ID: "growth_mindset", Name: "Growth Mindset", Description: "Individuals and the team seek feedback, new skills, and professional development."},

	// Organizational Enablement
	{ID: "leadership_support", Name: "Leadership Support", Description: "Leaders empower teams, remove obstacles, and model Agile behaviors."},
	{ID: "organizational_agility", Name: "Organizational Agility", Description: "The wider organization adapts to change and supports iterative learning."},
	{ID: "systemic_impediment_removal", Name: "Systemic Impediment Removal", Description: "Issues beyond the team's control are identified and resolved effectively."},
	{ID: "aligned_goals_incentives", Name: "Aligned Goals & Incentives", Description: "Organizational metrics and incentives support collaboration and value delivery."},
}

var defaultGroups = []AttributeGroup{
	{
		Title:        "Delivery Flow",
		Description:  "Focuses on how effectively and predictably the team turns ideas into valuable working software.",
		AttributeIDs: []string{"delivery_speed_predictability", "flow_efficiency", "process_simplicity", "sustainable_pace"},
	},
	{
		Title:        "Customer Value",
		Description:  "Measures how well the team aligns with real user needs and delivers meaningful outcomes.",
		AttributeIDs: []string{"customer_feedback_loop", "stakeholder_alignment", "outcome_orientation", "mission_clarity"},
	},
	{
		Title:        "Technical Craftsmanship",
		Description:  "Assesses engineering practices, maintainability, and adaptability of the product and codebase.",
		AttributeIDs: []string{"built_in_quality", "technical_excellence", "automation_maturity", "end_to_end_ownership", "cognitive_load_management"},
	},
	{
		Title:        "Team Culture",
		Description:  "Captures psychological safety, cohesion, and the human dynamics that enable great teamwork.",
		AttributeIDs: []string{"psychological_safety", "team_cohesion_support", "autonomy_empowerment", "work_transparency", "inter_team_collaboration"},
	},
	{
		Title:        "Continuous Improvement",
		Description:  "Reflects how the team learns, experiments, and evolves in pursuit of better ways of working.",
		AttributeIDs: []string{"continuous_improvement", "learning_experimentation", "adaptability", "growth_mindset"},
	},
	{
		Title:        "Organizational Enablement",
		Description:  "Evaluates how the surrounding environment supports and amplifies Agile ways of working.",
		AttributeIDs: []string{"leadership_support", "organizational_agility", "systemic_impediment_removal", "aligned_goals_incentives"},
	},
}

var defaultCategories = []string{
	"Ceremonies & Meetings",
	"Technical Practices",
	"Planning & Estimation",
	"Team Culture & Collaboration",
	"Release & Deployment",
	"Feedback & Improvement",
	"Roles & Responsibilities",
	FallbackCategory,
}

var examplePractices = []string{
	"Daily 15-minute stand-up meeting to sync progress and blockers.",
	"We pair program on all complex features.",
	"Product manager must approve all pull requests before merging.",
	"We release to production after every merged pull request (Continuous Deployment).",
	"Retrospectives are held bi-weekly, and we track action items publicly.",
	"Developers are on a rotating on-call schedule for production support.",
	"We have an open 'ask me anything' session with leadership once a month.",
	"All new features require a detailed design document that is reviewed by an architecture committee.",
	"The team has full autonomy to choose their own tools and technologies for new projects.",
	"We use story points for estimating work and track velocity.",
	"No meetings are allowed on Wednesdays to allow for deep focus time.",
	"A dedicated UX designer is embedded with our development team full-time.",
}

var defaultCatalog = MustNew(defaultAttributes, defaultGroups, defaultCategories)

// Default returns the built-in agile attribute catalog.
func Default() *Catalog {
	return defaultCatalog
}

// ExamplePractices returns sample practice descriptions for pre-filling input.
func ExamplePractices() []string {
	return append([]string(nil), examplePractices...)
}
