package domain

// ParentGoal is one of a closed set of motivations a parent selects in the quiz.
type ParentGoal string

const (
	GoalSkillDevelopment   ParentGoal = "skill-development"
	GoalSocialConnection   ParentGoal = "social-connection"
	GoalPhysicalActivity   ParentGoal = "physical-activity"
	GoalCreativeExpression ParentGoal = "creative-expression"
	GoalAcademicEnrichment ParentGoal = "academic-enrichment"
	GoalFunAdventure       ParentGoal = "fun-adventure"
)

// Label returns the display name used in match reasons.
func (g ParentGoal) Label() string {
	switch g {
	case GoalSkillDevelopment:
		return "Skill Development"
	case GoalSocialConnection:
		return "Social Connection"
	case GoalPhysicalActivity:
		return "Physical Activity"
	case GoalCreativeExpression:
		return "Creative Expression"
	case GoalAcademicEnrichment:
		return "Academic Enrichment"
	case GoalFunAdventure:
		return "Fun & Adventure"
	}
	return string(g)
}

// DurationPreference is the requested camp length bucket. Empty means no preference.
type DurationPreference string

const (
	DurationHalfDay   DurationPreference = "half-day"
	DurationFullDay   DurationPreference = "full-day"
	DurationWeek      DurationPreference = "week"
	DurationMultiWeek DurationPreference = "multi-week"
)

// LocationType is either local (in-market) or international.
type LocationType string

const (
	LocationLocal         LocationType = "local"
	LocationInternational LocationType = "international"
)

// Preferences is the structured output of the parent-facing quiz.
// Every pointer or empty field is optional; only ChildAge is required, and a
// ChildAge of zero or less is treated as absent.
type Preferences struct {
	ChildAge           int                 `json:"child_age" yaml:"child_age" validate:"required,min=1,max=21"`
	ParentGoals        []ParentGoal        `json:"parent_goals,omitempty" yaml:"parent_goals" validate:"omitempty,dive,oneof=skill-development social-connection physical-activity creative-expression academic-enrichment fun-adventure"`
	Interests          []string            `json:"interests,omitempty" yaml:"interests" validate:"omitempty,dive,required"`
	BudgetRange        *BudgetRange        `json:"budget_range,omitempty" yaml:"budget_range"`
	Duration           DurationPreference  `json:"duration,omitempty" yaml:"duration" validate:"omitempty,oneof=half-day full-day week multi-week"`
	SpecialNeeds       *SpecialNeeds       `json:"special_needs,omitempty" yaml:"special_needs"`
	LocationPreference *LocationPreference `json:"location_preference,omitempty" yaml:"location_preference"`
}

// BudgetRange is an inclusive price range.
type BudgetRange struct {
	Min float64 `json:"min" yaml:"min" validate:"min=0"`
	Max float64 `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// SpecialNeeds lists free-text dietary and accessibility requirements.
type SpecialNeeds struct {
	Dietary       []string `json:"dietary,omitempty" yaml:"dietary"`
	Accessibility []string `json:"accessibility,omitempty" yaml:"accessibility"`
}

// LocationPreference expresses where the family wants the camp to be.
// County narrows a local preference and is matched as a substring.
type LocationPreference struct {
	Type   LocationType `json:"type" yaml:"type" validate:"required,oneof=local international"`
	County string       `json:"county,omitempty" yaml:"county"`
}
