// Package matching scores and ranks camps against quiz preferences.
//
// The Scorer is a pure function of (camp, preferences) plus an injectable
// clock. The Ranker filters, orders, truncates and labels scored camps.
// Neither holds mutable state, so a single instance is safe to share
// between concurrent requests.
package matching

import "github.com/pkordes/campmatch/internal/domain"

// Weights holds the contribution of each scoring signal.
// LocationMismatch is a penalty and is subtracted.
type Weights struct {
	ParentGoals      float64 `yaml:"parent_goals"`
	Categories       float64 `yaml:"categories"`
	Budget           float64 `yaml:"budget"`
	BudgetNearMiss   float64 `yaml:"budget_near_miss"`
	Duration         float64 `yaml:"duration"`
	Dietary          float64 `yaml:"dietary"`
	Accessibility    float64 `yaml:"accessibility"`
	LocationMatch    float64 `yaml:"location_match"`
	LocationCounty   float64 `yaml:"location_county"`
	LocationMismatch float64 `yaml:"location_mismatch"`
	Availability     float64 `yaml:"availability"`
	Featured         float64 `yaml:"featured"`
}

// LabelThresholds are the minimum scores for the upper match tiers.
// Anything below Great is labeled good.
type LabelThresholds struct {
	Perfect int `yaml:"perfect"`
	Great   int `yaml:"great"`
}

// Config is the full tuning surface of the engine.
type Config struct {
	Weights Weights `yaml:"weights"`

	// BudgetTolerance is the multiplier on the budget max under which a
	// price still earns BudgetNearMiss.
	BudgetTolerance float64 `yaml:"budget_tolerance"`

	// PlentySpots is the number of available spots above which a camp earns
	// the availability weight. At or below it (but above zero) the camp gets
	// a limited-spots reason instead.
	PlentySpots int `yaml:"plenty_spots"`

	// LocalMarkers are lowercase substrings that mark a location string as
	// inside the home market.
	LocalMarkers []string `yaml:"local_markers"`

	// GoalKeywords maps each parent goal to keyword stems looked for in the
	// camp name and description.
	GoalKeywords map[domain.ParentGoal][]string `yaml:"goal_keywords"`

	MinScore int             `yaml:"min_score"`
	TopN     int             `yaml:"top_n"`
	Labels   LabelThresholds `yaml:"labels"`
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			ParentGoals:      40,
			Categories:       70,
			Budget:           50,
			BudgetNearMiss:   25,
			Duration:         50,
			Dietary:          7.5,
			Accessibility:    7.5,
			LocationMatch:    30,
			LocationCounty:   10,
			LocationMismatch: 20,
			Availability:     5,
			Featured:         5,
		},
		BudgetTolerance: 1.2,
		PlentySpots:     5,
		LocalMarkers:    DefaultLocalMarkers(),
		GoalKeywords:    DefaultGoalKeywords(),
		MinScore:        30,
		TopN:            5,
		Labels:          LabelThresholds{Perfect: 80, Great: 60},
	}
}

// DefaultLocalMarkers is the Irish market: the country names plus county
// names. "Down" is left out because it matches too much English text.
func DefaultLocalMarkers() []string {
	return []string{
		"ireland", "éire", "eire",
		"antrim", "armagh", "carlow", "cavan", "clare", "cork", "derry",
		"donegal", "dublin", "fermanagh", "galway", "kerry",
		"kildare", "kilkenny", "laois", "leitrim", "limerick", "longford",
		"louth", "mayo", "meath", "monaghan", "offaly", "roscommon",
		"sligo", "tipperary", "tyrone", "waterford", "westmeath",
		"wexford", "wicklow",
	}
}

// DefaultGoalKeywords returns the keyword stems for every parent goal.
func DefaultGoalKeywords() map[domain.ParentGoal][]string {
	return map[domain.ParentGoal][]string{
		domain.GoalSkillDevelopment:   {"skill", "training", "workshop", "expertise", "mastery", "advanced"},
		domain.GoalSocialConnection:   {"team", "friend", "social", "group", "community", "together"},
		domain.GoalPhysicalActivity:   {"sport", "active", "fitness", "outdoor", "physical", "athletic"},
		domain.GoalCreativeExpression: {"art", "creative", "music", "drama", "design", "craft"},
		domain.GoalAcademicEnrichment: {"stem", "science", "math", "coding", "academic", "learn"},
		domain.GoalFunAdventure:       {"adventure", "fun", "explore", "discover", "excitement", "camp"},
	}
}
