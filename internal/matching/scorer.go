package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkordes/campmatch/internal/domain"
)

// ReasonAgeMismatch is the sole reason returned for a camp that fails the age filter.
const ReasonAgeMismatch = "Age does not match camp requirements"

const (
	minScore = 0
	maxScore = 100
)

// Scorer computes a 0-100 match score and the reasons behind it.
type Scorer struct {
	cfg       Config
	goals     GoalMatcher
	amenities AmenityMatcher
	now       func() time.Time
}

// ScorerOption customises a Scorer.
type ScorerOption func(*Scorer)

// WithClock pins the time used to decide whether early-bird pricing is active.
func WithClock(now func() time.Time) ScorerOption {
	return func(s *Scorer) { s.now = now }
}

// WithGoalMatcher replaces the keyword goal matcher.
func WithGoalMatcher(m GoalMatcher) ScorerOption {
	return func(s *Scorer) { s.goals = m }
}

// WithAmenityMatcher replaces the keyword amenity matcher.
func WithAmenityMatcher(m AmenityMatcher) ScorerOption {
	return func(s *Scorer) { s.amenities = m }
}

// NewScorer builds a Scorer from cfg. Without options it uses keyword
// matchers and the wall clock.
func NewScorer(cfg Config, opts ...ScorerOption) *Scorer {
	s := &Scorer{
		cfg:       cfg,
		goals:     KeywordGoalMatcher{Keywords: cfg.GoalKeywords},
		amenities: KeywordAmenityMatcher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score rates camp against prefs. A camp outside the child's age range (or
// without an age range) scores 0 with ReasonAgeMismatch and nothing else.
// Otherwise every signal present in prefs adds its weight; the sum is
// clamped to [0, 100] only at the end, so a location penalty can be
// outweighed by other signals.
func (s *Scorer) Score(camp domain.Camp, prefs domain.Preferences) (int, []string) {
	if !ageFits(camp, prefs.ChildAge) {
		return 0, []string{ReasonAgeMismatch}
	}

	reasons := []string{
		fmt.Sprintf("Perfect for age %d (ages %d-%d)", prefs.ChildAge, *camp.AgeMin, *camp.AgeMax),
	}
	add := func(reason string) {
		reasons = append(reasons, reason)
	}

	var total float64
	total += s.scoreGoals(camp, prefs.ParentGoals, add)
	total += s.scoreCategories(camp, prefs.Interests, add)
	total += s.scoreBudget(camp, prefs.BudgetRange, add)
	total += s.scoreDuration(camp, prefs.Duration, add)
	total += s.scoreSpecialNeeds(camp, prefs.SpecialNeeds, add)
	total += s.scoreLocation(camp, prefs.LocationPreference, add)
	total += s.scoreAvailability(camp, add)
	if camp.Featured {
		total += s.cfg.Weights.Featured
	}

	return clampScore(total), reasons
}

func ageFits(camp domain.Camp, age int) bool {
	if camp.AgeMin == nil || camp.AgeMax == nil || age <= 0 {
		return false
	}
	return age >= *camp.AgeMin && age <= *camp.AgeMax
}

func (s *Scorer) scoreGoals(camp domain.Camp, goals []domain.ParentGoal, add func(string)) float64 {
	if len(goals) == 0 {
		return 0
	}
	var matched []string
	for _, g := range goals {
		if s.goals.MatchGoal(g, camp) {
			matched = append(matched, g.Label())
		}
	}
	if len(matched) == 0 {
		return 0
	}
	add("Supports your goals: " + strings.Join(matched, ", "))
	return s.cfg.Weights.ParentGoals * float64(len(matched)) / float64(len(goals))
}

// scoreCategories credits the share of requested interests the camp covers.
// Extra camp categories beyond the request earn nothing.
func (s *Scorer) scoreCategories(camp domain.Camp, interests []string, add func(string)) float64 {
	if len(interests) == 0 {
		return 0
	}
	var (
		overlap int
		names   []string
		seen    = map[string]bool{}
	)
	for _, interest := range interests {
		for _, c := range camp.Categories {
			if !c.Matches(interest) {
				continue
			}
			overlap++
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
			break
		}
	}
	if overlap == 0 {
		return 0
	}
	add("Matches interests: " + strings.Join(names, ", "))
	return s.cfg.Weights.Categories * float64(overlap) / float64(len(interests))
}

// scoreBudget gives full credit inside the range and partial credit up to
// BudgetTolerance times the max. A price below the min gets the same partial
// credit with its own reason.
func (s *Scorer) scoreBudget(camp domain.Camp, budget *domain.BudgetRange, add func(string)) float64 {
	if budget == nil {
		return 0
	}
	price := camp.Price
	earlyBird := camp.EarlyBirdActive(s.now())
	if earlyBird {
		price = *camp.EarlyBirdPrice
	}

	switch {
	case price >= budget.Min && price <= budget.Max:
		if earlyBird {
			add(fmt.Sprintf("Early bird price €%s fits your budget", formatPrice(price)))
		} else {
			add("Within your budget")
		}
		return s.cfg.Weights.Budget
	case price < budget.Min:
		add("Below your budget range")
		return s.cfg.Weights.BudgetNearMiss
	case price <= budget.Max*s.cfg.BudgetTolerance:
		add("Slightly above budget")
		return s.cfg.Weights.BudgetNearMiss
	}
	return 0
}

func (s *Scorer) scoreDuration(camp domain.Camp, want domain.DurationPreference, add func(string)) float64 {
	if want == "" {
		return 0
	}
	days, ok := camp.DurationDays()
	if !ok {
		return 0
	}

	var reason string
	switch {
	case want == domain.DurationHalfDay && days <= 1:
		reason = "Half-day program"
	case want == domain.DurationFullDay && days == 1:
		reason = "Full-day program"
	case want == domain.DurationWeek && days >= 5 && days <= 7:
		reason = "Week-long program"
	case want == domain.DurationMultiWeek && days > 7:
		reason = "Multi-week program"
	default:
		return 0
	}
	add(reason)
	return s.cfg.Weights.Duration
}

func (s *Scorer) scoreSpecialNeeds(camp domain.Camp, needs *domain.SpecialNeeds, add func(string)) float64 {
	if needs == nil {
		return 0
	}
	var total float64
	if len(needs.Dietary) > 0 && s.amenities.CoversDietary(camp, needs.Dietary) {
		add("Caters for dietary needs")
		total += s.cfg.Weights.Dietary
	}
	if len(needs.Accessibility) > 0 && s.amenities.CoversAccessibility(camp, needs.Accessibility) {
		add("Accessibility support available")
		total += s.cfg.Weights.Accessibility
	}
	return total
}

// scoreLocation may return a negative contribution.
func (s *Scorer) scoreLocation(camp domain.Camp, pref *domain.LocationPreference, add func(string)) float64 {
	if pref == nil {
		return 0
	}
	w := s.cfg.Weights
	local := s.isLocal(camp.Location)

	switch pref.Type {
	case domain.LocationLocal:
		if !local {
			return -w.LocationMismatch
		}
		add("Local camp")
		total := w.LocationMatch
		county := strings.ToLower(strings.TrimSpace(pref.County))
		if county != "" && strings.Contains(strings.ToLower(camp.Location), county) {
			add("Located in " + strings.TrimSpace(pref.County))
			total += w.LocationCounty
		}
		return total
	case domain.LocationInternational:
		if local {
			return -w.LocationMismatch
		}
		add("International experience")
		return w.LocationMatch
	}
	return 0
}

func (s *Scorer) isLocal(location string) bool {
	location = strings.ToLower(location)
	for _, marker := range s.cfg.LocalMarkers {
		if marker != "" && strings.Contains(location, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

func (s *Scorer) scoreAvailability(camp domain.Camp, add func(string)) float64 {
	spots := camp.AvailableSpots()
	switch {
	case spots > s.cfg.PlentySpots:
		return s.cfg.Weights.Availability
	case spots > 0:
		add(fmt.Sprintf("Only %d spots left", spots))
	}
	return 0
}

func clampScore(total float64) int {
	return int(math.Round(math.Max(minScore, math.Min(maxScore, total))))
}

// formatPrice drops the decimals from whole-euro prices.
func formatPrice(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return fmt.Sprintf("%.2f", p)
}
