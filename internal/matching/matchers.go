package matching

import (
	"strings"

	"github.com/pkordes/campmatch/internal/domain"
)

// GoalMatcher decides whether a camp serves a parent goal.
type GoalMatcher interface {
	MatchGoal(goal domain.ParentGoal, camp domain.Camp) bool
}

// AmenityMatcher decides whether a camp's amenities cover special needs.
// Both methods are only called with a non-empty needs list.
type AmenityMatcher interface {
	CoversDietary(camp domain.Camp, needs []string) bool
	CoversAccessibility(camp domain.Camp, needs []string) bool
}

// KeywordGoalMatcher matches a goal when any of its stems is a substring of
// the lowercased camp name or description. It is sensitive to camp copy:
// "art" also matches "party" and "start".
type KeywordGoalMatcher struct {
	Keywords map[domain.ParentGoal][]string
}

// MatchGoal implements GoalMatcher.
func (m KeywordGoalMatcher) MatchGoal(goal domain.ParentGoal, camp domain.Camp) bool {
	stems := m.Keywords[goal]
	if len(stems) == 0 {
		return false
	}
	text := strings.ToLower(camp.Name + " " + camp.Description)
	for _, stem := range stems {
		if stem != "" && strings.Contains(text, strings.ToLower(stem)) {
			return true
		}
	}
	return false
}

// KeywordAmenityMatcher matches needs against amenity categories and items
// by case-insensitive substring.
type KeywordAmenityMatcher struct{}

var (
	dietaryCategoryMarkers       = []string{"dietary", "food"}
	accessibilityCategoryMarkers = []string{"accessibility"}
)

// CoversDietary implements AmenityMatcher.
func (KeywordAmenityMatcher) CoversDietary(camp domain.Camp, needs []string) bool {
	return coversNeeds(camp.Amenities, dietaryCategoryMarkers, needs)
}

// CoversAccessibility implements AmenityMatcher.
func (KeywordAmenityMatcher) CoversAccessibility(camp domain.Camp, needs []string) bool {
	return coversNeeds(camp.Amenities, accessibilityCategoryMarkers, needs)
}

// coversNeeds is true if any amenity group is labeled with one of markers, or
// any amenity item contains one of the requested needs.
func coversNeeds(amenities []domain.Amenity, markers, needs []string) bool {
	for _, a := range amenities {
		category := strings.ToLower(a.Category)
		for _, marker := range markers {
			if strings.Contains(category, marker) {
				return true
			}
		}
		for _, item := range a.Items {
			item = strings.ToLower(item)
			for _, need := range needs {
				need = strings.ToLower(strings.TrimSpace(need))
				if need != "" && strings.Contains(item, need) {
					return true
				}
			}
		}
	}
	return false
}
