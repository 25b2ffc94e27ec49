package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/validation"
)

func validPrefs() domain.Preferences {
	return domain.Preferences{
		ChildAge:    9,
		ParentGoals: []domain.ParentGoal{domain.GoalPhysicalActivity},
		Interests:   []string{"sports"},
		BudgetRange: &domain.BudgetRange{Min: 100, Max: 300},
		Duration:    domain.DurationWeek,
		LocationPreference: &domain.LocationPreference{
			Type: domain.LocationLocal,
		},
	}
}

func fieldsOf(t *testing.T, err error) []validation.FieldError {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %T", err)
	return verr.Fields
}

func TestStruct_Valid(t *testing.T) {
	p := validPrefs()
	assert.NoError(t, validation.Struct(&p))
}

func TestStruct_MinimalValid(t *testing.T) {
	assert.NoError(t, validation.Struct(domain.Preferences{ChildAge: 4}))
}

func TestStruct_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.Preferences)
		field   string
		tag     string
		message string
	}{
		{
			name:    "missing age",
			mutate:  func(p *domain.Preferences) { p.ChildAge = 0 },
			field:   "child_age",
			tag:     "required",
			message: "child_age is required",
		},
		{
			name:    "age too high",
			mutate:  func(p *domain.Preferences) { p.ChildAge = 40 },
			field:   "child_age",
			tag:     "max",
			message: "child_age must be at most 21",
		},
		{
			name:   "unknown goal",
			mutate: func(p *domain.Preferences) { p.ParentGoals = []domain.ParentGoal{"world-domination"} },
			field:  "parent_goals[0]",
			tag:    "oneof",
		},
		{
			name:    "unknown duration",
			mutate:  func(p *domain.Preferences) { p.Duration = "fortnight" },
			field:   "duration",
			tag:     "oneof",
			message: "duration must be one of [half-day full-day week multi-week]",
		},
		{
			name:    "inverted budget",
			mutate:  func(p *domain.Preferences) { p.BudgetRange = &domain.BudgetRange{Min: 500, Max: 100} },
			field:   "budget_range.max",
			tag:     "gtefield",
			message: "budget_range.max must not be less than min",
		},
		{
			name:   "negative budget",
			mutate: func(p *domain.Preferences) { p.BudgetRange = &domain.BudgetRange{Min: -1, Max: 100} },
			field:  "budget_range.min",
			tag:    "min",
		},
		{
			name:    "location without type",
			mutate:  func(p *domain.Preferences) { p.LocationPreference = &domain.LocationPreference{County: "Cork"} },
			field:   "location_preference.type",
			tag:     "required",
			message: "location_preference.type is required",
		},
		{
			name:   "blank interest",
			mutate: func(p *domain.Preferences) { p.Interests = []string{"art", ""} },
			field:  "interests[1]",
			tag:    "required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPrefs()
			tc.mutate(&p)

			err := validation.Struct(&p)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			fields := fieldsOf(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, tc.field, fields[0].Field)
			assert.Equal(t, tc.tag, fields[0].Tag)
			if tc.message != "" {
				assert.Equal(t, tc.message, fields[0].Message)
			}
		})
	}
}

func TestStruct_CollectsEveryField(t *testing.T) {
	p := validPrefs()
	p.ChildAge = 0
	p.Duration = "forever"

	err := validation.Struct(&p)

	fields := fieldsOf(t, err)
	assert.Len(t, fields, 2)
	assert.Contains(t, err.Error(), "child_age is required")
	assert.Contains(t, err.Error(), "; ")
}

func TestVar_Email(t *testing.T) {
	assert.NoError(t, validation.Var("email", "parent@example.com", "required,email"))

	err := validation.Var("email", "not-an-email", "required,email")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "email must be a valid email address", err.Error())

	err = validation.Var("email", "", "required,email")
	assert.Equal(t, "email is required", err.Error())
}
