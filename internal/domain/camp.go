// Package domain contains the core data types for the campmatch application.
// This package depends only on uuid and is imported by every other
// internal package (matching, repo, service, handler).
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CampStatusPublished is the only status the recommendation engine considers.
const CampStatusPublished = "published"

// Camp is a bookable summer program. Camps are read-only to this service;
// they are managed elsewhere and fetched as a catalog.
type Camp struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Location    string    `json:"location,omitempty" yaml:"location"`

	// AgeMin and AgeMax are nil when the camp has not declared an age range.
	AgeMin *int `json:"age_min,omitempty" yaml:"age_min"`
	AgeMax *int `json:"age_max,omitempty" yaml:"age_max"`

	Price             float64    `json:"price" yaml:"price"`
	EarlyBirdPrice    *float64   `json:"early_bird_price,omitempty" yaml:"early_bird_price"`
	EarlyBirdDeadline *time.Time `json:"early_bird_deadline,omitempty" yaml:"early_bird_deadline"`

	Capacity int `json:"capacity" yaml:"capacity"`
	Enrolled int `json:"enrolled" yaml:"enrolled"`

	StartDate *time.Time `json:"start_date,omitempty" yaml:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" yaml:"end_date"`

	Featured   bool       `json:"featured" yaml:"featured"`
	Status     string     `json:"status,omitempty" yaml:"status"`
	Categories []Category `json:"categories" yaml:"categories"`
	Amenities  []Amenity  `json:"amenities,omitempty" yaml:"amenities"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// Amenity groups free-form amenity items under a category label,
// e.g. {Category: "Dietary", Items: ["Vegetarian", "Gluten free"]}.
type Amenity struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

// AvailableSpots returns the number of unfilled places. It can be negative
// when a camp is overbooked.
func (c Camp) AvailableSpots() int {
	return c.Capacity - c.Enrolled
}

// DurationDays returns the number of calendar days the camp runs, counting
// both the start and the end day: a camp starting and ending on the same
// date lasts 1 day, Monday to Friday lasts 5. A partial day in the
// difference rounds up. ok is false when either date is missing.
func (c Camp) DurationDays() (days int, ok bool) {
	if c.StartDate == nil || c.EndDate == nil {
		return 0, false
	}
	diff := c.EndDate.Sub(*c.StartDate)
	return int(math.Ceil(diff.Hours()/24)) + 1, true
}

// HasEarlyBird reports whether an early-bird price is set, regardless of deadline.
func (c Camp) HasEarlyBird() bool {
	return c.EarlyBirdPrice != nil
}

// EarlyBirdActive reports whether the early-bird price applies at now.
// A missing deadline means the price is open-ended.
func (c Camp) EarlyBirdActive(now time.Time) bool {
	if c.EarlyBirdPrice == nil {
		return false
	}
	return c.EarlyBirdDeadline == nil || !now.After(*c.EarlyBirdDeadline)
}
