package domain

import (
	"github.com/google/uuid"
)

// Category is a camp classification used both as a quiz interest option and
// as a camp tag. Identity for matching is ID or Slug; Name is for display.
type Category struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Slug string    `json:"slug" yaml:"slug"`
}

// Matches reports whether key identifies this category by ID or by slug.
func (c Category) Matches(key string) bool {
	return key != "" && (key == c.ID.String() || key == c.Slug)
}
