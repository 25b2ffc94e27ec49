package domain

import "time"

// QuizSession is the resumable state of a quiz in progress. Answers holds
// whatever the parent has filled in so far and may fail validation.
type QuizSession struct {
	Token     string      `json:"token"`
	Step      int         `json:"step"`
	Answers   Preferences `json:"answers"`
	UpdatedAt time.Time   `json:"updated_at"`
}
