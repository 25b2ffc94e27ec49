package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeviceType is the coarse class of the device a quiz was completed on.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// QuizResponse is the persisted record of one completed quiz session.
// Email is empty until the parent opts in after seeing results.
type QuizResponse struct {
	ID           uuid.UUID
	SessionToken string
	Preferences  Preferences
	DeviceType   DeviceType
	Email        string
	CreatedAt    time.Time
	CompletedAt  time.Time
}

// QuizResult is one persisted recommendation row belonging to a QuizResponse.
// ClickedAt is nil until the parent opens the camp from the results page.
type QuizResult struct {
	ID             uuid.UUID
	QuizResponseID uuid.UUID
	CampID         uuid.UUID
	Score          int
	Label          MatchLabel
	Reasons        []string
	Rank           int
	Clicked        bool
	ClickedAt      *time.Time
}

// QuizSubmission is everything the caller hands over when a quiz completes.
type QuizSubmission struct {
	SessionToken string
	Preferences  Preferences
	Results      []ScoredCamp
	DeviceType   DeviceType
	Email        string
}

// WriteResult reports the outcome of a best-effort persistence side effect.
// Err is set whenever Success is false.
type WriteResult struct {
	Success    bool
	ResponseID uuid.UUID
	Err        error
}

// SavedQuiz is a persisted response together with its result rows.
type SavedQuiz struct {
	Response QuizResponse
	Results  []QuizResult
}
