package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/campmatch/internal/domain"
)

// Response and request bodies. Domain types stay free of transport
// concerns; these mirror them with the field names the frontend expects.

type Category struct {
	ID   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

type Camp struct {
	ID                openapi_types.UUID  `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Location          string              `json:"location"`
	AgeMin            *int                `json:"age_min,omitempty"`
	AgeMax            *int                `json:"age_max,omitempty"`
	Price             float64             `json:"price"`
	EarlyBirdPrice    *float64            `json:"early_bird_price,omitempty"`
	EarlyBirdDeadline *time.Time          `json:"early_bird_deadline,omitempty"`
	AvailableSpots    int                 `json:"available_spots"`
	StartDate         *openapi_types.Date `json:"start_date,omitempty"`
	EndDate           *openapi_types.Date `json:"end_date,omitempty"`
	Featured          bool                `json:"featured"`
	Categories        []Category          `json:"categories"`
	Amenities         []domain.Amenity    `json:"amenities"`
}

type Recommendation struct {
	Camp       Camp              `json:"camp"`
	Score      int               `json:"score"`
	MatchLabel domain.MatchLabel `json:"match_label"`
	Reasons    []string          `json:"reasons"`
	Rank       int               `json:"rank"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type CampList struct {
	Data       []Camp     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Session struct {
	Token     string             `json:"token"`
	Step      int                `json:"step"`
	Answers   domain.Preferences `json:"answers"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type SaveSessionRequest struct {
	Step    int                `json:"step"`
	Answers domain.Preferences `json:"answers"`
}

// SubmittedResult is one ranked camp as the client displayed it.
type SubmittedResult struct {
	CampID     openapi_types.UUID `json:"camp_id" validate:"required"`
	Score      int                `json:"score" validate:"min=0,max=100"`
	MatchLabel domain.MatchLabel  `json:"match_label" validate:"oneof=perfect great good"`
	Reasons    []string           `json:"reasons"`
	Rank       int                `json:"rank" validate:"min=1"`
}

type SaveQuizRequest struct {
	SessionToken string             `json:"session_token" validate:"required"`
	Preferences  domain.Preferences `json:"preferences"`
	Results      []SubmittedResult  `json:"results" validate:"dive"`
	DeviceType   domain.DeviceType  `json:"device_type,omitempty"`
	Email        string             `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateEmailRequest struct {
	Email openapi_types.Email `json:"email"`
}

// WriteResponse renders a domain.WriteResult.
type WriteResponse struct {
	Success    bool                `json:"success"`
	ResponseID *openapi_types.UUID `json:"response_id,omitempty"`
	Error      *ErrorDetail        `json:"error,omitempty"`
}

type SavedResult struct {
	CampID     openapi_types.UUID `json:"camp_id"`
	Score      int                `json:"score"`
	MatchLabel domain.MatchLabel  `json:"match_label"`
	Reasons    []string           `json:"reasons"`
	Rank       int                `json:"rank"`
	Clicked    bool               `json:"clicked"`
	ClickedAt  *time.Time         `json:"clicked_at,omitempty"`
}

type SavedQuiz struct {
	ID           openapi_types.UUID `json:"id"`
	SessionToken string             `json:"session_token"`
	Preferences  domain.Preferences `json:"preferences"`
	DeviceType   domain.DeviceType  `json:"device_type"`
	HasEmail     bool               `json:"has_email"`
	CompletedAt  time.Time          `json:"completed_at"`
	Results      []SavedResult      `json:"results"`
}

func categoryToResponse(c domain.Category) Category {
	return Category{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func campToResponse(c domain.Camp) Camp {
	cats := make([]Category, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = categoryToResponse(cat)
	}
	amenities := c.Amenities
	if amenities == nil {
		amenities = []domain.Amenity{}
	}
	return Camp{
		ID:                c.ID,
		Name:              c.Name,
		Description:       c.Description,
		Location:          c.Location,
		AgeMin:            c.AgeMin,
		AgeMax:            c.AgeMax,
		Price:             c.Price,
		EarlyBirdPrice:    c.EarlyBirdPrice,
		EarlyBirdDeadline: c.EarlyBirdDeadline,
		AvailableSpots:    max(c.AvailableSpots(), 0),
		StartDate:         toDate(c.StartDate),
		EndDate:           toDate(c.EndDate),
		Featured:          c.Featured,
		Categories:        cats,
		Amenities:         amenities,
	}
}

func recommendationToResponse(sc domain.ScoredCamp) Recommendation {
	return Recommendation{
		Camp:       campToResponse(sc.Camp),
		Score:      sc.Score,
		MatchLabel: sc.Label,
		Reasons:    sc.Reasons,
		Rank:       sc.Rank,
	}
}

func sessionToResponse(s domain.QuizSession) Session {
	return Session{Token: s.Token, Step: s.Step, Answers: s.Answers, UpdatedAt: s.UpdatedAt}
}

func savedQuizToResponse(q domain.SavedQuiz) SavedQuiz {
	results := make([]SavedResult, len(q.Results))
	for i, r := range q.Results {
		results[i] = SavedResult{
			CampID:     r.CampID,
			Score:      r.Score,
			MatchLabel: r.Label,
			Reasons:    r.Reasons,
			Rank:       r.Rank,
			Clicked:    r.Clicked,
			ClickedAt:  r.ClickedAt,
		}
	}
	return SavedQuiz{
		ID:           q.Response.ID,
		SessionToken: q.Response.SessionToken,
		Preferences:  q.Response.Preferences,
		DeviceType:   q.Response.DeviceType,
		HasEmail:     q.Response.Email != "",
		CompletedAt:  q.Response.CompletedAt,
		Results:      results,
	}
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
