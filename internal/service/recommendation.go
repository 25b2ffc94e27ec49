// Package service holds campmatch's use cases. Services orchestrate repo
// calls and the matching engine; no SQL or HTTP lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/matching"
	"github.com/pkordes/campmatch/internal/metrics"
	"github.com/pkordes/campmatch/internal/repo"
	"github.com/pkordes/campmatch/internal/validation"
)

// NewSessionToken returns an opaque random token identifying one quiz run.
func NewSessionToken() string {
	return uuid.NewString()
}

// RecommendationService turns quiz preferences into ranked camps and records
// what the parent did with them. Recording is best effort: persistence
// failures come back as a WriteResult and never block the results page.
type RecommendationService struct {
	camps   repo.CampRepo
	quizzes repo.QuizRepo
	engine  *matching.Engine
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// NewRecommendationService wires the service. m may be nil.
func NewRecommendationService(
	camps repo.CampRepo,
	quizzes repo.QuizRepo,
	engine *matching.Engine,
	m *metrics.Metrics,
	log *slog.Logger,
) *RecommendationService {
	return &RecommendationService{
		camps:   camps,
		quizzes: quizzes,
		engine:  engine,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// GetRecommendations scores every published camp against prefs. An empty
// slice means nothing cleared the threshold; catalog errors are returned
// without retry.
func (s *RecommendationService) GetRecommendations(ctx context.Context, prefs domain.Preferences) ([]domain.ScoredCamp, error) {
	camps, err := s.camps.ListPublished(ctx)
	if err != nil {
		s.metrics.RecommendationFailed()
		return nil, fmt.Errorf("service.RecommendationService.GetRecommendations: %w", err)
	}

	results := s.engine.Recommend(camps, prefs)
	s.metrics.ObserveRecommendation(len(camps), len(results))
	s.log.DebugContext(ctx, "recommendations computed",
		"catalog_size", len(camps),
		"results", len(results),
	)
	return results, nil
}

// NewSessionToken issues a token for a quiz that is about to start.
func (s *RecommendationService) NewSessionToken() string {
	return NewSessionToken()
}

// SaveQuizResponse stores the completed quiz and one row per result. The two
// writes are not atomic: if the results insert fails the response row stays
// and ResponseID is still reported.
func (s *RecommendationService) SaveQuizResponse(ctx context.Context, sub domain.QuizSubmission) domain.WriteResult {
	if strings.TrimSpace(sub.SessionToken) == "" {
		return s.failed(ctx, metrics.OpSave, uuid.Nil,
			fmt.Errorf("service.RecommendationService.SaveQuizResponse: session token is required: %w", domain.ErrValidation))
	}
	if err := checkResults(sub.Results); err != nil {
		return s.failed(ctx, metrics.OpSave, uuid.Nil,
			fmt.Errorf("service.RecommendationService.SaveQuizResponse: %w", err))
	}
	if sub.DeviceType == "" {
		sub.DeviceType = domain.DeviceDesktop
	}

	resp, err := s.quizzes.CreateResponse(ctx, domain.QuizResponse{
		SessionToken: sub.SessionToken,
		Preferences:  sub.Preferences,
		DeviceType:   sub.DeviceType,
		Email:        strings.TrimSpace(sub.Email),
		CompletedAt:  s.now().UTC(),
	})
	if err != nil {
		return s.failed(ctx, metrics.OpSave, uuid.Nil,
			fmt.Errorf("service.RecommendationService.SaveQuizResponse: %w", err))
	}

	results := make([]domain.QuizResult, len(sub.Results))
	for i, sc := range sub.Results {
		results[i] = domain.QuizResult{
			QuizResponseID: resp.ID,
			CampID:         sc.Camp.ID,
			Score:          sc.Score,
			Label:          sc.Label,
			Reasons:        sc.Reasons,
			Rank:           sc.Rank,
		}
	}
	if err := s.quizzes.CreateResults(ctx, resp.ID, results); err != nil {
		return s.failed(ctx, metrics.OpSave, resp.ID,
			fmt.Errorf("service.RecommendationService.SaveQuizResponse: results: %w", err))
	}

	s.metrics.QuizWrite(metrics.OpSave, true)
	return domain.WriteResult{Success: true, ResponseID: resp.ID}
}

// checkResults rejects rows the quiz_results constraints would refuse, so a
// bad submission fails before the parent row is inserted.
func checkResults(results []domain.ScoredCamp) error {
	for i, r := range results {
		switch {
		case r.Camp.ID == uuid.Nil:
			return fmt.Errorf("result %d: camp id is required: %w", i, domain.ErrValidation)
		case r.Score < 0 || r.Score > 100:
			return fmt.Errorf("result %d: score %d is outside 0-100: %w", i, r.Score, domain.ErrValidation)
		case r.Rank < 1:
			return fmt.Errorf("result %d: rank must be at least 1: %w", i, domain.ErrValidation)
		}
		switch r.Label {
		case domain.MatchPerfect, domain.MatchGreat, domain.MatchGood:
		default:
			return fmt.Errorf("result %d: unknown match label %q: %w", i, r.Label, domain.ErrValidation)
		}
	}
	return nil
}

// UpdateEmail attaches the parent's email to a saved quiz.
func (s *RecommendationService) UpdateEmail(ctx context.Context, token, email string) domain.WriteResult {
	email = strings.TrimSpace(email)
	if err := validation.Var("email", email, "required,email"); err != nil {
		return s.failed(ctx, metrics.OpEmail, uuid.Nil,
			fmt.Errorf("service.RecommendationService.UpdateEmail: %w", err))
	}
	if err := s.quizzes.UpdateEmail(ctx, token, email); err != nil {
		return s.failed(ctx, metrics.OpEmail, uuid.Nil,
			fmt.Errorf("service.RecommendationService.UpdateEmail: %w", err))
	}
	s.metrics.QuizWrite(metrics.OpEmail, true)
	return domain.WriteResult{Success: true}
}

// TrackClick marks campID as opened from the session's results.
func (s *RecommendationService) TrackClick(ctx context.Context, token string, campID uuid.UUID) domain.WriteResult {
	if err := s.quizzes.MarkClicked(ctx, token, campID, s.now().UTC()); err != nil {
		return s.failed(ctx, metrics.OpClick, uuid.Nil,
			fmt.Errorf("service.RecommendationService.TrackClick: %w", err))
	}
	s.metrics.QuizWrite(metrics.OpClick, true)
	return domain.WriteResult{Success: true}
}

// GetSavedQuiz returns a saved quiz and its results, for the results page
// a parent reopens from an email link.
func (s *RecommendationService) GetSavedQuiz(ctx context.Context, token string) (domain.SavedQuiz, error) {
	resp, err := s.quizzes.GetResponseByToken(ctx, token)
	if err != nil {
		return domain.SavedQuiz{}, fmt.Errorf("service.RecommendationService.GetSavedQuiz: %w", err)
	}
	results, err := s.quizzes.ListResults(ctx, resp.ID)
	if err != nil {
		return domain.SavedQuiz{}, fmt.Errorf("service.RecommendationService.GetSavedQuiz: %w", err)
	}
	return domain.SavedQuiz{Response: resp, Results: results}, nil
}

// failed logs and counts a persistence failure. Validation and not-found
// outcomes are caller mistakes and log at warn.
func (s *RecommendationService) failed(ctx context.Context, op string, responseID uuid.UUID, err error) domain.WriteResult {
	s.metrics.QuizWrite(op, false)
	level := slog.LevelError
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		level = slog.LevelWarn
	}
	s.log.Log(ctx, level, "quiz write failed", "op", op, "error", err)
	return domain.WriteResult{Success: false, ResponseID: responseID, Err: err}
}
