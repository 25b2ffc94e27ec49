package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/metrics"
	"github.com/pkordes/campmatch/internal/repo"
)

// SessionService manages resumable quiz state. Sessions idle for longer
// than ttl read as missing and are removed by Prune.
type SessionService struct {
	store   repo.SessionStore
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSessionService constructs a SessionService. m may be nil.
func NewSessionService(store repo.SessionStore, ttl time.Duration, m *metrics.Metrics) *SessionService {
	return &SessionService{store: store, ttl: ttl, metrics: m, now: time.Now}
}

// Start creates an empty session under a fresh token.
func (s *SessionService) Start(ctx context.Context) (domain.QuizSession, error) {
	sess := domain.QuizSession{Token: NewSessionToken(), UpdatedAt: s.now().UTC()}
	if err := s.store.Save(ctx, sess); err != nil {
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Start: %w", err)
	}
	return sess, nil
}

// Get returns the session for token. Expired sessions are deleted and
// reported as domain.ErrNotFound.
func (s *SessionService) Get(ctx context.Context, token string) (domain.QuizSession, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	if s.expired(sess) {
		if err := s.store.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return domain.QuizSession{}, fmt.Errorf("service.SessionService.Get: delete expired: %w", err)
		}
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Get: %w", domain.ErrNotFound)
	}
	return sess, nil
}

// Save records progress for token, creating the session if needed.
// Answers are stored as given; they are only validated on submission.
func (s *SessionService) Save(ctx context.Context, token string, step int, answers domain.Preferences) (domain.QuizSession, error) {
	if strings.TrimSpace(token) == "" {
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Save: token is required: %w", domain.ErrValidation)
	}
	if step < 0 {
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Save: step must not be negative: %w", domain.ErrValidation)
	}

	sess := domain.QuizSession{Token: token, Step: step, Answers: answers, UpdatedAt: s.now().UTC()}
	if err := s.store.Save(ctx, sess); err != nil {
		return domain.QuizSession{}, fmt.Errorf("service.SessionService.Save: %w", err)
	}
	return sess, nil
}

// Delete discards a session, typically once its quiz has been submitted.
func (s *SessionService) Delete(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("service.SessionService.Delete: %w", err)
	}
	return nil
}

// Prune removes every session idle for longer than the ttl. A zero ttl
// disables expiry and Prune does nothing.
func (s *SessionService) Prune(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	n, err := s.store.Prune(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("service.SessionService.Prune: %w", err)
	}
	s.metrics.SessionsPruned(n)
	return n, nil
}

func (s *SessionService) expired(sess domain.QuizSession) bool {
	return s.ttl > 0 && sess.UpdatedAt.Before(s.now().Add(-s.ttl))
}
