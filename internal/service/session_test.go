package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/metrics"
	"github.com/pkordes/campmatch/internal/service"
)

const ttl = 72 * time.Hour

// ---- Start -----------------------------------------------------------------

func TestSessionService_Start(t *testing.T) {
	var saved domain.QuizSession
	svc := service.NewSessionService(&mockSessionStore{
		save: func(_ context.Context, s domain.QuizSession) error {
			saved = s
			return nil
		},
	}, ttl, nil)

	got, err := svc.Start(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, got.Token)
	assert.Equal(t, got, saved)
	assert.Zero(t, got.Step)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)
}

func TestSessionService_Start_StoreError(t *testing.T) {
	svc := service.NewSessionService(&mockSessionStore{
		save: func(context.Context, domain.QuizSession) error { return errDB },
	}, ttl, nil)

	_, err := svc.Start(context.Background())

	assert.ErrorIs(t, err, errDB)
}

// ---- Get -------------------------------------------------------------------

func TestSessionService_Get_Fresh(t *testing.T) {
	stored := domain.QuizSession{Token: "tok-1", Step: 2, UpdatedAt: time.Now().Add(-time.Hour)}
	svc := service.NewSessionService(&mockSessionStore{
		get: func(context.Context, string) (domain.QuizSession, error) { return stored, nil },
	}, ttl, nil)

	got, err := svc.Get(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestSessionService_Get_ExpiredIsDeleted(t *testing.T) {
	deleted := ""
	svc := service.NewSessionService(&mockSessionStore{
		get: func(_ context.Context, token string) (domain.QuizSession, error) {
			return domain.QuizSession{Token: token, UpdatedAt: time.Now().Add(-2 * ttl)}, nil
		},
		delete: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}, ttl, nil)

	_, err := svc.Get(context.Background(), "tok-old")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "tok-old", deleted)
}

func TestSessionService_Get_NotFound(t *testing.T) {
	svc := service.NewSessionService(&mockSessionStore{
		get: func(context.Context, string) (domain.QuizSession, error) {
			return domain.QuizSession{}, domain.ErrNotFound
		},
	}, ttl, nil)

	_, err := svc.Get(context.Background(), "tok-missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Save ------------------------------------------------------------------

func TestSessionService_Save(t *testing.T) {
	var saved domain.QuizSession
	svc := service.NewSessionService(&mockSessionStore{
		save: func(_ context.Context, s domain.QuizSession) error {
			saved = s
			return nil
		},
	}, ttl, nil)

	answers := domain.Preferences{ChildAge: 8, Interests: []string{"drama"}}
	got, err := svc.Save(context.Background(), "tok-1", 3, answers)

	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Equal(t, 3, got.Step)
	assert.Equal(t, answers, got.Answers)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)
}

func TestSessionService_Save_Invalid(t *testing.T) {
	svc := service.NewSessionService(&mockSessionStore{}, ttl, nil)

	_, err := svc.Save(context.Background(), "", 1, domain.Preferences{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Save(context.Background(), "tok-1", -1, domain.Preferences{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestSessionService_Delete_NotFound(t *testing.T) {
	svc := service.NewSessionService(&mockSessionStore{
		delete: func(context.Context, string) error { return domain.ErrNotFound },
	}, ttl, nil)

	err := svc.Delete(context.Background(), "tok-missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Prune -----------------------------------------------------------------

func TestSessionService_Prune(t *testing.T) {
	var cutoff time.Time
	m := metrics.New()
	svc := service.NewSessionService(&mockSessionStore{
		prune: func(_ context.Context, c time.Time) (int, error) {
			cutoff = c
			return 4, nil
		},
	}, ttl, m)

	n, err := svc.Prune(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.WithinDuration(t, time.Now().Add(-ttl), cutoff, time.Minute)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.SessionsPrunedTotal))
}

func TestSessionService_Prune_DisabledWithoutTTL(t *testing.T) {
	svc := service.NewSessionService(&mockSessionStore{}, 0, nil)

	n, err := svc.Prune(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
}
