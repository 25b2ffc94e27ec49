package repo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/internal/repo"
)

// newTestSessionStore opens a fresh bbolt file in the test's temp dir.
// These tests need no database server and always run.
func newTestSessionStore(t *testing.T) repo.SessionStore {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "sessions.db"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := repo.NewSessionStore(db)
	require.NoError(t, err)
	return store
}

func TestSessionStore_SaveGet(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	want := domain.QuizSession{
		Token: "tok-1",
		Step:  3,
		Answers: domain.Preferences{
			ChildAge:  9,
			Interests: []string{"art"},
		},
		UpdatedAt: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "tok-1", Step: 1}))
	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "tok-1", Step: 4}))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Step)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store := newTestSessionStore(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "tok-1"}))
	require.NoError(t, store.Delete(ctx, "tok-1"))

	_, err := store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "tok-1"), domain.ErrNotFound)
}

func TestSessionStore_Prune(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()
	cutoff := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "old-1", UpdatedAt: cutoff.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "old-2", UpdatedAt: cutoff.Add(-48 * time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.QuizSession{Token: "fresh", UpdatedAt: cutoff.Add(time.Minute)}))

	removed, err := store.Prune(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get(ctx, "old-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSessionStore_Prune_Empty(t *testing.T) {
	store := newTestSessionStore(t)

	removed, err := store.Prune(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, removed)
}
