package repo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/campmatch/internal/domain"
	"github.com/pkordes/campmatch/testutil"
)

// beginTx opens a transaction on the test database that is rolled back when
// the test ends. Skips without TEST_DATABASE_URL.
func beginTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// The catalog is read-only through the repo, so fixtures insert directly.

func seedCategory(t *testing.T, tx pgx.Tx, name, slug string) domain.Category {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(),
		`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`, name, slug,
	).Scan(&id)
	require.NoError(t, err, "seed category %q", slug)
	return domain.Category{ID: id, Name: name, Slug: slug}
}

type campSeed struct {
	name      string
	status    string
	featured  bool
	earlyBird *float64
	createdAt time.Time
	amenities []domain.Amenity
}

func seedCamp(t *testing.T, tx pgx.Tx, s campSeed, cats ...domain.Category) uuid.UUID {
	t.Helper()
	if s.status == "" {
		s.status = domain.CampStatusPublished
	}
	if s.createdAt.IsZero() {
		s.createdAt = time.Now()
	}
	if s.amenities == nil {
		s.amenities = []domain.Amenity{}
	}
	amenities, err := json.Marshal(s.amenities)
	require.NoError(t, err)

	ctx := context.Background()
	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO camps (
			name, description, location, age_min, age_max, price, early_bird_price,
			capacity, enrolled, start_date, end_date, featured, status, amenities, created_at
		) VALUES (
			$1, 'Outdoor fun', 'Galway, Ireland', 8, 12, 250, $2,
			20, 5, '2026-07-06', '2026-07-10', $3, $4, $5, $6
		) RETURNING id`,
		s.name, s.earlyBird, s.featured, s.status, amenities, s.createdAt,
	).Scan(&id)
	require.NoError(t, err, "seed camp %q", s.name)

	for _, c := range cats {
		_, err := tx.Exec(ctx,
			`INSERT INTO camp_categories (camp_id, category_id) VALUES ($1, $2)`, id, c.ID)
		require.NoError(t, err, "link camp %q to %q", s.name, c.Slug)
	}
	return id
}

func findCamp(camps []domain.Camp, id uuid.UUID) (domain.Camp, bool) {
	for _, c := range camps {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Camp{}, false
}

func ptr[T any](v T) *T { return &v }
