package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campmatch/internal/domain"
)

// CampRepo is the read side of the camp catalog.
// The service layer depends on this interface, not the Postgres implementation.
type CampRepo interface {
	// ListPublished returns every published camp with its categories and
	// amenities. No scoring or filtering happens in the store.
	ListPublished(ctx context.Context) ([]domain.Camp, error)

	// ListPublishedPage returns one page of published camps, featured first
	// then newest, together with the total number of published camps.
	ListPublishedPage(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error)
}

// pgCampRepo is the Postgres implementation of CampRepo.
type pgCampRepo struct {
	db db
}

// NewCampRepo constructs a CampRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCampRepo(db db) CampRepo {
	return &pgCampRepo{db: db}
}

const campColumns = `
	id, name, description, location, age_min, age_max,
	price::float8, early_bird_price::float8, early_bird_deadline,
	capacity, enrolled, start_date, end_date, featured, status,
	amenities, created_at`

// ListPublished loads camps and their categories in two queries and
// stitches them together in memory.
func (r *pgCampRepo) ListPublished(ctx context.Context) ([]domain.Camp, error) {
	q := `SELECT ` + campColumns + `
		FROM camps
		WHERE status = @status
		ORDER BY created_at DESC`

	camps, err := r.queryCamps(ctx, q, pgx.NamedArgs{"status": domain.CampStatusPublished})
	if err != nil {
		return nil, fmt.Errorf("repo.CampRepo.ListPublished: %w", err)
	}

	const cq = `
		SELECT cc.camp_id, c.id, c.name, c.slug
		FROM camp_categories cc
		JOIN categories c ON c.id = cc.category_id
		JOIN camps ON camps.id = cc.camp_id
		WHERE camps.status = @status
		ORDER BY c.slug`

	if err := r.attachCategories(ctx, camps, cq, pgx.NamedArgs{"status": domain.CampStatusPublished}); err != nil {
		return nil, fmt.Errorf("repo.CampRepo.ListPublished: %w", err)
	}
	return camps, nil
}

// ListPublishedPage returns one page of published camps and the total count.
func (r *pgCampRepo) ListPublishedPage(ctx context.Context, p domain.Page) ([]domain.Camp, int64, error) {
	var total int64
	const countQ = `SELECT count(*) FROM camps WHERE status = @status`
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"status": domain.CampStatusPublished}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CampRepo.ListPublishedPage: count: %w", err)
	}

	q := `SELECT ` + campColumns + `
		FROM camps
		WHERE status = @status
		ORDER BY featured DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	camps, err := r.queryCamps(ctx, q, pgx.NamedArgs{
		"status": domain.CampStatusPublished,
		"limit":  p.Size,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CampRepo.ListPublishedPage: %w", err)
	}
	if len(camps) == 0 {
		return camps, total, nil
	}

	ids := make([]string, len(camps))
	for i, c := range camps {
		ids[i] = c.ID.String()
	}
	const cq = `
		SELECT cc.camp_id, c.id, c.name, c.slug
		FROM camp_categories cc
		JOIN categories c ON c.id = cc.category_id
		WHERE cc.camp_id = ANY(@ids::uuid[])
		ORDER BY c.slug`

	if err := r.attachCategories(ctx, camps, cq, pgx.NamedArgs{"ids": ids}); err != nil {
		return nil, 0, fmt.Errorf("repo.CampRepo.ListPublishedPage: %w", err)
	}
	return camps, total, nil
}

func (r *pgCampRepo) queryCamps(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Camp, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	camps := []domain.Camp{}
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		camps = append(camps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return camps, nil
}

// attachCategories runs q, which must select (camp_id, id, name, slug), and
// appends each category to its camp. Every camp ends up with a non-nil slice.
func (r *pgCampRepo) attachCategories(ctx context.Context, camps []domain.Camp, q string, args pgx.NamedArgs) error {
	byID := make(map[uuid.UUID]int, len(camps))
	for i := range camps {
		byID[camps[i].ID] = i
		camps[i].Categories = []domain.Category{}
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var campID pgtype.UUID
		var c domain.Category
		var id pgtype.UUID
		if err := rows.Scan(&campID, &id, &c.Name, &c.Slug); err != nil {
			return fmt.Errorf("categories: scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		if i, ok := byID[uuid.UUID(campID.Bytes)]; ok {
			camps[i].Categories = append(camps[i].Categories, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("categories: rows: %w", err)
	}
	return nil
}

// scanCamp maps a row selected with campColumns into a domain.Camp,
// converting the nullable columns into pointers.
func scanCamp(s scanner) (domain.Camp, error) {
	var (
		c                  domain.Camp
		id                 pgtype.UUID
		ageMin, ageMax     pgtype.Int4
		earlyBird          pgtype.Float8
		deadline           pgtype.Timestamptz
		startDate, endDate pgtype.Date
	)

	err := s.Scan(
		&id, &c.Name, &c.Description, &c.Location, &ageMin, &ageMax,
		&c.Price, &earlyBird, &deadline,
		&c.Capacity, &c.Enrolled, &startDate, &endDate, &c.Featured, &c.Status,
		&c.Amenities, &c.CreatedAt,
	)
	if err != nil {
		return domain.Camp{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	if ageMin.Valid {
		v := int(ageMin.Int32)
		c.AgeMin = &v
	}
	if ageMax.Valid {
		v := int(ageMax.Int32)
		c.AgeMax = &v
	}
	if earlyBird.Valid {
		v := earlyBird.Float64
		c.EarlyBirdPrice = &v
	}
	if deadline.Valid {
		v := deadline.Time
		c.EarlyBirdDeadline = &v
	}
	if startDate.Valid {
		v := startDate.Time
		c.StartDate = &v
	}
	if endDate.Valid {
		v := endDate.Time
		c.EndDate = &v
	}
	return c, nil
}
