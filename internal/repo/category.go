package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/campmatch/internal/domain"
)

// CategoryRepo lists the categories offered as quiz interests.
type CategoryRepo interface {
	// List returns all categories whose slug starts with prefix, ordered by slug.
	// If prefix is empty, all categories are returned.
	List(ctx context.Context, prefix string) ([]domain.Category, error)

	// GetBySlug returns a single category.
	// Returns domain.ErrNotFound if no category has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.Category, error)
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

// List returns categories matching the slug prefix. Pass prefix="" for all.
func (r *pgCategoryRepo) List(ctx context.Context, prefix string) ([]domain.Category, error) {
	const q = `
		SELECT id, name, slug
		FROM categories
		WHERE slug LIKE @prefix || '%'
		ORDER BY slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.List: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: rows: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by its unique slug.
func (r *pgCategoryRepo) GetBySlug(ctx context.Context, slug string) (domain.Category, error) {
	const q = `SELECT id, name, slug FROM categories WHERE slug = @slug`

	c, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetBySlug: %w", err)
	}
	return c, nil
}

// scanCategory maps a single database row into a domain.Category.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c  domain.Category
		id pgtype.UUID
	)
	if err := s.Scan(&id, &c.Name, &c.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
