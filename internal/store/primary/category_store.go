package primary

import (
	"context"
	"errors"
	"fmt"

	"plume/internal/models"
	"plume/internal/store"

	"github.com/jackc/pgx/v5"
)

// --- Category Management (read-only) ---

func (s *StoreImpl) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		cat := &models.Category{}
		err := rows.Scan(
			&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, cat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (s *StoreImpl) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE id = $1`
	cat := &models.Category{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return cat, nil
}

var _ store.CategoryStore = (*StoreImpl)(nil)
