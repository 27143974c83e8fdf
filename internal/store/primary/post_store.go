package primary

import (
	"context"
	"errors"
	"fmt"

	"plume/internal/models"
	"plume/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *StoreImpl) GetPost(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT id, title, content, status FROM posts WHERE id = $1`
	post := &models.Post{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return post, nil
}

var _ store.PostStore = (*StoreImpl)(nil)
