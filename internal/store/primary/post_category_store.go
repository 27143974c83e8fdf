package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plume/internal/models"
	"plume/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Post Category Associations ---

// ApplyForPost removes prior associations and inserts the given rows as one
// transaction. With ReplaceExisting all prior rows for the post go; without
// it only AI-suggested rows are deleted, so manually curated categories
// survive a re-tag. The full resulting set is re-read before commit.
func (s *StoreImpl) ApplyForPost(ctx context.Context, params store.ApplyPostCategoriesParams) (int, []models.PostCategory, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM post_categories WHERE post_id = $1 AND is_ai_suggested = TRUE`
	if params.ReplaceExisting {
		deleteQuery = `DELETE FROM post_categories WHERE post_id = $1`
	}
	tag, err := tx.Exec(ctx, deleteQuery, params.PostID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to delete prior associations for post %s: %w", params.PostID, err)
	}
	removed := int(tag.RowsAffected())

	now := time.Now()
	insertQuery := `
		INSERT INTO post_categories (post_id, category_id, confidence, is_ai_suggested, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range params.Rows {
		_, err := tx.Exec(ctx, insertQuery,
			params.PostID, row.CategoryID, row.Confidence, row.IsAISuggested, now,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return 0, nil, fmt.Errorf("post %s already has category %s: %w", params.PostID, row.CategoryID, store.ErrDuplicate)
			}
			return 0, nil, fmt.Errorf("failed to insert association (post %s, category %s): %w", params.PostID, row.CategoryID, err)
		}
	}

	final, err := listForPost(ctx, tx, params.PostID)
	if err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to commit auto-tag transaction for post %s: %w", params.PostID, err)
	}
	return removed, final, nil
}

func (s *StoreImpl) DeleteForPost(ctx context.Context, postID string, categoryIDs []string, onlyAISuggested bool) (int, error) {
	// An empty id list means every association for the post.
	query := `DELETE FROM post_categories WHERE post_id = $1`
	args := []any{postID}
	if len(categoryIDs) > 0 {
		query += ` AND category_id = ANY($2)`
		args = append(args, categoryIDs)
	}
	if onlyAISuggested {
		query += ` AND is_ai_suggested = TRUE`
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete associations for post %s: %w", postID, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *StoreImpl) ListForPost(ctx context.Context, postID string) ([]models.PostCategory, error) {
	return listForPost(ctx, s.db, postID)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the final-set
// read can run inside the apply transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listForPost(ctx context.Context, q querier, postID string) ([]models.PostCategory, error) {
	query := `
		SELECT pc.post_id, pc.category_id, c.name, pc.confidence, pc.is_ai_suggested, pc.created_at
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY pc.confidence DESC, c.name ASC`

	rows, err := q.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list associations for post %s: %w", postID, err)
	}
	defer rows.Close()

	var result []models.PostCategory
	for rows.Next() {
		var pc models.PostCategory
		err := rows.Scan(
			&pc.PostID, &pc.CategoryID, &pc.CategoryName, &pc.Confidence, &pc.IsAISuggested, &pc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan association row: %w", err)
		}
		result = append(result, pc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating association rows: %w", err)
	}
	if result == nil {
		result = []models.PostCategory{}
	}
	return result, nil
}

func (s *StoreImpl) StatsForPost(ctx context.Context, postID string) (*models.PostCategoryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_ai_suggested),
			COUNT(*) FILTER (WHERE NOT is_ai_suggested),
			COALESCE(AVG(confidence), 0)
		FROM post_categories
		WHERE post_id = $1`

	stats := &models.PostCategoryStats{}
	err := s.db.QueryRow(ctx, query, postID).Scan(
		&stats.Total, &stats.AISuggested, &stats.Manual, &stats.AverageConfidence,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate associations for post %s: %w", postID, err)
	}
	return stats, nil
}

var _ store.PostCategoryStore = (*StoreImpl)(nil)
