package store

import (
	"context"

	"plume/internal/models"
)

// --- Category Store ---

// CategoryStore exposes read access to the category table. The
// content-intelligence core never writes categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)

	Ping(ctx context.Context) error
}

// --- Post Store ---

// PostStore exposes read access to posts. Returns ErrNotFound when the
// post id does not exist.
type PostStore interface {
	GetPost(ctx context.Context, id string) (*models.Post, error)
}

// --- Post Category Store ---

// ApplyPostCategoriesParams describes one transactional merge-or-replace
// application of category rows to a post.
type ApplyPostCategoriesParams struct {
	PostID string
	Rows   []models.PostCategory
	// ReplaceExisting deletes all prior rows for the post; otherwise only
	// rows with is_ai_suggested = true are deleted (manual rows survive).
	ReplaceExisting bool
}

// PostCategoryStore manages post-category association rows. ApplyForPost
// runs delete-then-insert-then-read as one transaction: no partial state is
// observable outside it.
type PostCategoryStore interface {
	ApplyForPost(ctx context.Context, params ApplyPostCategoriesParams) (removed int, final []models.PostCategory, err error)
	DeleteForPost(ctx context.Context, postID string, categoryIDs []string, onlyAISuggested bool) (int, error)
	ListForPost(ctx context.Context, postID string) ([]models.PostCategory, error)
	StatsForPost(ctx context.Context, postID string) (*models.PostCategoryStats, error)
}

// --- Usage Store ---

// UsageStore records and aggregates model invocations.
type UsageStore interface {
	RecordUsage(ctx context.Context, entry *models.AIUsageLog) error
	ListUsage(ctx context.Context, limit, offset int) ([]*models.AIUsageLog, error)
	GetUsageSummary(ctx context.Context) (totalCalls int64, failedCalls int64, avgDurationMs float64, err error)
}
