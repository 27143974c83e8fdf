package services

import (
	"context"
	"testing"

	"plume/internal/aiclient"
	"plume/internal/models"
	"plume/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostStore struct {
	posts map[string]*models.Post
}

func (f *fakePostStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

// fakePostCategoryStore mimics the transactional delete-insert-read of the
// real store in memory.
type fakePostCategoryStore struct {
	rows       []models.PostCategory
	lastParams store.ApplyPostCategoriesParams
}

func (f *fakePostCategoryStore) ApplyForPost(ctx context.Context, params store.ApplyPostCategoriesParams) (int, []models.PostCategory, error) {
	f.lastParams = params

	removed := 0
	var kept []models.PostCategory
	for _, row := range f.rows {
		if row.PostID != params.PostID {
			kept = append(kept, row)
			continue
		}
		if params.ReplaceExisting || row.IsAISuggested {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = append(kept, params.Rows...)

	var final []models.PostCategory
	for _, row := range f.rows {
		if row.PostID == params.PostID {
			final = append(final, row)
		}
	}
	return removed, final, nil
}

func (f *fakePostCategoryStore) DeleteForPost(ctx context.Context, postID string, categoryIDs []string, onlyAISuggested bool) (int, error) {
	match := func(row models.PostCategory) bool {
		if row.PostID != postID {
			return false
		}
		if onlyAISuggested && !row.IsAISuggested {
			return false
		}
		if len(categoryIDs) == 0 {
			return true
		}
		for _, id := range categoryIDs {
			if row.CategoryID == id {
				return true
			}
		}
		return false
	}

	removed := 0
	var kept []models.PostCategory
	for _, row := range f.rows {
		if match(row) {
			removed++
		} else {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return removed, nil
}

func (f *fakePostCategoryStore) ListForPost(ctx context.Context, postID string) ([]models.PostCategory, error) {
	var out []models.PostCategory
	for _, row := range f.rows {
		if row.PostID == postID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakePostCategoryStore) StatsForPost(ctx context.Context, postID string) (*models.PostCategoryStats, error) {
	stats := &models.PostCategoryStats{}
	sum := 0.0
	for _, row := range f.rows {
		if row.PostID != postID {
			continue
		}
		stats.Total++
		sum += row.Confidence
		if row.IsAISuggested {
			stats.AISuggested++
		} else {
			stats.Manual++
		}
	}
	if stats.Total > 0 {
		stats.AverageConfidence = sum / float64(stats.Total)
	}
	return stats, nil
}

func newTestAutoTagService(gen *fakeGenerator, cats *fakeCategoryStore, posts *fakePostStore, pcs *fakePostCategoryStore) *AutoTagService {
	recommender := NewCategoryService(aiclient.NewClient(gen, nil, nil), cats, testConfig(), nil)
	return NewAutoTagService(recommender, posts, cats, pcs, 0.8, nil)
}

func TestApplyAutoTagsValidation(t *testing.T) {
	cats := &fakeCategoryStore{categories: []*models.Category{{ID: "c1", Name: "Go", Slug: "go"}}}
	posts := &fakePostStore{posts: map[string]*models.Post{"p1": {ID: "p1"}}}
	pcs := &fakePostCategoryStore{}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)
	ctx := context.Background()

	t.Run("empty post id", func(t *testing.T) {
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{
			SelectedCategories: []SelectedCategory{{CategoryID: "c1", Confidence: 0.9}},
		})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeValidationError, svcErr.Code)
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{PostID: "p1"})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeValidationError, svcErr.Code)
	})

	t.Run("too many categories", func(t *testing.T) {
		sel := make([]SelectedCategory, 6)
		for i := range sel {
			sel[i] = SelectedCategory{CategoryID: "c1", Confidence: 0.9}
		}
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{PostID: "p1", SelectedCategories: sel})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeValidationError, svcErr.Code)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{
			PostID:             "p1",
			SelectedCategories: []SelectedCategory{{CategoryID: "c1", Confidence: 1.5}},
		})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeValidationError, svcErr.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{
			PostID:             "p1",
			SelectedCategories: []SelectedCategory{{CategoryID: "nope", Confidence: 0.9}},
		})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeNotFound, svcErr.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.ApplyAutoTags(ctx, ApplyAutoTagsRequest{
			PostID:             "ghost",
			SelectedCategories: []SelectedCategory{{CategoryID: "c1", Confidence: 0.9}},
		})
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, CodeNotFound, svcErr.Code)
	})

	// Nothing was ever written.
	assert.Empty(t, pcs.rows)
}

func TestApplyAutoTagsMergeOnEmptyPost(t *testing.T) {
	cats := &fakeCategoryStore{categories: []*models.Category{
		{ID: "A", Name: "Alpha", Slug: "alpha"},
		{ID: "B", Name: "Beta", Slug: "beta"},
	}}
	posts := &fakePostStore{posts: map[string]*models.Post{"p1": {ID: "p1"}}}
	pcs := &fakePostCategoryStore{}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)

	result, err := svc.ApplyAutoTags(context.Background(), ApplyAutoTagsRequest{
		PostID: "p1",
		SelectedCategories: []SelectedCategory{
			{CategoryID: "A", Confidence: 0.85},
			{CategoryID: "B", Confidence: 0.9},
		},
		ReplaceExisting: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.AddedCategories)
	assert.Equal(t, 0, result.RemovedCategories)
	assert.Len(t, result.FinalCategories, 2)
}

func TestApplyAutoTagsPreservesManualRows(t *testing.T) {
	cats := &fakeCategoryStore{categories: []*models.Category{{ID: "A", Name: "Alpha", Slug: "alpha"}}}
	posts := &fakePostStore{posts: map[string]*models.Post{"p1": {ID: "p1"}}}
	pcs := &fakePostCategoryStore{rows: []models.PostCategory{
		{PostID: "p1", CategoryID: "manual", IsAISuggested: false, Confidence: 1},
		{PostID: "p1", CategoryID: "old-ai", IsAISuggested: true, Confidence: 0.7},
	}}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)

	result, err := svc.ApplyAutoTags(context.Background(), ApplyAutoTagsRequest{
		PostID:             "p1",
		SelectedCategories: []SelectedCategory{{CategoryID: "A", Confidence: 0.85}},
		ReplaceExisting:    false,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RemovedCategories)
	require.Len(t, result.FinalCategories, 2)

	ids := []string{result.FinalCategories[0].CategoryID, result.FinalCategories[1].CategoryID}
	assert.Contains(t, ids, "manual")
	assert.Contains(t, ids, "A")
}

func TestApplyAutoTagsReplaceExisting(t *testing.T) {
	cats := &fakeCategoryStore{categories: []*models.Category{{ID: "A", Name: "Alpha", Slug: "alpha"}}}
	posts := &fakePostStore{posts: map[string]*models.Post{"p1": {ID: "p1"}}}
	pcs := &fakePostCategoryStore{rows: []models.PostCategory{
		{PostID: "p1", CategoryID: "manual", IsAISuggested: false, Confidence: 1},
		{PostID: "p1", CategoryID: "old-ai", IsAISuggested: true, Confidence: 0.7},
	}}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)

	result, err := svc.ApplyAutoTags(context.Background(), ApplyAutoTagsRequest{
		PostID:             "p1",
		SelectedCategories: []SelectedCategory{{CategoryID: "A", Confidence: 0.85}},
		ReplaceExisting:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemovedCategories)
	require.Len(t, result.FinalCategories, 1)
	assert.Equal(t, "A", result.FinalCategories[0].CategoryID)
}

func TestRecommendAndApplyTags(t *testing.T) {
	content := testContent
	cats := &fakeCategoryStore{categories: []*models.Category{
		{ID: "c1", Name: "Web Development", Slug: "web-development"},
		{ID: "c2", Name: "Databases", Slug: "databases"},
	}}
	posts := &fakePostStore{posts: map[string]*models.Post{
		"p1": {ID: "p1", Title: "React Hooks", Content: content},
	}}

	t.Run("auto-applies only the high-confidence subset", func(t *testing.T) {
		gen := &fakeGenerator{reply: classificationReply(
			`{"categoryId": "c1", "confidence": 0.9},
			 {"categoryId": "c2", "confidence": 0.72}`)}
		pcs := &fakePostCategoryStore{}
		svc := newTestAutoTagService(gen, cats, posts, pcs)

		result, err := svc.RecommendAndApplyTags(context.Background(), "p1", true)
		require.NoError(t, err)
		require.NotNil(t, result.Applied)
		assert.Equal(t, 1, result.Applied.AddedCategories)
		assert.False(t, pcs.lastParams.ReplaceExisting)
		require.Len(t, pcs.lastParams.Rows, 1)
		assert.Equal(t, "c1", pcs.lastParams.Rows[0].CategoryID)
	})

	t.Run("does not apply below the threshold", func(t *testing.T) {
		gen := &fakeGenerator{reply: classificationReply(
			`{"categoryId": "c2", "confidence": 0.75}`)}
		pcs := &fakePostCategoryStore{}
		svc := newTestAutoTagService(gen, cats, posts, pcs)

		result, err := svc.RecommendAndApplyTags(context.Background(), "p1", true)
		require.NoError(t, err)
		assert.Nil(t, result.Applied)
		assert.Empty(t, pcs.rows)
	})

	t.Run("autoApply off never writes", func(t *testing.T) {
		gen := &fakeGenerator{reply: classificationReply(
			`{"categoryId": "c1", "confidence": 0.95}`)}
		pcs := &fakePostCategoryStore{}
		svc := newTestAutoTagService(gen, cats, posts, pcs)

		result, err := svc.RecommendAndApplyTags(context.Background(), "p1", false)
		require.NoError(t, err)
		assert.Nil(t, result.Applied)
		assert.Empty(t, pcs.rows)
	})

	t.Run("existing categories are excluded from the prompt call", func(t *testing.T) {
		gen := &fakeGenerator{reply: classificationReply(
			`{"categoryId": "c2", "confidence": 0.9}`)}
		pcs := &fakePostCategoryStore{rows: []models.PostCategory{
			{PostID: "p1", CategoryID: "c1", IsAISuggested: false, Confidence: 1},
		}}
		svc := newTestAutoTagService(gen, cats, posts, pcs)

		result, err := svc.RecommendAndApplyTags(context.Background(), "p1", false)
		require.NoError(t, err)
		for _, rec := range result.Recommendations {
			assert.NotEqual(t, "c1", rec.CategoryID)
		}
	})
}

func TestRemovePostCategories(t *testing.T) {
	cats := &fakeCategoryStore{}
	posts := &fakePostStore{}
	pcs := &fakePostCategoryStore{rows: []models.PostCategory{
		{PostID: "p1", CategoryID: "a", IsAISuggested: true},
		{PostID: "p1", CategoryID: "b", IsAISuggested: false},
		{PostID: "p2", CategoryID: "a", IsAISuggested: true},
	}}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)

	removed, err := svc.RemovePostCategories(context.Background(), "p1", nil, true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// Manual row and other posts' rows survive.
	remaining, err := pcs.ListForPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].CategoryID)
}

func TestGetPostCategoryStats(t *testing.T) {
	cats := &fakeCategoryStore{}
	posts := &fakePostStore{}
	pcs := &fakePostCategoryStore{rows: []models.PostCategory{
		{PostID: "p1", CategoryID: "a", IsAISuggested: true, Confidence: 0.8},
		{PostID: "p1", CategoryID: "b", IsAISuggested: false, Confidence: 1.0},
	}}
	svc := newTestAutoTagService(&fakeGenerator{}, cats, posts, pcs)

	stats, err := svc.GetPostCategoryStats(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.AISuggested)
	assert.Equal(t, 1, stats.Manual)
	assert.InDelta(t, 0.9, stats.AverageConfidence, 0.0001)
}
