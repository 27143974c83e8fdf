package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plume/internal/models"
	"plume/internal/store"

	log "github.com/sirupsen/logrus"
)

// Selected-category count bounds for a single apply call.
const (
	minSelectedCategories = 1
	maxSelectedCategories = 5
)

// SelectedCategory is one category the caller wants applied to a post.
type SelectedCategory struct {
	CategoryID string  `json:"categoryId"`
	Confidence float64 `json:"confidence"`
}

// ApplyAutoTagsRequest is the input to ApplyAutoTags.
type ApplyAutoTagsRequest struct {
	PostID             string             `json:"postId"`
	SelectedCategories []SelectedCategory `json:"selectedCategories"`
	ReplaceExisting    bool               `json:"replaceExisting"`
}

// ApplyAutoTagsResult reports the outcome of one transactional application.
type ApplyAutoTagsResult struct {
	AddedCategories   int                   `json:"addedCategories"`
	RemovedCategories int                   `json:"removedCategories"`
	FinalCategories   []models.PostCategory `json:"finalCategories"`
}

// RecommendAndApplyResult reports the outcome of a recommend-then-apply run.
// Applied is nil when nothing crossed the auto-apply threshold or autoApply
// was off.
type RecommendAndApplyResult struct {
	Recommendations []models.CategoryRecommendation `json:"recommendations"`
	ContentAnalysis models.ContentAnalysis          `json:"contentAnalysis"`
	Applied         *ApplyAutoTagsResult            `json:"applied,omitempty"`
}

// AutoTagService converts category recommendations or explicit selections
// into persisted post-category rows.
type AutoTagService struct {
	recommender    *CategoryService
	posts          store.PostStore
	categories     store.CategoryStore
	postCategories store.PostCategoryStore
	autoApplyMin   float64
	log            *log.Logger
}

func NewAutoTagService(recommender *CategoryService, posts store.PostStore, categories store.CategoryStore, postCategories store.PostCategoryStore, autoApplyThreshold float64, logger *log.Logger) *AutoTagService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &AutoTagService{
		recommender:    recommender,
		posts:          posts,
		categories:     categories,
		postCategories: postCategories,
		autoApplyMin:   autoApplyThreshold,
		log:            logger,
	}
}

// ApplyAutoTags validates the request fully before any write, then applies
// the selected categories in one transaction. With replaceExisting all prior
// rows for the post are removed; otherwise only AI-suggested rows are,
// preserving manual curation.
func (s *AutoTagService) ApplyAutoTags(ctx context.Context, req ApplyAutoTagsRequest) (*ApplyAutoTagsResult, error) {
	if strings.TrimSpace(req.PostID) == "" {
		return nil, newValidationError("postId is required")
	}
	if n := len(req.SelectedCategories); n < minSelectedCategories || n > maxSelectedCategories {
		return nil, newValidationError("selectedCategories must contain between %d and %d entries, got %d",
			minSelectedCategories, maxSelectedCategories, n)
	}
	for _, sel := range req.SelectedCategories {
		if sel.Confidence < 0 || sel.Confidence > 1 {
			return nil, newValidationError("confidence for category %q must be in [0,1], got %v", sel.CategoryID, sel.Confidence)
		}
		if _, err := s.categories.GetCategory(ctx, sel.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, newNotFoundError("category %q does not exist", sel.CategoryID)
			}
			return nil, newPersistenceError(fmt.Errorf("checking category %q: %w", sel.CategoryID, err))
		}
	}
	if _, err := s.posts.GetPost(ctx, req.PostID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newNotFoundError("post %q does not exist", req.PostID)
		}
		return nil, newPersistenceError(fmt.Errorf("checking post %q: %w", req.PostID, err))
	}

	rows := make([]models.PostCategory, len(req.SelectedCategories))
	for i, sel := range req.SelectedCategories {
		rows[i] = models.PostCategory{
			PostID:        req.PostID,
			CategoryID:    sel.CategoryID,
			Confidence:    sel.Confidence,
			IsAISuggested: true,
			CreatedAt:     time.Now(),
		}
	}

	removed, final, err := s.postCategories.ApplyForPost(ctx, store.ApplyPostCategoriesParams{
		PostID:          req.PostID,
		Rows:            rows,
		ReplaceExisting: req.ReplaceExisting,
	})
	if err != nil {
		return nil, newPersistenceError(fmt.Errorf("applying categories to post %q: %w", req.PostID, err))
	}

	s.log.WithFields(log.Fields{
		"postId":  req.PostID,
		"added":   len(rows),
		"removed": removed,
	}).Info("Applied auto tags")

	return &ApplyAutoTagsResult{
		AddedCategories:   len(rows),
		RemovedCategories: removed,
		FinalCategories:   final,
	}, nil
}

// RecommendAndApplyTags recommends categories for an existing post, excluding
// the ones it already carries, and optionally auto-applies the subset whose
// confidence meets the auto-apply threshold. Manual rows are never replaced.
func (s *AutoTagService) RecommendAndApplyTags(ctx context.Context, postID string, autoApply bool) (*RecommendAndApplyResult, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, newValidationError("postId is required")
	}
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newNotFoundError("post %q does not exist", postID)
		}
		return nil, newPersistenceError(fmt.Errorf("fetching post %q: %w", postID, err))
	}

	existing, err := s.postCategories.ListForPost(ctx, postID)
	if err != nil {
		return nil, newPersistenceError(fmt.Errorf("listing categories for post %q: %w", postID, err))
	}
	existingIDs := make([]string, len(existing))
	for i, pc := range existing {
		existingIDs[i] = pc.CategoryID
	}

	recommended, err := s.recommender.RecommendCategories(ctx, RecommendCategoriesRequest{
		Title:              post.Title,
		Content:            post.Content,
		ContentType:        "markdown",
		ExistingCategories: existingIDs,
	})
	if err != nil {
		return nil, err
	}

	result := &RecommendAndApplyResult{
		Recommendations: recommended.Recommendations,
		ContentAnalysis: recommended.ContentAnalysis,
	}
	if !autoApply {
		return result, nil
	}

	var selected []SelectedCategory
	for _, rec := range recommended.Recommendations {
		if rec.Confidence >= s.autoApplyMin {
			selected = append(selected, SelectedCategory{CategoryID: rec.CategoryID, Confidence: rec.Confidence})
		}
	}
	if len(selected) == 0 {
		s.log.WithField("postId", postID).Debug("No recommendation crossed the auto-apply threshold")
		return result, nil
	}

	applied, err := s.ApplyAutoTags(ctx, ApplyAutoTagsRequest{
		PostID:             postID,
		SelectedCategories: selected,
		ReplaceExisting:    false,
	})
	if err != nil {
		return nil, err
	}
	result.Applied = applied
	return result, nil
}

// RemovePostCategories deletes matching association rows and reports how
// many were removed. An empty categoryIDs slice matches all rows for the
// post (subject to onlyAISuggested).
func (s *AutoTagService) RemovePostCategories(ctx context.Context, postID string, categoryIDs []string, onlyAISuggested bool) (int, error) {
	if strings.TrimSpace(postID) == "" {
		return 0, newValidationError("postId is required")
	}
	removed, err := s.postCategories.DeleteForPost(ctx, postID, categoryIDs, onlyAISuggested)
	if err != nil {
		return 0, newPersistenceError(fmt.Errorf("removing categories from post %q: %w", postID, err))
	}
	return removed, nil
}

// GetPostCategoryStats aggregates a post's association rows.
func (s *AutoTagService) GetPostCategoryStats(ctx context.Context, postID string) (*models.PostCategoryStats, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, newValidationError("postId is required")
	}
	stats, err := s.postCategories.StatsForPost(ctx, postID)
	if err != nil {
		return nil, newPersistenceError(fmt.Errorf("aggregating categories for post %q: %w", postID, err))
	}
	return stats, nil
}
