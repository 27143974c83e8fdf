package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"plume/internal/aiclient"
	"plume/internal/config"
	"plume/internal/models"
	"plume/internal/store"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Content length bounds for classification requests, in characters.
const (
	minClassifyContentLength = 50
	maxClassifyContentLength = 50000
)

// RecommendCategoriesRequest is the input to RecommendCategories.
type RecommendCategoriesRequest struct {
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	ContentType        string   `json:"contentType"` // "markdown" or "html"
	MaxSuggestions     int      `json:"maxSuggestions,omitempty"`
	ExistingCategories []string `json:"existingCategories,omitempty"`
}

// RecommendCategoriesResult bundles the surviving recommendations with the
// model's content analysis and per-request metrics.
type RecommendCategoriesResult struct {
	Recommendations []models.CategoryRecommendation `json:"recommendations"`
	ContentAnalysis models.ContentAnalysis          `json:"contentAnalysis"`
	Metrics         models.ProcessingMetrics        `json:"metrics"`
}

// CategoryService classifies posts against the blog's category taxonomy.
type CategoryService struct {
	ai         *aiclient.Client
	categories store.CategoryStore
	cfg        *config.Config
	log        *log.Logger
}

func NewCategoryService(ai *aiclient.Client, categories store.CategoryStore, cfg *config.Config, logger *log.Logger) *CategoryService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CategoryService{ai: ai, categories: categories, cfg: cfg, log: logger}
}

// aiClassificationReply is the strict decode target for the model's fenced
// JSON reply.
type aiClassificationReply struct {
	Recommendations []models.CategoryRecommendation `json:"recommendations"`
	ContentAnalysis models.ContentAnalysis          `json:"contentAnalysis"`
}

// RecommendCategories validates the request, asks the model to classify the
// post, then weights, deduplicates, thresholds and truncates the raw
// recommendations. AI and parse failures come back as a retryable
// CATEGORY_RECOMMENDATION_FAILED error, never as a panic.
func (s *CategoryService) RecommendCategories(ctx context.Context, req RecommendCategoriesRequest) (*RecommendCategoriesResult, error) {
	if err := validateRecommendRequest(req); err != nil {
		return nil, err
	}

	metrics := models.ProcessingMetrics{
		RequestID:     uuid.NewString(),
		StartTime:     time.Now(),
		ContentLength: len([]rune(req.Content)),
		ModelUsed:     s.ai.ModelName(),
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, newPersistenceError(fmt.Errorf("listing categories: %w", err))
	}

	maxSuggestions := req.MaxSuggestions
	if maxSuggestions < 1 || maxSuggestions > s.cfg.Categorization.MaxSuggestions {
		maxSuggestions = s.cfg.Categorization.MaxSuggestions
	}

	prompt, err := aiclient.RenderPrompt(s.classificationTemplate(), map[string]string{
		"TITLE":           req.Title,
		"CONTENT":         aiclient.TruncateContent(req.Content, s.cfg.Categorization.MaxContentLength),
		"CONTENT_TYPE":    req.ContentType,
		"CATEGORIES":      formatCategoryList(categories),
		"MAX_SUGGESTIONS": strconv.Itoa(maxSuggestions),
	})
	if err != nil {
		return nil, s.recommendationFailed(metrics, err)
	}

	reply, err := s.ai.Generate(ctx, "category_recommend", metrics.RequestID, prompt)
	if err != nil {
		return nil, s.recommendationFailed(metrics, err)
	}

	block, err := aiclient.ExtractJSONBlock(reply)
	if err != nil {
		return nil, s.recommendationFailed(metrics, err)
	}
	var parsed aiClassificationReply
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, s.recommendationFailed(metrics, fmt.Errorf("decoding classification reply: %w", err))
	}

	normalizeContentAnalysis(&parsed.ContentAnalysis)
	recs := s.postProcess(parsed.Recommendations, categories, req.ExistingCategories, maxSuggestions)

	metrics.EndTime = time.Now()
	metrics.Success = true
	s.log.WithFields(log.Fields{
		"requestId":       metrics.RequestID,
		"recommendations": len(recs),
		"durationMs":      metrics.EndTime.Sub(metrics.StartTime).Milliseconds(),
	}).Debug("Category recommendation completed")

	return &RecommendCategoriesResult{
		Recommendations: recs,
		ContentAnalysis: parsed.ContentAnalysis,
		Metrics:         metrics,
	}, nil
}

func validateRecommendRequest(req RecommendCategoriesRequest) *ServiceError {
	if strings.TrimSpace(req.Title) == "" {
		return newValidationError("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return newValidationError("content is required")
	}
	if n := len([]rune(req.Content)); n < minClassifyContentLength || n > maxClassifyContentLength {
		return newValidationError("content length must be between %d and %d characters, got %d",
			minClassifyContentLength, maxClassifyContentLength, n)
	}
	if req.ContentType != "markdown" && req.ContentType != "html" {
		return newValidationError("contentType must be markdown or html, got %q", req.ContentType)
	}
	return nil
}

func (s *CategoryService) classificationTemplate() string {
	if s.cfg.Categorization.PromptTemplate != "" {
		return s.cfg.Categorization.PromptTemplate
	}
	return aiclient.DefaultClassificationPrompt
}

func (s *CategoryService) recommendationFailed(metrics models.ProcessingMetrics, err error) *ServiceError {
	s.log.WithField("requestId", metrics.RequestID).Errorf("Category recommendation failed: %v", err)
	return &ServiceError{
		Code:      CodeCategoryRecommendationError,
		Message:   err.Error(),
		Retryable: true,
	}
}

// postProcess applies the scoring pipeline to raw model recommendations:
// exclusion of already-assigned categories, domain weighting, deduplication
// keeping the highest-confidence instance per id, confidence thresholding,
// rejection of ids the category store does not know, and truncation.
func (s *CategoryService) postProcess(raw []models.CategoryRecommendation, categories []*models.Category, existing []string, limit int) []models.CategoryRecommendation {
	excluded := make(map[string]bool, len(existing))
	for _, id := range existing {
		excluded[id] = true
	}
	known := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = c
	}

	weighted := make([]models.CategoryRecommendation, 0, len(raw))
	for _, rec := range raw {
		if excluded[rec.CategoryID] {
			continue
		}
		weight := 1.0
		if cat, ok := known[rec.CategoryID]; ok {
			if w, ok := s.cfg.Categorization.DomainWeights[cat.Slug]; ok {
				weight = w
			}
		}
		conf := rec.Confidence * weight
		if conf > 1.0 {
			conf = 1.0
		}
		if conf < 0 {
			conf = 0
		}
		rec.Confidence = round2(conf)
		weighted = append(weighted, rec)
	}

	// Highest confidence first, so the first occurrence per id wins.
	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].Confidence > weighted[j].Confidence
	})

	seen := make(map[string]bool, len(weighted))
	out := make([]models.CategoryRecommendation, 0, limit)
	for _, rec := range weighted {
		if seen[rec.CategoryID] {
			continue
		}
		seen[rec.CategoryID] = true

		if rec.Confidence < s.cfg.Categorization.ConfidenceThreshold {
			continue
		}
		cat, ok := known[rec.CategoryID]
		if !ok {
			s.log.Debugf("Dropping recommendation for unknown category id %q", rec.CategoryID)
			continue
		}
		rec.CategoryName = cat.Name
		rec.IsExisting = true
		out = append(out, rec)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// normalizeContentAnalysis coerces unknown enum values to safe defaults.
func normalizeContentAnalysis(a *models.ContentAnalysis) {
	switch a.TechnicalLevel {
	case models.TechnicalLevelBeginner, models.TechnicalLevelIntermediate, models.TechnicalLevelAdvanced:
	default:
		a.TechnicalLevel = models.TechnicalLevelIntermediate
	}
	switch a.ContentType {
	case models.ContentTypeTutorial, models.ContentTypeReview, models.ContentTypeAnalysis,
		models.ContentTypeGuide, models.ContentTypeNews, models.ContentTypeOther:
	default:
		a.ContentType = models.ContentTypeOther
	}
}

func formatCategoryList(categories []*models.Category) string {
	var sb strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&sb, "%s | %s | %s | %s\n", c.ID, c.Name, c.Slug, c.Description)
	}
	return strings.TrimSpace(sb.String())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
