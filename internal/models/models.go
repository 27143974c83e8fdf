package models

import (
	"time"
)

// Category represents a blog category. Categories are owned by the category
// store; this core only reads them.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Post is the read-only view of a blog post this core consumes.
type Post struct {
	ID      string `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`
	Status  string `db:"status" json:"status"`
}

// PostCategory associates a post with a category. Rows are created and
// deleted only by the auto-tag service, inside a single transaction per
// call. Unique per (PostID, CategoryID).
type PostCategory struct {
	PostID        string    `db:"post_id" json:"postId"`
	CategoryID    string    `db:"category_id" json:"categoryId"`
	CategoryName  string    `db:"category_name" json:"categoryName,omitempty"`
	Confidence    float64   `db:"confidence" json:"confidence"`
	IsAISuggested bool      `db:"is_ai_suggested" json:"isAiSuggested"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// PostCategoryStats aggregates a post's category associations.
type PostCategoryStats struct {
	Total             int     `json:"total"`
	AISuggested       int     `json:"aiSuggested"`
	Manual            int     `json:"manual"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// CategoryRecommendation is a transient classification result. It is never
// persisted directly; the auto-tag service converts accepted recommendations
// into PostCategory rows.
type CategoryRecommendation struct {
	CategoryID   string   `json:"categoryId"`
	CategoryName string   `json:"categoryName"`
	Confidence   float64  `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
	KeyTopics    []string `json:"keyTopics"`
	IsExisting   bool     `json:"isExisting"`
}

// Technical level and content type enums for ContentAnalysis. Unknown values
// coming back from the model are coerced to the defaults.
const (
	TechnicalLevelBeginner     = "beginner"
	TechnicalLevelIntermediate = "intermediate"
	TechnicalLevelAdvanced     = "advanced"

	ContentTypeTutorial = "tutorial"
	ContentTypeReview   = "review"
	ContentTypeAnalysis = "analysis"
	ContentTypeGuide    = "guide"
	ContentTypeNews     = "news"
	ContentTypeOther    = "other"
)

// ContentAnalysis summarizes what the model understood about a post.
type ContentAnalysis struct {
	PrimaryTopic       string   `json:"primaryTopic"`
	SecondaryTopics    []string `json:"secondaryTopics"`
	TechnicalLevel     string   `json:"technicalLevel"`
	ContentType        string   `json:"contentType"`
	KeyTopics          []string `json:"keyTopics"`
	TechnicalTerms     []string `json:"technicalTerms"`
	FrameworksAndTools []string `json:"frameworksAndTools"`
}

// OpenGraphData is the og:* subset the SEO recommender fills in.
type OpenGraphData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Locale      string `json:"locale"`
}

// SeoConfidence holds the locally computed per-field confidence scores,
// each in [0,100].
type SeoConfidence struct {
	Overall     float64 `json:"overall"`
	Title       float64 `json:"title"`
	Description float64 `json:"description"`
	Keywords    float64 `json:"keywords"`
	Slug        float64 `json:"slug"`
}

// SeoRecommendationData is the transient SEO metadata recommendation.
type SeoRecommendationData struct {
	MetaTitle       string                 `json:"metaTitle"`
	MetaDescription string                 `json:"metaDescription"`
	Keywords        []string               `json:"keywords"`
	OpenGraph       OpenGraphData          `json:"openGraph"`
	SuggestedSlug   string                 `json:"suggestedSlug"`
	Schema          map[string]interface{} `json:"schema,omitempty"`
	Confidence      SeoConfidence          `json:"confidence"`
}

// SEOValidationMetrics holds the rubric scores, each in [0,100].
type SEOValidationMetrics struct {
	ContentScore     float64 `json:"contentScore"`
	TechnicalScore   float64 `json:"technicalScore"`
	MetadataScore    float64 `json:"metadataScore"`
	PerformanceScore float64 `json:"performanceScore"`
}

// SEOValidationResult is the combined structural + AI-qualitative verdict.
type SEOValidationResult struct {
	OverallScore int                  `json:"overallScore"`
	Passed       bool                 `json:"passed"`
	Metrics      SEOValidationMetrics `json:"metrics"`
	Suggestions  []string             `json:"suggestions"`
	ValidatedAt  time.Time            `json:"validatedAt"`
}

// ProcessingMetrics records per-request observability data.
type ProcessingMetrics struct {
	RequestID     string    `json:"requestId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	ContentLength int       `json:"contentLength"`
	ModelUsed     string    `json:"modelUsed"`
	Success       bool      `json:"success"`
}

// AIUsageLog is a persisted record of a single model invocation.
type AIUsageLog struct {
	ID            int64     `db:"id"`
	Timestamp     time.Time `db:"timestamp"`
	RequestID     string    `db:"request_id"`
	ProviderName  string    `db:"provider_name"`
	Operation     string    `db:"operation"` // e.g. "category_recommend", "seo_recommend", "seo_quality"
	ModelName     string    `db:"model_name"`
	ContentLength int       `db:"content_length"`
	DurationMs    int64     `db:"duration_ms"`
	Success       bool      `db:"success"`
}
