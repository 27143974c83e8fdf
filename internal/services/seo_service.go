package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"plume/internal/aiclient"
	"plume/internal/config"
	"plume/internal/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SeoOptions tune a metadata recommendation.
type SeoOptions struct {
	Language             string `json:"language,omitempty"` // "en" or "ko"
	MaxTitleLength       int    `json:"maxTitleLength,omitempty"`
	MaxDescriptionLength int    `json:"maxDescriptionLength,omitempty"`
	IncludeSchema        bool   `json:"includeSchema,omitempty"`
}

// SeoRecommendRequest is the input to RecommendMetadata.
type SeoRecommendRequest struct {
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	ContentType    string     `json:"contentType"` // "markdown" or "html"
	TargetKeywords []string   `json:"targetKeywords,omitempty"`
	Options        SeoOptions `json:"options,omitempty"`
}

// SeoService generates SEO metadata and scores it with local heuristics.
type SeoService struct {
	ai  *aiclient.Client
	cfg *config.Config
	log *log.Logger
}

func NewSeoService(ai *aiclient.Client, cfg *config.Config, logger *log.Logger) *SeoService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &SeoService{ai: ai, cfg: cfg, log: logger}
}

// seoMetadataReply is the strict decode target for the model's fenced JSON
// reply. Every field is required.
type seoMetadataReply struct {
	MetaTitle            *string  `json:"metaTitle"`
	MetaDescription      *string  `json:"metaDescription"`
	Keywords             []string `json:"keywords"`
	OpenGraphTitle       *string  `json:"openGraphTitle"`
	OpenGraphDescription *string  `json:"openGraphDescription"`
	SuggestedSlug        *string  `json:"suggestedSlug"`
}

// RecommendMetadata asks the model for SEO metadata and attaches locally
// computed per-field confidence scores. The scores never depend on the AI.
func (s *SeoService) RecommendMetadata(ctx context.Context, req SeoRecommendRequest) (*models.SeoRecommendationData, error) {
	if err := s.validateSeoRequest(req); err != nil {
		return nil, err
	}
	opts := s.applyOptionDefaults(req.Options)

	prompt, err := aiclient.RenderPrompt(s.recommendTemplate(), map[string]string{
		"TITLE":                  req.Title,
		"CONTENT":                aiclient.TruncateContent(req.Content, s.cfg.SEO.MaxContentLength),
		"CONTENT_TYPE":           req.ContentType,
		"TARGET_KEYWORDS":        strings.Join(req.TargetKeywords, ", "),
		"LANGUAGE":               opts.Language,
		"MAX_TITLE_LENGTH":       strconv.Itoa(opts.MaxTitleLength),
		"MAX_DESCRIPTION_LENGTH": strconv.Itoa(opts.MaxDescriptionLength),
		"INCLUDE_SCHEMA":         strconv.FormatBool(opts.IncludeSchema),
	})
	if err != nil {
		return nil, s.aiServiceError(err)
	}

	reply, err := s.ai.Generate(ctx, "seo_recommend", uuid.NewString(), prompt)
	if err != nil {
		return nil, s.aiServiceError(err)
	}
	parsed, err := decodeSeoReply(reply)
	if err != nil {
		return nil, s.aiServiceError(err)
	}

	locale := "ko_KR"
	if opts.Language == "en" {
		locale = "en_US"
	}

	data := &models.SeoRecommendationData{
		MetaTitle:       *parsed.MetaTitle,
		MetaDescription: *parsed.MetaDescription,
		Keywords:        parsed.Keywords,
		OpenGraph: models.OpenGraphData{
			Title:       *parsed.OpenGraphTitle,
			Description: *parsed.OpenGraphDescription,
			Type:        "article",
			Locale:      locale,
		},
		SuggestedSlug: *parsed.SuggestedSlug,
	}
	if opts.IncludeSchema {
		data.Schema = blogPostingSchema(data)
	}
	data.Confidence = ScoreSeoFields(data.MetaTitle, data.MetaDescription, data.Keywords, data.SuggestedSlug, req.TargetKeywords)
	return data, nil
}

// QuickRecommend runs RecommendMetadata with English defaults and no target
// keywords.
func (s *SeoService) QuickRecommend(ctx context.Context, title, content, contentType string) (*models.SeoRecommendationData, error) {
	return s.RecommendMetadata(ctx, SeoRecommendRequest{
		Title:       title,
		Content:     content,
		ContentType: contentType,
		Options:     SeoOptions{Language: "en"},
	})
}

// RecommendWithKeywords runs RecommendMetadata targeting the given keywords
// and requesting schema.org data.
func (s *SeoService) RecommendWithKeywords(ctx context.Context, title, content, contentType string, keywords []string) (*models.SeoRecommendationData, error) {
	return s.RecommendMetadata(ctx, SeoRecommendRequest{
		Title:          title,
		Content:        content,
		ContentType:    contentType,
		TargetKeywords: keywords,
		Options:        SeoOptions{Language: "en", IncludeSchema: true},
	})
}

func (s *SeoService) validateSeoRequest(req SeoRecommendRequest) *ServiceError {
	if strings.TrimSpace(req.Content) == "" {
		return &ServiceError{Code: CodeInvalidContent, Message: "content is required"}
	}
	n := len([]rune(req.Content))
	if n < s.cfg.SEO.MinContentLength {
		return &ServiceError{Code: CodeContentTooShort, Message: fmt.Sprintf(
			"content must be at least %d characters, got %d", s.cfg.SEO.MinContentLength, n)}
	}
	if n > s.cfg.SEO.MaxContentLength {
		return &ServiceError{Code: CodeContentTooLong, Message: fmt.Sprintf(
			"content must be at most %d characters, got %d", s.cfg.SEO.MaxContentLength, n)}
	}
	if strings.TrimSpace(req.Title) == "" {
		return &ServiceError{Code: CodeInvalidContent, Message: "title is required"}
	}
	if req.ContentType != "markdown" && req.ContentType != "html" {
		return &ServiceError{Code: CodeInvalidContent, Message: fmt.Sprintf(
			"contentType must be markdown or html, got %q", req.ContentType)}
	}
	return nil
}

func (s *SeoService) applyOptionDefaults(opts SeoOptions) SeoOptions {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.MaxTitleLength <= 0 {
		opts.MaxTitleLength = s.cfg.SEO.MaxTitleLength
	}
	if opts.MaxDescriptionLength <= 0 {
		opts.MaxDescriptionLength = s.cfg.SEO.MaxDescriptionLength
	}
	return opts
}

func (s *SeoService) recommendTemplate() string {
	if s.cfg.SEO.RecommendPrompt != "" {
		return s.cfg.SEO.RecommendPrompt
	}
	return aiclient.DefaultSeoRecommendPrompt
}

// aiServiceError classifies an AI failure; only transient transport errors
// are marked retryable.
func (s *SeoService) aiServiceError(err error) *ServiceError {
	s.log.Errorf("SEO recommendation failed: %v", err)
	return &ServiceError{
		Code:      CodeAIServiceError,
		Message:   err.Error(),
		Retryable: aiclient.IsTransientError(err),
	}
}

func decodeSeoReply(reply string) (*seoMetadataReply, error) {
	block, err := aiclient.ExtractJSONBlock(reply)
	if err != nil {
		return nil, err
	}
	var parsed seoMetadataReply
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, fmt.Errorf("decoding seo reply: %w", err)
	}

	missing := func(name string) error { return fmt.Errorf("seo reply is missing required field %q", name) }
	switch {
	case parsed.MetaTitle == nil:
		return nil, missing("metaTitle")
	case parsed.MetaDescription == nil:
		return nil, missing("metaDescription")
	case parsed.Keywords == nil:
		return nil, missing("keywords")
	case parsed.OpenGraphTitle == nil:
		return nil, missing("openGraphTitle")
	case parsed.OpenGraphDescription == nil:
		return nil, missing("openGraphDescription")
	case parsed.SuggestedSlug == nil:
		return nil, missing("suggestedSlug")
	}
	return &parsed, nil
}

func blogPostingSchema(data *models.SeoRecommendationData) map[string]interface{} {
	return map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    data.MetaTitle,
		"description": data.MetaDescription,
		"keywords":    strings.Join(data.Keywords, ", "),
		"url":         "/" + data.SuggestedSlug,
	}
}

// Heuristic confidence scoring. Each field starts at 70 and is adjusted by
// fixed bonuses and penalties, clamped to [0,100]. The overall score is the
// plain mean of the four fields.

var (
	slugPatternRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

	// Action-oriented phrases that make a meta description click-worthy.
	actionPhrases = []string{
		"learn", "discover", "explore", "find out", "get started", "how to",
		"guide", "step by step",
		"알아보", "배워보", "살펴보", "시작하", "소개합니다", "정리했",
	}
)

const seoBaseScore = 70.0

// ScoreSeoFields computes the local confidence scores for generated SEO
// metadata against the caller's target keywords.
func ScoreSeoFields(metaTitle, metaDescription string, keywords []string, slug string, targetKeywords []string) models.SeoConfidence {
	conf := models.SeoConfidence{
		Title:       scoreTitle(metaTitle, targetKeywords),
		Description: scoreDescription(metaDescription, targetKeywords),
		Keywords:    scoreKeywords(keywords, targetKeywords),
		Slug:        scoreSlug(slug),
	}
	conf.Overall = round2((conf.Title + conf.Description + conf.Keywords + conf.Slug) / 4)
	return conf
}

func scoreTitle(title string, targetKeywords []string) float64 {
	score := seoBaseScore
	switch n := len([]rune(title)); {
	case n >= 30 && n <= 60:
		score += 15
	case n < 30:
		score -= 10
	default:
		score -= 5
	}
	lower := strings.ToLower(title)
	for _, kw := range targetKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			score += 10
			break
		}
	}
	if strings.ContainsAny(title, "!?:|") {
		score += 5
	}
	return clampScore(score)
}

func scoreDescription(desc string, targetKeywords []string) float64 {
	score := seoBaseScore
	switch n := len([]rune(desc)); {
	case n >= 120 && n <= 160:
		score += 15
	case n < 120:
		score -= 10
	default:
		score -= 5
	}
	lower := strings.ToLower(desc)
	keywordBonus := 0.0
	for _, kw := range targetKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			keywordBonus += 3
		}
	}
	if keywordBonus > 10 {
		keywordBonus = 10
	}
	score += keywordBonus
	for _, phrase := range actionPhrases {
		if strings.Contains(lower, phrase) {
			score += 5
			break
		}
	}
	return clampScore(score)
}

func scoreKeywords(keywords, targetKeywords []string) float64 {
	score := seoBaseScore
	if n := len(keywords); n >= 3 && n <= 8 {
		score += 15
	} else {
		score -= 10
	}
	overlapBonus := 0.0
	for _, kw := range keywords {
		for _, target := range targetKeywords {
			if keywordOverlap(kw, target) {
				overlapBonus += 5
				break
			}
		}
	}
	if overlapBonus > 15 {
		overlapBonus = 15
	}
	return clampScore(score + overlapBonus)
}

// keywordOverlap matches case-insensitively in either substring direction.
func keywordOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func scoreSlug(slug string) float64 {
	score := seoBaseScore
	switch n := len(slug); {
	case n >= 20 && n <= 50:
		score += 15
	case n < 20:
		score -= 5
	default:
		score -= 10
	}
	if slugPatternRegex.MatchString(slug) {
		score += 10
	} else {
		score -= 20
	}
	if hyphens := strings.Count(slug, "-"); hyphens >= 2 && hyphens <= 5 {
		score += 5
	}
	return clampScore(score)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
