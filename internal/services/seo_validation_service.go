package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"plume/internal/aiclient"
	"plume/internal/config"
	"plume/internal/models"
	"plume/internal/textmeta"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SeoMetadataInput is the already-generated metadata being validated. When
// absent, validation derives title, description and keywords from the
// content itself.
type SeoMetadataInput struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
}

// SeoValidateRequest is the input to ValidateSEO.
type SeoValidateRequest struct {
	Content  string            `json:"content"`
	Metadata *SeoMetadataInput `json:"metadata,omitempty"`
}

// QualitativeAnalysis is the AI's contribution to a validation verdict.
type QualitativeAnalysis struct {
	ReadabilityScore float64  `json:"readabilityScore"`
	KeywordRelevance float64  `json:"keywordRelevance"`
	StructureScore   float64  `json:"structureScore"`
	Suggestions      []string `json:"suggestions"`
}

// Fallback qualitative analysis used when the AI sub-call fails. Validation
// degrades to these fixed values instead of failing outright.
func fallbackQualitativeAnalysis() QualitativeAnalysis {
	return QualitativeAnalysis{
		ReadabilityScore: 70,
		KeywordRelevance: 70,
		StructureScore:   70,
		Suggestions: []string{
			"Break up long paragraphs and prefer short, direct sentences.",
			"Work the primary keyword naturally into the opening paragraph.",
		},
	}
}

// SeoValidationService combines deterministic structural metrics with an
// AI-qualitative analysis into a single verdict.
type SeoValidationService struct {
	ai  *aiclient.Client
	cfg *config.Config
	log *log.Logger
}

func NewSeoValidationService(ai *aiclient.Client, cfg *config.Config, logger *log.Logger) *SeoValidationService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &SeoValidationService{ai: ai, cfg: cfg, log: logger}
}

const (
	validationPassScore      = 80
	maxValidationSuggestions = 5
)

// ValidateSEO validates a post's content and metadata. The AI sub-call is
// partial-failure tolerant: if it fails, fixed fallback scores are used and
// validation still completes.
func (s *SeoValidationService) ValidateSEO(ctx context.Context, req SeoValidateRequest) (*models.SEOValidationResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ServiceError{Code: CodeInvalidContent, Message: "content is required"}
	}

	meta := req.Metadata
	if meta == nil {
		meta = &SeoMetadataInput{
			MetaTitle:       textmeta.ExtractTitle(req.Content),
			MetaDescription: textmeta.ExtractDescription(req.Content),
			Keywords:        textmeta.ExtractKeywords(req.Content, ""),
		}
	}

	metrics := s.structuralMetrics(req.Content, meta)
	qual := s.qualitativeAnalysis(ctx, req.Content, meta)

	overall := int(math.Round(
		0.25*metrics.ContentScore +
			0.20*metrics.TechnicalScore +
			0.20*metrics.MetadataScore +
			0.15*qual.ReadabilityScore +
			0.10*qual.KeywordRelevance +
			0.10*qual.StructureScore))

	return &models.SEOValidationResult{
		OverallScore: overall,
		Passed:       overall >= validationPassScore,
		Metrics:      metrics,
		Suggestions:  buildSuggestions(metrics, qual),
		ValidatedAt:  time.Now(),
	}, nil
}

// structuralMetrics folds heading, image, link and metadata shape into three
// rubric scores, each capped at 100. PerformanceScore is informational only
// and excluded from the overall score.
func (s *SeoValidationService) structuralMetrics(content string, meta *SeoMetadataInput) models.SEOValidationMetrics {
	headings := textmeta.ExtractHeadings(content)
	images := textmeta.ExtractImages(content)
	links := textmeta.ExtractLinks(content)
	textLength := len([]rune(textmeta.ExtractTextContent(content)))

	h1, h2, h3 := 0, 0, 0
	for _, h := range headings {
		switch h.Level {
		case 1:
			h1++
		case 2:
			h2++
		case 3:
			h3++
		}
	}

	contentScore := 20.0
	contentScore += lengthTierScore(textLength)
	if h1 == 1 {
		contentScore += 25
	}
	if h2 >= 2 && h3 >= 1 {
		contentScore += 25
	}

	// A post without images has nothing missing alt text.
	technicalScore := 30.0
	altOK := len(images) == 0
	for _, img := range images {
		if strings.TrimSpace(img.Alt) != "" {
			altOK = true
			break
		}
	}
	if altOK {
		technicalScore += 40
	}
	if len(links.Internal) >= 2 {
		technicalScore += 30
	}

	metadataScore := 0.0
	if n := len([]rune(meta.MetaTitle)); n >= 10 && n <= 60 {
		metadataScore += 40
	}
	if n := len([]rune(meta.MetaDescription)); n >= 120 && n <= 160 {
		metadataScore += 40
	}
	if len(meta.Keywords) > 0 {
		metadataScore += 20
	}

	return models.SEOValidationMetrics{
		ContentScore:     clampScore(contentScore),
		TechnicalScore:   clampScore(technicalScore),
		MetadataScore:    clampScore(metadataScore),
		PerformanceScore: performanceScore(textLength, len(images)),
	}
}

// lengthTierScore awards up to 30 points for body text length.
func lengthTierScore(textLength int) float64 {
	switch {
	case textLength >= 1500:
		return 30
	case textLength >= 800:
		return 20
	case textLength >= 300:
		return 10
	default:
		return 0
	}
}

// performanceScore penalizes very long documents and heavy image use.
func performanceScore(textLength, imageCount int) float64 {
	score := 100.0
	if textLength > 10000 {
		score -= 20
	}
	if imageCount > 10 {
		score -= 20
	} else if imageCount > 5 {
		score -= 10
	}
	return clampScore(score)
}

// qualitativeAnalysis runs the AI quality prompt, degrading to fixed
// defaults on any call or parse failure.
func (s *SeoValidationService) qualitativeAnalysis(ctx context.Context, content string, meta *SeoMetadataInput) QualitativeAnalysis {
	prompt, err := aiclient.RenderPrompt(s.qualityTemplate(), map[string]string{
		"CONTENT":          aiclient.TruncateContent(content, s.cfg.SEO.MaxContentLength),
		"META_TITLE":       meta.MetaTitle,
		"META_DESCRIPTION": meta.MetaDescription,
		"KEYWORDS":         strings.Join(meta.Keywords, ", "),
	})
	if err != nil {
		s.log.Warnf("SEO quality prompt failed, using fallback scores: %v", err)
		return fallbackQualitativeAnalysis()
	}

	reply, err := s.ai.Generate(ctx, "seo_quality", uuid.NewString(), prompt)
	if err != nil {
		s.log.Warnf("SEO quality call failed, using fallback scores: %v", err)
		return fallbackQualitativeAnalysis()
	}
	block, err := aiclient.ExtractJSONBlock(reply)
	if err != nil {
		s.log.Warnf("SEO quality reply had no JSON block, using fallback scores: %v", err)
		return fallbackQualitativeAnalysis()
	}
	var qual QualitativeAnalysis
	if err := json.Unmarshal([]byte(block), &qual); err != nil {
		s.log.Warnf("SEO quality reply did not decode, using fallback scores: %v", err)
		return fallbackQualitativeAnalysis()
	}

	qual.ReadabilityScore = clampScore(qual.ReadabilityScore)
	qual.KeywordRelevance = clampScore(qual.KeywordRelevance)
	qual.StructureScore = clampScore(qual.StructureScore)
	return qual
}

func (s *SeoValidationService) qualityTemplate() string {
	if s.cfg.SEO.QualityPrompt != "" {
		return s.cfg.SEO.QualityPrompt
	}
	return aiclient.DefaultSeoQualityPrompt
}

// buildSuggestions merges AI suggestions with one rule-based addition per
// rubric scoring below 80, capped at five total.
func buildSuggestions(metrics models.SEOValidationMetrics, qual QualitativeAnalysis) []string {
	suggestions := append([]string{}, qual.Suggestions...)
	if metrics.ContentScore < 80 {
		suggestions = append(suggestions, "Expand the content and structure it with one H1 plus supporting H2/H3 headings.")
	}
	if metrics.TechnicalScore < 80 {
		suggestions = append(suggestions, "Add alt text to images and link to at least two related posts.")
	}
	if metrics.MetadataScore < 80 {
		suggestions = append(suggestions, "Tune the meta title to 10-60 characters and the description to 120-160 characters.")
	}
	if len(suggestions) > maxValidationSuggestions {
		suggestions = suggestions[:maxValidationSuggestions]
	}
	return suggestions
}
