package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"plume/internal/aiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeoService(gen *fakeGenerator) *SeoService {
	return NewSeoService(aiclient.NewClient(gen, nil, nil), testConfig(), nil)
}

var seoTestContent = strings.Repeat("Good SEO requires structure, clarity and relevant keywords. ", 4)

const seoReply = "```json\n" + `{
  "metaTitle": "Understanding React Hooks: A Practical Guide",
  "metaDescription": "Learn how React Hooks simplify state management in function components, with practical examples covering useState, useEffect and custom hooks.",
  "keywords": ["react", "hooks", "state management", "useEffect"],
  "openGraphTitle": "Understanding React Hooks",
  "openGraphDescription": "A practical guide to React Hooks.",
  "suggestedSlug": "understanding-react-hooks-guide"
}` + "\n```"

func TestRecommendMetadataValidation(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  SeoRecommendRequest
		code string
	}{
		{"empty content", SeoRecommendRequest{Title: "t", ContentType: "markdown"}, CodeInvalidContent},
		{"content too short", SeoRecommendRequest{Title: "t", Content: "tiny", ContentType: "markdown"}, CodeContentTooShort},
		{"content too long", SeoRecommendRequest{Title: "t", Content: strings.Repeat("a", 15001), ContentType: "markdown"}, CodeContentTooLong},
		{"empty title", SeoRecommendRequest{Content: seoTestContent, ContentType: "markdown"}, CodeInvalidContent},
		{"bad content type", SeoRecommendRequest{Title: "t", Content: seoTestContent, ContentType: "docx"}, CodeInvalidContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecommendMetadata(ctx, tc.req)
			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tc.code, svcErr.Code)
			assert.False(t, svcErr.Retryable)
		})
	}
}

func TestRecommendMetadata(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{reply: seoReply})

	data, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title:          "Understanding React Hooks",
		Content:        seoTestContent,
		ContentType:    "markdown",
		TargetKeywords: []string{"react", "hooks"},
		Options:        SeoOptions{Language: "en"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Understanding React Hooks: A Practical Guide", data.MetaTitle)
	assert.Equal(t, "understanding-react-hooks-guide", data.SuggestedSlug)
	assert.Equal(t, "article", data.OpenGraph.Type)
	assert.Equal(t, "en_US", data.OpenGraph.Locale)
	assert.Nil(t, data.Schema)

	for _, score := range []float64{
		data.Confidence.Overall, data.Confidence.Title,
		data.Confidence.Description, data.Confidence.Keywords, data.Confidence.Slug,
	} {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestRecommendMetadataKoreanLocale(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{reply: seoReply})

	data, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title: "t", Content: seoTestContent, ContentType: "markdown",
		Options: SeoOptions{Language: "ko"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ko_KR", data.OpenGraph.Locale)
}

func TestRecommendMetadataSchema(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{reply: seoReply})

	data, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title: "t", Content: seoTestContent, ContentType: "markdown",
		Options: SeoOptions{IncludeSchema: true},
	})
	require.NoError(t, err)
	require.NotNil(t, data.Schema)
	assert.Equal(t, "BlogPosting", data.Schema["@type"])
	assert.Equal(t, data.MetaTitle, data.Schema["headline"])
}

func TestRecommendMetadataMissingField(t *testing.T) {
	// Reply lacks suggestedSlug.
	reply := "```json\n" + `{"metaTitle": "t", "metaDescription": "d", "keywords": [], "openGraphTitle": "t", "openGraphDescription": "d"}` + "\n```"
	svc := newTestSeoService(&fakeGenerator{reply: reply})

	_, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title: "t", Content: seoTestContent, ContentType: "markdown",
	})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeAIServiceError, svcErr.Code)
	assert.False(t, svcErr.Retryable)
	assert.Contains(t, svcErr.Message, "suggestedSlug")
}

func TestRecommendMetadataTransientErrorIsRetryable(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{err: errors.New("request timeout")})

	_, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title: "t", Content: seoTestContent, ContentType: "markdown",
	})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, CodeAIServiceError, svcErr.Code)
	assert.True(t, svcErr.Retryable)
}

func TestRecommendMetadataPermanentErrorIsNotRetryable(t *testing.T) {
	svc := newTestSeoService(&fakeGenerator{err: errors.New("invalid api key")})

	_, err := svc.RecommendMetadata(context.Background(), SeoRecommendRequest{
		Title: "t", Content: seoTestContent, ContentType: "markdown",
	})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.False(t, svcErr.Retryable)
}

func TestScoreSeoFields(t *testing.T) {
	t.Run("ideal metadata scores high on every field", func(t *testing.T) {
		conf := ScoreSeoFields(
			"Understanding React Hooks: A Practical Guide", // 44 chars, keyword, colon
			strings.Repeat("Learn react hooks step by step. ", 4)+"Read on now.", // ~140 chars, keywords, action phrase
			[]string{"react", "hooks", "state", "guide"},
			"understanding-react-hooks-guide", // 31 chars, 3 hyphens, valid pattern
			[]string{"react", "hooks"},
		)
		assert.Equal(t, 100.0, conf.Title)
		assert.Equal(t, 96.0, conf.Description)
		assert.Equal(t, 95.0, conf.Keywords)
		assert.Equal(t, 100.0, conf.Slug)
		assert.Equal(t, 97.75, conf.Overall)
	})

	t.Run("overall is the mean of the four fields", func(t *testing.T) {
		conf := ScoreSeoFields("short", "short", nil, "bad slug!", nil)
		mean := (conf.Title + conf.Description + conf.Keywords + conf.Slug) / 4
		assert.InDelta(t, mean, conf.Overall, 0.01)
	})

	t.Run("scores are clamped to [0,100]", func(t *testing.T) {
		conf := ScoreSeoFields("", "", nil, "", nil)
		for _, score := range []float64{conf.Title, conf.Description, conf.Keywords, conf.Slug} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	})
}

func TestScoreSlug(t *testing.T) {
	// 20-50 chars, valid pattern, 2-5 hyphens: 70+15+10+5.
	assert.Equal(t, 100.0, scoreSlug("a-very-good-slug-here-indeed"))
	// Invalid characters: 70+15-20 (length in range, no hyphen bonus with 2 spaces).
	assert.Equal(t, 65.0, scoreSlug("Bad Slug With Spaces!"))
	// Too short: 70-5+10.
	assert.Equal(t, 75.0, scoreSlug("short"))
}
