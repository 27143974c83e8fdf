package aiclient

// Compiled-in default prompt templates. Each can be overridden by a file in
// ~/.config/plume/prompts/ (see config.LoadPromptContent).

// DefaultClassificationPrompt asks the model to classify a post against the
// blog's existing categories and analyze its content.
const DefaultClassificationPrompt = `You are the content classifier for a personal tech blog.

Classify the following {{CONTENT_TYPE}} post against the available categories
and analyze its content.

Title: {{TITLE}}

Content:
{{CONTENT}}

Available categories (id | name | slug | description):
{{CATEGORIES}}

Suggest at most {{MAX_SUGGESTIONS}} categories. Use only category ids from the
list above. For each suggestion give a confidence between 0 and 1, a short
reasoning, and the key topics that support it.

Reply with a single fenced JSON block in exactly this shape:

` + "```json" + `
{
  "recommendations": [
    {
      "categoryId": "...",
      "categoryName": "...",
      "confidence": 0.0,
      "reasoning": "...",
      "keyTopics": ["..."],
      "isExisting": true
    }
  ],
  "contentAnalysis": {
    "primaryTopic": "...",
    "secondaryTopics": ["..."],
    "technicalLevel": "beginner|intermediate|advanced",
    "contentType": "tutorial|review|analysis|guide|news|other",
    "keyTopics": ["..."],
    "technicalTerms": ["..."],
    "frameworksAndTools": ["..."]
  }
}
` + "```"

// DefaultSeoRecommendPrompt asks the model to produce SEO metadata for a post.
const DefaultSeoRecommendPrompt = `You are an SEO assistant for a personal tech blog.

Generate SEO metadata for the following {{CONTENT_TYPE}} post.

Title: {{TITLE}}

Content:
{{CONTENT}}

Target keywords: {{TARGET_KEYWORDS}}
Language: {{LANGUAGE}}
Meta title must be at most {{MAX_TITLE_LENGTH}} characters.
Meta description must be at most {{MAX_DESCRIPTION_LENGTH}} characters.
Include schema.org data: {{INCLUDE_SCHEMA}}

Reply with a single fenced JSON block in exactly this shape:

` + "```json" + `
{
  "metaTitle": "...",
  "metaDescription": "...",
  "keywords": ["..."],
  "openGraphTitle": "...",
  "openGraphDescription": "...",
  "suggestedSlug": "lowercase-hyphenated-slug"
}
` + "```"

// DefaultSeoQualityPrompt asks the model to score already-generated SEO
// metadata qualitatively. Validation tolerates this call failing.
const DefaultSeoQualityPrompt = `You are reviewing SEO quality for a blog post.

Content:
{{CONTENT}}

Meta title: {{META_TITLE}}
Meta description: {{META_DESCRIPTION}}
Keywords: {{KEYWORDS}}

Score the post from 0 to 100 on readability, keyword relevance and document
structure, and suggest up to three concrete improvements.

Reply with a single fenced JSON block in exactly this shape:

` + "```json" + `
{
  "readabilityScore": 0,
  "keywordRelevance": 0,
  "structureScore": 0,
  "suggestions": ["..."]
}
` + "```"
