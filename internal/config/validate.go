package config

import (
	"fmt"
)

// Validate checks ranges on the loaded configuration. It only validates;
// unconsumed fields (retry_attempts, timeout_ms, cache_ttl) are still
// range-checked so a bad config fails fast at startup.
func Validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("ai.provider must be \"openai\" or \"gemini\", got %q", cfg.AI.Provider)
	}
	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model must not be empty")
	}
	if cfg.AI.RetryAttempts < 0 {
		return fmt.Errorf("ai.retry_attempts must be >= 0, got %d", cfg.AI.RetryAttempts)
	}
	if cfg.AI.TimeoutMs < 0 {
		return fmt.Errorf("ai.timeout_ms must be >= 0, got %d", cfg.AI.TimeoutMs)
	}
	if cfg.AI.CacheTTL < 0 {
		return fmt.Errorf("ai.cache_ttl must be >= 0, got %d", cfg.AI.CacheTTL)
	}

	if t := cfg.Categorization.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("categorization.confidence_threshold must be in [0,1], got %v", t)
	}
	if t := cfg.Categorization.AutoApplyThreshold; t < 0 || t > 1 {
		return fmt.Errorf("categorization.auto_apply_threshold must be in [0,1], got %v", t)
	}
	if n := cfg.Categorization.MaxSuggestions; n < 1 || n > 3 {
		return fmt.Errorf("categorization.max_suggestions must be in [1,3], got %d", n)
	}
	if cfg.Categorization.MaxContentLength < 50 {
		return fmt.Errorf("categorization.max_content_length must be >= 50, got %d", cfg.Categorization.MaxContentLength)
	}
	for slug, w := range cfg.Categorization.DomainWeights {
		if w <= 0 {
			return fmt.Errorf("categorization.domain_weights[%q] must be > 0, got %v", slug, w)
		}
	}

	if cfg.SEO.MinContentLength < 1 {
		return fmt.Errorf("seo.min_content_length must be >= 1, got %d", cfg.SEO.MinContentLength)
	}
	if cfg.SEO.MaxContentLength <= cfg.SEO.MinContentLength {
		return fmt.Errorf("seo.max_content_length (%d) must exceed seo.min_content_length (%d)",
			cfg.SEO.MaxContentLength, cfg.SEO.MinContentLength)
	}
	if cfg.SEO.MaxTitleLength < 10 {
		return fmt.Errorf("seo.max_title_length must be >= 10, got %d", cfg.SEO.MaxTitleLength)
	}
	if cfg.SEO.MaxDescriptionLength < 50 {
		return fmt.Errorf("seo.max_description_length must be >= 50, got %d", cfg.SEO.MaxDescriptionLength)
	}

	if cfg.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be >= 1, got %d", cfg.Worker.Concurrency)
	}
	return nil
}
