package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
	} `mapstructure:"database"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	AI struct {
		Provider     string `mapstructure:"provider"` // "openai" or "gemini"
		Model        string `mapstructure:"model"`
		OpenaiApiKey string `mapstructure:"openai_api_key"`
		GoogleApiKey string `mapstructure:"google_api_key"`

		// RetryAttempts, TimeoutMs and CacheTTL are declared for parity with
		// the platform's config surface but no retry or cache loop consumes
		// them in this core. See DESIGN.md.
		RetryAttempts int `mapstructure:"retry_attempts"`
		TimeoutMs     int `mapstructure:"timeout_ms"`
		CacheTTL      int `mapstructure:"cache_ttl"`
	} `mapstructure:"ai"`

	Categorization struct {
		ConfidenceThreshold float64            `mapstructure:"confidence_threshold"`
		AutoApplyThreshold  float64            `mapstructure:"auto_apply_threshold"`
		MaxSuggestions      int                `mapstructure:"max_suggestions"`
		MaxContentLength    int                `mapstructure:"max_content_length"`
		DomainWeights       map[string]float64 `mapstructure:"domain_weights"` // keyed by category slug
		// PromptTemplate is a path to a template override file. LoadConfig
		// replaces it with the file's contents.
		PromptTemplate string `mapstructure:"prompt_template"`
	} `mapstructure:"categorization"`

	SEO struct {
		MinContentLength     int    `mapstructure:"min_content_length"`
		MaxContentLength     int    `mapstructure:"max_content_length"`
		MaxTitleLength       int    `mapstructure:"max_title_length"`
		MaxDescriptionLength int    `mapstructure:"max_description_length"`
		// RecommendPrompt and QualityPrompt are paths to template override
		// files, resolved by LoadConfig like PromptTemplate.
		RecommendPrompt string `mapstructure:"recommend_prompt"`
		QualityPrompt   string `mapstructure:"quality_prompt"`
	} `mapstructure:"seo"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/plume")

	viper.AutomaticEnv()
	viper.BindEnv("ai.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("ai.google_api_key", "GEMINI_API_KEY")
	viper.BindEnv("database.primary.dsn", "PLUME_DATABASE_DSN")
	viper.BindEnv("redis.address", "PLUME_REDIS_ADDR")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	if err := resolvePromptTemplates(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePromptTemplates replaces configured prompt file paths with their
// contents. An empty result means no override exists and the compiled-in
// default template applies.
func resolvePromptTemplates(cfg *Config) error {
	var err error
	if cfg.Categorization.PromptTemplate, err = LoadPromptContent(cfg.Categorization.PromptTemplate, "classification.txt", ""); err != nil {
		return fmt.Errorf("loading classification prompt: %w", err)
	}
	if cfg.SEO.RecommendPrompt, err = LoadPromptContent(cfg.SEO.RecommendPrompt, "seo_recommend.txt", ""); err != nil {
		return fmt.Errorf("loading seo recommend prompt: %w", err)
	}
	if cfg.SEO.QualityPrompt, err = LoadPromptContent(cfg.SEO.QualityPrompt, "seo_quality.txt", ""); err != nil {
		return fmt.Errorf("loading seo quality prompt: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.retry_attempts", 3)
	viper.SetDefault("ai.timeout_ms", 30000)
	viper.SetDefault("ai.cache_ttl", 300)

	viper.SetDefault("categorization.confidence_threshold", 0.7)
	viper.SetDefault("categorization.auto_apply_threshold", 0.8)
	viper.SetDefault("categorization.max_suggestions", 3)
	viper.SetDefault("categorization.max_content_length", 10000)

	viper.SetDefault("seo.min_content_length", 100)
	viper.SetDefault("seo.max_content_length", 15000)
	viper.SetDefault("seo.max_title_length", 60)
	viper.SetDefault("seo.max_description_length", 160)

	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"default": 5, "autotag": 3})
}
