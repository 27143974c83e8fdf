// Package aiclient builds structured prompts, invokes the generative text
// collaborator and extracts machine-readable JSON from its free-text replies.
package aiclient

import (
	"context"
	"time"

	"plume/internal/models"
	"plume/internal/store"

	log "github.com/sirupsen/logrus"
)

// TextGenerator is the single contract the generative collaborator has to
// satisfy: free text in, free text out. Structure is communicated purely via
// prompt instructions.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
	ModelName() string
}

// Client wraps a TextGenerator with usage accounting. One Generate call maps
// to exactly one provider invocation; there is no internal retry loop.
type Client struct {
	gen   TextGenerator
	usage store.UsageStore // optional
	log   *log.Logger
}

func NewClient(gen TextGenerator, usage store.UsageStore, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{gen: gen, usage: usage, log: logger}
}

// ModelName reports the underlying model identifier for metrics.
func (c *Client) ModelName() string {
	return c.gen.ModelName()
}

// Generate issues one call to the generative collaborator and records a
// usage log row. A failed usage write never fails the generation.
func (c *Client) Generate(ctx context.Context, operation, requestID, prompt string) (string, error) {
	start := time.Now()
	reply, err := c.gen.GenerateText(ctx, prompt)
	duration := time.Since(start)

	if c.usage != nil {
		entry := &models.AIUsageLog{
			Timestamp:     start,
			RequestID:     requestID,
			ProviderName:  c.gen.Name(),
			Operation:     operation,
			ModelName:     c.gen.ModelName(),
			ContentLength: len(prompt),
			DurationMs:    duration.Milliseconds(),
			Success:       err == nil,
		}
		if recErr := c.usage.RecordUsage(ctx, entry); recErr != nil {
			c.log.Errorf("Failed to record AI usage for %s: %v", operation, recErr)
		}
	}

	if err != nil {
		return "", err
	}
	c.log.Debugf("AI call %s completed (provider=%s model=%s duration=%s)",
		operation, c.gen.Name(), c.gen.ModelName(), duration)
	return reply, nil
}
