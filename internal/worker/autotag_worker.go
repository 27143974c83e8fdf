// Package worker holds the asynq task handlers for background jobs.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"plume/internal/services"
	"plume/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AutoTagDeps carries the dependencies the auto-tag handler needs.
type AutoTagDeps struct {
	AutoTagService *services.AutoTagService
}

// RegisterHandlers attaches all job handlers to the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps AutoTagDeps) {
	mux.HandleFunc(tasks.TypeAutoTagJob, HandleAutoTagJob(deps))
}

// HandleAutoTagJob runs a recommend-and-apply pass for one post. Validation
// and not-found failures are terminal; AI failures are left to asynq's retry
// policy.
func HandleAutoTagJob(deps AutoTagDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.AutoTagPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decoding auto-tag payload: %v: %w", err, asynq.SkipRetry)
		}

		result, err := deps.AutoTagService.RecommendAndApplyTags(ctx, payload.PostID, payload.AutoApply)
		if err != nil {
			var svcErr *services.ServiceError
			if errors.As(err, &svcErr) && !svcErr.Retryable {
				return fmt.Errorf("auto-tag for post %s failed terminally: %v: %w", payload.PostID, err, asynq.SkipRetry)
			}
			return fmt.Errorf("auto-tag for post %s: %w", payload.PostID, err)
		}

		applied := 0
		if result.Applied != nil {
			applied = result.Applied.AddedCategories
		}
		log.WithFields(log.Fields{
			"postId":          payload.PostID,
			"recommendations": len(result.Recommendations),
			"applied":         applied,
		}).Info("Auto-tag job completed")
		return nil
	}
}
