package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants used with Asynq.
const (
	// TypeAutoTagJob recommends categories for a post and, when AutoApply is
	// set, persists the high-confidence subset.
	TypeAutoTagJob = "autotag:recommend_apply"
)

// QueueAutoTag is the queue auto-tag jobs are routed to.
const QueueAutoTag = "autotag"

// AutoTagPayload is the JSON payload for TypeAutoTagJob tasks.
type AutoTagPayload struct {
	PostID    string `json:"post_id"`
	AutoApply bool   `json:"auto_apply"`
}

// NewAutoTagTask builds an Asynq task for the given post.
func NewAutoTagTask(postID string, autoApply bool) (*asynq.Task, error) {
	payload, err := json.Marshal(AutoTagPayload{PostID: postID, AutoApply: autoApply})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAutoTagJob, payload), nil
}
