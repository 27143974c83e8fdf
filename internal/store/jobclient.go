package store

import (
	"context"
	"fmt"

	"plume/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// JobClient enqueues background tasks.
type JobClient interface {
	EnqueueAutoTagJob(ctx context.Context, postID string, autoApply bool) (taskID string, err error)
	Close() error
}

// AsynqJobClient is the Redis-backed JobClient.
type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(redisAddr, redisPassword string, redisDB int) (*AsynqJobClient, error) {
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &AsynqJobClient{client: cli}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

func (jc *AsynqJobClient) EnqueueAutoTagJob(ctx context.Context, postID string, autoApply bool) (string, error) {
	if jc.client == nil {
		return "", fmt.Errorf("asynq client is not initialized")
	}
	task, err := tasks.NewAutoTagTask(postID, autoApply)
	if err != nil {
		return "", fmt.Errorf("build auto-tag task for post %s: %w", postID, err)
	}
	info, err := jc.client.EnqueueContext(ctx, task, asynq.Queue(tasks.QueueAutoTag))
	if err != nil {
		return "", fmt.Errorf("enqueue auto-tag job for post %s: %w", postID, err)
	}
	log.Debugf("Enqueued auto-tag task %s for post %s (queue=%s)", info.ID, postID, info.Queue)
	return info.ID, nil
}

var _ JobClient = (*AsynqJobClient)(nil)
