package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"plume/internal/app"
	"plume/internal/worker"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background job worker",
	Long:  `Starts the Asynq worker process that handles queued auto-tag jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get application context: %w", err)
		}
		if err := runWorker(appInstance); err != nil {
			log.Errorf("Worker exited with error: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

// runWorker initializes and runs the Asynq worker server.
func runWorker(appInstance *app.App) error {
	cfg := appInstance.Config

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues:      cfg.Worker.Queues,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Errorf("Asynq task failed: type=%s payload=%s err=%v",
					task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, worker.AutoTagDeps{
		AutoTagService: appInstance.AutoTagService,
	})

	log.Infof("Starting Asynq worker server (concurrency=%d queues=%v)", cfg.Worker.Concurrency, cfg.Worker.Queues)
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start Asynq server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	log.Info("Shutdown signal received. Initiating graceful shutdown...")
	srv.Shutdown()
	appInstance.Close()
	return nil
}
