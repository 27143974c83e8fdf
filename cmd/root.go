package cmd

import (
	"context"
	"fmt"
	"os"

	"plume/internal/app"
	"plume/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "Plume content-intelligence CLI",
	Long: `Plume is the content-intelligence layer of a personal blogging
platform: AI category recommendation and auto-tagging, SEO metadata
recommendation and SEO validation.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Context key type avoids collisions with other context values.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity and other diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		fmt.Println("Checking database connectivity...")
		if err := appInstance.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Println("Database connection successful.")
		return nil
	},
}
