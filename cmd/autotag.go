package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	autotagApply bool
	autotagAsync bool
)

// autotagCmd runs recommend-and-apply for an existing post.
var autotagCmd = &cobra.Command{
	Use:   "autotag <post-id>",
	Short: "Recommend and optionally apply category tags for a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		postID := args[0]

		if autotagAsync {
			taskID, err := appInstance.JobClient.EnqueueAutoTagJob(cmd.Context(), postID, autotagApply)
			if err != nil {
				return fmt.Errorf("enqueueing auto-tag job: %w", err)
			}
			fmt.Printf("Enqueued auto-tag job %s for post %s\n", taskID, postID)
			return nil
		}

		result, err := appInstance.AutoTagService.RecommendAndApplyTags(cmd.Context(), postID, autotagApply)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Category", "Confidence"})
		table.SetBorder(false)
		for _, rec := range result.Recommendations {
			table.Append([]string{rec.CategoryName, fmt.Sprintf("%.2f", rec.Confidence)})
		}
		table.Render()

		if result.Applied != nil {
			color.Green("Applied %d categories (%d removed).",
				result.Applied.AddedCategories, result.Applied.RemovedCategories)
		} else if autotagApply {
			color.Yellow("Nothing crossed the auto-apply threshold; no changes made.")
		}
		return nil
	},
}

// autotagStatsCmd prints a post's category association stats.
var autotagStatsCmd = &cobra.Command{
	Use:   "stats <post-id>",
	Short: "Show category association stats for a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		stats, err := appInstance.AutoTagService.GetPostCategoryStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Total: %d\nAI suggested: %d\nManual: %d\nAverage confidence: %.2f\n",
			stats.Total, stats.AISuggested, stats.Manual, stats.AverageConfidence)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autotagCmd)
	autotagCmd.AddCommand(autotagStatsCmd)
	autotagCmd.Flags().BoolVar(&autotagApply, "apply", false, "Apply recommendations with confidence >= the auto-apply threshold")
	autotagCmd.Flags().BoolVar(&autotagAsync, "async", false, "Enqueue as a background job instead of running inline")
}
