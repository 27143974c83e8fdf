package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var usageLimit int

// usageCmd reports AI usage accounting.
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show AI usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		total, failed, avgDuration, err := appInstance.UsageStore.GetUsageSummary(ctx)
		if err != nil {
			return fmt.Errorf("aggregating usage: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Printf("Total AI calls: ")
		fmt.Println(total)
		bold.Printf("Failed calls:   ")
		fmt.Println(failed)
		bold.Printf("Avg duration:   ")
		fmt.Printf("%.0f ms\n\n", avgDuration)

		entries, err := appInstance.UsageStore.ListUsage(ctx, usageLimit, 0)
		if err != nil {
			return fmt.Errorf("listing usage: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Time", "Provider", "Operation", "Model", "Duration (ms)", "OK"})
		table.SetBorder(false)
		for _, e := range entries {
			table.Append([]string{
				e.Timestamp.Format(time.RFC3339),
				e.ProviderName,
				e.Operation,
				e.ModelName,
				strconv.FormatInt(e.DurationMs, 10),
				strconv.FormatBool(e.Success),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().IntVar(&usageLimit, "limit", 20, "Number of recent calls to show")
}
