package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"plume/internal/services"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	recommendTitle       string
	recommendFile        string
	recommendContentType string
	recommendMax         int
	recommendExclude     []string
)

// recommendCmd classifies a draft against the blog's categories.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend categories for a draft post",
	Long: `Reads post content from a file (or stdin with -f -) and prints the
recommended categories with their confidence scores.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		content, err := readContentArg(recommendFile)
		if err != nil {
			return err
		}

		result, err := appInstance.CategoryService.RecommendCategories(cmd.Context(), services.RecommendCategoriesRequest{
			Title:              recommendTitle,
			Content:            content,
			ContentType:        recommendContentType,
			MaxSuggestions:     recommendMax,
			ExistingCategories: recommendExclude,
		})
		if err != nil {
			return err
		}

		if len(result.Recommendations) == 0 {
			fmt.Println("No category crossed the confidence threshold.")
		} else {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Category", "Confidence", "Reasoning"})
			table.SetBorder(false)
			for _, rec := range result.Recommendations {
				table.Append([]string{rec.CategoryName, fmt.Sprintf("%.2f", rec.Confidence), rec.Reasoning})
			}
			table.Render()
		}

		bold := color.New(color.Bold)
		bold.Printf("\nPrimary topic: ")
		fmt.Println(result.ContentAnalysis.PrimaryTopic)
		bold.Printf("Technical level: ")
		fmt.Println(result.ContentAnalysis.TechnicalLevel)
		if len(result.ContentAnalysis.KeyTopics) > 0 {
			bold.Printf("Key topics: ")
			fmt.Println(strings.Join(result.ContentAnalysis.KeyTopics, ", "))
		}
		return nil
	},
}

// readContentArg reads post content from a file path, or stdin when the
// path is "-".
func readContentArg(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("content file is required (use -f, or -f - for stdin)")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVarP(&recommendTitle, "title", "t", "", "Post title (required)")
	recommendCmd.Flags().StringVarP(&recommendFile, "file", "f", "", "Path to post content, or - for stdin (required)")
	recommendCmd.Flags().StringVar(&recommendContentType, "type", "markdown", "Content type: markdown or html")
	recommendCmd.Flags().IntVar(&recommendMax, "max", 0, "Maximum suggestions (defaults to config)")
	recommendCmd.Flags().StringSliceVar(&recommendExclude, "exclude", nil, "Category ids to exclude")
	recommendCmd.MarkFlagRequired("title")
	recommendCmd.MarkFlagRequired("file")
}
