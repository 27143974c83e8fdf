package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"plume/internal/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seoTitle         string
	seoFile          string
	seoContentType   string
	seoKeywords      []string
	seoLanguage      string
	seoIncludeSchema bool
)

var seoCmd = &cobra.Command{
	Use:   "seo",
	Short: "SEO metadata recommendation and validation",
}

// seoRecommendCmd generates SEO metadata for a draft.
var seoRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate SEO metadata for a draft post",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		content, err := readContentArg(seoFile)
		if err != nil {
			return err
		}

		data, err := appInstance.SeoService.RecommendMetadata(cmd.Context(), services.SeoRecommendRequest{
			Title:          seoTitle,
			Content:        content,
			ContentType:    seoContentType,
			TargetKeywords: seoKeywords,
			Options: services.SeoOptions{
				Language:      seoLanguage,
				IncludeSchema: seoIncludeSchema,
			},
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// seoValidateCmd validates a post's content and metadata.
var seoValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a post's SEO",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		content, err := readContentArg(seoFile)
		if err != nil {
			return err
		}

		result, err := appInstance.SeoValidationService.ValidateSEO(cmd.Context(), services.SeoValidateRequest{
			Content: content,
		})
		if err != nil {
			return err
		}

		verdict := color.New(color.FgRed, color.Bold)
		if result.Passed {
			verdict = color.New(color.FgGreen, color.Bold)
		}
		verdict.Printf("Overall: %d/100 (passed: %v)\n\n", result.OverallScore, result.Passed)

		fmt.Printf("Content:     %.0f\n", result.Metrics.ContentScore)
		fmt.Printf("Technical:   %.0f\n", result.Metrics.TechnicalScore)
		fmt.Printf("Metadata:    %.0f\n", result.Metrics.MetadataScore)
		fmt.Printf("Performance: %.0f (informational)\n", result.Metrics.PerformanceScore)

		if len(result.Suggestions) > 0 {
			fmt.Fprintln(os.Stdout, "\nSuggestions:")
			for _, s := range result.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seoCmd)
	seoCmd.AddCommand(seoRecommendCmd)
	seoCmd.AddCommand(seoValidateCmd)

	seoCmd.PersistentFlags().StringVarP(&seoFile, "file", "f", "", "Path to post content, or - for stdin (required)")
	seoCmd.MarkPersistentFlagRequired("file")

	seoRecommendCmd.Flags().StringVarP(&seoTitle, "title", "t", "", "Post title (required)")
	seoRecommendCmd.Flags().StringVar(&seoContentType, "type", "markdown", "Content type: markdown or html")
	seoRecommendCmd.Flags().StringSliceVar(&seoKeywords, "keywords", nil, "Target keywords")
	seoRecommendCmd.Flags().StringVar(&seoLanguage, "lang", "en", "Content language: en or ko")
	seoRecommendCmd.Flags().BoolVar(&seoIncludeSchema, "schema", false, "Include schema.org BlogPosting data")
	seoRecommendCmd.MarkFlagRequired("title")
}
