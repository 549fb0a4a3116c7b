package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
)

var classifyCanonical bool

var classifyCmd = &cobra.Command{
	Use:   "classify <url>...",
	Short: "Show how URLs are classified",
	Long: `Classify one or more URLs the way the shell does on every navigation.

Examples:
  bilishell classify https://www.bilibili.com/video/BV1xx411c7mD
  bilishell classify --canonical "https://www.bilibili.com/?spm_id_from=333"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyCanonical, "canonical", false, "also print the canonical form of each URL")
}

func runClassify(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	classifier := url.NewClassifier(entity.BilibiliProfile())
	out := cmd.OutOrStdout()
	for _, raw := range args {
		fmt.Fprintln(out, app.Theme.RenderClassification(raw, classifier.Classify(raw)))
		if classifyCanonical {
			fmt.Fprintf(out, "  %s %s\n", app.Theme.Subtle.Render("canonical"), url.Canonicalize(raw))
		}
	}
	return nil
}
