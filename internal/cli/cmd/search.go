package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Print the search URL for a keyword",
	Long: `Build the bilibili search URL the shell would load for a keyword.
Multiple arguments are joined with spaces.

Examples:
  bilishell search 4k
  bilishell search "lo-fi mix"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	keyword := strings.Join(args, " ")
	searchURL, err := url.BuildSearchURL(entity.BilibiliProfile(), keyword)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.RenderSearchURL(keyword, searchURL))
	return nil
}
