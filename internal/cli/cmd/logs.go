package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/bootstrap"
)

const defaultLogsLines = 50

var (
	logsLines    int
	logsPathOnly bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the end of the shell log",
	Long: `Show the last lines of the log written while the control panel is open.

Examples:
  bilishell logs
  bilishell logs -n 200
  bilishell logs --path`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
	logsCmd.Flags().BoolVar(&logsPathOnly, "path", false, "only print the log file path")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	path, err := bootstrap.LogFilePath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if logsPathOnly {
		fmt.Fprintln(out, path)
		return nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no log yet at %s", path)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := tailLines(f, logsLines)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

// tailLines returns the last n lines of r.
func tailLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, scanner.Text())
	}
	return ring, scanner.Err()
}
