// Command searchbench runs a suite of problem/strategy pairings through the
// comparison harness and prints the per-run statistics as a table.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "searchbench",
		Short:        "Compare search strategies across problems",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		parallel   int
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the suite described by a YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(os.Stderr)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			suite, err := loadSuite(configPath)
			if err != nil {
				return fmt.Errorf("loading suite: %w", err)
			}
			if parallel > 0 {
				suite.Parallel = parallel
			}
			return runSuite(cmd.Context(), cmd.OutOrStdout(), logger, suite)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "suite.yaml", "suite definition file")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "max concurrent runs (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available problem and strategy kinds",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "problems:")
			for _, kind := range problemKinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", kind)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "strategies:")
			for _, kind := range strategyKinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", kind)
			}
		},
	}
}
