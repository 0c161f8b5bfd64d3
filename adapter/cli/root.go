// Package cli wires the mizan command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mizanapp/mizan/pkg/observability"
)

var (
	jsonOutput bool
	verbose    bool
	logger     *slog.Logger
)

type commandStartKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mizan",
	Short: "Mizan - prayer-anchored day planner",
	Long: `Mizan plans your day around the five daily prayers.

Commitments are scheduled into the free windows between prayer times,
never on top of them. The planner can rearrange a whole day with one of
several strategies and answers structured scheduling requests.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		// Every log line below this command, dispatcher included,
		// carries the same correlation id through the context.
		ctx := observability.WithCorrelationID(cmd.Context(), "")
		cmd.SetContext(context.WithValue(ctx, commandStartKey{}, time.Now()))
		logger.InfoContext(cmd.Context(), "command start", "command", cmd.CommandPath())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		start, ok := cmd.Context().Value(commandStartKey{}).(time.Time)
		if !ok {
			return
		}
		logger.InfoContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit outcomes as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
