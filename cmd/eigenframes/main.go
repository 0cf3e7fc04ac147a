// SPDX-License-Identifier: MIT

// Command eigenframes fits PCA to a set of samples and replays their
// reconstruction one principal component (or block of components) at a time,
// optionally storing every snapshot in a SQLite frame store.
//
//	eigenframes run --synthetic 200 --components 16 --block-size 2 --db frames.db
//	eigenframes frames list --db frames.db
//	eigenframes frames show <session-id> --index 3 --sample 0
//	eigenframes components show --synthetic 200 --side 16 -k 4
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eigenframes/framestore"
)

var (
	dbPath  string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eigenframes",
	Short: "Progressive PCA reconstruction",
	Long: `eigenframes projects samples onto their principal components and rebuilds
them incrementally, one block of components per frame.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens the frame store named by --db.
func openStore(ctx context.Context) (*framestore.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("--db is required")
	}
	store, err := framestore.Open(ctx, dbPath, framestore.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open frame store: %w", err)
	}

	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Frame store (SQLite file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(runCmd, framesCmd, componentsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
