// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/eigenframes/dataset"
	"github.com/katalvlaran/eigenframes/framestore"
	"github.com/katalvlaran/eigenframes/matrix"
	"github.com/katalvlaran/eigenframes/pca"
	"github.com/katalvlaran/eigenframes/reconstruct"
)

type runConfig struct {
	input      string
	synthetic  int
	side       int
	seed       int64
	components int
	blockSize  int
	solver     string
	label      string
	sample     int
}

var runCfg runConfig

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit PCA and replay the progressive reconstruction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconstruction(cmd, runCfg)
	},
}

// addFitFlags registers the sample source and PCA flags shared by run and
// components show.
func addFitFlags(f *pflag.FlagSet, cfg *runConfig) {
	f.StringVarP(&cfg.input, "input", "i", "", "CSV file, one sample per row")
	f.IntVar(&cfg.synthetic, "synthetic", 0, "Generate N synthetic digit images instead of reading --input")
	f.IntVar(&cfg.side, "side", 28, "Image side for --synthetic")
	f.Int64Var(&cfg.seed, "seed", 1, "Seed for --synthetic")
	f.IntVarP(&cfg.components, "components", "k", 10, "Number of principal components")
	f.StringVar(&cfg.solver, "solver", pca.SolverSVD.String(), "PCA solver: jacobi or svd")
}

func init() {
	f := runCmd.Flags()
	addFitFlags(f, &runCfg)
	f.IntVarP(&runCfg.blockSize, "block-size", "b", reconstruct.DefaultBlockSize, "Components folded in per frame")
	f.StringVar(&runCfg.label, "label", "", "Session label stored with the frames")
	f.IntVar(&runCfg.sample, "sample", -1, "Render this sample after every frame (square images only)")
}

func loadSamples(cfg runConfig) (*matrix.Dense, string, error) {
	switch {
	case cfg.input != "" && cfg.synthetic > 0:
		return nil, "", fmt.Errorf("--input and --synthetic are mutually exclusive")
	case cfg.input != "":
		fh, err := os.Open(cfg.input)
		if err != nil {
			return nil, "", err
		}
		defer fh.Close()
		X, err := dataset.LoadCSV(fh)
		return X, cfg.input, err
	case cfg.synthetic > 0:
		X, _, err := dataset.Synthetic(cfg.synthetic, cfg.side, cfg.seed)
		return X, fmt.Sprintf("synthetic(n=%d,side=%d,seed=%d)", cfg.synthetic, cfg.side, cfg.seed), err
	default:
		return nil, "", fmt.Errorf("one of --input or --synthetic is required")
	}
}

// fitSamples loads the samples named by cfg, runs check on them and fits PCA.
func fitSamples(cfg runConfig, check func(*matrix.Dense) error) (*matrix.Dense, *pca.Model, error) {
	X, source, err := loadSamples(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load samples: %w", err)
	}
	solver, err := pca.ParseSolver(cfg.solver)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("samples loaded", "source", source, "samples", X.Rows(), "features", X.Cols())
	if check != nil {
		if err = check(X); err != nil {
			return nil, nil, err
		}
	}

	model, err := pca.Fit(X, cfg.components, pca.WithSolver(solver))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fit PCA: %w", err)
	}
	cum := model.CumulativeVarianceRatio()
	logger.Info("pca fitted", "solver", solver, "components", model.K(), "explained", cum[len(cum)-1])

	return X, model, nil
}

func runReconstruction(cmd *cobra.Command, cfg runConfig) error {
	ctx := cmd.Context()

	X, model, err := fitSamples(cfg, func(X *matrix.Dense) error { return checkSample(cfg.sample, X) })
	if err != nil {
		return err
	}
	cum := model.CumulativeVarianceRatio()

	Z, err := model.Transform(X)
	if err != nil {
		return err
	}
	rec, err := reconstruct.New(Z, model.Components(), reconstruct.WithBlockSize(cfg.blockSize))
	if err != nil {
		return fmt.Errorf("failed to start reconstruction: %w", err)
	}
	tracker, err := newErrorTracker(X, model, Z)
	if err != nil {
		return err
	}

	// A failing frame callback, or a reconstruction error once the steps run
	// out, cancels runCtx so a store transaction in progress is rolled back.
	runCtx, abort := context.WithCancelCause(ctx)
	defer abort(nil)
	steps := observe(rec.Steps(), func(s reconstruct.Step) error {
		toFinal, toInput, err := tracker.errors(s)
		if err != nil {
			return err
		}
		logger.Info("frame",
			"index", s.Index,
			"consumed", s.Consumed,
			"explained", cum[s.Consumed-1],
			"rel_err_final", toFinal,
			"rel_err_input", toInput,
		)
		if cfg.sample >= 0 {
			return renderSample(cmd, s, model.Mean(), cfg.sample)
		}
		return nil
	}, func() error {
		if err := rec.Err(); err != nil {
			return fmt.Errorf("reconstruction failed: %w", err)
		}
		return nil
	}, abort)

	frames := 0
	var (
		sess   framestore.Session
		recErr error
	)
	if dbPath != "" {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		sess, frames, recErr = store.Record(runCtx, framestore.Session{
			Samples:    X.Rows(),
			Features:   X.Cols(),
			Components: model.K(),
			BlockSize:  rec.BlockSize(),
			Label:      cfg.label,
			Mean:       model.Mean(),
		}, steps)
	} else {
		for range steps {
			frames++
		}
	}
	if err = context.Cause(runCtx); err != nil {
		return err
	}
	if recErr != nil {
		return fmt.Errorf("failed to record frames: %w", recErr)
	}

	if sess.ID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d frames stored\n", sess.ID, frames)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d frames\n", frames)
	}

	return nil
}

// observe calls fn for every step before passing it on, and done once seq is
// exhausted. The first error from either is handed to abort and ends the
// sequence.
func observe(seq iter.Seq[reconstruct.Step], fn func(reconstruct.Step) error, done func() error, abort context.CancelCauseFunc) iter.Seq[reconstruct.Step] {
	return func(yield func(reconstruct.Step) bool) {
		for s := range seq {
			if err := fn(s); err != nil {
				abort(err)
				return
			}
			if !yield(s) {
				return
			}
		}
		if err := done(); err != nil {
			abort(err)
		}
	}
}

// checkSample rejects a --sample that cannot be rendered from X.
func checkSample(i int, X matrix.Matrix) error {
	if i < 0 {
		return nil
	}
	if i >= X.Rows() {
		return fmt.Errorf("--sample %d: only %d samples", i, X.Rows())
	}
	if squareSide(X.Cols()) == 0 {
		return fmt.Errorf("--sample %d: %d features do not form a square image", i, X.Cols())
	}

	return nil
}

func renderSample(cmd *cobra.Command, s reconstruct.Step, mean []float64, i int) error {
	X, err := s.WithMean(mean)
	if err != nil {
		return err
	}
	row, err := X.Row(i)
	if err != nil {
		return fmt.Errorf("--sample %d: %w", i, err)
	}
	g, err := dataset.Grid(row, squareSide(len(row)))
	if err != nil {
		return fmt.Errorf("--sample %d: %w", i, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "frame %d (%d components)\n%s", s.Index, s.Consumed, dataset.Render(g))

	return nil
}

// squareSide returns √n when n is a perfect square, else 0 (rejected by Grid).
func squareSide(n int) int {
	for s := 1; s*s <= n; s++ {
		if s*s == n {
			return s
		}
	}

	return 0
}
