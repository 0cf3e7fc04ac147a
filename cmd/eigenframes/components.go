// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eigenframes/dataset"
	"github.com/katalvlaran/eigenframes/matrix"
)

var (
	compCfg   runConfig
	compIndex int
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Inspect fitted principal components",
}

var componentsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render principal components as eigen-images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, model, err := fitSamples(compCfg, func(X *matrix.Dense) error {
			if squareSide(X.Cols()) == 0 {
				return fmt.Errorf("%d features do not form a square image", X.Cols())
			}
			return nil
		})
		if err != nil {
			return err
		}

		lo, hi := 0, model.K()
		if compIndex >= 0 {
			if compIndex >= model.K() {
				return fmt.Errorf("--index %d: only %d components", compIndex, model.K())
			}
			lo, hi = compIndex, compIndex+1
		}

		comps := model.Components()
		eig := model.Eigenvalues()
		ratio := model.ExplainedVarianceRatio()
		out := cmd.OutOrStdout()
		for i := lo; i < hi; i++ {
			row, err := comps.Row(i)
			if err != nil {
				return err
			}
			g, err := dataset.Grid(dataset.Normalize(row), squareSide(len(row)))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "component %d (eigenvalue %.4g, %.1f%% variance)\n%s",
				i, eig[i], 100*ratio[i], dataset.Render(g))
		}

		return nil
	},
}

func init() {
	componentsCmd.AddCommand(componentsShowCmd)

	f := componentsShowCmd.Flags()
	addFitFlags(f, &compCfg)
	f.IntVar(&compIndex, "index", -1, "Component to render (default: all)")
}
