// SPDX-License-Identifier: MIT

package pca

import "fmt"

// fractionSlack absorbs round-off when comparing cumulative ratios.
const fractionSlack = 1e-12

// ExplainedVarianceRatio returns eigenvalue[i] / TotalVariance for each kept
// axis. All zeros when the data has no variance.
func (m *Model) ExplainedVarianceRatio() []float64 {
	out := make([]float64, len(m.eigenvalues))
	if m.totalVariance <= 0 {
		return out
	}
	for i, v := range m.eigenvalues {
		out[i] = v / m.totalVariance
	}

	return out
}

// CumulativeVarianceRatio returns running sums of ExplainedVarianceRatio.
func (m *Model) CumulativeVarianceRatio() []float64 {
	out := m.ExplainedVarianceRatio()
	for i := 1; i < len(out); i++ {
		out[i] += out[i-1]
	}

	return out
}

// ComponentsFor returns the smallest j such that the first j axes explain at
// least fraction of the total variance.
//
// Errors: ErrInvalidFraction for fraction outside (0, 1];
// ErrFractionUnreachable when all K() axes fall short.
func (m *Model) ComponentsFor(fraction float64) (int, error) {
	if !(fraction > 0 && fraction <= 1) {
		return 0, fmt.Errorf("pca.ComponentsFor(%g): %w", fraction, ErrInvalidFraction)
	}
	cum := m.CumulativeVarianceRatio()
	for i, c := range cum {
		if c+fractionSlack >= fraction {
			return i + 1, nil
		}
	}

	return 0, fmt.Errorf("pca.ComponentsFor(%g): %d axes explain %g: %w", fraction, len(cum), cum[len(cum)-1], ErrFractionUnreachable)
}
