// SPDX-License-Identifier: MIT

// Options for constructing matrices and the Jacobi solver defaults.
// Each knob has a Default* constant, a With* setter and is resolved once by
// gatherOptions; nothing is read from globals at call time.

package matrix

// Numeric policy.
const (
	// DefaultValidateNaNInf makes new matrices reject NaN and ±Inf.
	DefaultValidateNaNInf = true
)

// Eigen solver defaults.
const (
	// DefaultEigenTol is the off-diagonal convergence threshold for Jacobi sweeps.
	DefaultEigenTol = 1e-10

	// DefaultEigenMaxSweeps caps the number of full cyclic sweeps.
	// Cyclic Jacobi converges quadratically; well-conditioned inputs need < 15.
	DefaultEigenMaxSweeps = 64
)

// Option adjusts Options; later options override earlier ones.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf relaxes the finite-only policy for matrices built with
// these options. Use only for controlled ingestion where NaN is sanitized later.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves user options against the defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// ValidateNaNInf reports whether the finite-only policy is on.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies user setters in order over the defaults; nil setters are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
