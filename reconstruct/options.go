// SPDX-License-Identifier: MIT

package reconstruct

// DefaultBlockSize folds one basis vector per step (a rank-1 update).
const DefaultBlockSize = 1

// Option configures a Reconstructor.
// Values are validated by New, so a bad option surfaces as ErrInvalidArgument
// instead of a panic.
type Option func(*options)

type options struct {
	blockSize int // >= 1; DefaultBlockSize
}

// WithBlockSize sets how many basis vectors are folded in per step.
func WithBlockSize(k int) Option {
	return func(o *options) { o.blockSize = k }
}

func gatherOptions(user ...Option) options {
	o := options{blockSize: DefaultBlockSize}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
