// SPDX-License-Identifier: EPL-2.0

package bank

// DefaultMaxMemoryMB is the sample budget used when none is configured.
const DefaultMaxMemoryMB = 16

// Option configures a Loader.
type Option func(*Loader)

// WithDefaultMaxMemoryMB sets the budget used by loads that do not pass
// WithMaxMemoryMB. Non-positive values are ignored.
func WithDefaultMaxMemoryMB(mb int) Option {
	return func(l *Loader) {
		if mb > 0 {
			l.maxMemoryMB = mb
		}
	}
}

// ProgressFunc is called after each committed sample with the number of
// samples loaded so far and the bank's sample count.
type ProgressFunc func(loaded, total int)

type loadOptions struct {
	progress    ProgressFunc
	maxMemoryMB int
}

// LoadOption configures a single LoadBank call.
type LoadOption func(*loadOptions)

func WithProgress(fn ProgressFunc) LoadOption {
	return func(o *loadOptions) { o.progress = fn }
}

// WithMaxMemoryMB overrides the memory budget for one load. Non-positive
// values keep the loader default.
func WithMaxMemoryMB(mb int) LoadOption {
	return func(o *loadOptions) {
		if mb > 0 {
			o.maxMemoryMB = mb
		}
	}
}
