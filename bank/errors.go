// SPDX-License-Identifier: EPL-2.0

package bank

import "errors"

var (
	ErrBankNotFound        = errors.New("sound bank not found")
	ErrSampleFetchFailed   = errors.New("sample fetch failed")
	ErrDecodeFailure       = errors.New("sample decode failed")
	ErrMemoryLimitExceeded = errors.New("sample memory limit exceeded")
	ErrRegisterFailed      = errors.New("sample registration failed")
)
