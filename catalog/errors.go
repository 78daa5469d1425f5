// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	ErrBankNotFound    = errors.New("bank not found")
	ErrInvalidBankData = errors.New("invalid bank metadata")
)
