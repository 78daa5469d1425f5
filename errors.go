// SPDX-License-Identifier: EPL-2.0

package mpc2000xl

import "errors"

var ErrSampleNotFound = errors.New("sample not loaded")
