// SPDX-License-Identifier: EPL-2.0

package formats

import "errors"

var ErrEmptyAudio = errors.New("decoded audio has no frames")
