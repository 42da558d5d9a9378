// SPDX-License-Identifier: EPL-2.0

package reader

import "errors"

var (
	// ErrUnknownParam indicates a parameter name the reader does not have.
	ErrUnknownParam = errors.New("unknown reader parameter")
)
