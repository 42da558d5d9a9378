// SPDX-License-Identifier: EPL-2.0

package sequence

import "errors"

var (
	ErrTimeFormat = errors.New("only metric-tick MIDI files are supported")
	ErrScript     = errors.New("script failed")
)
