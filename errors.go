// SPDX-License-Identifier: EPL-2.0

package scansynth

import "errors"

var (
	ErrNoSequence = errors.New("nothing to bounce")
	ErrSampleRate = errors.New("sample rate must be positive")
)
