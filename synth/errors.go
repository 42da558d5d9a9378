// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	// ErrUnknownParam indicates a parameter name the engine does not have.
	ErrUnknownParam = errors.New("unknown parameter")

	// ErrSlotRange indicates a reader, envelope or LFO number outside the
	// engine's layout.
	ErrSlotRange = errors.New("slot out of range")
)
