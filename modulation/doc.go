// SPDX-License-Identifier: EPL-2.0

// Package modulation provides the control-rate signal sources of a voice
// and the laws that apply them to parameters.
//
// Sources are the LFO (unipolar, [0, 1]) and the linear ADSR Envelope. A
// Matrix holds one block of every source's output plus every LFO×envelope
// product, addressed by Source. Targets read the matrix sample by sample
// and combine it with their base value through one of the router laws:
//
//	ApplyBipolar    base·(1 + a·(2s−1))       positions, sizes, angle, Q
//	ApplyUnipolar   volume                    see function doc
//	ApplyPan        base + a·(2s−1)
//	ApplyPitch      f·2^(a·(2s−1))
//	ApplyCutoff     fc·2^(a·(2s−1)·7)
//
// Smoother provides the linear de-zipper ramp used for every continuously
// variable parameter.
package modulation
