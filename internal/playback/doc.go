// SPDX-License-Identifier: EPL-2.0

// Package playback sends an audio.Source to the sound card through oto.
// Builds with the headless tag have no backend and Open fails with
// ErrNoBackend.
package playback
